// formlo-extract runs the extraction stages on a local file without
// publishing: text extraction, then LLM question extraction, printing the
// derived question set as JSON. Useful for prompt and parser tuning.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/formlo/formlo/internal/common"
	"github.com/formlo/formlo/internal/extract"
	"github.com/formlo/formlo/internal/llm"
	"github.com/formlo/formlo/internal/llm/chat"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage: formlo-extract <file>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg := common.LoadConfig()
	if cfg.LLM.APIKey == "" {
		logger.Error("LLM_API_KEY env var is required")
		os.Exit(2)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read file failed", "path", path, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	extractor := extract.NewExtractor()
	res, err := extractor.Extract(ctx, data, path)
	if err != nil {
		logger.Error("text extraction failed", "path", path, "error", err)
		os.Exit(1)
	}
	logger.Info("text extracted", "path", path, "pages", res.Pages, "chars", len(res.Text))

	backend := chat.NewClient(chat.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	questions := llm.NewExtractor(backend, logger)

	result := questions.ExtractQuestions(ctx, res.Text, uuid.New().String())

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("marshal result failed", "error", err)
		os.Exit(1)
	}
	os.Stdout.Write(append(out, '\n'))
}
