package llm

import (
	"context"
	"log/slog"
	"time"
)

// Extractor implements QuestionExtractor over a ChatBackend: one outbound
// call per invocation, no retries, tolerant parsing on the way back.
type Extractor struct {
	backend ChatBackend
	logger  *slog.Logger
}

func NewExtractor(backend ChatBackend, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{backend: backend, logger: logger}
}

// ExtractQuestions sends the extraction prompt under a session scoped by
// correlationID and parses the response. A backend failure degrades to the
// fallback result the same way a malformed response does: the analyzing
// stage never fails the job.
func (e *Extractor) ExtractQuestions(ctx context.Context, text, correlationID string) ExtractionResult {
	start := time.Now()

	prompt := BuildExtractionPrompt(text)
	response, err := e.backend.SendMessage(ctx, correlationID, prompt)
	if err != nil {
		e.logger.Warn("llm.extract.backend_error",
			"correlation_id", correlationID,
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return FallbackResult()
	}

	result := ParseExtraction(response, e.logger)
	e.logger.Info("llm.extract.ok",
		"correlation_id", correlationID,
		"text_len", len(text),
		"questions", len(result.Questions),
		"form_title", result.FormTitle,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return result
}
