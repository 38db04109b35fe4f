package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/formlo/formlo/constants"
	"github.com/formlo/formlo/internal/common"
)

// TextExtractor is Stage 1: raw upload bytes -> plain text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, filename string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // "PDF" | "DOCX" | "TXT"
	Duration   time.Duration
}

// Extractor dispatches on the filename extension, case-insensitive. It is a
// pure transform over the input buffer; no filesystem or network access.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(ctx context.Context, data []byte, filename string) (TextExtractionResult, error) {
	start := time.Now()

	ext := constants.NormalizeExt(filepath.Ext(filename))

	var (
		text  string
		pages int
		err   error
	)
	switch ext {
	case "pdf":
		text, pages, err = extractPDF(data)
	case "docx":
		text, err = extractDocx(data)
		pages = 1
	case "txt":
		text = string(data)
		pages = 1
	default:
		return TextExtractionResult{}, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, filepath.Ext(filename))
	}
	if err != nil {
		return TextExtractionResult{}, fmt.Errorf("extract %s: %w", filename, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return TextExtractionResult{}, common.ErrEmptyContent
	}

	return TextExtractionResult{
		Text:       text,
		Pages:      pages,
		SourceType: strings.ToUpper(ext),
		Duration:   time.Since(start),
	}, nil
}
