package llm

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// Fallback strings substituted when the model response cannot be parsed into
// the expected schema. This is a designed degradation path, not an error.
const (
	FallbackFormTitle       = "Extracted Questions Form"
	FallbackFormDescription = "Questions extracted from uploaded document"
	FallbackQuestionTitle   = "Please provide feedback on the document content"
)

// FallbackResult returns the deterministic degraded extraction result: a
// single optional long-answer question prompting for manual feedback.
func FallbackResult() ExtractionResult {
	return ExtractionResult{
		FormTitle:       FallbackFormTitle,
		FormDescription: FallbackFormDescription,
		Questions: []ExtractedQuestion{
			{
				Title:    FallbackQuestionTitle,
				Kind:     KindLongAnswer,
				Required: false,
			},
		},
	}
}

// rawExtraction mirrors the wire shape the model is asked to emit. Nothing
// past this boundary trusts unvalidated fields.
type rawExtraction struct {
	FormTitle       string        `json:"form_title"`
	FormDescription string        `json:"form_description"`
	Questions       []rawQuestion `json:"questions"`
}

type rawQuestion struct {
	Title    string   `json:"title"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`
}

// ParseExtraction tolerantly decodes a raw model response. The response is
// not assumed to be pure JSON: the span from the first '{' to the last '}'
// is decoded, validated against the extraction schema, and lowered into the
// typed question set. Any failure along the way yields FallbackResult; this
// function never fails.
func ParseExtraction(response string, logger *slog.Logger) ExtractionResult {
	if logger == nil {
		logger = slog.Default()
	}

	span, ok := jsonSpan(response)
	if !ok {
		logger.Warn("llm.parse.no_json_span", "response_len", len(response))
		return FallbackResult()
	}

	var raw rawExtraction
	if err := json.Unmarshal([]byte(span), &raw); err != nil {
		logger.Warn("llm.parse.decode_failed", "error", err, "span_len", len(span))
		return FallbackResult()
	}

	if err := ValidateJSONAgainstSchema(BuildExtractionJSONSchema(), []byte(span)); err != nil {
		logger.Warn("llm.parse.schema_validation_failed", "error", err)
		return FallbackResult()
	}

	out := ExtractionResult{
		FormTitle:       strings.TrimSpace(raw.FormTitle),
		FormDescription: strings.TrimSpace(raw.FormDescription),
		Questions:       make([]ExtractedQuestion, 0, len(raw.Questions)),
	}
	if out.FormTitle == "" {
		out.FormTitle = FallbackFormTitle
	}
	for _, q := range raw.Questions {
		title := strings.TrimSpace(q.Title)
		if title == "" {
			continue
		}
		out.Questions = append(out.Questions, lowerQuestion(title, q))
	}
	return out
}

// lowerQuestion maps a wire-format question onto the closed QuestionKind set.
func lowerQuestion(title string, q rawQuestion) ExtractedQuestion {
	out := ExtractedQuestion{Title: title, Required: q.Required}

	switch strings.ToUpper(strings.TrimSpace(q.Type)) {
	case TypeRadio:
		out.Kind = KindSingleChoice
		out.Options = q.Options
	case TypeCheckbox:
		out.Kind = KindMultiChoice
		out.Options = q.Options
	case TypeShortAnswer:
		out.Kind = KindShortAnswer
	case TypeTrueFalse:
		// Two-option single choice regardless of whatever the model supplied.
		out.Kind = KindSingleChoice
		out.Options = []string{"True", "False"}
	default:
		// PARAGRAPH_TEXT and any unrecognized label.
		out.Kind = KindLongAnswer
	}

	if !out.Kind.IsChoice() {
		out.Options = nil
	}
	return out
}

// jsonSpan returns the greedy first-'{' to last-'}' slice of s.
func jsonSpan(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
