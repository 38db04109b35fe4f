package llm

import "context"

// QuestionKind is the closed set of question behaviors the mapper understands.
// TRUE_FALSE in the model output is a surface-level alias that lowers to
// KindSingleChoice with a fixed two-option set.
type QuestionKind string

const (
	KindSingleChoice QuestionKind = "SINGLE_CHOICE"
	KindMultiChoice  QuestionKind = "MULTI_CHOICE"
	KindShortAnswer  QuestionKind = "SHORT_ANSWER"
	KindLongAnswer   QuestionKind = "LONG_ANSWER"
)

// IsChoice reports whether the kind carries an option list.
func (k QuestionKind) IsChoice() bool {
	return k == KindSingleChoice || k == KindMultiChoice
}

// ExtractedQuestion is one derived form question.
type ExtractedQuestion struct {
	Title    string       `json:"title"`
	Kind     QuestionKind `json:"kind"`
	Required bool         `json:"required"`
	Options  []string     `json:"options,omitempty"` // choice kinds only
}

// ExtractionResult is the output of the AI extraction stage. Question order
// is presentation order.
type ExtractionResult struct {
	FormTitle       string              `json:"form_title"`
	FormDescription string              `json:"form_description"`
	Questions       []ExtractedQuestion `json:"questions"`
}

// ChatBackend sends one prompt to the text-generation provider and returns
// its raw textual response. correlationID scopes the provider-side session so
// conversation state never leaks across jobs.
type ChatBackend interface {
	SendMessage(ctx context.Context, correlationID, prompt string) (string, error)
}

// QuestionExtractor is Stage 2: document text -> structured question set.
// Implementations never fail on malformed model output; they degrade to the
// deterministic fallback result instead.
type QuestionExtractor interface {
	ExtractQuestions(ctx context.Context, text, correlationID string) ExtractionResult
}
