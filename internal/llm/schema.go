package llm

// Wire-format type labels the model is instructed to emit.
const (
	TypeRadio         = "RADIO"
	TypeCheckbox      = "CHECKBOX"
	TypeShortAnswer   = "SHORT_ANSWER"
	TypeParagraphText = "PARAGRAPH_TEXT"
	TypeTrueFalse     = "TRUE_FALSE"
)

// BuildExtractionJSONSchema returns a JSON-Schema (draft 2020-12 subset) for
// the payload the model is asked to produce. It is used locally to decide
// whether a decoded response is usable or the fallback must be substituted.
func BuildExtractionJSONSchema() map[string]any {
	question := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string", "minLength": 1},
			"type": map[string]any{
				"type": "string",
			},
			"required": map[string]any{"type": "boolean"},
			"options": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []string{"title"},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"form_title":       map[string]any{"type": "string"},
			"form_description": map[string]any{"type": "string"},
			"questions": map[string]any{
				"type":  "array",
				"items": question,
			},
		},
		"required": []string{"questions"},
	}
}
