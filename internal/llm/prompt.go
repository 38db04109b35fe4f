package llm

import "strings"

// SystemPrompt is the fixed system message for the extraction session.
const SystemPrompt = "You are an expert at analyzing documents and extracting structured questions for forms. " +
	"Extract questions, identify question types (multiple choice, short answer, long answer, true/false), " +
	"and provide answer options when applicable."

// BuildExtractionPrompt composes the single user prompt: the full document
// text plus the explicit output contract the parser expects.
func BuildExtractionPrompt(text string) string {
	parts := []string{
		"Analyze the following text and extract structured questions that can be converted into a form.",
		"",
		"Text to analyze:",
		text,
		"",
		"Return the questions in the following JSON format:",
		`{`,
		`  "form_title": "Generated form title based on content",`,
		`  "form_description": "Brief description of the form",`,
		`  "questions": [`,
		`    {`,
		`      "title": "Question text",`,
		`      "type": "RADIO|CHECKBOX|SHORT_ANSWER|PARAGRAPH_TEXT|TRUE_FALSE",`,
		`      "required": true,`,
		`      "options": ["option1", "option2"]`,
		`    }`,
		`  ]`,
		`}`,
		"",
		"Question type mapping:",
		"- RADIO: single choice (multiple choice, one answer)",
		"- CHECKBOX: multiple choice (checkboxes, several answers)",
		"- SHORT_ANSWER: short free-text response",
		"- PARAGRAPH_TEXT: long free-text response",
		"- TRUE_FALSE: true/false question (modeled as single choice with True/False options)",
		"",
		"Include \"options\" only for RADIO, CHECKBOX and TRUE_FALSE questions.",
		"Extract meaningful questions and provide appropriate answer choices when applicable.",
	}
	return strings.Join(parts, "\n")
}
