package forms

// Provider item wire types, shaped after the Google Forms v1 API.

// Item is one form item located at an explicit zero-based index.
type Item struct {
	Title        string       `json:"title"`
	QuestionItem QuestionItem `json:"questionItem"`
}

type QuestionItem struct {
	Question Question `json:"question"`
}

// Question carries exactly one of ChoiceQuestion or TextQuestion.
type Question struct {
	Required       bool            `json:"required"`
	ChoiceQuestion *ChoiceQuestion `json:"choiceQuestion,omitempty"`
	TextQuestion   *TextQuestion   `json:"textQuestion,omitempty"`
}

// ChoiceQuestion is an exclusive (RADIO) or multi-select (CHECKBOX) choice.
type ChoiceQuestion struct {
	Type    string   `json:"type"` // "RADIO" | "CHECKBOX"
	Options []Option `json:"options"`
}

type Option struct {
	Value string `json:"value"`
}

// TextQuestion is a free-text answer; Paragraph selects multi-line input.
type TextQuestion struct {
	Paragraph bool `json:"paragraph"`
}
