package forms

import "github.com/formlo/formlo/internal/llm"

// Placeholder options substituted when a choice question arrives without any.
// A choice item never maps to zero options.
var placeholderOptions = []string{"Option 1", "Option 2"}

// ToProviderItems translates the typed question set into provider items, one
// per question, preserving order. Pure; items are inserted downstream at the
// zero-based index matching their position here.
func ToProviderItems(result llm.ExtractionResult) []Item {
	items := make([]Item, 0, len(result.Questions))
	for _, q := range result.Questions {
		items = append(items, toItem(q))
	}
	return items
}

func toItem(q llm.ExtractedQuestion) Item {
	question := Question{Required: q.Required}

	switch q.Kind {
	case llm.KindSingleChoice, llm.KindMultiChoice:
		choiceType := "RADIO"
		if q.Kind == llm.KindMultiChoice {
			choiceType = "CHECKBOX"
		}
		question.ChoiceQuestion = &ChoiceQuestion{
			Type:    choiceType,
			Options: toOptions(q.Options),
		}
	case llm.KindShortAnswer:
		question.TextQuestion = &TextQuestion{Paragraph: false}
	default:
		// KindLongAnswer and anything unexpected.
		question.TextQuestion = &TextQuestion{Paragraph: true}
	}

	return Item{
		Title:        q.Title,
		QuestionItem: QuestionItem{Question: question},
	}
}

func toOptions(values []string) []Option {
	if len(values) == 0 {
		values = placeholderOptions
	}
	options := make([]Option, 0, len(values))
	for _, v := range values {
		options = append(options, Option{Value: v})
	}
	return options
}
