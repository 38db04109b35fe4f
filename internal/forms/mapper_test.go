package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlo/formlo/internal/llm"
)

func TestToProviderItemsOrderPreserved(t *testing.T) {
	result := llm.ExtractionResult{
		Questions: []llm.ExtractedQuestion{
			{Title: "first", Kind: llm.KindShortAnswer},
			{Title: "second", Kind: llm.KindLongAnswer},
			{Title: "third", Kind: llm.KindSingleChoice, Options: []string{"a"}},
		},
	}

	items := ToProviderItems(result)
	require.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Title)
	assert.Equal(t, "second", items[1].Title)
	assert.Equal(t, "third", items[2].Title)
}

func TestToProviderItemsEmpty(t *testing.T) {
	assert.Empty(t, ToProviderItems(llm.ExtractionResult{}))
}

func TestToProviderItemsChoiceKinds(t *testing.T) {
	result := llm.ExtractionResult{
		Questions: []llm.ExtractedQuestion{
			{Title: "single", Kind: llm.KindSingleChoice, Required: true, Options: []string{"red", "blue"}},
			{Title: "multi", Kind: llm.KindMultiChoice, Options: []string{"x", "y", "z"}},
		},
	}

	items := ToProviderItems(result)
	require.Len(t, items, 2)

	single := items[0].QuestionItem.Question
	require.NotNil(t, single.ChoiceQuestion)
	assert.Nil(t, single.TextQuestion)
	assert.Equal(t, "RADIO", single.ChoiceQuestion.Type)
	assert.Equal(t, []Option{{Value: "red"}, {Value: "blue"}}, single.ChoiceQuestion.Options)
	assert.True(t, single.Required)

	multi := items[1].QuestionItem.Question
	require.NotNil(t, multi.ChoiceQuestion)
	assert.Equal(t, "CHECKBOX", multi.ChoiceQuestion.Type)
	assert.Len(t, multi.ChoiceQuestion.Options, 3)
	assert.False(t, multi.Required)
}

func TestToProviderItemsChoicePlaceholderOptions(t *testing.T) {
	for _, kind := range []llm.QuestionKind{llm.KindSingleChoice, llm.KindMultiChoice} {
		result := llm.ExtractionResult{
			Questions: []llm.ExtractedQuestion{{Title: "q", Kind: kind}},
		}
		items := ToProviderItems(result)
		require.Len(t, items, 1)
		got := items[0].QuestionItem.Question.ChoiceQuestion
		require.NotNil(t, got)
		assert.Equal(t, []Option{{Value: "Option 1"}, {Value: "Option 2"}}, got.Options)
	}
}

func TestToProviderItemsTextKinds(t *testing.T) {
	result := llm.ExtractionResult{
		Questions: []llm.ExtractedQuestion{
			{Title: "short", Kind: llm.KindShortAnswer, Required: true},
			{Title: "long", Kind: llm.KindLongAnswer},
		},
	}

	items := ToProviderItems(result)
	require.Len(t, items, 2)

	short := items[0].QuestionItem.Question
	require.NotNil(t, short.TextQuestion)
	assert.Nil(t, short.ChoiceQuestion)
	assert.False(t, short.TextQuestion.Paragraph)
	assert.True(t, short.Required)

	long := items[1].QuestionItem.Question
	require.NotNil(t, long.TextQuestion)
	assert.True(t, long.TextQuestion.Paragraph)
}
