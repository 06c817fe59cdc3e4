package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSuggestions_NumberedList(t *testing.T) {
	text := "1. **Aria** - means light, suited for...\n2. **Lior** - Hebrew for my light"

	got := ExtractSuggestions(text)

	require.Len(t, got, 2)
	assert.Equal(t, Suggestion{Name: "Aria", Description: "means light, suited for..."}, got[0])
	assert.Equal(t, Suggestion{Name: "Lior", Description: "Hebrew for my light"}, got[1])
}

func TestExtractSuggestions_MultilineDescriptions(t *testing.T) {
	text := "给你几个选择：\n\n1. **Clara** - 明亮、清澈\n   发音简单，国际通用\n2. **Iris** - 彩虹女神\n\n喜欢哪个？"

	got := ExtractSuggestions(text)

	require.Len(t, got, 2)
	assert.Equal(t, "Clara", got[0].Name)
	assert.Equal(t, "明亮、清澈\n   发音简单，国际通用", got[0].Description)
	assert.Equal(t, "Iris", got[1].Name)
	assert.Equal(t, "彩虹女神\n\n喜欢哪个？", got[1].Description)
}

func TestExtractSuggestions_TrimsName(t *testing.T) {
	got := ExtractSuggestions("1. ** Nova ** - new star")
	require.Len(t, got, 1)
	assert.Equal(t, "Nova", got[0].Name)
}

func TestExtractSuggestions_NoMatches(t *testing.T) {
	got := ExtractSuggestions("你想给谁起名字呢？")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, ExtractSuggestions(""))
	assert.Empty(t, ExtractSuggestions("1. Aria - no bold"))
}
