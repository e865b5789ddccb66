package openai

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	t.Run("ShortTextVerbatim", func(t *testing.T) {
		prompt, truncated := BuildPrompt("Widget — 10 USD")
		assert.False(t, truncated)
		assert.True(t, strings.HasSuffix(prompt, "Widget — 10 USD"))
		assert.Contains(t, prompt, `"name"`)
		assert.Contains(t, prompt, `"price"`)
	})

	t.Run("LongTextTruncated", func(t *testing.T) {
		text := strings.Repeat("a", maxCatalogChars+100)
		prompt, truncated := BuildPrompt(text)
		assert.True(t, truncated)
		assert.True(t, strings.HasSuffix(prompt, text[:maxCatalogChars]))
		assert.Len(t, prompt, len(extractionInstruction)+maxCatalogChars)
	})

	t.Run("TruncationKeepsValidUTF8", func(t *testing.T) {
		// Offset by one byte so the cut lands mid-rune.
		text := "x" + strings.Repeat("é", maxCatalogChars)
		prompt, truncated := BuildPrompt(text)
		assert.True(t, truncated)
		assert.True(t, utf8.ValidString(prompt))
		assert.True(t, strings.HasSuffix(prompt, "é"))
	})

	t.Run("ExactLimitNotTruncated", func(t *testing.T) {
		text := strings.Repeat("b", maxCatalogChars)
		_, truncated := BuildPrompt(text)
		assert.False(t, truncated)
	})
}
