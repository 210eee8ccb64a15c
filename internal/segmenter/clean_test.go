package segmenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	t.Run("strips separator runs", func(t *testing.T) {
		assert.Equal(t, "Статья 5: текст", CleanText("Статья 5: текст\n========"))
	})
	t.Run("strips leading bullets", func(t *testing.T) {
		assert.Equal(t, "первый пункт второй пункт", CleanText("• первый пункт\n• второй пункт"))
	})
	t.Run("collapses whitespace", func(t *testing.T) {
		assert.Equal(t, "а б в", CleanText("а  б\n\n\tв"))
	})
	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", CleanText("  \n===\n "))
	})
}

func TestDedupeSentences(t *testing.T) {
	t.Run("drops exact duplicates", func(t *testing.T) {
		got := DedupeSentences("Обязательство прекращается смертью должника. Обязательство прекращается смертью должника. Иное правило.")
		assert.Equal(t, "Обязательство прекращается смертью должника. Иное правило", got)
	})
	t.Run("drops substring duplicates of long sentences", func(t *testing.T) {
		got := DedupeSentences("Договором признается соглашение двух или нескольких лиц. признается соглашение двух или нескольких лиц.")
		assert.Equal(t, "Договором признается соглашение двух или нескольких лиц", got)
	})
	t.Run("keeps short near-duplicates", func(t *testing.T) {
		// below the 20-char threshold the substring rule does not apply
		got := DedupeSentences("Общие положения. положения.")
		assert.Equal(t, "Общие положения. положения", got)
	})
	t.Run("single sentence unchanged", func(t *testing.T) {
		got := DedupeSentences("Статья 37: Неполная статья")
		assert.Equal(t, "Статья 37: Неполная статья", got)
	})
}
