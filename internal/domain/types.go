package domain

import "fmt"

// ArticleMarker is the literal prefix identifying an article inside a unit's
// text. Every persisted unit starts with "Статья {N}".
const ArticleMarker = "Статья"

// Unit is one indexed span of legal text, usually a whole article. Articles
// above the segmenter's size threshold are split into several fragment units
// sharing the same article number.
type Unit struct {
	Number   int
	Text     string
	Fragment int // 0 for a whole article, 1-based for fragments
}

// Marker returns the marker prefix for the given article number.
func Marker(number int) string {
	return fmt.Sprintf("%s %d", ArticleMarker, number)
}

// SearchResult is a matching unit text with its similarity score.
// Score is in (0,1], higher is better.
type SearchResult struct {
	Text  string
	Score float64
}
