package retriever

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"lawsearch/internal/domain"
	"lawsearch/internal/segmenter"
)

// fallbackTopK is the candidate width for the semantic fallback scan. It is
// deliberately wider than interactive search: we are scanning approximate
// hits for one exact prefix match, not trusting the ranking.
const fallbackTopK = 20

// Article returns the canonical text of the article with the given number,
// or false if it is absent. Internal failures are logged and demoted to
// not-found: this sits directly behind a user-facing lookup, and absence and
// breakage require the same graceful response.
func (r *Retriever) Article(number int) (string, bool) {
	if err := r.Load(); err != nil {
		r.log.Error("article lookup failed to load index", "article", number, "error", err)
		return "", false
	}

	marker := domain.Marker(number)

	// Exact scan over the unit array. The corpus may contain duplicate or
	// overlapping units for one article; collect them all.
	var parts []string
	for _, chunk := range r.chunks {
		clean := strings.TrimSpace(chunk)
		if matchesArticle(clean, marker) {
			parts = append(parts, clean)
		}
	}

	if len(parts) > 0 {
		combined := combineArticleParts(parts)
		// Re-validate after cleaning; a corrupted result is worse than none.
		if strings.HasPrefix(strings.TrimSpace(combined), marker) {
			return combined, true
		}
		r.log.Warn("article failed post-clean validation", "article", number)
		return "", false
	}

	// No exact match in the array: scan semantic candidates for one.
	results, err := r.Search(marker, fallbackTopK)
	if err != nil {
		r.log.Error("article fallback search failed", "article", number, "error", err)
		return "", false
	}
	for _, res := range results {
		clean := strings.TrimSpace(res.Text)
		if matchesArticle(clean, marker) {
			r.log.Info("article found via fallback search", "article", number, "score", res.Score)
			return clean, true
		}
	}

	r.log.Warn("article not found", "article", number)
	return "", false
}

// matchesArticle reports whether text starts with the exact marker and the
// marker is not a numeric prefix of a longer article number. Without the
// digit guard, "Статья 37" would match the unit for "Статья 379".
func matchesArticle(text, marker string) bool {
	if !strings.HasPrefix(text, marker) {
		return false
	}
	next, _ := utf8.DecodeRuneInString(text[len(marker):])
	return !unicode.IsDigit(next)
}

// combineArticleParts reduces duplicate units for one article to a single
// cleaned text. The first part wins: picking the "more complete" duplicate is
// undecidable from text alone, and the first mirrors build order.
func combineArticleParts(parts []string) string {
	combined := segmenter.CleanText(parts[0])
	return segmenter.DedupeSentences(combined)
}
