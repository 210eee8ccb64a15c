package segmenter

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	separatorRe  = regexp.MustCompile(`=+`)
	bulletRe     = regexp.MustCompile(`(?m)^\s*•\s*`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Structural headings that bleed into article text during PDF extraction.
// Matching is case-sensitive: the capitalized forms only appear as headings,
// while inflected lowercase forms ("настоящей главы") are legitimate prose.
var structuralHeadings = []string{
	"ГЛАВА ", "Глава ",
	"РАЗДЕЛ ", "Раздел ",
	"ПОДРАЗДЕЛ ", "Подраздел ",
	"ПАРАГРАФ ", "Параграф ",
}

// CleanText strips extraction artifacts from a unit's text: separator runs,
// leading bullet markers, and repeated whitespace.
func CleanText(s string) string {
	s = separatorRe.ReplaceAllString(s, "")
	s = bulletRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// cutStructuralHeading removes text from the first occurrence of a structural
// heading keyword to the end of the unit.
func cutStructuralHeading(s string) string {
	cut := -1
	for _, kw := range structuralHeadings {
		if i := strings.Index(s, kw); i >= 0 && (cut < 0 || i < cut) {
			cut = i
		}
	}
	if cut >= 0 {
		return strings.TrimSpace(s[:cut])
	}
	return s
}

// DedupeSentences splits text on periods and drops any sentence that
// duplicates a previously kept one, exactly or as a substring in either
// direction when the longer side exceeds 20 characters.
func DedupeSentences(text string) string {
	var kept []string
	for _, part := range strings.Split(text, ".") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		duplicate := false
		for _, seen := range kept {
			if part == seen {
				duplicate = true
				break
			}
			if utf8.RuneCountInString(part) > 20 && strings.Contains(seen, part) {
				duplicate = true
				break
			}
			if utf8.RuneCountInString(seen) > 20 && strings.Contains(part, seen) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, part)
		}
	}
	return dedupeJoin(kept)
}

func dedupeJoin(parts []string) string {
	return strings.TrimSpace(strings.Join(parts, ". "))
}
