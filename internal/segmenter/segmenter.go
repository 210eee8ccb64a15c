package segmenter

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"lawsearch/internal/domain"
)

// ArticleSegmenter splits a legal corpus into article-level units keyed by
// the "Статья N" marker found at line start.
type ArticleSegmenter struct {
	minChars int // cleaned units shorter than this are discarded as noise
	maxChars int // articles longer than this are split into fragments
	markerRe *regexp.Regexp
}

func NewArticleSegmenter(minChars, maxChars int) *ArticleSegmenter {
	if minChars <= 0 {
		minChars = 20
	}
	if maxChars <= 0 {
		maxChars = 1000
	}
	return &ArticleSegmenter{
		minChars: minChars,
		maxChars: maxChars,
		markerRe: regexp.MustCompile(`^` + domain.ArticleMarker + `\s+(\d+)`),
	}
}

// Segment scans the corpus line by line and returns cleaned units sorted by
// article number ascending. An empty corpus, or one without recognizable
// markers, yields an empty sequence rather than an error.
func (s *ArticleSegmenter) Segment(corpus string) []domain.Unit {
	var units []domain.Unit
	number := -1
	var lines []string

	flush := func() {
		if number < 0 {
			return
		}
		units = append(units, s.buildUnits(number, strings.Join(lines, "\n"))...)
	}

	for _, line := range strings.Split(corpus, "\n") {
		if m := s.markerRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			flush()
			number, _ = strconv.Atoi(m[1])
			lines = lines[:0]
		}
		if number >= 0 {
			lines = append(lines, line)
		}
	}
	flush()

	sort.SliceStable(units, func(i, j int) bool { return units[i].Number < units[j].Number })
	return units
}

// buildUnits cleans one accumulated article and turns it into one unit, or
// several fragment units when the content exceeds the size threshold.
func (s *ArticleSegmenter) buildUnits(number int, raw string) []domain.Unit {
	content := CleanText(raw)
	content = cutStructuralHeading(content)
	content = s.cutForeignArticle(number, content)
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) < s.minChars {
		return nil
	}

	if utf8.RuneCountInString(content) <= s.maxChars {
		return []domain.Unit{{
			Number: number,
			Text:   fmt.Sprintf("%s: %s", domain.Marker(number), content),
		}}
	}

	// Split long articles into fragments at word boundaries, preserving order.
	words := strings.Fields(content)
	step := s.maxChars / 10
	var units []domain.Unit
	fragment := 0
	for i := 0; i < len(words); i += step {
		end := i + step
		if end > len(words) {
			end = len(words)
		}
		text := strings.Join(words[i:end], " ")
		if utf8.RuneCountInString(text) <= 50 {
			continue
		}
		fragment++
		units = append(units, domain.Unit{
			Number:   number,
			Text:     fmt.Sprintf("%s (часть): %s", domain.Marker(number), text),
			Fragment: fragment,
		})
	}
	return units
}

// cutForeignArticle truncates content at the first in-unit marker naming a
// different article number. Units legitimately repeat their own marker
// ("Статья 379: Статья 379. ..."), so own-number occurrences are kept.
func (s *ArticleSegmenter) cutForeignArticle(number int, content string) string {
	for _, loc := range inlineMarkerRe.FindAllStringSubmatchIndex(content, -1) {
		n, err := strconv.Atoi(content[loc[2]:loc[3]])
		if err == nil && n != number {
			return content[:loc[0]]
		}
	}
	return content
}

var inlineMarkerRe = regexp.MustCompile(domain.ArticleMarker + `\s+(\d+)`)
