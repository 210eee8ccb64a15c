package retriever

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"lawsearch/internal/domain"
	"lawsearch/internal/embedding"
	"lawsearch/internal/index"
)

// Retriever answers free-text queries and exact article lookups over a built
// index. The artifact pair is loaded lazily on first use and then held as
// read-only state; Search and Article are safe to call concurrently once
// loaded. Load itself mutates shared fields, so force one synchronous Load at
// startup before serving concurrent requests.
type Retriever struct {
	dir    string
	emb    embedding.Embedder
	log    *slog.Logger
	index  *index.Flat
	chunks []string
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithLogger sets the logger used for demoted resolution failures.
func WithLogger(log *slog.Logger) Option {
	return func(r *Retriever) { r.log = log }
}

// New creates a Retriever over the artifact directory. The embedder must be
// the same one used to build the index.
func New(dir string, emb embedding.Embedder, opts ...Option) *Retriever {
	r := &Retriever{dir: dir, emb: emb, log: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads the index and unit array from disk. It is idempotent: once
// loaded, subsequent calls are no-ops.
func (r *Retriever) Load() error {
	if r.index != nil && r.chunks != nil {
		return nil
	}
	flat, chunks, err := index.Load(r.dir)
	if err != nil {
		return err
	}
	r.index = flat
	r.chunks = chunks
	r.log.Info("index loaded", "dir", r.dir, "units", len(chunks), "dimension", flat.Dimension())
	return nil
}

// Search embeds the query, runs k-NN over the index with a 2x over-fetch, and
// applies a lexical relevance filter before returning at most topK results in
// ascending-distance order. At least 2 results pass the filter even with zero
// lexical overlap, so purely semantic matches are never fully discarded.
func (r *Retriever) Search(query string, topK int) ([]domain.SearchResult, error) {
	if topK < 1 {
		return nil, fmt.Errorf("invalid topK: %d", topK)
	}
	if err := r.Load(); err != nil {
		return nil, err
	}

	vec, err := r.emb.Embed(query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	hits, err := r.index.Search(vec, 2*topK)
	if err != nil {
		return nil, err
	}

	queryWords := keywords(query)
	var results []domain.SearchResult
	for _, hit := range hits {
		chunk := r.chunks[hit.Ordinal]
		chunkLower := strings.ToLower(chunk)
		overlap := 0
		for _, w := range queryWords {
			if strings.Contains(chunkLower, w) {
				overlap++
			}
		}
		if overlap > 0 || len(results) < 2 {
			results = append(results, domain.SearchResult{
				Text:  chunk,
				Score: similarity(hit.Distance),
			})
		}
		if len(results) >= topK {
			break
		}
	}

	// Nothing passed the filter: fall back to the top 2 by raw similarity.
	if len(results) == 0 {
		for _, hit := range hits[:min(2, len(hits))] {
			results = append(results, domain.SearchResult{
				Text:  r.chunks[hit.Ordinal],
				Score: similarity(hit.Distance),
			})
		}
	}
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// similarity converts an L2 distance to a score in (0,1], higher is better.
func similarity(distance float64) float64 {
	return 1 / (1 + distance)
}

// keywords returns the lower-cased query words longer than 3 characters.
func keywords(query string) []string {
	var words []string
	for _, w := range strings.Fields(query) {
		if utf8.RuneCountInString(w) > 3 {
			words = append(words, strings.ToLower(w))
		}
	}
	return words
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
