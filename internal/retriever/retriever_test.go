package retriever

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawsearch/internal/domain"
	"lawsearch/internal/embedding/hashing"
	"lawsearch/internal/index"
)

const testDimension = 128

// newTestRetriever builds an index over the given unit texts in a temp dir
// and returns a retriever over it using the same embedder.
func newTestRetriever(t *testing.T, texts []string) *Retriever {
	t.Helper()
	dir := t.TempDir()
	emb := hashing.NewEmbedder(testDimension)
	units := make([]domain.Unit, len(texts))
	for i, text := range texts {
		units[i] = domain.Unit{Number: i + 1, Text: text}
	}
	require.NoError(t, index.Build(units, emb, dir))
	return New(dir, emb, WithLogger(discardLogger()))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func receiptCorpus() []string {
	return []string{
		"Статья 25: Обмен товара надлежащего качества. Отсутствие у потребителя чека не лишает его возможности требовать обмена или возврата товара.",
		"Статья 379: Статья 379. Прекращение обязательства смертью гражданина. Обязательство прекращается смертью должника.",
		"Статья 381: Статья 381. Понятие договора. Договором признается соглашение двух или нескольких лиц.",
	}
}

func TestSearch_NotBuilt(t *testing.T) {
	r := New(t.TempDir(), hashing.NewEmbedder(testDimension), WithLogger(discardLogger()))

	_, err := r.Search("любой запрос", 3)
	assert.ErrorIs(t, err, index.ErrNotBuilt)
}

func TestSearch_InvalidTopK(t *testing.T) {
	r := newTestRetriever(t, receiptCorpus())

	_, err := r.Search("запрос", 0)
	assert.Error(t, err)
}

func TestSearch_ResultBounds(t *testing.T) {
	r := newTestRetriever(t, receiptCorpus())

	results, err := r.Search("прекращение обязательства", 2)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), 2)
	assert.GreaterOrEqual(t, len(results), 1)
}

func TestSearch_ScoresNonIncreasing(t *testing.T) {
	r := newTestRetriever(t, receiptCorpus())

	results, err := r.Search("понятие договора и соглашение лиц", 3)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score,
			"scores must be non-increasing in result order")
	}
}

func TestSearch_ScoresInUnitInterval(t *testing.T) {
	r := newTestRetriever(t, receiptCorpus())

	results, err := r.Search("возврат товара", 3)
	require.NoError(t, err)
	for _, res := range results {
		assert.Greater(t, res.Score, 0.0)
		assert.LessOrEqual(t, res.Score, 1.0)
	}
}

func TestSearch_FindsReceiptArticle(t *testing.T) {
	r := newTestRetriever(t, receiptCorpus())

	results, err := r.Search("возврат товара без чека", 3)
	require.NoError(t, err)

	found := false
	for _, res := range results {
		if res.Text == receiptCorpus()[0] && res.Score > 0 {
			found = true
		}
	}
	assert.True(t, found, "article about absence of a receipt must be in the top 3")
}

func TestSearch_FloorKeepsSemanticOnlyMatches(t *testing.T) {
	r := newTestRetriever(t, receiptCorpus())

	// No query word longer than 3 runes appears in any unit, so every
	// acceptance comes from the top-2 floor.
	results, err := r.Search("штраф неустойка пеня", 3)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearch_LexicalOverlapExtendsPastFloor(t *testing.T) {
	corpus := receiptCorpus()
	r := newTestRetriever(t, corpus)

	// "договора" appears in one unit only; results beyond the floor must
	// carry lexical overlap.
	results, err := r.Search("понятие договора", 3)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	texts := make([]string, len(results))
	for i, res := range results {
		texts[i] = res.Text
	}
	assert.Contains(t, texts, corpus[2])
}

func TestSearch_EmptyIndexFailsLoudly(t *testing.T) {
	dir := t.TempDir()
	emb := hashing.NewEmbedder(testDimension)
	require.NoError(t, index.Build(nil, emb, dir))
	r := New(dir, emb, WithLogger(discardLogger()))

	_, err := r.Search("запрос", 3)
	assert.Error(t, err)
}

func TestLoad_Idempotent(t *testing.T) {
	r := newTestRetriever(t, receiptCorpus())

	require.NoError(t, r.Load())
	first := r.index
	require.NoError(t, r.Load())
	assert.Same(t, first, r.index, "second Load must be a no-op")
}

func TestKeywords(t *testing.T) {
	// words of 3 runes or fewer are dropped, the rest lower-cased
	assert.Equal(t, []string{"возврат", "товара", "чека"}, keywords("Возврат товара без чека"))
	assert.Empty(t, keywords("как их там"))
}
