package embedding

// Embedder converts free text into a dense vector representation. The same
// embedder (model and preprocessing) must be used at index build time and at
// query time, or search over the index is meaningless.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(text string) ([]float32, error)
	EmbedBatch(texts []string) ([][]float32, error)
}
