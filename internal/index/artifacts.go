package index

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lawsearch/internal/domain"
	"lawsearch/internal/embedding"
)

const (
	// VectorsFile and ChunksFile are the two co-located artifacts of one
	// build. They are only meaningful together: ordinal position is the join
	// key between a vector and its unit text.
	VectorsFile = "vectors.gob"
	ChunksFile  = "chunks.gob"
)

// ErrNotBuilt is returned when the artifact pair is absent.
var ErrNotBuilt = errors.New("index not built: run lawsearch-index first")

type vectorsArtifact struct {
	BuildID   string
	Model     string
	Dimension int
	Vectors   [][]float32
}

type chunksArtifact struct {
	BuildID string
	Chunks  []string
}

// Build embeds every unit text in order and writes the artifact pair into
// dir. Both files are written to temporary paths and swapped in at the end of
// the build step, so a serving process never sees a half-built pair and an
// embedding failure leaves existing artifacts untouched.
func Build(units []domain.Unit, emb embedding.Embedder, dir string) error {
	texts := make([]string, len(units))
	for i, u := range units {
		texts[i] = u.Text
	}

	var vectors [][]float32
	if len(texts) > 0 {
		var err error
		vectors, err = emb.EmbedBatch(texts)
		if err != nil {
			return fmt.Errorf("embedding %d units: %w", len(texts), err)
		}
	}

	dimension := emb.Dimension()
	if len(vectors) > 0 {
		dimension = len(vectors[0])
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	buildID := time.Now().UTC().Format(time.RFC3339Nano)
	vecPath := filepath.Join(dir, VectorsFile)
	chunkPath := filepath.Join(dir, ChunksFile)

	if err := writeGob(vecPath+".tmp", vectorsArtifact{
		BuildID:   buildID,
		Model:     emb.Name(),
		Dimension: dimension,
		Vectors:   vectors,
	}); err != nil {
		return err
	}
	if err := writeGob(chunkPath+".tmp", chunksArtifact{
		BuildID: buildID,
		Chunks:  texts,
	}); err != nil {
		_ = os.Remove(vecPath + ".tmp")
		return err
	}

	if err := os.Rename(vecPath+".tmp", vecPath); err != nil {
		_ = os.Remove(chunkPath + ".tmp")
		return err
	}
	return os.Rename(chunkPath+".tmp", chunkPath)
}

// Exists reports whether a complete artifact pair is present in dir.
func Exists(dir string) bool {
	for _, name := range []string{VectorsFile, ChunksFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}

// Load reads the artifact pair from dir and returns the index with its
// ordinal-aligned unit texts. Loading one artifact without the other, or a
// mismatched pair, is an error.
func Load(dir string) (*Flat, []string, error) {
	var vecs vectorsArtifact
	if err := readGob(filepath.Join(dir, VectorsFile), &vecs); err != nil {
		return nil, nil, err
	}
	var chunks chunksArtifact
	if err := readGob(filepath.Join(dir, ChunksFile), &chunks); err != nil {
		return nil, nil, err
	}

	if vecs.BuildID != chunks.BuildID {
		return nil, nil, fmt.Errorf("artifact pair mismatch in %s: vectors built %s, chunks built %s",
			dir, vecs.BuildID, chunks.BuildID)
	}
	if len(vecs.Vectors) != len(chunks.Chunks) {
		return nil, nil, fmt.Errorf("artifact pair mismatch in %s: %d vectors vs %d chunks",
			dir, len(vecs.Vectors), len(chunks.Chunks))
	}

	flat, err := NewFlat(vecs.Dimension, vecs.Vectors)
	if err != nil {
		return nil, nil, err
	}
	return flat, chunks.Chunks, nil
}

func writeGob(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(file).Encode(v); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return err
	}
	return file.Close()
}

func readGob(path string, v any) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w (missing %s)", ErrNotBuilt, path)
		}
		return err
	}
	defer file.Close()
	return gob.NewDecoder(file).Decode(v)
}
