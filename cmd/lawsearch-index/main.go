package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"lawsearch/internal/config"
	"lawsearch/internal/embedding"
	"lawsearch/internal/embedding/hashing"
	"lawsearch/internal/embedding/openai"
	"lawsearch/internal/index"
	"lawsearch/internal/segmenter"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var force bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/lawsearch/config.yaml if not provided)")
	flag.BoolVar(&force, "force", false, "Rebuild even if an index already exists")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Println("Usage: lawsearch-index [--config=config.yaml] [--force] corpus.txt")
		os.Exit(1)
	}
	corpusPath := flag.Arg(0)

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if index.Exists(cfg.IndexDir) && !force {
		fmt.Printf("Index already exists in %s, skipping build (use --force to rebuild)\n", cfg.IndexDir)
		return
	}

	emb := newEmbedder(cfg)

	data, err := os.ReadFile(corpusPath)
	if err != nil {
		log.Fatalf("failed to read corpus: %v", err)
	}

	seg := segmenter.NewArticleSegmenter(cfg.Segmenter.MinArticleChars, cfg.Segmenter.MaxArticleChars)
	units := seg.Segment(string(data))
	fmt.Printf("Segmented %d units from %s\n", len(units), corpusPath)

	if err := index.Build(units, emb, cfg.IndexDir); err != nil {
		log.Fatalf("index build failed: %v", err)
	}
	fmt.Printf("Index built: %d units, dimension %d, saved to %s\n", len(units), emb.Dimension(), cfg.IndexDir)
}

func newEmbedder(cfg *config.AppConfig) embedding.Embedder {
	switch cfg.Embedder.Type {
	case "hashing", "":
		dim := 0
		if cfg.Embedder.Hashing != nil {
			dim = cfg.Embedder.Hashing.Dimension
		}
		return hashing.NewEmbedder(dim)
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		client, err := openai.NewClient(openai.Config{
			APIKeyEnv:   cfg.Embedder.OpenAI.APIKeyEnv,
			BaseURL:     cfg.Embedder.OpenAI.BaseURL,
			Model:       cfg.Embedder.OpenAI.Model,
			TimeoutSecs: cfg.Embedder.OpenAI.TimeoutSecs,
			BatchSize:   cfg.Embedder.OpenAI.BatchSize,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		return client
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
		return nil
	}
}
