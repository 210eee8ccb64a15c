package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"lawsearch/internal/config"
	"lawsearch/internal/embedding"
	"lawsearch/internal/embedding/hashing"
	"lawsearch/internal/embedding/openai"
	"lawsearch/internal/retriever"
	"lawsearch/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/lawsearch/config.yaml if not provided)")
	flag.Parse()

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

	emb := newEmbedder(cfg)
	ret := retriever.New(cfg.IndexDir, emb)

	// Load once, synchronously, before serving any request.
	if err := ret.Load(); err != nil {
		log.Fatalf("failed to load index: %v", err)
	}

	m := tui.New(ret, cfg.Search.TopK)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
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
