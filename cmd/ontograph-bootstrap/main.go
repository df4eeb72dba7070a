// Command ontograph-bootstrap seeds the graph store with the vocabulary and
// the instance model and rebuilds the entity index used for semantic search.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tagus/ontograph/pkg/bootstrap"
	"github.com/tagus/ontograph/pkg/config"
	"github.com/tagus/ontograph/pkg/embedding"
	"github.com/tagus/ontograph/pkg/interfaces"
	"github.com/tagus/ontograph/pkg/logging"
	"github.com/tagus/ontograph/pkg/sparql"
	"github.com/tagus/ontograph/pkg/vectorstore/weaviate"
)

func main() {
	seedPath := flag.String("seed", "", "path to a seed YAML file (default: embedded seed)")
	flag.Parse()

	cfg := config.Get()
	logger := logging.New(logging.WithLevel(cfg.Logging.Level))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seed, err := loadSeed(*seedPath)
	if err != nil {
		logger.Error(ctx, "Failed to load seed", map[string]interface{}{
			"path":  *seedPath,
			"error": err.Error(),
		})
		os.Exit(1)
	}

	client := sparql.NewClient(
		sparql.WithBaseURL(cfg.Store.URL),
		sparql.WithDataset(cfg.Store.Dataset),
		sparql.WithCredentials(cfg.Store.Username, cfg.Store.Password),
		sparql.WithHTTPClient(&http.Client{Timeout: cfg.Store.Timeout}),
		sparql.WithClientLogger(logger),
	)

	embedder := embedding.NewOllamaEmbedder(
		embedding.WithBaseURL(cfg.Embedding.BaseURL),
		embedding.WithModel(cfg.Embedding.Model),
		embedding.WithHTTPClient(&http.Client{Timeout: cfg.Embedding.Timeout}),
		embedding.WithLogger(logger),
	)

	store, err := weaviate.New(&interfaces.VectorStoreConfig{
		Host:   cfg.VectorStore.Weaviate.Host,
		Scheme: cfg.VectorStore.Weaviate.Scheme,
		APIKey: cfg.VectorStore.Weaviate.APIKey,
	},
		weaviate.WithClassName(cfg.VectorStore.Weaviate.Class),
		weaviate.WithEmbedder(embedder),
		weaviate.WithLogger(logger),
	)
	if err != nil {
		logger.Error(ctx, "Failed to create vector store", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	bootstrapper := bootstrap.New(client, store, bootstrap.WithLogger(logger))
	if err := bootstrapper.Run(ctx, seed); err != nil {
		logger.Error(ctx, "Bootstrap failed", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}
}

func loadSeed(path string) (*bootstrap.Seed, error) {
	if path == "" {
		return bootstrap.DefaultSeed()
	}
	return bootstrap.LoadSeed(path)
}
