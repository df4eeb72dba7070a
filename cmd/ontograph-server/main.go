// Command ontograph-server wires the guarded query gateway, the graph
// helpers and the entity index into an MCP server speaking over stdio.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tagus/ontograph/pkg/config"
	"github.com/tagus/ontograph/pkg/embedding"
	"github.com/tagus/ontograph/pkg/graph"
	"github.com/tagus/ontograph/pkg/interfaces"
	"github.com/tagus/ontograph/pkg/logging"
	"github.com/tagus/ontograph/pkg/mcpserver"
	"github.com/tagus/ontograph/pkg/sparql"
	"github.com/tagus/ontograph/pkg/tools"
	"github.com/tagus/ontograph/pkg/tools/graphquery"
	"github.com/tagus/ontograph/pkg/tools/ownership"
	"github.com/tagus/ontograph/pkg/tools/reasongraph"
	"github.com/tagus/ontograph/pkg/tools/searchentities"
	"github.com/tagus/ontograph/pkg/vectorstore/weaviate"
)

func main() {
	cfg := config.Get()
	logger := logging.New(logging.WithLevel(cfg.Logging.Level))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := sparql.NewClient(
		sparql.WithBaseURL(cfg.Store.URL),
		sparql.WithDataset(cfg.Store.Dataset),
		sparql.WithCredentials(cfg.Store.Username, cfg.Store.Password),
		sparql.WithHTTPClient(&http.Client{Timeout: cfg.Store.Timeout}),
		sparql.WithClientLogger(logger),
	)

	gateway := sparql.NewGateway(client,
		sparql.WithNormalizer(sparql.NewNormalizer(
			sparql.WithDefaultLimit(cfg.Query.DefaultLimit),
			sparql.WithMaxLimit(cfg.Query.MaxLimit),
		)),
		sparql.WithGatewayLogger(logger),
	)

	knowledgeGraph := graph.New(client, graph.WithLogger(logger))

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

	registry := tools.NewRegistry()
	registry.Register(graphquery.New(gateway, graphquery.WithLogger(logger)))
	registry.Register(ownership.NewOwnerTool(knowledgeGraph, ownership.WithLogger(logger)))
	registry.Register(ownership.NewTeamResourcesTool(knowledgeGraph, ownership.WithLogger(logger)))
	registry.Register(reasongraph.New(knowledgeGraph, reasongraph.WithLogger(logger)))
	registry.Register(searchentities.New(store, searchentities.WithLogger(logger)))

	server := mcpserver.New(cfg.Server.Name, cfg.Server.Version, mcpserver.WithLogger(logger))
	server.RegisterAll(registry)

	logger.Info(ctx, "Server starting", map[string]interface{}{
		"name":    cfg.Server.Name,
		"version": cfg.Server.Version,
		"store":   client.QueryURL(),
	})

	if err := server.Run(ctx); err != nil {
		logger.Error(ctx, "Server stopped with error", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}
}
