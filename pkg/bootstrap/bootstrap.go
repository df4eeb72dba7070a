package bootstrap

import (
	"context"
	"fmt"

	"github.com/tagus/ontograph/pkg/logging"
	"github.com/tagus/ontograph/pkg/retry"
	"github.com/tagus/ontograph/pkg/sparql"
	"github.com/tagus/ontograph/pkg/vectorstore/weaviate"
)

// Bootstrapper seeds both backing stores from a seed model.
type Bootstrapper struct {
	client   *sparql.Client
	store    *weaviate.Store
	executor *retry.Executor
	logger   logging.Logger
}

// Option represents an option for configuring the bootstrapper
type Option func(*Bootstrapper)

// WithExecutor sets the retry executor used for the readiness wait
func WithExecutor(executor *retry.Executor) Option {
	return func(b *Bootstrapper) {
		b.executor = executor
	}
}

// WithLogger sets the logger for the bootstrapper
func WithLogger(logger logging.Logger) Option {
	return func(b *Bootstrapper) {
		b.logger = logger
	}
}

// New creates a new bootstrapper
func New(client *sparql.Client, store *weaviate.Store, options ...Option) *Bootstrapper {
	bootstrapper := &Bootstrapper{
		client:   client,
		store:    store,
		executor: retry.NewExecutor(retry.NewPolicy()),
		logger:   logging.New(),
	}

	for _, option := range options {
		option(bootstrapper)
	}

	return bootstrapper
}

// Run executes the full bootstrap: wait for the graph store, upload the
// vocabulary and instance data, rebuild the entity index.
func (b *Bootstrapper) Run(ctx context.Context, seed *Seed) error {
	b.logger.Info(ctx, "Starting bootstrap", map[string]interface{}{
		"teams":    len(seed.Teams),
		"services": len(seed.Services),
	})

	if err := b.waitForStore(ctx); err != nil {
		return fmt.Errorf("graph store not reachable: %w", err)
	}

	if err := b.client.UploadTurtle(ctx, OntologyTurtle()); err != nil {
		return fmt.Errorf("failed to upload vocabulary: %w", err)
	}
	b.logger.Info(ctx, "Vocabulary uploaded", nil)

	if err := b.client.UploadTurtle(ctx, seed.DataTurtle()); err != nil {
		return fmt.Errorf("failed to upload instance data: %w", err)
	}
	b.logger.Info(ctx, "Instance data uploaded", nil)

	if err := b.rebuildIndex(ctx, seed); err != nil {
		return err
	}

	b.logger.Info(ctx, "Bootstrap completed", nil)
	return nil
}

// waitForStore polls the query endpoint until it answers
func (b *Bootstrapper) waitForStore(ctx context.Context) error {
	return b.executor.Execute(ctx, func() error {
		return b.client.Ping(ctx)
	})
}

// rebuildIndex drops the entity class and re-indexes every seed entity. A
// reset failure is tolerated: on a fresh store the class does not exist yet.
func (b *Bootstrapper) rebuildIndex(ctx context.Context, seed *Seed) error {
	if err := b.store.Reset(ctx); err != nil {
		b.logger.Warn(ctx, "Entity class reset failed, continuing", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := b.store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to create entity class: %w", err)
	}

	entities := seed.Entities()
	if err := b.store.Index(ctx, entities); err != nil {
		return fmt.Errorf("failed to index entities: %w", err)
	}

	b.logger.Info(ctx, "Entity index rebuilt", map[string]interface{}{
		"entities": len(entities),
	})
	return nil
}
