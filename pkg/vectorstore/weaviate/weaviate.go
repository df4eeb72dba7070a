package weaviate

import (
	"context"
	"fmt"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/go-openapi/strfmt"
	"github.com/tagus/ontograph/pkg/embedding"
	"github.com/tagus/ontograph/pkg/interfaces"
	"github.com/tagus/ontograph/pkg/logging"
)

// Entity is one indexed graph entity.
type Entity struct {
	// ID is the point identifier; a UUID derived by the caller
	ID string

	// Label is the human-readable entity name
	Label string

	// IRI is the entity's graph identifier
	IRI string

	// Type is the coarse entity kind ("Team", "Resource")
	Type string

	// RDFType is the full class IRI
	RDFType string

	// Document is the text that gets embedded; defaults to Label
	Document string
}

// Match is a search hit with its relevance score.
type Match struct {
	Label string  `json:"label"`
	IRI   string  `json:"uri"`
	Type  string  `json:"type"`
	Score float32 `json:"score"`
}

// Store indexes graph entities in Weaviate and serves nearest-neighbor
// lookups for the identification stage.
type Store struct {
	client    *weaviate.Client
	className string
	embedder  embedding.Client
	logger    logging.Logger
}

// Option represents an option for configuring the store
type Option func(*Store)

// WithClassName sets the Weaviate class holding the entity index
func WithClassName(name string) Option {
	return func(s *Store) {
		s.className = name
	}
}

// WithEmbedder sets the embedding client
func WithEmbedder(embedder embedding.Client) Option {
	return func(s *Store) {
		s.embedder = embedder
	}
}

// WithLogger sets the logger for the store
func WithLogger(logger logging.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a new entity store
func New(config *interfaces.VectorStoreConfig, options ...Option) (*Store, error) {
	store := &Store{
		className: "OntologyEntity",
		logger:    logging.New(),
	}

	for _, option := range options {
		option(store)
	}

	cfg := weaviate.Config{
		Host:   config.Host,
		Scheme: config.Scheme,
	}
	if config.APIKey != "" {
		cfg.AuthConfig = auth.ApiKey{Value: config.APIKey}
	}

	client, err := weaviate.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %w", err)
	}
	store.client = client

	return store, nil
}

// EnsureSchema creates the entity class when it does not exist yet. Vectors
// are supplied by the embedder, so the class vectorizer stays off.
func (s *Store) EnsureSchema(ctx context.Context) error {
	exists, err := s.client.Schema().ClassExistenceChecker().
		WithClassName(s.className).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check class %s: %w", s.className, err)
	}
	if exists {
		return nil
	}

	class := &models.Class{
		Class:      s.className,
		Vectorizer: "none",
		Properties: []*models.Property{
			{Name: "label", DataType: []string{"text"}},
			{Name: "uri", DataType: []string{"text"}},
			{Name: "type", DataType: []string{"text"}},
			{Name: "rdfType", DataType: []string{"text"}},
		},
	}

	if err := s.client.Schema().ClassCreator().WithClass(class).Do(ctx); err != nil {
		return fmt.Errorf("failed to create class %s: %w", s.className, err)
	}

	s.logger.Info(ctx, "Entity class created", map[string]interface{}{"class": s.className})
	return nil
}

// Reset drops the entity class and its data.
func (s *Store) Reset(ctx context.Context) error {
	err := s.client.Schema().ClassDeleter().
		WithClassName(s.className).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete class %s: %w", s.className, err)
	}

	s.logger.Info(ctx, "Entity class deleted", map[string]interface{}{"class": s.className})
	return nil
}

// Index embeds and stores entities in batches.
func (s *Store) Index(ctx context.Context, entities []Entity) error {
	if s.embedder == nil {
		return fmt.Errorf("store has no embedder configured")
	}

	batch := s.client.Batch().ObjectsBatcher()
	batchCount := 0
	const batchSize = 100

	for _, entity := range entities {
		document := entity.Document
		if document == "" {
			document = entity.Label
		}

		vector, err := s.embedder.Embed(ctx, document)
		if err != nil {
			return fmt.Errorf("failed to embed entity %s: %w", entity.IRI, err)
		}

		obj := &models.Object{
			Class: s.className,
			ID:    strfmt.UUID(entity.ID),
			Properties: map[string]interface{}{
				"label":   entity.Label,
				"uri":     entity.IRI,
				"type":    entity.Type,
				"rdfType": entity.RDFType,
			},
			Vector: vector,
		}

		batch.WithObjects(obj)
		batchCount++

		if batchCount >= batchSize {
			if _, err := batch.Do(ctx); err != nil {
				return fmt.Errorf("failed to index batch: %w", err)
			}
			batch = s.client.Batch().ObjectsBatcher()
			batchCount = 0
		}
	}

	if batchCount > 0 {
		if _, err := batch.Do(ctx); err != nil {
			return fmt.Errorf("failed to index final batch: %w", err)
		}
	}

	s.logger.Info(ctx, "Entities indexed", map[string]interface{}{
		"count": len(entities),
		"class": s.className,
	})
	return nil
}

// Search embeds the query text and returns the nearest entities.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Match, error) {
	if s.embedder == nil {
		return nil, fmt.Errorf("store has no embedder configured")
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	result, err := s.client.GraphQL().Get().
		WithClassName(s.className).
		WithFields(
			graphql.Field{Name: "label"},
			graphql.Field{Name: "uri"},
			graphql.Field{Name: "type"},
			graphql.Field{Name: "_additional", Fields: []graphql.Field{{Name: "certainty"}}},
		).
		WithNearVector(s.client.GraphQL().NearVectorArgBuilder().WithVector(vector)).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("search failed: %s", result.Errors[0].Message)
	}

	return s.parseMatches(ctx, result)
}

// parseMatches unpacks the GraphQL response into matches. Hits missing a
// label or uri are skipped; a missing certainty degrades to zero.
func (s *Store) parseMatches(ctx context.Context, result *models.GraphQLResponse) ([]Match, error) {
	matches := []Match{}

	if result.Data == nil {
		return matches, nil
	}

	getMap, ok := result.Data["Get"].(map[string]interface{})
	if !ok {
		s.logger.Warn(ctx, "Unexpected response shape from vector store", map[string]interface{}{
			"data": result.Data,
		})
		return matches, nil
	}

	hits, ok := getMap[s.className].([]interface{})
	if !ok {
		return matches, nil
	}

	for _, h := range hits {
		hit, ok := h.(map[string]interface{})
		if !ok {
			continue
		}

		label, _ := hit["label"].(string)
		iri, _ := hit["uri"].(string)
		typ, _ := hit["type"].(string)
		if label == "" || iri == "" {
			s.logger.Warn(ctx, "Skipping hit without label or uri", map[string]interface{}{"hit": hit})
			continue
		}

		var score float32
		if additional, ok := hit["_additional"].(map[string]interface{}); ok {
			if certainty, ok := additional["certainty"].(float64); ok {
				score = float32(certainty)
			}
		}

		matches = append(matches, Match{Label: label, IRI: iri, Type: typ, Score: score})
	}

	return matches, nil
}
