// Package searchentities exposes semantic entity search. Use it first: the
// returned uri values are the entity IRIs the graph tools expect.
package searchentities

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tagus/ontograph/pkg/interfaces"
	"github.com/tagus/ontograph/pkg/logging"
	"github.com/tagus/ontograph/pkg/vectorstore/weaviate"
)

// Tool implements the search_entities tool
type Tool struct {
	store  *weaviate.Store
	logger logging.Logger
}

// Option represents an option for configuring the tool
type Option func(*Tool)

// WithLogger sets the logger for the tool
func WithLogger(logger logging.Logger) Option {
	return func(t *Tool) {
		t.logger = logger
	}
}

// New creates a new search_entities tool
func New(store *weaviate.Store, options ...Option) *Tool {
	tool := &Tool{
		store:  store,
		logger: logging.New(),
	}

	for _, option := range options {
		option(tool)
	}

	return tool
}

// Name returns the name of the tool
func (t *Tool) Name() string {
	return "search_entities"
}

// DisplayName implements interfaces.Tool.DisplayName
func (t *Tool) DisplayName() string {
	return "Search Entities"
}

// Description returns a description of what the tool does
func (t *Tool) Description() string {
	return "Semantic vector search for entities (teams, services, endpoints) in the knowledge base. " +
		"Use this first to find candidate entities; the returned uri of a result is the entity IRI " +
		"to feed into the graph tools."
}

// Internal implements interfaces.Tool.Internal
func (t *Tool) Internal() bool {
	return false
}

// Parameters returns the parameters that the tool accepts
func (t *Tool) Parameters() map[string]interfaces.ParameterSpec {
	return map[string]interfaces.ParameterSpec{
		"query": {
			Type:        "string",
			Description: "The natural language search query",
			Required:    true,
		},
		"limit": {
			Type:        "integer",
			Description: "Maximum number of results to return",
			Required:    false,
			Default:     5,
		},
	}
}

// Run executes the tool with the given JSON-encoded input
func (t *Tool) Run(ctx context.Context, input string) (string, error) {
	var params struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if err := json.Unmarshal([]byte(input), &params); err != nil {
		// If not JSON, treat the input as the query itself
		params.Query = input
	}
	if params.Query == "" {
		return "", fmt.Errorf("query parameter is required")
	}
	if params.Limit <= 0 {
		params.Limit = 5
	}

	t.logger.Info(ctx, "Running search_entities", map[string]interface{}{
		"query": params.Query,
		"limit": params.Limit,
	})

	matches, err := t.store.Search(ctx, params.Query, params.Limit)
	if err != nil {
		return "", err
	}

	encoded, err := json.Marshal(map[string]interface{}{"results": matches})
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(encoded), nil
}
