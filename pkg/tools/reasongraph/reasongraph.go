// Package reasongraph exposes the neighborhood-expansion tool: every
// incoming and outgoing relationship of an entity, with labels when the
// graph has them.
package reasongraph

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tagus/ontograph/pkg/graph"
	"github.com/tagus/ontograph/pkg/interfaces"
	"github.com/tagus/ontograph/pkg/logging"
)

// Tool implements the reason_graph tool
type Tool struct {
	graph  *graph.Graph
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

// New creates a new reason_graph tool
func New(g *graph.Graph, options ...Option) *Tool {
	tool := &Tool{
		graph:  g,
		logger: logging.New(),
	}

	for _, option := range options {
		option(tool)
	}

	return tool
}

// Name returns the name of the tool
func (t *Tool) Name() string {
	return "reason_graph"
}

// DisplayName implements interfaces.Tool.DisplayName
func (t *Tool) DisplayName() string {
	return "Explore Graph Neighborhood"
}

// Description returns a description of what the tool does
func (t *Tool) Description() string {
	return "Explore the knowledge graph around an entity: every incoming and outgoing " +
		"relationship to another identifiable node, tagged with its direction and ordered " +
		"deterministically. Use it to reason about how an entity connects to the rest of the graph."
}

// Internal implements interfaces.Tool.Internal
func (t *Tool) Internal() bool {
	return false
}

// Parameters returns the parameters that the tool accepts
func (t *Tool) Parameters() map[string]interfaces.ParameterSpec {
	return map[string]interfaces.ParameterSpec{
		"entity_iri": {
			Type:        "string",
			Description: "The starting entity IRI (from search_entities)",
			Required:    true,
		},
		"limit": {
			Type:        "integer",
			Description: "Maximum number of relationships to return",
			Required:    false,
			Default:     50,
		},
	}
}

// Run executes the tool with the given JSON-encoded input
func (t *Tool) Run(ctx context.Context, input string) (string, error) {
	var params struct {
		EntityIRI string `json:"entity_iri"`
		Limit     int    `json:"limit"`
	}
	if err := json.Unmarshal([]byte(input), &params); err != nil {
		return "", fmt.Errorf("failed to parse input: %w", err)
	}
	if params.EntityIRI == "" {
		return "", fmt.Errorf("entity_iri parameter is required")
	}
	if params.Limit <= 0 {
		params.Limit = 50
	}

	t.logger.Info(ctx, "Running reason_graph", map[string]interface{}{
		"entity_iri": params.EntityIRI,
		"limit":      params.Limit,
	})

	edges, err := t.graph.Neighborhood(ctx, params.EntityIRI, params.Limit)
	if err != nil {
		return "", err
	}

	encoded, err := json.Marshal(map[string]interface{}{
		"entity_iri": params.EntityIRI,
		"edges":      edges,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(encoded), nil
}
