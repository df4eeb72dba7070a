// Package graphquery exposes the guarded SPARQL gateway as a tool: callers
// submit SELECT text without prefixes or a global limit, the gateway rewrites
// and validates it, and bindings come back truncated to the effective limit.
package graphquery

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tagus/ontograph/pkg/interfaces"
	"github.com/tagus/ontograph/pkg/logging"
	"github.com/tagus/ontograph/pkg/sparql"
)

// Tool implements the query_graph tool over a gateway
type Tool struct {
	gateway *sparql.Gateway
	logger  logging.Logger
}

// Option represents an option for configuring the tool
type Option func(*Tool)

// WithLogger sets the logger for the tool
func WithLogger(logger logging.Logger) Option {
	return func(t *Tool) {
		t.logger = logger
	}
}

// New creates a new query_graph tool
func New(gateway *sparql.Gateway, options ...Option) *Tool {
	tool := &Tool{
		gateway: gateway,
		logger:  logging.New(),
	}

	for _, option := range options {
		option(tool)
	}

	return tool
}

// Name returns the name of the tool
func (t *Tool) Name() string {
	return "query_graph"
}

// DisplayName implements interfaces.Tool.DisplayName
func (t *Tool) DisplayName() string {
	return "Query Knowledge Graph"
}

// Description returns a description of what the tool does
func (t *Tool) Description() string {
	return "Execute SELECT queries against the knowledge graph without worrying about prefixes. " +
		"Provide only SELECT statements; PREFIX/BASE declarations and any global LIMIT are stripped " +
		"and trusted defaults are injected. Reference terms like voc:Resource or data:team-alpha directly. " +
		"Queries are validated to be read-only before execution and bindings are truncated to the limit."
}

// Internal implements interfaces.Tool.Internal
func (t *Tool) Internal() bool {
	return false
}

// Parameters returns the parameters that the tool accepts
func (t *Tool) Parameters() map[string]interfaces.ParameterSpec {
	return map[string]interfaces.ParameterSpec{
		"sparql_query": {
			Type:        "string",
			Description: "The SELECT SPARQL query to execute",
			Required:    true,
		},
		"limit": {
			Type:        "integer",
			Description: "Maximum number of bindings to return",
			Required:    false,
			Default:     sparql.DefaultLimit,
		},
	}
}

// Run executes the tool with the given JSON-encoded input
func (t *Tool) Run(ctx context.Context, input string) (string, error) {
	var params struct {
		SparqlQuery string `json:"sparql_query"`
		Limit       int    `json:"limit"`
	}
	if err := json.Unmarshal([]byte(input), &params); err != nil {
		// If not JSON, treat the input as the query itself
		params.SparqlQuery = input
	}

	if params.SparqlQuery == "" {
		return "", fmt.Errorf("sparql_query parameter is required")
	}

	t.logger.Info(ctx, "Running query_graph", map[string]interface{}{"limit": params.Limit})

	outcome, err := t.gateway.Query(ctx, params.SparqlQuery, params.Limit)
	if err != nil {
		return "", err
	}

	encoded, err := json.Marshal(outcome)
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(encoded), nil
}
