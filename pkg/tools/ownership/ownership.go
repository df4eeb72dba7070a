// Package ownership provides the ownership-resolution tools: the owning team
// of a resource, and the resources a team owns directly or through
// containment. Both tools take entity IRIs obtained from a prior
// search_entities call and verify the IRI's type before querying.
package ownership

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tagus/ontograph/pkg/graph"
	"github.com/tagus/ontograph/pkg/interfaces"
	"github.com/tagus/ontograph/pkg/logging"
)

// OwnerTool implements the find_resource_owner tool
type OwnerTool struct {
	graph  *graph.Graph
	logger logging.Logger
}

// Option represents an option for configuring the ownership tools
type Option func(*options)

type options struct {
	logger logging.Logger
}

// WithLogger sets the logger for the tool
func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func applyOptions(opts []Option) *options {
	o := &options{logger: logging.New()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewOwnerTool creates a new find_resource_owner tool
func NewOwnerTool(g *graph.Graph, opts ...Option) *OwnerTool {
	o := applyOptions(opts)
	return &OwnerTool{graph: g, logger: o.logger}
}

// Name returns the name of the tool
func (t *OwnerTool) Name() string {
	return "find_resource_owner"
}

// DisplayName implements interfaces.Tool.DisplayName
func (t *OwnerTool) DisplayName() string {
	return "Find Resource Owner"
}

// Description returns a description of what the tool does
func (t *OwnerTool) Description() string {
	return "Find the owning team of a resource (service, endpoint) by its exact IRI. " +
		"Run search_entities first to obtain the IRI. Only IRIs typed as a subclass of " +
		"voc:Resource are accepted. Ownership is resolved through the containment chain " +
		"when the resource has no direct owner."
}

// Internal implements interfaces.Tool.Internal
func (t *OwnerTool) Internal() bool {
	return false
}

// Parameters returns the parameters that the tool accepts
func (t *OwnerTool) Parameters() map[string]interfaces.ParameterSpec {
	return map[string]interfaces.ParameterSpec{
		"entity_iri": {
			Type:        "string",
			Description: "The exact IRI of the resource (from search_entities)",
			Required:    true,
		},
	}
}

// Run executes the tool with the given JSON-encoded input
func (t *OwnerTool) Run(ctx context.Context, input string) (string, error) {
	var params struct {
		EntityIRI string `json:"entity_iri"`
	}
	if err := json.Unmarshal([]byte(input), &params); err != nil {
		return "", fmt.Errorf("failed to parse input: %w", err)
	}
	if params.EntityIRI == "" {
		return "", fmt.Errorf("entity_iri parameter is required")
	}

	t.logger.Info(ctx, "Running find_resource_owner", map[string]interface{}{"entity_iri": params.EntityIRI})

	if err := t.graph.AssertResource(ctx, params.EntityIRI); err != nil {
		return "", err
	}

	owner, err := t.graph.FindOwner(ctx, params.EntityIRI)
	if err != nil {
		return "", err
	}

	encoded, err := json.Marshal(owner)
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(encoded), nil
}

// TeamResourcesTool implements the find_resources_owned_by_team tool
type TeamResourcesTool struct {
	graph  *graph.Graph
	logger logging.Logger
}

// NewTeamResourcesTool creates a new find_resources_owned_by_team tool
func NewTeamResourcesTool(g *graph.Graph, opts ...Option) *TeamResourcesTool {
	o := applyOptions(opts)
	return &TeamResourcesTool{graph: g, logger: o.logger}
}

// Name returns the name of the tool
func (t *TeamResourcesTool) Name() string {
	return "find_resources_owned_by_team"
}

// DisplayName implements interfaces.Tool.DisplayName
func (t *TeamResourcesTool) DisplayName() string {
	return "Find Resources Owned By Team"
}

// Description returns a description of what the tool does
func (t *TeamResourcesTool) Description() string {
	return "List the resources a team owns, directly or indirectly through containment, " +
		"by the team's exact IRI. Run search_entities first to obtain the IRI. Only IRIs " +
		"typed as a subclass of voc:Team are accepted."
}

// Internal implements interfaces.Tool.Internal
func (t *TeamResourcesTool) Internal() bool {
	return false
}

// Parameters returns the parameters that the tool accepts
func (t *TeamResourcesTool) Parameters() map[string]interfaces.ParameterSpec {
	return map[string]interfaces.ParameterSpec{
		"entity_iri": {
			Type:        "string",
			Description: "The exact IRI of the team (from search_entities)",
			Required:    true,
		},
		"limit": {
			Type:        "integer",
			Description: "Maximum number of resources to return",
			Required:    false,
			Default:     50,
		},
	}
}

// Run executes the tool with the given JSON-encoded input
func (t *TeamResourcesTool) Run(ctx context.Context, input string) (string, error) {
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

	t.logger.Info(ctx, "Running find_resources_owned_by_team", map[string]interface{}{
		"entity_iri": params.EntityIRI,
		"limit":      params.Limit,
	})

	if err := t.graph.AssertTeam(ctx, params.EntityIRI); err != nil {
		return "", err
	}

	owned, err := t.graph.ResourcesOwnedBy(ctx, params.EntityIRI, params.Limit)
	if err != nil {
		return "", err
	}

	encoded, err := json.Marshal(map[string]interface{}{"results": owned})
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(encoded), nil
}
