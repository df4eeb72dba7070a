package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/tagus/ontograph/pkg/logging"
	"github.com/tagus/ontograph/pkg/sparql"
	"github.com/tagus/ontograph/pkg/vocabulary/core"
)

// Graph exposes the typed ownership and neighborhood operations. Builder
// text is validated and executed through the same components as caller
// queries; only the normalizer is skipped because builders emit their own
// prefix declarations.
type Graph struct {
	client    *sparql.Client
	validator *sparql.Validator
	logger    logging.Logger
}

// Option represents an option for configuring the graph
type Option func(*Graph)

// WithValidator sets the validator applied to builder-generated queries
func WithValidator(validator *sparql.Validator) Option {
	return func(g *Graph) {
		g.validator = validator
	}
}

// WithLogger sets the logger for the graph
func WithLogger(logger logging.Logger) Option {
	return func(g *Graph) {
		g.logger = logger
	}
}

// New creates a graph service over the given store client
func New(client *sparql.Client, options ...Option) *Graph {
	g := &Graph{
		client:    client,
		validator: sparql.NewValidator(),
		logger:    logging.New(),
	}

	for _, option := range options {
		option(g)
	}

	return g
}

// Owner identifies the team owning a resource. TeamIRI and TeamName are
// empty when no owner exists.
type Owner struct {
	ResourceIRI string `json:"resource_iri"`
	TeamIRI     string `json:"team_iri,omitempty"`
	TeamName    string `json:"team_name,omitempty"`
}

// OwnedResource is one entry of a team's resource listing.
type OwnedResource struct {
	IRI   string `json:"uri"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// Edge is a single incoming or outgoing relationship of an entity.
type Edge struct {
	Direction      string `json:"direction"`
	Predicate      string `json:"predicate"`
	PredicateLabel string `json:"predicate_label,omitempty"`
	Related        string `json:"related"`
	RelatedLabel   string `json:"related_label,omitempty"`
}

// TypeCheckError reports a failed type-subsumption check, with the entity's
// actual declared types gathered best-effort for an actionable message.
type TypeCheckError struct {
	EntityIRI       string
	SuperclassLabel string
	FoundTypes      []string
}

func (e *TypeCheckError) Error() string {
	found := "none"
	if len(e.FoundTypes) > 0 {
		found = strings.Join(e.FoundTypes, ", ")
	}
	return fmt.Sprintf("graph: entity %s is not typed as a subclass of %s (found types: %s); use entity search to select a correct IRI",
		e.EntityIRI, e.SuperclassLabel, found)
}

// run validates builder text and executes it.
func (g *Graph) run(ctx context.Context, query string) (*sparql.Results, error) {
	if _, err := g.validator.Validate(query); err != nil {
		return nil, err
	}
	return g.client.Select(ctx, query)
}

// FindOwner resolves the owning team of a resource, following the
// containment relation transitively when ownership is indirect. Returns a
// no-owner result rather than an error when nothing matches.
func (g *Graph) FindOwner(ctx context.Context, resourceIRI string) (*Owner, error) {
	g.logger.Debug(ctx, "Resolving resource owner", map[string]interface{}{"entity_iri": resourceIRI})

	results, err := g.run(ctx, ownerQuery(resourceIRI))
	if err != nil {
		return nil, err
	}

	records, err := results.Flatten()
	if err != nil {
		return nil, err
	}

	owner := &Owner{ResourceIRI: resourceIRI}
	if len(records) > 0 {
		owner.TeamIRI, _ = records[0]["team"].(string)
		owner.TeamName, _ = records[0]["teamName"].(string)
	}
	return owner, nil
}

// ResourcesOwnedBy lists resources a team owns directly or through the
// transitive containment relation, deduplicated by resource identity.
func (g *Graph) ResourcesOwnedBy(ctx context.Context, teamIRI string, limit int) ([]OwnedResource, error) {
	g.logger.Debug(ctx, "Listing team resources", map[string]interface{}{"entity_iri": teamIRI, "limit": limit})

	results, err := g.run(ctx, ownedResourcesQuery(teamIRI, limit))
	if err != nil {
		return nil, err
	}

	records, err := results.Flatten("resource", "label", "type")
	if err != nil {
		return nil, err
	}

	owned := make([]OwnedResource, 0, len(records))
	for _, record := range records {
		iri, _ := record["resource"].(string)
		label, _ := record["label"].(string)
		typ, _ := record["type"].(string)
		owned = append(owned, OwnedResource{IRI: iri, Label: label, Type: typ})
	}
	return owned, nil
}

// Neighborhood expands the entity's direct graph neighborhood in both
// directions, ordered by direction, predicate and related node.
func (g *Graph) Neighborhood(ctx context.Context, entityIRI string, limit int) ([]Edge, error) {
	g.logger.Debug(ctx, "Expanding neighborhood", map[string]interface{}{"entity_iri": entityIRI, "limit": limit})

	results, err := g.run(ctx, neighborhoodQuery(entityIRI, limit))
	if err != nil {
		return nil, err
	}

	records, err := results.Flatten()
	if err != nil {
		return nil, err
	}

	edges := make([]Edge, 0, len(records))
	for _, record := range records {
		direction, _ := record["direction"].(string)
		predicate, _ := record["predicate"].(string)
		related, _ := record["related"].(string)
		if direction == "" || predicate == "" || related == "" {
			continue
		}

		predicateLabel, _ := record["predicateLabel"].(string)
		relatedLabel, _ := record["relatedLabel"].(string)
		edges = append(edges, Edge{
			Direction:      direction,
			Predicate:      predicate,
			PredicateLabel: predicateLabel,
			Related:        related,
			RelatedLabel:   relatedLabel,
		})
	}
	return edges, nil
}

// AssertSubtypeOf succeeds when the entity has a declared type that is the
// superclass or a transitive subtype of it. On failure the entity's actual
// types are gathered best-effort; a failure during that diagnostic step is
// swallowed and reported as no types found.
func (g *Graph) AssertSubtypeOf(ctx context.Context, entityIRI, superclassIRI, superclassLabel string) error {
	results, err := g.run(ctx, subtypeAskQuery(entityIRI, superclassIRI))
	if err != nil {
		return fmt.Errorf("failed to validate entity type for %s: %w", entityIRI, err)
	}

	if results.Boolean != nil && *results.Boolean {
		return nil
	}

	return &TypeCheckError{
		EntityIRI:       entityIRI,
		SuperclassLabel: superclassLabel,
		FoundTypes:      g.declaredTypes(ctx, entityIRI),
	}
}

// AssertResource checks the entity against the Resource class.
func (g *Graph) AssertResource(ctx context.Context, entityIRI string) error {
	return g.AssertSubtypeOf(ctx, entityIRI, core.ClassResource, "voc:Resource")
}

// AssertTeam checks the entity against the Team class.
func (g *Graph) AssertTeam(ctx context.Context, entityIRI string) error {
	return g.AssertSubtypeOf(ctx, entityIRI, core.ClassTeam, "voc:Team")
}

// declaredTypes lists the entity's rdf:type values, degrading to an empty
// list on any failure.
func (g *Graph) declaredTypes(ctx context.Context, entityIRI string) []string {
	results, err := g.run(ctx, declaredTypesQuery(entityIRI))
	if err != nil {
		g.logger.Warn(ctx, "Type diagnostic query failed", map[string]interface{}{
			"entity_iri": entityIRI,
			"error":      err.Error(),
		})
		return nil
	}

	records, err := results.Flatten()
	if err != nil {
		return nil
	}

	types := make([]string, 0, len(records))
	for _, record := range records {
		if t, ok := record["type"].(string); ok && t != "" {
			types = append(types, t)
		}
	}
	return types
}
