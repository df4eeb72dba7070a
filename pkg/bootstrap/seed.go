// Package bootstrap seeds the graph store and the entity index: it renders
// the vocabulary and the seed model as Turtle, uploads both over the Graph
// Store protocol and indexes every entity for semantic search.
package bootstrap

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/tagus/ontograph/pkg/vectorstore/weaviate"
	"github.com/tagus/ontograph/pkg/vocabulary/core"
)

//go:embed seed.yaml
var defaultSeedYAML []byte

// Seed is the declarative model the graph gets populated from. Ownership is
// assigned round-robin over the teams in declaration order.
type Seed struct {
	Teams    []string  `yaml:"teams"`
	Services []Service `yaml:"services"`
}

// Service is one seeded service and the endpoints it contains.
type Service struct {
	Name      string   `yaml:"name"`
	Endpoints []string `yaml:"endpoints"`
}

// DefaultSeed returns the embedded seed model
func DefaultSeed() (*Seed, error) {
	return parseSeed(defaultSeedYAML)
}

// LoadSeed reads a seed model from a YAML file
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return parseSeed(data)
}

func parseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	if len(seed.Teams) == 0 {
		return nil, fmt.Errorf("seed declares no teams")
	}
	if len(seed.Services) == 0 {
		return nil, fmt.Errorf("seed declares no services")
	}
	return &seed, nil
}

// TeamIRI returns the instance IRI for a team name
func TeamIRI(team string) string {
	return core.DataNamespace + "team-" + team
}

// ServiceIRI returns the instance IRI for a service name
func ServiceIRI(service string) string {
	return core.DataNamespace + service
}

// EndpointIRI returns the instance IRI for an endpoint of a service. Path
// separators become dashes and placeholder braces are dropped, so
// "/api/v1/products/{id}" under product-catalog-service yields
// ...#product-catalog-service--api-v1-products-id.
func EndpointIRI(service, path string) string {
	slug := strings.ReplaceAll(path, "/", "-")
	slug = strings.ReplaceAll(slug, "{", "")
	slug = strings.ReplaceAll(slug, "}", "")
	return core.DataNamespace + service + "-" + slug
}

// Owner returns the team owning the service at the given declaration index
func (s *Seed) Owner(serviceIndex int) string {
	return s.Teams[serviceIndex%len(s.Teams)]
}

// Entities flattens the seed into indexable entities. IDs are UUIDs derived
// from the entity IRI, so re-running the bootstrap overwrites rather than
// duplicates.
func (s *Seed) Entities() []weaviate.Entity {
	var entities []weaviate.Entity

	for _, team := range s.Teams {
		iri := TeamIRI(team)
		entities = append(entities, weaviate.Entity{
			ID:      entityID(iri),
			Label:   "Team " + team,
			IRI:     iri,
			Type:    "Team",
			RDFType: core.ClassTeam,
		})
	}

	for _, service := range s.Services {
		iri := ServiceIRI(service.Name)
		entities = append(entities, weaviate.Entity{
			ID:      entityID(iri),
			Label:   service.Name,
			IRI:     iri,
			Type:    "Resource",
			RDFType: core.ClassResource,
		})

		for _, endpoint := range service.Endpoints {
			endpointIRI := EndpointIRI(service.Name, endpoint)
			entities = append(entities, weaviate.Entity{
				ID:      entityID(endpointIRI),
				Label:   endpoint,
				IRI:     endpointIRI,
				Type:    "Resource",
				RDFType: core.ClassResource,
				// Embed the service name alongside the path so searches
				// like "checkout endpoints" land on the right service.
				Document: service.Name + " " + endpoint,
			})
		}
	}

	return entities
}

func entityID(iri string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(iri)).String()
}
