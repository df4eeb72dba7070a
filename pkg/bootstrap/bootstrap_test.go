package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSeed(t *testing.T) {
	seed, err := DefaultSeed()
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta", "charlie", "delta"}, seed.Teams)
	assert.Len(t, seed.Services, 20)
	assert.Equal(t, "user-authentication-service", seed.Services[0].Name)
	assert.Len(t, seed.Services[0].Endpoints, 4)
}

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := `
teams:
  - platform
services:
  - name: billing-service
    endpoints:
      - /api/v1/invoices
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"platform"}, seed.Teams)
	require.Len(t, seed.Services, 1)
	assert.Equal(t, "billing-service", seed.Services[0].Name)
}

func TestParseSeedRejectsEmptyModels(t *testing.T) {
	_, err := parseSeed([]byte("teams: []\nservices: []"))
	assert.Error(t, err)

	_, err = parseSeed([]byte("teams: [a]\nservices: []"))
	assert.Error(t, err)

	_, err = parseSeed([]byte("not: valid: yaml: ["))
	assert.Error(t, err)
}

func TestIRIConstruction(t *testing.T) {
	assert.Equal(t, "http://bvdheiden.nl/data/#team-alpha", TeamIRI("alpha"))
	assert.Equal(t, "http://bvdheiden.nl/data/#checkout-service", ServiceIRI("checkout-service"))
	assert.Equal(t,
		"http://bvdheiden.nl/data/#product-catalog-service--api-v1-products-id",
		EndpointIRI("product-catalog-service", "/api/v1/products/{id}"))
}

func TestOwnerRoundRobin(t *testing.T) {
	seed := &Seed{
		Teams:    []string{"alpha", "beta"},
		Services: []Service{{Name: "a"}, {Name: "b"}, {Name: "c"}},
	}

	assert.Equal(t, "alpha", seed.Owner(0))
	assert.Equal(t, "beta", seed.Owner(1))
	assert.Equal(t, "alpha", seed.Owner(2))
}

func TestOntologyTurtle(t *testing.T) {
	ttl := OntologyTurtle()

	assert.Contains(t, ttl, "@prefix voc: <http://bvdheiden.nl/data/#voc/> .")
	assert.Contains(t, ttl, "voc:Resource a owl:Class")
	assert.Contains(t, ttl, "voc:Team a owl:Class")
	assert.Contains(t, ttl, "voc:ownedBy a owl:ObjectProperty")
	assert.Contains(t, ttl, "voc:containedIn a owl:ObjectProperty")
	assert.Contains(t, ttl, "rdfs:range voc:Team")
}

func TestDataTurtle(t *testing.T) {
	seed := &Seed{
		Teams: []string{"alpha", "beta"},
		Services: []Service{
			{Name: "checkout-service", Endpoints: []string{"/api/v1/checkout/initiate"}},
			{Name: "cart-service", Endpoints: nil},
		},
	}

	ttl := seed.DataTurtle()

	assert.Contains(t, ttl, "<http://bvdheiden.nl/data/#team-alpha> a voc:Team")
	assert.Contains(t, ttl, `rdfs:label "Team alpha"`)

	// Round-robin: first service to alpha, second to beta.
	assert.Contains(t, ttl, "<http://bvdheiden.nl/data/#checkout-service> a voc:Resource")
	assert.Contains(t, ttl, "voc:ownedBy <http://bvdheiden.nl/data/#team-alpha>")
	assert.Contains(t, ttl, "voc:ownedBy <http://bvdheiden.nl/data/#team-beta>")

	assert.Contains(t, ttl, "<http://bvdheiden.nl/data/#checkout-service--api-v1-checkout-initiate> a voc:Resource")
	assert.Contains(t, ttl, "voc:containedIn <http://bvdheiden.nl/data/#checkout-service>")
	assert.Contains(t, ttl, `rdfs:label "/api/v1/checkout/initiate"`)
}

func TestTurtleLiteralEscaping(t *testing.T) {
	assert.Equal(t, `"plain"`, turtleLiteral("plain"))
	assert.Equal(t, `"say \"hi\""`, turtleLiteral(`say "hi"`))
	assert.Equal(t, `"back\\slash"`, turtleLiteral(`back\slash`))
}

func TestEntitiesFlattening(t *testing.T) {
	seed := &Seed{
		Teams: []string{"alpha"},
		Services: []Service{
			{Name: "checkout-service", Endpoints: []string{"/api/v1/checkout/initiate"}},
		},
	}

	entities := seed.Entities()
	require.Len(t, entities, 3)

	team := entities[0]
	assert.Equal(t, "Team alpha", team.Label)
	assert.Equal(t, "http://bvdheiden.nl/data/#team-alpha", team.IRI)
	assert.Equal(t, "Team", team.Type)
	assert.Empty(t, team.Document)

	service := entities[1]
	assert.Equal(t, "checkout-service", service.Label)
	assert.Equal(t, "Resource", service.Type)
	assert.Equal(t, "http://bvdheiden.nl/data/#voc/Resource", service.RDFType)

	endpoint := entities[2]
	assert.Equal(t, "/api/v1/checkout/initiate", endpoint.Label)
	assert.Equal(t, "checkout-service /api/v1/checkout/initiate", endpoint.Document)
}

func TestEntityIDsAreDeterministicAndUnique(t *testing.T) {
	seed, err := DefaultSeed()
	require.NoError(t, err)

	first := seed.Entities()
	second := seed.Entities()
	require.Equal(t, len(first), len(second))

	seen := make(map[string]string, len(first))
	for i, entity := range first {
		assert.Equal(t, entity.ID, second[i].ID, "id for %s must be stable", entity.IRI)
		if prior, dup := seen[entity.ID]; dup {
			t.Fatalf("duplicate id for %s and %s", prior, entity.IRI)
		}
		seen[entity.ID] = entity.IRI
	}
}

func TestDefaultSeedTurtleCoversEveryEndpoint(t *testing.T) {
	seed, err := DefaultSeed()
	require.NoError(t, err)

	ttl := seed.DataTurtle()
	for _, service := range seed.Services {
		assert.True(t, strings.Contains(ttl, fmt.Sprintf("<%s>", ServiceIRI(service.Name))), service.Name)
		for _, endpoint := range service.Endpoints {
			assert.True(t, strings.Contains(ttl, fmt.Sprintf("<%s>", EndpointIRI(service.Name, endpoint))),
				"%s %s", service.Name, endpoint)
		}
	}
}
