package weaviate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/tagus/ontograph/pkg/logging"
)

func newTestStore() *Store {
	return &Store{className: "OntologyEntity", logger: logging.New()}
}

func hitResponse(hits []interface{}) *models.GraphQLResponse {
	return &models.GraphQLResponse{
		Data: map[string]models.JSONObject{
			"Get": map[string]interface{}{
				"OntologyEntity": hits,
			},
		},
	}
}

func TestParseMatches(t *testing.T) {
	store := newTestStore()

	matches, err := store.parseMatches(context.Background(), hitResponse([]interface{}{
		map[string]interface{}{
			"label":       "checkout-service",
			"uri":         "http://bvdheiden.nl/data/#checkout-service",
			"type":        "Resource",
			"_additional": map[string]interface{}{"certainty": 0.91},
		},
		map[string]interface{}{
			"label": "Team alpha",
			"uri":   "http://bvdheiden.nl/data/#team-alpha",
			"type":  "Team",
		},
	}))
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, "checkout-service", matches[0].Label)
	assert.Equal(t, "http://bvdheiden.nl/data/#checkout-service", matches[0].IRI)
	assert.Equal(t, "Resource", matches[0].Type)
	assert.InDelta(t, 0.91, matches[0].Score, 0.001)

	// A missing certainty degrades to a zero score.
	assert.Equal(t, float32(0), matches[1].Score)
}

func TestParseMatchesSkipsIncompleteHits(t *testing.T) {
	store := newTestStore()

	matches, err := store.parseMatches(context.Background(), hitResponse([]interface{}{
		map[string]interface{}{"uri": "http://bvdheiden.nl/data/#no-label"},
		map[string]interface{}{"label": "no-uri"},
		"not even a map",
		map[string]interface{}{
			"label": "cart-service",
			"uri":   "http://bvdheiden.nl/data/#cart-service",
		},
	}))
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, "cart-service", matches[0].Label)
}

func TestParseMatchesToleratesUnexpectedShapes(t *testing.T) {
	store := newTestStore()

	matches, err := store.parseMatches(context.Background(), &models.GraphQLResponse{})
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = store.parseMatches(context.Background(), &models.GraphQLResponse{
		Data: map[string]models.JSONObject{"Get": "wrong"},
	})
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = store.parseMatches(context.Background(), hitResponse(nil))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
