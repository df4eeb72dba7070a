package searchentities

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagus/ontograph/pkg/interfaces"
	"github.com/tagus/ontograph/pkg/vectorstore/weaviate"
)

// fixedEmbedder returns the same vector for every text.
type fixedEmbedder struct{}

func (e *fixedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{0.1, 0.2, 0.3}, nil
}

func (e *fixedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{0.1, 0.2, 0.3}
	}
	return vectors, nil
}

// newTestTool backs the tool with a stub answering the vector search with a
// single checkout-service hit.
func newTestTool(t *testing.T) *Tool {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/graphql") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"Get":{"OntologyEntity":[
			{"label":"checkout-service",
			 "uri":"http://bvdheiden.nl/data/#checkout-service",
			 "type":"Resource",
			 "_additional":{"certainty":0.87}}]}}}`))
	}))
	t.Cleanup(server.Close)

	store, err := weaviate.New(&interfaces.VectorStoreConfig{
		Host:   strings.TrimPrefix(server.URL, "http://"),
		Scheme: "http",
	}, weaviate.WithEmbedder(&fixedEmbedder{}))
	require.NoError(t, err)

	return New(store)
}

func TestRunReturnsMatches(t *testing.T) {
	tool := newTestTool(t)

	output, err := tool.Run(context.Background(), `{"query":"checkout","limit":3}`)
	require.NoError(t, err)

	var decoded struct {
		Results []weaviate.Match `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))
	require.Len(t, decoded.Results, 1)
	assert.Equal(t, "checkout-service", decoded.Results[0].Label)
	assert.Equal(t, "http://bvdheiden.nl/data/#checkout-service", decoded.Results[0].IRI)
	assert.InDelta(t, 0.87, decoded.Results[0].Score, 0.001)
}

func TestRunTreatsBareTextAsQuery(t *testing.T) {
	tool := newTestTool(t)

	output, err := tool.Run(context.Background(), "checkout service")
	require.NoError(t, err)
	assert.Contains(t, output, "checkout-service")
}

func TestRunRejectsMissingQuery(t *testing.T) {
	tool := newTestTool(t)

	_, err := tool.Run(context.Background(), `{"limit":3}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query")
}

func TestToolMetadata(t *testing.T) {
	tool := newTestTool(t)

	assert.Equal(t, "search_entities", tool.Name())
	assert.False(t, tool.Internal())
	assert.True(t, tool.Parameters()["query"].Required)
}
