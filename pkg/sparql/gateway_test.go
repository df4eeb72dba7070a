package sparql

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGateway backs a gateway with a store stub that answers every query
// with the given number of single-variable rows and records the executed text.
func newTestGateway(t *testing.T, rows int, executed *string) *Gateway {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if executed != nil {
			*executed = r.PostFormValue("query")
		}

		bindings := make([]string, 0, rows)
		for i := 0; i < rows; i++ {
			bindings = append(bindings, fmt.Sprintf(`{"s":{"type":"uri","value":"http://x/%d"}}`, i))
		}
		_, _ = fmt.Fprintf(w, `{"head":{"vars":["s"]},"results":{"bindings":[%s]}}`, strings.Join(bindings, ","))
	}))
	t.Cleanup(server.Close)

	return NewGateway(NewClient(WithBaseURL(server.URL)))
}

func TestGatewayRunsFullPipeline(t *testing.T) {
	var executed string
	gateway := newTestGateway(t, 3, &executed)

	outcome, err := gateway.Query(context.Background(), "SELECT ?s WHERE { ?s a voc:Resource }", 10)
	require.NoError(t, err)

	assert.Contains(t, executed, "PREFIX voc:")
	assert.Contains(t, executed, "LIMIT 10")
	assert.Equal(t, executed, outcome.Query)
	assert.Equal(t, 10, outcome.Limit)
	assert.Len(t, outcome.Results.Results.Bindings, 3)
}

func TestGatewayTruncatesOverflowingResults(t *testing.T) {
	gateway := newTestGateway(t, 8, nil)

	outcome, err := gateway.Query(context.Background(), "SELECT ?s WHERE { ?s ?p ?o }", 5)
	require.NoError(t, err)

	assert.Len(t, outcome.Results.Results.Bindings, 5)
	assert.Equal(t, "http://x/0", outcome.Results.Results.Bindings[0]["s"].Value)
}

func TestGatewayRejectsEmptyQuery(t *testing.T) {
	gateway := newTestGateway(t, 0, nil)

	_, err := gateway.Query(context.Background(), "   ", 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestGatewayRejectsNonSelectByDefault(t *testing.T) {
	gateway := newTestGateway(t, 0, nil)

	for _, raw := range []string{
		"ASK { ?s ?p ?o }",
		"INSERT DATA { <http://x> <http://y> <http://z> }",
		"DROP GRAPH <http://x>",
	} {
		_, err := gateway.Query(context.Background(), raw, 10)
		var invalid *InvalidQueryError
		require.ErrorAs(t, err, &invalid, "query %q", raw)
	}
}

func TestGatewayStripsHostilePrefixes(t *testing.T) {
	var executed string
	gateway := newTestGateway(t, 0, &executed)

	raw := "PREFIX voc: <http://evil.example/>\nSELECT ?s WHERE { ?s a voc:Resource }"
	_, err := gateway.Query(context.Background(), raw, 10)
	require.NoError(t, err)

	assert.NotContains(t, executed, "evil.example")
	assert.Contains(t, executed, "PREFIX voc: <http://bvdheiden.nl/data/#voc/>")
}

func TestGatewayDefaultsLimit(t *testing.T) {
	var executed string
	gateway := newTestGateway(t, 0, &executed)

	outcome, err := gateway.Query(context.Background(), "SELECT ?s WHERE { ?s ?p ?o }", 0)
	require.NoError(t, err)

	assert.Equal(t, DefaultLimit, outcome.Limit)
	assert.Contains(t, executed, fmt.Sprintf("LIMIT %d", DefaultLimit))
}

func TestGatewayClampsLimit(t *testing.T) {
	gateway := newTestGateway(t, 0, nil)

	outcome, err := gateway.Query(context.Background(), "SELECT ?s WHERE { ?s ?p ?o }", MaxLimit*10)
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, outcome.Limit)
}

func TestQueryRecordsFlattens(t *testing.T) {
	gateway := newTestGateway(t, 2, nil)

	records, outcome, err := gateway.QueryRecords(context.Background(), "SELECT ?s WHERE { ?s ?p ?o }", 10, "s")
	require.NoError(t, err)
	require.NotNil(t, outcome)
	require.Len(t, records, 2)
	assert.Equal(t, "http://x/0", records[0]["s"])
}

func TestQueryRecordsSurfacesShapeError(t *testing.T) {
	gateway := newTestGateway(t, 2, nil)

	_, _, err := gateway.QueryRecords(context.Background(), "SELECT ?s WHERE { ?s ?p ?o }", 10, "label")
	var shape *ShapeError
	require.ErrorAs(t, err, &shape)
}
