package sparql

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(
		WithBaseURL(server.URL),
		WithDataset("ontology"),
		WithCredentials("admin", "admin"),
	)
}

func TestSelectSubmitsFormEncodedQuery(t *testing.T) {
	var gotPath, gotAccept, gotContentType, gotQuery string
	var gotUser, gotPass string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotContentType = r.Header.Get("Content-Type")
		gotUser, gotPass, _ = r.BasicAuth()
		require.NoError(t, r.ParseForm())
		gotQuery = r.PostFormValue("query")

		w.Header().Set("Content-Type", "application/sparql-results+json")
		_, _ = w.Write([]byte(`{"head":{"vars":["s"]},"results":{"bindings":[]}}`))
	})

	results, err := client.Select(context.Background(), "SELECT ?s WHERE { ?s ?p ?o }")
	require.NoError(t, err)

	assert.Equal(t, "/ontology/query", gotPath)
	assert.Equal(t, "application/sparql-results+json", gotAccept)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "SELECT ?s WHERE { ?s ?p ?o }", gotQuery)
	assert.Equal(t, "admin", gotUser)
	assert.Equal(t, "admin", gotPass)
	assert.Equal(t, []string{"s"}, results.Head.Vars)
}

func TestSelectSurfacesStoreError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("Parse error: unresolved prefix"))
	})

	_, err := client.Select(context.Background(), "SELECT ?s WHERE { ?s ?p ?o }")

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, http.StatusBadRequest, storeErr.StatusCode)
	assert.Contains(t, storeErr.Body, "unresolved prefix")
	assert.Contains(t, storeErr.Query, "SELECT ?s")
}

func TestSelectSurfacesTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(WithBaseURL(server.URL))
	server.Close() // connection refused from here on

	_, err := client.Select(context.Background(), "SELECT ?s WHERE { ?s ?p ?o }")

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.NotNil(t, transportErr.Unwrap())
}

func TestUpdatePostsToUpdateEndpoint(t *testing.T) {
	var gotPath, gotUpdate string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotUpdate = r.PostFormValue("update")
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.Update(context.Background(), "CLEAR ALL")
	require.NoError(t, err)

	assert.Equal(t, "/ontology/update", gotPath)
	assert.Equal(t, "CLEAR ALL", gotUpdate)
}

func TestUploadTurtlePostsDocument(t *testing.T) {
	var gotPath, gotContentType string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
	})

	err := client.UploadTurtle(context.Background(), "@prefix voc: <http://x/> .")
	require.NoError(t, err)

	assert.Equal(t, "/ontology/data", gotPath)
	assert.Equal(t, "text/turtle", gotContentType)
}

func TestUploadTurtleSurfacesStoreError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	err := client.UploadTurtle(context.Background(), "bogus")

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, http.StatusForbidden, storeErr.StatusCode)
}

func TestPing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ASK { }", r.PostFormValue("query"))
		_, _ = w.Write([]byte(`{"head":{},"boolean":true}`))
	})

	assert.NoError(t, client.Ping(context.Background()))
}

func TestClientSkipsAuthWithoutCredentials(t *testing.T) {
	var hasAuth bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, hasAuth = r.BasicAuth()
		_, _ = w.Write([]byte(`{"head":{},"results":{"bindings":[]}}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.Select(context.Background(), "SELECT ?s WHERE { ?s ?p ?o }")
	require.NoError(t, err)
	assert.False(t, hasAuth)
}
