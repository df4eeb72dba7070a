package sparql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRejectsEmptyInput(t *testing.T) {
	n := NewNormalizer()

	for _, input := range []string{"", "   ", "\n\t  \n"} {
		_, err := n.Normalize(input, 10)
		assert.ErrorIs(t, err, ErrEmptyQuery, "input %q", input)
	}
}

func TestNormalizeStripsCallerDeclarations(t *testing.T) {
	n := NewNormalizer()

	raw := "PREFIX evil: <http://evil.example/>\n" +
		"  base <http://evil.example/base>\n" +
		"SELECT ?s WHERE { ?s a voc:Resource }"

	executable, err := n.Normalize(raw, 10)
	require.NoError(t, err)

	assert.NotContains(t, executable, "evil.example")
	assert.Contains(t, executable, "PREFIX voc: <http://bvdheiden.nl/data/#voc/>")
	assert.Contains(t, executable, "SELECT ?s WHERE { ?s a voc:Resource }")
}

func TestNormalizeInjectsTrustedPrefixBlockOnce(t *testing.T) {
	n := NewNormalizer()

	executable, err := n.Normalize("SELECT ?s WHERE { ?s ?p ?o }", 10)
	require.NoError(t, err)

	for _, prefix := range DefaultPrefixes() {
		assert.Equal(t, 1, strings.Count(executable, "PREFIX "+prefix.Name+":"),
			"prefix %s must be declared exactly once", prefix.Name)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := NewNormalizer()

	first, err := n.Normalize("SELECT ?s WHERE { ?s ?p ?o }", 25)
	require.NoError(t, err)

	second, err := n.Normalize(first, 25)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNormalizeAppendsLimit(t *testing.T) {
	n := NewNormalizer()

	executable, err := n.Normalize("SELECT ?s WHERE { ?s ?p ?o }", 25)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(executable, "\nLIMIT 25"), "got: %s", executable)
	assert.Equal(t, 1, strings.Count(strings.ToUpper(executable), "LIMIT"))
}

func TestNormalizeKeepsExistingLimit(t *testing.T) {
	n := NewNormalizer()

	for _, raw := range []string{
		"SELECT ?s WHERE { ?s ?p ?o } LIMIT 3",
		"SELECT ?s WHERE { ?s ?p ?o } limit 3",
		"SELECT ?s WHERE { ?s ?p ?o } LiMiT 3",
	} {
		executable, err := n.Normalize(raw, 25)
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(strings.ToLower(executable), "limit"), "input %q", raw)
		assert.NotContains(t, executable, "LIMIT 25")
	}
}

func TestNormalizeTrimsTrailingTerminatorBeforeLimit(t *testing.T) {
	n := NewNormalizer()

	executable, err := n.Normalize("SELECT ?s WHERE { ?s ?p ?o } ;  \n", 10)
	require.NoError(t, err)

	assert.NotContains(t, executable, ";")
	assert.True(t, strings.HasSuffix(executable, "LIMIT 10"))
}

func TestEffectiveLimit(t *testing.T) {
	n := NewNormalizer(WithDefaultLimit(50), WithMaxLimit(1000))

	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{"zero falls back to default", 0, 50},
		{"negative falls back to default", -7, 50},
		{"positive passes through", 200, 200},
		{"above max clamps to max", 5000, 1000},
		{"max passes through", 1000, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.EffectiveLimit(tt.requested))
		})
	}
}

func TestStripDeclarationsOnlyRemovesDeclarationLines(t *testing.T) {
	raw := "PREFIX ex: <http://example.org/>\nSELECT ?s\nWHERE { ?s rdfs:label \"prefix\" }"
	stripped := StripDeclarations(raw)

	assert.NotContains(t, stripped, "http://example.org/")
	assert.Contains(t, stripped, "SELECT ?s")
	assert.Contains(t, stripped, "\"prefix\"")
}

func TestApplyLimitSkipsNonPositive(t *testing.T) {
	query := "SELECT ?s WHERE { ?s ?p ?o }"
	assert.Equal(t, query, ApplyLimit(query, 0))
	assert.Equal(t, query, ApplyLimit(query, -1))
}
