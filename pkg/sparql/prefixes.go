package sparql

import (
	"fmt"
	"strings"

	"github.com/tagus/ontograph/pkg/vocabulary/core"
)

// Prefix binds a short namespace name to its IRI.
type Prefix struct {
	Name string
	IRI  string
}

// defaultPrefixes is the trusted prefix set injected into every executed
// query. Fixed at process start; caller-supplied declarations never survive
// into the executed text.
var defaultPrefixes = []Prefix{
	{Name: "voc", IRI: core.Namespace},
	{Name: "data", IRI: core.DataNamespace},
	{Name: "rdf", IRI: core.RDF},
	{Name: "rdfs", IRI: core.RDFS},
	{Name: "owl", IRI: core.OWL},
}

// DefaultPrefixes returns a copy of the trusted prefix set in declaration
// order.
func DefaultPrefixes() []Prefix {
	prefixes := make([]Prefix, len(defaultPrefixes))
	copy(prefixes, defaultPrefixes)
	return prefixes
}

// PrefixBlock renders prefixes as a PREFIX declaration block, one binding
// per line, in the given order.
func PrefixBlock(prefixes []Prefix) string {
	var sb strings.Builder
	for i, p := range prefixes {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "PREFIX %s: <%s>", p.Name, p.IRI)
	}
	return sb.String()
}
