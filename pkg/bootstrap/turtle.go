package bootstrap

import (
	"fmt"
	"strings"

	"github.com/tagus/ontograph/pkg/vocabulary/core"
)

// turtlePrologue declares the prefixes both generated documents use.
var turtlePrologue = strings.Join([]string{
	fmt.Sprintf("@prefix voc: <%s> .", core.Namespace),
	fmt.Sprintf("@prefix data: <%s> .", core.DataNamespace),
	fmt.Sprintf("@prefix rdf: <%s> .", core.RDF),
	fmt.Sprintf("@prefix rdfs: <%s> .", core.RDFS),
	fmt.Sprintf("@prefix owl: <%s> .", core.OWL),
	"",
}, "\n")

// OntologyTurtle renders the vocabulary: the Resource and Team classes and
// the ownedBy / containedIn object properties with their domains and ranges.
func OntologyTurtle() string {
	var b strings.Builder
	b.WriteString(turtlePrologue)
	b.WriteString("\n")

	b.WriteString("voc:Resource a owl:Class ;\n")
	b.WriteString("    rdfs:label \"Resource\" .\n\n")

	b.WriteString("voc:Team a owl:Class ;\n")
	b.WriteString("    rdfs:label \"Team\" .\n\n")

	b.WriteString("voc:containedIn a owl:ObjectProperty ;\n")
	b.WriteString("    rdfs:label \"contained in\" ;\n")
	b.WriteString("    rdfs:domain voc:Resource ;\n")
	b.WriteString("    rdfs:range voc:Resource .\n\n")

	b.WriteString("voc:ownedBy a owl:ObjectProperty ;\n")
	b.WriteString("    rdfs:label \"owned by\" ;\n")
	b.WriteString("    rdfs:domain voc:Resource ;\n")
	b.WriteString("    rdfs:range voc:Team .\n")

	return b.String()
}

// DataTurtle renders the instance data: teams, services with round-robin
// ownership and endpoints contained in their service.
func (s *Seed) DataTurtle() string {
	var b strings.Builder
	b.WriteString(turtlePrologue)
	b.WriteString("\n")

	for _, team := range s.Teams {
		fmt.Fprintf(&b, "<%s> a voc:Team ;\n", TeamIRI(team))
		fmt.Fprintf(&b, "    rdfs:label %s .\n\n", turtleLiteral("Team "+team))
	}

	for i, service := range s.Services {
		fmt.Fprintf(&b, "<%s> a voc:Resource ;\n", ServiceIRI(service.Name))
		fmt.Fprintf(&b, "    rdfs:label %s ;\n", turtleLiteral(service.Name))
		fmt.Fprintf(&b, "    voc:ownedBy <%s> .\n\n", TeamIRI(s.Owner(i)))

		for _, endpoint := range service.Endpoints {
			fmt.Fprintf(&b, "<%s> a voc:Resource ;\n", EndpointIRI(service.Name, endpoint))
			fmt.Fprintf(&b, "    rdfs:label %s ;\n", turtleLiteral(endpoint))
			fmt.Fprintf(&b, "    voc:containedIn <%s> .\n\n", ServiceIRI(service.Name))
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// turtleLiteral quotes a string literal, escaping backslashes and quotes
func turtleLiteral(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}
