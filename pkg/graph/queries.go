package graph

import (
	"fmt"

	"github.com/tagus/ontograph/pkg/vocabulary/core"
)

// Query builders for the ownership and neighborhood operations. Every
// builder takes bound entity IRIs obtained from a prior identification step
// and returns fully-formed query text; none interpolate caller free text.

// ownerQuery matches the owning team of a resource: a direct ownedBy edge,
// or an ownedBy edge reached over one or more containedIn hops. At most one
// row; the single-owner invariant is upheld by the data loader.
func ownerQuery(resourceIRI string) string {
	return fmt.Sprintf(`PREFIX rdfs: <%s>
PREFIX voc: <%s>

SELECT ?teamName ?team
WHERE {
  BIND(<%s> AS ?entity)

  {
    ?entity voc:ownedBy ?team .
  }
  UNION
  {
    ?entity voc:containedIn+ ?container .
    ?container voc:ownedBy ?team .
  }

  ?team rdfs:label ?teamName .
}
LIMIT 1`, core.RDFS, core.Namespace, resourceIRI)
}

// ownedResourcesQuery lists resources owned by a team, directly or reachable
// over the transitive containment relation rooted at a directly-owned
// resource. Results require both a type and a label; rows lacking either are
// excluded by the query shape.
func ownedResourcesQuery(teamIRI string, limit int) string {
	limitClause := ""
	if limit > 0 {
		limitClause = fmt.Sprintf("\nLIMIT %d", limit)
	}

	return fmt.Sprintf(`PREFIX rdfs: <%s>
PREFIX voc: <%s>

SELECT DISTINCT ?resource ?label ?type
WHERE {
  BIND(<%s> AS ?team)

  {
    ?resource voc:ownedBy ?team .
  }
  UNION
  {
    ?top voc:ownedBy ?team .
    ?resource voc:containedIn* ?top .
  }

  ?resource a ?type ;
            rdfs:label ?label .
}%s`, core.RDFS, core.Namespace, teamIRI, limitClause)
}

// neighborhoodQuery collects every edge where the entity is subject
// (outgoing) or object (incoming) of a triple whose other endpoint is an
// identifiable node, with labels when available. Ordering makes pagination
// deterministic under the row cap.
func neighborhoodQuery(entityIRI string, limit int) string {
	limitClause := ""
	if limit > 0 {
		limitClause = fmt.Sprintf("\nLIMIT %d", limit)
	}

	return fmt.Sprintf(`PREFIX rdfs: <%s>

SELECT DISTINCT ?direction ?predicate ?predicateLabel ?related ?relatedLabel
WHERE {
  BIND(<%s> AS ?entity)

  {
    BIND("outgoing" AS ?direction)
    ?entity ?predicate ?related .
    FILTER(isIRI(?related))
  }
  UNION
  {
    BIND("incoming" AS ?direction)
    ?related ?predicate ?entity .
    FILTER(isIRI(?related))
  }

  OPTIONAL { ?predicate rdfs:label ?predicateLabel }
  OPTIONAL { ?related rdfs:label ?relatedLabel }
}
ORDER BY ?direction ?predicate ?related%s`, core.RDFS, entityIRI, limitClause)
}

// subtypeAskQuery succeeds when the entity has a declared type equal to the
// superclass or a transitive subtype of it.
func subtypeAskQuery(entityIRI, superclassIRI string) string {
	return fmt.Sprintf(`PREFIX rdfs: <%s>

ASK WHERE {
  BIND(<%s> AS ?entity)
  ?entity a ?t .
  ?t rdfs:subClassOf* <%s> .
}`, core.RDFS, entityIRI, superclassIRI)
}

// declaredTypesQuery lists the entity's declared types, used as a diagnostic
// after a failed subsumption check.
func declaredTypesQuery(entityIRI string) string {
	return fmt.Sprintf(`SELECT DISTINCT ?type WHERE {
  BIND(<%s> AS ?entity)
  ?entity a ?type .
}`, entityIRI)
}
