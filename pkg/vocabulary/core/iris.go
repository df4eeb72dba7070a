package core

// Namespace is the base IRI prefix for ontology vocabulary terms.
const Namespace = "http://bvdheiden.nl/data/#voc/"

// DataNamespace is the base IRI for entity instances.
const DataNamespace = "http://bvdheiden.nl/data/#"

// Standard W3C namespaces used throughout the graph.
const (
	// RDF is the RDF syntax namespace.
	RDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// RDFS is the RDF Schema namespace.
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"

	// OWL is the Web Ontology Language namespace.
	OWL = "http://www.w3.org/2002/07/owl#"

	// XSD is the XML Schema datatypes namespace.
	XSD = "http://www.w3.org/2001/XMLSchema#"
)

// Class IRIs define the entity types of the ontology.
const (
	// ClassResource represents an owned infrastructure resource
	// (service, endpoint, database).
	ClassResource = Namespace + "Resource"

	// ClassTeam represents an owning team.
	ClassTeam = Namespace + "Team"
)

// Object property IRIs define relationships between entities.
const (
	// PropOwnedBy links a resource to its owning team.
	// Domain: ClassResource, Range: ClassTeam
	PropOwnedBy = Namespace + "ownedBy"

	// PropContainedIn links a resource to the resource that contains it
	// (an endpoint to its service). Transitive for ownership resolution.
	// Domain: ClassResource, Range: ClassResource
	PropContainedIn = Namespace + "containedIn"
)

// Well-known RDF/RDFS term IRIs.
const (
	// TermType is rdf:type.
	TermType = RDF + "type"

	// TermLabel is rdfs:label.
	TermLabel = RDFS + "label"

	// TermSubClassOf is rdfs:subClassOf.
	TermSubClassOf = RDFS + "subClassOf"
)
