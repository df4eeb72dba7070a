package sparql

import (
	"strconv"
	"strings"
)

// XSD datatype families recognized by the flattener.
const xsdNamespace = "http://www.w3.org/2001/XMLSchema#"

var integerDatatypes = map[string]bool{
	xsdNamespace + "integer":            true,
	xsdNamespace + "int":                true,
	xsdNamespace + "long":               true,
	xsdNamespace + "short":              true,
	xsdNamespace + "byte":               true,
	xsdNamespace + "nonNegativeInteger": true,
	xsdNamespace + "nonPositiveInteger": true,
	xsdNamespace + "negativeInteger":    true,
	xsdNamespace + "positiveInteger":    true,
	xsdNamespace + "unsignedLong":       true,
	xsdNamespace + "unsignedInt":        true,
	xsdNamespace + "unsignedShort":      true,
	xsdNamespace + "unsignedByte":       true,
}

var floatDatatypes = map[string]bool{
	xsdNamespace + "decimal": true,
	xsdNamespace + "float":   true,
	xsdNamespace + "double":  true,
}

const booleanDatatype = xsdNamespace + "boolean"

// Term is one cell of a result row: an IRI, blank node or literal.
type Term struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"xml:lang,omitempty"`
}

// Binding is one result row, keyed by projected variable name.
type Binding map[string]Term

// Head carries the projected variable names.
type Head struct {
	Vars []string `json:"vars,omitempty"`
}

// Bindings wraps the ordered row list.
type Bindings struct {
	Bindings []Binding `json:"bindings"`
}

// Results is the store's tabular JSON result shape (SPARQL 1.1 Query
// Results JSON Format). Boolean is set for ASK queries only.
type Results struct {
	Head    Head      `json:"head"`
	Results *Bindings `json:"results,omitempty"`
	Boolean *bool     `json:"boolean,omitempty"`
}

// Record is a flattened result row with native values.
type Record map[string]interface{}

// Truncate caps the row list at limit rows, preserving original order. A
// non-positive limit disables truncation. Defense in depth against a store
// that ignores the injected LIMIT clause.
func (r *Results) Truncate(limit int) {
	if limit <= 0 || r.Results == nil {
		return
	}
	if len(r.Results.Bindings) > limit {
		r.Results.Bindings = r.Results.Bindings[:limit]
	}
}

// Flatten converts each row into a plain field→value record, coercing typed
// literals into native values. Rows without cells are skipped. When required
// fields are given, a flattened row missing any of them fails the whole call
// with *ShapeError.
func (r *Results) Flatten(required ...string) ([]Record, error) {
	if r.Results == nil {
		return []Record{}, nil
	}

	records := make([]Record, 0, len(r.Results.Bindings))
	for i, binding := range r.Results.Bindings {
		if len(binding) == 0 {
			continue
		}

		record := make(Record, len(binding))
		for name, term := range binding {
			record[name] = coerce(term)
		}

		var missing []string
		for _, field := range required {
			if _, ok := record[field]; !ok {
				missing = append(missing, field)
			}
		}
		if len(missing) > 0 {
			return nil, &ShapeError{Missing: missing, Row: i}
		}

		records = append(records, record)
	}

	return records, nil
}

// coerce maps a typed literal cell to a native value. Coercion failures fall
// back to the raw string; IRIs and untagged literals pass through unchanged.
func coerce(term Term) interface{} {
	switch {
	case integerDatatypes[term.Datatype]:
		if v, err := strconv.ParseInt(term.Value, 10, 64); err == nil {
			return v
		}
		return term.Value

	case floatDatatypes[term.Datatype]:
		if v, err := strconv.ParseFloat(term.Value, 64); err == nil {
			return v
		}
		return term.Value

	case term.Datatype == booleanDatatype:
		return strings.EqualFold(term.Value, "true")

	default:
		return term.Value
	}
}
