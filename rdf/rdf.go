// Package rdf converts JSON-LD documents to RDF using json-gold.
package rdf

import (
	"fmt"
	"sort"

	"github.com/go-json-experiment/json"
	"github.com/piprate/json-gold/ld"

	"github.com/twinfer/ldcontext/jsonld"
)

// RDF vocabulary IRIs.
const (
	RDFType   = jsonld.RDFNamespace + "type"
	XSDString = jsonld.XSDNamespace + "string"
)

// DefaultGraph is the name json-gold gives the default graph.
const DefaultGraph = "@default"

// Statement is one triple with its nodes flattened to strings. Datatype and
// Language are set only for literal objects.
type Statement struct {
	Subject   string
	Predicate string
	Object    string
	Datatype  string
	Language  string
}

// Dataset converts doc to an RDF dataset. doc is anything that marshals to
// JSON-LD: a document, a slice of documents, or plain maps.
func Dataset(doc any) (*ld.RDFDataset, error) {
	input, err := generic(doc)
	if err != nil {
		return nil, err
	}

	proc := ld.NewJsonLdProcessor()
	raw, err := proc.ToRDF(input, ld.NewJsonLdOptions(""))
	if err != nil {
		return nil, fmt.Errorf("failed to convert JSON-LD to RDF: %w", err)
	}
	dataset, ok := raw.(*ld.RDFDataset)
	if !ok {
		return nil, fmt.Errorf("unexpected RDF dataset type: %T", raw)
	}
	return dataset, nil
}

// NQuads serializes doc as N-Quads.
func NQuads(doc any) (string, error) {
	input, err := generic(doc)
	if err != nil {
		return "", err
	}

	opts := ld.NewJsonLdOptions("")
	opts.Format = "application/n-quads"
	raw, err := ld.NewJsonLdProcessor().ToRDF(input, opts)
	if err != nil {
		return "", fmt.Errorf("failed to convert JSON-LD to RDF: %w", err)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("unexpected N-Quads type: %T", raw)
	}
	return s, nil
}

// Statements returns the triples of the named graph ordered by subject,
// predicate and object. A nil dataset has no statements.
func Statements(dataset *ld.RDFDataset, graph string) []Statement {
	if dataset == nil {
		return nil
	}
	quads := dataset.Graphs[graph]
	out := make([]Statement, 0, len(quads))
	for _, q := range quads {
		st := Statement{
			Subject:   nodeToString(q.Subject),
			Predicate: nodeToString(q.Predicate),
			Object:    nodeToString(q.Object),
		}
		if ld.IsLiteral(q.Object) {
			lit := q.Object.(ld.Literal)
			st.Datatype, st.Language = lit.Datatype, lit.Language
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		if a.Predicate != b.Predicate {
			return a.Predicate < b.Predicate
		}
		return a.Object < b.Object
	})
	return out
}

// generic re-decodes doc into the maps and slices json-gold walks.
func generic(doc any) (any, error) {
	b, err := json.Marshal(doc, json.Deterministic(true))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return v, nil
}

func nodeToString(node ld.Node) string {
	if node == nil {
		return ""
	}
	return node.GetValue()
}
