// Package jsonld holds the JSON-LD keywords used in term definitions and
// validates local contexts with json-gold's context processing algorithm.
package jsonld

import (
	"fmt"
	"maps"

	"github.com/piprate/json-gold/ld"
)

// JSON-LD keywords.
const (
	KeywordContext   = "@context"
	KeywordID        = "@id"
	KeywordType      = "@type"
	KeywordContainer = "@container"
	KeywordLanguage  = "@language"
	KeywordVocab     = "@vocab"
	KeywordList      = "@list"
	KeywordSet       = "@set"
)

// Well-known namespaces.
const (
	XSDNamespace    = "http://www.w3.org/2001/XMLSchema#"
	RDFNamespace    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	SchemaNamespace = "http://schema.org/"
)

// ValidateContext runs localContext through json-gold's context processing
// and reports the first error. localContext is the body of a "@context"
// object, so a nested "@context" entry is rejected.
func ValidateContext(localContext map[string]any) error {
	if _, ok := localContext[KeywordContext]; ok {
		return fmt.Errorf("nested %s is not supported in a local context", KeywordContext)
	}
	opts := ld.NewJsonLdOptions("")
	if _, err := ld.NewContext(nil, opts).Parse(cloneContext(localContext)); err != nil {
		return fmt.Errorf("failed to process context: %w", err)
	}
	return nil
}

// ValidateTerm checks a single expanded term definition.
func ValidateTerm(name string, definition map[string]any) error {
	if name == "" {
		return fmt.Errorf("term name is empty")
	}
	if err := ValidateContext(map[string]any{name: definition}); err != nil {
		return fmt.Errorf("term %q: %w", name, err)
	}
	return nil
}

// cloneContext copies the top level and any definition maps so the
// processor never touches caller state.
func cloneContext(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if def, ok := v.(map[string]any); ok {
			v = maps.Clone(def)
		}
		out[k] = v
	}
	return out
}
