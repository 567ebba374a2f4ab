package ldcontext

import (
	"maps"

	"bitbucket.org/creachadair/stringset"

	"github.com/twinfer/ldcontext/jsonld"
)

// Contextualizer maps attribute names to JSON-LD term definitions.
type Contextualizer interface {
	// AddTerm records a term definition for the named attribute.
	AddTerm(name string, opts TermOptions) error
	// DefinitionsForTerms returns the definitions it knows for names.
	// Names without a definition are absent from the result.
	DefinitionsForTerms(names stringset.Set) Context
}

// Factory constructs a Contextualizer for a model type.
type Factory func() Contextualizer

// TermDefinition is an expanded JSON-LD term definition. It always carries
// "@id"; other keyword entries are passed through untouched.
type TermDefinition map[string]any

// ID returns the IRI the term maps to.
func (d TermDefinition) ID() string {
	id, _ := d[jsonld.KeywordID].(string)
	return id
}

// Clone returns a shallow copy of d.
func (d TermDefinition) Clone() TermDefinition {
	return maps.Clone(d)
}

// Context is a JSON-LD context: term name to definition.
type Context map[string]TermDefinition

// Terms returns the set of term names in c.
func (c Context) Terms() stringset.Set {
	return stringset.FromKeys(c)
}

// TermOptions carries the options given when a term is registered.
type TermOptions struct {
	// As is the IRI the term maps to.
	As        string
	Type      string
	Container string
	Language  string
	// Extra holds additional keyword entries, e.g. "@reverse" or "@index".
	Extra map[string]any
}

// TermOption configures TermOptions.
type TermOption func(*TermOptions)

// As sets the IRI the term maps to.
func As(iri string) TermOption {
	return func(o *TermOptions) {
		o.As = iri
	}
}

// WithType sets the term's "@type" coercion, e.g. "@id" or an XSD datatype IRI.
func WithType(typ string) TermOption {
	return func(o *TermOptions) {
		o.Type = typ
	}
}

// WithContainer sets the term's "@container", e.g. "@list" or "@set".
func WithContainer(container string) TermOption {
	return func(o *TermOptions) {
		o.Container = container
	}
}

// WithLanguage sets the term's default "@language".
func WithLanguage(lang string) TermOption {
	return func(o *TermOptions) {
		o.Language = lang
	}
}

// WithOption sets an arbitrary keyword entry on the term definition.
func WithOption(keyword string, value any) TermOption {
	return func(o *TermOptions) {
		if o.Extra == nil {
			o.Extra = make(map[string]any)
		}
		o.Extra[keyword] = value
	}
}

// NewTermOptions applies opts to an empty TermOptions.
func NewTermOptions(opts ...TermOption) TermOptions {
	var o TermOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Definition renders o as a term definition. Named fields take precedence
// over entries of the same keyword in Extra.
func (o TermOptions) Definition() TermDefinition {
	def := make(TermDefinition, len(o.Extra)+4)
	maps.Copy(def, o.Extra)
	def[jsonld.KeywordID] = o.As
	if o.Type != "" {
		def[jsonld.KeywordType] = o.Type
	}
	if o.Container != "" {
		def[jsonld.KeywordContainer] = o.Container
	}
	if o.Language != "" {
		def[jsonld.KeywordLanguage] = o.Language
	}
	return def
}
