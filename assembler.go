package ldcontext

import (
	"fmt"

	"bitbucket.org/creachadair/stringset"

	"github.com/twinfer/ldcontext/jsonld"
)

// Context returns the term definitions for m's serialized attributes. Names
// the contextualizer does not know are omitted.
func (r *Registry) Context(m Model) (Context, error) {
	c, err := r.bound(m)
	if err != nil {
		return nil, err
	}
	return assemble(c, m.SerializedAttributes()), nil
}

// AsJSONLD returns m's serialized attributes with "@context" added. An
// attribute already named "@context" is replaced by the generated context.
func (r *Registry) AsJSONLD(m Model) (Document, error) {
	c, err := r.bound(m)
	if err != nil {
		return Document{}, err
	}
	attrs := m.SerializedAttributes()
	return Document{
		Attributes: attrs.Without(jsonld.KeywordContext),
		Context:    assemble(c, attrs),
	}, nil
}

// UncontextualizedTerms returns, in attribute order, the names of m's
// serialized attributes that have no term definition.
func (r *Registry) UncontextualizedTerms(m Model) ([]string, error) {
	c, err := r.bound(m)
	if err != nil {
		return nil, err
	}
	attrs := m.SerializedAttributes()
	ctx := assemble(c, attrs)

	var missing []string
	for _, name := range attrs.Names() {
		if _, ok := ctx[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// bound returns the contextualizer for m's type or ErrNotConfigured.
func (r *Registry) bound(m Model) (Contextualizer, error) {
	t, err := modelType(m)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	c, ok := r.bindings[t]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", t, ErrNotConfigured)
	}
	return c, nil
}

// assemble asks c for the definitions of attrs' names and drops anything
// returned for a name that is not an attribute.
func assemble(c Contextualizer, attrs Attributes) Context {
	names := stringset.New(attrs.Names()...)
	defs := c.DefinitionsForTerms(names.Clone())

	ctx := make(Context, len(defs))
	for name, def := range defs {
		if names.Contains(name) {
			ctx[name] = def
		}
	}
	return ctx
}
