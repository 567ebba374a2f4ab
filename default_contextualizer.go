package ldcontext

import (
	"fmt"
	"sort"
	"sync"

	"bitbucket.org/creachadair/stringset"

	"github.com/twinfer/ldcontext/jsonld"
)

// DefaultContextualizer is the Contextualizer a Registry builds when a term is
// registered for a model type that has none. Definitions are validated by the
// JSON-LD context processor before they are stored.
type DefaultContextualizer struct {
	mu    sync.RWMutex
	terms map[string]TermDefinition
}

// Verify that DefaultContextualizer implements the Contextualizer interface
var _ Contextualizer = (*DefaultContextualizer)(nil)

// NewDefaultContextualizer returns an empty DefaultContextualizer.
func NewDefaultContextualizer() *DefaultContextualizer {
	return &DefaultContextualizer{terms: make(map[string]TermDefinition)}
}

// defaultFactory adapts NewDefaultContextualizer to a Factory.
func defaultFactory() Contextualizer {
	return NewDefaultContextualizer()
}

// AddTerm records the definition built from opts. A name that is already
// known has its definition replaced.
func (c *DefaultContextualizer) AddTerm(name string, opts TermOptions) error {
	if opts.As == "" {
		return fmt.Errorf("term %q: %w", name, ErrMissingIRI)
	}
	def := opts.Definition()
	if err := jsonld.ValidateTerm(name, def); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTerm, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.terms[name] = def
	return nil
}

// DefinitionsForTerms returns copies of the known definitions for names.
func (c *DefaultContextualizer) DefinitionsForTerms(names stringset.Set) Context {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ctx := make(Context, len(names))
	for name := range names {
		if def, ok := c.terms[name]; ok {
			ctx[name] = def.Clone()
		}
	}
	return ctx
}

// Terms returns the known term names, sorted.
func (c *DefaultContextualizer) Terms() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.terms))
	for name := range c.terms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
