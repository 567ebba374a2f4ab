package ldcontext

import (
	"maps"

	"bitbucket.org/creachadair/stringset"
)

// Test helpers shared by the package tests.

// stub is a model with a single "bacon" attribute.
type stub struct {
	bacon string
}

func (s *stub) SerializedAttributes() Attributes {
	return Attributes{{Name: "bacon", Value: s.bacon}}
}

// breakfast is a model with several attributes in a fixed order.
type breakfast struct {
	eggs, bacon, toast, coffee string
}

func (b *breakfast) SerializedAttributes() Attributes {
	return Attributes{
		{Name: "eggs", Value: b.eggs},
		{Name: "bacon", Value: b.bacon},
		{Name: "toast", Value: b.toast},
		{Name: "coffee", Value: b.coffee},
	}
}

// addTermCall records one AddTerm invocation.
type addTermCall struct {
	name string
	opts TermOptions
}

// fakeContextualizer records AddTerm calls and answers DefinitionsForTerms
// from a fixed context, restricted to the requested names.
type fakeContextualizer struct {
	calls   []addTermCall
	known   Context
	asked   []stringset.Set
	addErr  error
	fullMap bool // return every known definition regardless of the names asked for
}

func (f *fakeContextualizer) AddTerm(name string, opts TermOptions) error {
	f.calls = append(f.calls, addTermCall{name: name, opts: opts})
	return f.addErr
}

func (f *fakeContextualizer) DefinitionsForTerms(names stringset.Set) Context {
	f.asked = append(f.asked, names.Clone())
	if f.fullMap {
		return maps.Clone(f.known)
	}
	out := make(Context)
	for name, def := range f.known {
		if names.Contains(name) {
			out[name] = def
		}
	}
	return out
}

// factoryFor returns a Factory producing c and counting its invocations.
func factoryFor(c Contextualizer, calls *int) Factory {
	return func() Contextualizer {
		if calls != nil {
			*calls++
		}
		return c
	}
}

// baconContext is the context used by most assembler tests.
func baconContext() Context {
	return Context{"bacon": TermDefinition{"@id": "http://bacon.yum"}}
}
