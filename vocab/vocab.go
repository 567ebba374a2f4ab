// Package vocab loads term vocabularies from YAML and registers them with an
// ldcontext.Registry.
//
// A vocabulary file looks like:
//
//	terms:
//	  bacon:
//	    as: http://bacon.yum
//	  url:
//	    as: http://schema.org/url
//	    type: "@id"
//	  steps:
//	    as: http://schema.org/step
//	    container: "@list"
//	  name:
//	    as: http://schema.org/name
//	    language: en
//	    options:
//	      "@prefix": false
package vocab

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/twinfer/ldcontext"
)

// Term is one entry of a vocabulary.
type Term struct {
	As        string         `yaml:"as"`
	Type      string         `yaml:"type,omitempty"`
	Container string         `yaml:"container,omitempty"`
	Language  string         `yaml:"language,omitempty"`
	Options   map[string]any `yaml:"options,omitempty"`
}

// TermOptions converts t into registration options.
func (t Term) TermOptions() []ldcontext.TermOption {
	opts := []ldcontext.TermOption{ldcontext.As(t.As)}
	if t.Type != "" {
		opts = append(opts, ldcontext.WithType(t.Type))
	}
	if t.Container != "" {
		opts = append(opts, ldcontext.WithContainer(t.Container))
	}
	if t.Language != "" {
		opts = append(opts, ldcontext.WithLanguage(t.Language))
	}
	for k, v := range t.Options {
		opts = append(opts, ldcontext.WithOption(k, v))
	}
	return opts
}

// Vocabulary maps attribute names to terms.
type Vocabulary struct {
	Terms map[string]Term `yaml:"terms"`
}

// Load decodes a vocabulary from r. Unknown fields are rejected; an empty
// document yields an empty vocabulary.
func Load(r io.Reader) (*Vocabulary, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var v Vocabulary
	if err := dec.Decode(&v); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode vocabulary: %w", err)
	}
	if v.Terms == nil {
		v.Terms = make(map[string]Term)
	}
	for _, name := range v.Names() {
		if v.Terms[name].As == "" {
			return nil, fmt.Errorf("term %q: %w", name, ldcontext.ErrMissingIRI)
		}
	}
	return &v, nil
}

// LoadFile reads a vocabulary from the named file.
func LoadFile(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary: %w", err)
	}
	defer f.Close()

	v, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Names returns the term names, sorted.
func (v *Vocabulary) Names() []string {
	names := make([]string, 0, len(v.Terms))
	for name := range v.Terms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply registers every term for m's type, in name order. It stops at the
// first term the registry rejects.
func (v *Vocabulary) Apply(reg *ldcontext.Registry, m ldcontext.Model) error {
	for _, name := range v.Names() {
		if err := reg.Contextualize(m, name, v.Terms[name].TermOptions()...); err != nil {
			return err
		}
	}
	return nil
}
