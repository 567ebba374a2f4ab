package vocab

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twinfer/ldcontext"
)

const breakfastVocab = `
terms:
  bacon:
    as: http://bacon.yum
  toast:
    as: http://example.org/toast
    type: "@id"
  eggs:
    as: http://example.org/eggs
    language: en
  sides:
    as: http://example.org/sides
    container: "@set"
`

func TestLoad(t *testing.T) {
	v, err := Load(strings.NewReader(breakfastVocab))
	require.NoError(t, err)

	assert.Equal(t, []string{"bacon", "eggs", "sides", "toast"}, v.Names())
	assert.Equal(t, Term{As: "http://example.org/toast", Type: "@id"}, v.Terms["toast"])
	assert.Equal(t, Term{As: "http://example.org/sides", Container: "@set"}, v.Terms["sides"])
}

func TestLoadEmpty(t *testing.T) {
	v, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, v.Names())
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"missing as":    "terms:\n  bacon:\n    type: \"@id\"\n",
		"unknown field": "terms:\n  bacon:\n    as: http://bacon.yum\n    iri: nope\n",
		"not a mapping": "terms: [bacon]\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(input))
			require.Error(t, err)
		})
	}

	_, err := Load(strings.NewReader(tests["missing as"]))
	require.ErrorIs(t, err, ldcontext.ErrMissingIRI)
	assert.Contains(t, err.Error(), "bacon")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	require.NoError(t, os.WriteFile(path, []byte(breakfastVocab), 0o644))

	v, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, v.Terms, 4)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestApply(t *testing.T) {
	v, err := Load(strings.NewReader(breakfastVocab))
	require.NoError(t, err)

	reg := ldcontext.NewRegistry()
	require.NoError(t, v.Apply(reg, ldcontext.Object(nil)))

	obj := ldcontext.Object{
		{Name: "toast", Value: "http://example.org/toast/1"},
		{Name: "coffee", Value: "black"},
		{Name: "eggs", Value: "scrambled"},
	}
	ctx, err := reg.Context(obj)
	require.NoError(t, err)
	assert.Equal(t, ldcontext.Context{
		"toast": ldcontext.TermDefinition{"@id": "http://example.org/toast", "@type": "@id"},
		"eggs":  ldcontext.TermDefinition{"@id": "http://example.org/eggs", "@language": "en"},
	}, ctx)

	missing, err := reg.UncontextualizedTerms(obj)
	require.NoError(t, err)
	assert.Equal(t, []string{"coffee"}, missing)
}

func TestApplyStopsOnInvalidTerm(t *testing.T) {
	v := &Vocabulary{Terms: map[string]Term{
		"bacon": {As: "http://bacon.yum", Container: "@bogus"},
	}}

	err := v.Apply(ldcontext.NewRegistry(), ldcontext.Object(nil))
	require.ErrorIs(t, err, ldcontext.ErrInvalidTerm)
}

func TestTermOptionsCarryExtras(t *testing.T) {
	term := Term{As: "http://schema.org/name", Options: map[string]any{"@prefix": false}}

	opts := ldcontext.NewTermOptions(term.TermOptions()...)
	assert.Equal(t, ldcontext.TermDefinition{"@id": "http://schema.org/name", "@prefix": false}, opts.Definition())
}
