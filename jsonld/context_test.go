package jsonld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTermAccepts(t *testing.T) {
	tests := []struct {
		name string
		def  map[string]any
	}{
		{"bacon", map[string]any{KeywordID: "http://bacon.yum"}},
		{"url", map[string]any{KeywordID: SchemaNamespace + "url", KeywordType: "@id"}},
		{"price", map[string]any{KeywordID: SchemaNamespace + "price", KeywordType: XSDNamespace + "decimal"}},
		{"steps", map[string]any{KeywordID: SchemaNamespace + "step", KeywordContainer: KeywordList}},
		{"tags", map[string]any{KeywordID: SchemaNamespace + "keywords", KeywordContainer: KeywordSet}},
		{"name", map[string]any{KeywordID: SchemaNamespace + "name", KeywordLanguage: "en"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, ValidateTerm(tt.name, tt.def))
		})
	}
}

func TestValidateTermRejects(t *testing.T) {
	tests := []struct {
		label string
		name  string
		def   map[string]any
	}{
		{"empty name", "", map[string]any{KeywordID: "http://bacon.yum"}},
		{"bad container", "bacon", map[string]any{KeywordID: "http://bacon.yum", KeywordContainer: "@bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Error(t, ValidateTerm(tt.name, tt.def))
		})
	}
}

// A whole local context, including @vocab and prefixes, is processed.
func TestValidateContext(t *testing.T) {
	ctx := map[string]any{
		KeywordVocab: SchemaNamespace,
		"xsd":        XSDNamespace,
		"bacon":      map[string]any{KeywordID: "http://bacon.yum"},
		"age":        map[string]any{KeywordID: SchemaNamespace + "age", KeywordType: "xsd:integer"},
	}
	require.NoError(t, ValidateContext(ctx))

	nested := map[string]any{KeywordContext: map[string]any{}}
	assert.Error(t, ValidateContext(nested))
}

func TestValidateTermDoesNotMutate(t *testing.T) {
	def := map[string]any{KeywordID: "http://bacon.yum"}
	require.NoError(t, ValidateTerm("bacon", def))
	assert.Equal(t, map[string]any{KeywordID: "http://bacon.yum"}, def)
}
