package ldcontext

import "errors"

var (
	// ErrAlreadyConfigured is returned when a contextualizer is bound to a
	// model type that already has one.
	ErrAlreadyConfigured = errors.New("contextualizer already configured")

	// ErrNotConfigured is returned by context queries on a model type with no
	// contextualizer bound.
	ErrNotConfigured = errors.New("contextualizer not configured")

	// ErrNilContextualizer is returned when a factory is nil or produces nil.
	ErrNilContextualizer = errors.New("nil contextualizer")

	// ErrNilModel is returned when a nil interface is passed as a model.
	ErrNilModel = errors.New("nil model")

	// ErrMissingIRI is returned when a term is registered without an IRI.
	ErrMissingIRI = errors.New("term has no IRI")

	// ErrInvalidTerm is returned when a term definition is rejected by the
	// JSON-LD context processor.
	ErrInvalidTerm = errors.New("invalid term definition")
)
