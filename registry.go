package ldcontext

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sync"
)

// Registry binds one Contextualizer to each model type. Bindings are keyed by
// the dynamic Go type of the model, so a typed nil such as (*Post)(nil) can
// stand in for the type when configuring.
//
// Configuration is expected to happen before models are queried. The zero
// value is not usable; create one with NewRegistry.
type Registry struct {
	mu         sync.RWMutex
	bindings   map[reflect.Type]Contextualizer
	newDefault Factory
	logger     *slog.Logger
}

// config holds configuration options for a Registry.
type config struct {
	factory Factory
	logger  *slog.Logger
}

// RegistryOption is a function that configures a Registry.
type RegistryOption func(*config)

// WithDefaultFactory sets the factory used to build a contextualizer when a
// term is registered for a model type that has none.
func WithDefaultFactory(f Factory) RegistryOption {
	return func(c *config) {
		c.factory = f
	}
}

// WithLogger sets the logger used for binding events.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(c *config) {
		c.logger = logger
	}
}

// defaultConfig returns a config that builds DefaultContextualizers and
// discards log output.
func defaultConfig() *config {
	return &config{
		factory: defaultFactory,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.factory == nil {
		cfg.factory = defaultFactory
	}
	if cfg.logger == nil {
		cfg.logger = defaultConfig().logger
	}
	return &Registry{
		bindings:   make(map[reflect.Type]Contextualizer),
		newDefault: cfg.factory,
		logger:     cfg.logger,
	}
}

// ContextualizeWith binds the contextualizer built by f to m's type. It fails
// with ErrAlreadyConfigured if the type already has a binding, whether set by
// an earlier ContextualizeWith or by Contextualize. f runs without the
// registry lock held and is not called when the type is already bound.
func (r *Registry) ContextualizeWith(m Model, f Factory) error {
	t, err := modelType(m)
	if err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("contextualize %s: %w", t, ErrNilContextualizer)
	}

	if r.isBound(t) {
		return fmt.Errorf("contextualize %s: %w", t, ErrAlreadyConfigured)
	}
	c := f()
	if c == nil {
		return fmt.Errorf("contextualize %s: factory returned %w", t, ErrNilContextualizer)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bindings[t]; ok {
		return fmt.Errorf("contextualize %s: %w", t, ErrAlreadyConfigured)
	}
	r.bindings[t] = c
	r.logger.Debug("contextualizer bound", "model", t.String(), "contextualizer", fmt.Sprintf("%T", c))
	return nil
}

func (r *Registry) isBound(t reflect.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.bindings[t]
	return ok
}

// Contextualizer returns the contextualizer bound to m's type.
func (r *Registry) Contextualizer(m Model) (Contextualizer, bool) {
	t, err := modelType(m)
	if err != nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.bindings[t]
	return c, ok
}

// Contextualize registers a term for the named attribute of m's type. If the
// type has no contextualizer yet, one is built with the registry's default
// factory and bound first; it stays bound even if the term is rejected.
func (r *Registry) Contextualize(m Model, name string, opts ...TermOption) error {
	t, err := modelType(m)
	if err != nil {
		return err
	}

	c, err := r.bindOrDefault(t)
	if err != nil {
		return err
	}
	if err := c.AddTerm(name, NewTermOptions(opts...)); err != nil {
		return fmt.Errorf("contextualize %s.%s: %w", t, name, err)
	}
	return nil
}

// bindOrDefault returns t's contextualizer, building the default one if needed.
// If another caller binds t while the default is being built, that binding wins.
func (r *Registry) bindOrDefault(t reflect.Type) (Contextualizer, error) {
	r.mu.RLock()
	c, ok := r.bindings[t]
	r.mu.RUnlock()
	if ok {
		return c, nil
	}

	c = r.newDefault()
	if c == nil {
		return nil, fmt.Errorf("contextualize %s: default factory returned %w", t, ErrNilContextualizer)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.bindings[t]; ok {
		return existing, nil
	}
	r.bindings[t] = c
	r.logger.Debug("default contextualizer bound", "model", t.String(), "contextualizer", fmt.Sprintf("%T", c))
	return c, nil
}

// Reset removes the binding for m's type, if any.
func (r *Registry) Reset(m Model) {
	t, err := modelType(m)
	if err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bindings, t)
}

// Clear removes all bindings.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = make(map[reflect.Type]Contextualizer)
}

// modelType returns the key under which m's binding is stored.
func modelType(m Model) (reflect.Type, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	return reflect.TypeOf(m), nil
}
