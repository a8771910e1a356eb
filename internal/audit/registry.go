package audit

import (
	"fmt"
	"sort"
)

// Factory builds an evaluator for the given ordered question list.
type Factory func(questions []string) Evaluator

// Registry maps category names to evaluator factories. It is populated at startup
// and passed to whoever needs it.
type Registry struct {
	factories map[string]Factory
	fallback  func(name string) Factory
}

// NewRegistry returns an empty registry whose unknown categories get a generic
// averaged evaluator.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		fallback: func(name string) Factory {
			return DefinitionFactory(GenericDefinition(name))
		},
	}
}

// DefaultRegistry returns a registry holding every built-in category.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, def := range []Definition{
		ComplianceDefinition(),
		IdentityAccessDefinition(),
		IntegrationsDefinition(),
		RAGPrivacyDefinition(),
		AgentSafetyDefinition(),
	} {
		r.MustRegister(def.Name, DefinitionFactory(def))
	}
	return r
}

// DefinitionFactory adapts a Definition to a Factory.
func DefinitionFactory(def Definition) Factory {
	return func(questions []string) Evaluator {
		return NewEvaluator(def, questions)
	}
}

// Register adds a factory for category.
func (r *Registry) Register(category string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("audit: nil factory for category %q", category)
	}
	if _, dup := r.factories[category]; dup {
		return fmt.Errorf("audit: category %q registered twice", category)
	}
	r.factories[category] = factory
	return nil
}

// MustRegister is Register that panics on error, for startup wiring.
func (r *Registry) MustRegister(category string, factory Factory) {
	if err := r.Register(category, factory); err != nil {
		panic(err)
	}
}

// Has reports whether category has a dedicated factory.
func (r *Registry) Has(category string) bool {
	_, ok := r.factories[category]
	return ok
}

// Evaluator builds the evaluator for category bound to questions.
func (r *Registry) Evaluator(category string, questions []string) Evaluator {
	if f, ok := r.factories[category]; ok {
		return f(questions)
	}
	return r.fallback(category)(questions)
}

// Categories lists registered category names, sorted.
func (r *Registry) Categories() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
