package codegen

import (
	"fmt"
	"sort"
)

// Factory creates a fresh generator instance
type Factory func() Generator

// Registry manages available code generators
type Registry struct {
	generators map[string]Factory
}

// NewRegistry creates an empty generator registry
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]Factory),
	}
}

// Register adds a generator factory under language, replacing any previous one
func (r *Registry) Register(language string, factory Factory) {
	r.generators[language] = factory
}

// Get returns a new generator for the specified language
func (r *Registry) Get(language string) (Generator, error) {
	factory, exists := r.generators[language]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	}
	return factory(), nil
}

// Languages returns the registered language names, sorted
func (r *Registry) Languages() []string {
	languages := make([]string, 0, len(r.generators))
	for lang := range r.generators {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return languages
}
