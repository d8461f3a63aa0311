// Package codegen defines the generator plugin contract and the registry of
// target languages.
package codegen

import (
	"errors"
	"fmt"

	"github.com/okra-platform/okragen/internal/output"
	"github.com/okra-platform/okragen/internal/schema"
)

// ErrUnsupportedLanguage is returned by a Registry for unknown languages
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Generator is the interface that all language-specific code generators must implement.
// Render must be deterministic: the same schema and namespace always produce the
// same files with the same bytes.
type Generator interface {
	// Language returns the name of the target language (e.g., "go", "typescript")
	Language() string

	// Render writes the generated sources for s into out
	Render(s *schema.Schema, namespace string, out *output.Tree) error
}

// GeneratorError reports a generator that failed while rendering
type GeneratorError struct {
	Language string
	Err      error
}

func (e *GeneratorError) Error() string {
	return fmt.Sprintf("generator %s: %v", e.Language, e.Err)
}

func (e *GeneratorError) Unwrap() error {
	return e.Err
}
