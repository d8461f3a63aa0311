package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySchema is returned for schema files without any content
	ErrEmptySchema = errors.New("schema file is empty")

	// ErrDuplicateDefinition is returned when two definitions share a name
	ErrDuplicateDefinition = errors.New("duplicate definition")

	// ErrNoSchemaFiles is returned when a locator resolves to nothing
	ErrNoSchemaFiles = errors.New("no schema files found")
)

// ParseError reports a schema file that could not be turned into a Schema.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("schema %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
