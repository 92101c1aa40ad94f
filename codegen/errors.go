package codegen

import "fmt"

// SchemaError covers the fatal shape-graph problems from spec.md §7.1:
// a missing shape, an unknown shape type, a map with no key
// locationName, or pagination that doesn't resolve to a list.
type SchemaError struct {
	Context string
	Err     error
}

func (e *SchemaError) Error() string {
	if e.Context == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Context, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

func NewSchemaError(context string, err error) *SchemaError {
	return &SchemaError{Context: context, Err: err}
}

// UnsupportedDocumentationError is raised when DocFormatter's HTML
// stripping leaves residual '<' characters (spec.md §4.3 step 5).
type UnsupportedDocumentationError struct {
	Source string
}

func (e *UnsupportedDocumentationError) Error() string {
	return fmt.Sprintf("unsupported documentation markup: %q", e.Source)
}

// IoError wraps an error surfaced from FileWriter (spec.md §7.3).
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("io error writing %s: %v", e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }
