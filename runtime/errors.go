package sdkruntime

import "fmt"

// MissingParameterError is raised by generated validate() methods
// (spec.md §4.5, §6.5) when a required member is unset. Unlike
// codegen's SchemaError/IoError, this is a runtime error: it's raised
// by the code svcgen emits, not by svcgen itself, so it lives in the
// package generated code imports rather than in codegen.
type MissingParameterError struct {
	Member string
	Class  string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("Missing required parameter: %s (class %s)", e.Member, e.Class)
}

// PaginationNotIterableError describes a paginated result that
// declares more than one result key needing list iteration
// (spec.md §4.6). Nothing in this module constructs it: codegen
// rejects such a pagination at generation time with its own
// PaginationNotIterableErrorAtGenTime.
type PaginationNotIterableError struct {
	Operation string
}

func (e *PaginationNotIterableError) Error() string {
	return fmt.Sprintf("pagination for %s is not iterable: at most one result key may be list-typed", e.Operation)
}
