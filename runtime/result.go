package sdkruntime

import (
	"github.com/aws/smithy-go"
)

// Result is the base type every root output class embeds (spec.md
// §4.6). It carries nothing generated code needs to read directly;
// it exists so ResultGenerator has a common embed to hang
// populateResult off of, and so callers can type-assert a generic
// "did this operation return a Result" check.
type Result struct{}

// WrapOperationError adapts an error surfaced while populating a
// result into smithy-go's OperationError, the same wrapping
// convention AWS SDK v2 clients use, so callers get a consistent
// Service()/Operation() accessor regardless of which client emitted
// the failure.
func WrapOperationError(serviceID, operationName string, err error) error {
	if err == nil {
		return nil
	}
	return &smithy.OperationError{
		ServiceID:     serviceID,
		OperationName: operationName,
		Err:           err,
	}
}

// PageIterator is the lazy cross-page sequence iterator() emits for a
// paginated result key (spec.md §4.6). Next advances to the next
// element, loading the next page via fetchNext when the current page
// is exhausted; fetchNext is the TODO-stubbed "load next page" hook
// the generator leaves for hand-written page-fetching logic.
type PageIterator struct {
	page      []interface{}
	pos       int
	done      bool
	fetchNext func() ([]interface{}, bool, error)
}

// NewPageIterator starts an iterator over firstPage, calling
// fetchNext to retrieve each subsequent page; fetchNext's second
// return value is false once there is no further page.
func NewPageIterator(firstPage []interface{}, fetchNext func() ([]interface{}, bool, error)) *PageIterator {
	return &PageIterator{page: firstPage, fetchNext: fetchNext}
}

// Next returns the next element across all pages, or ok=false once
// every page has been exhausted.
func (it *PageIterator) Next() (interface{}, bool, error) {
	for it.pos >= len(it.page) {
		if it.done {
			return nil, false, nil
		}
		next, more, err := it.fetchNext()
		if err != nil {
			return nil, false, err
		}
		it.page = next
		it.pos = 0
		if !more {
			it.done = true
		}
		if len(it.page) == 0 && it.done {
			return nil, false, nil
		}
	}
	v := it.page[it.pos]
	it.pos++
	return v, true, nil
}
