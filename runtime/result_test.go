package sdkruntime

import (
	"errors"
	"testing"

	"github.com/aws/smithy-go"
)

func TestWrapOperationErrorNilIsNil(t *testing.T) {
	if err := WrapOperationError("svc", "Op", nil); err != nil {
		t.Errorf("WrapOperationError(nil) = %v, want nil", err)
	}
}

func TestWrapOperationErrorCarriesServiceAndOperation(t *testing.T) {
	inner := errors.New("boom")
	err := WrapOperationError("svc", "Op", inner)
	opErr, ok := err.(*smithy.OperationError)
	if !ok {
		t.Fatalf("WrapOperationError() = %T, want *smithy.OperationError", err)
	}
	if opErr.ServiceID != "svc" || opErr.OperationName != "Op" {
		t.Errorf("OperationError = %+v, want ServiceID=svc OperationName=Op", opErr)
	}
	if opErr.Err != inner {
		t.Errorf("OperationError.Err = %v, want the original error", opErr.Err)
	}
}

func TestPageIteratorSinglePage(t *testing.T) {
	it := NewPageIterator([]interface{}{1, 2, 3}, func() ([]interface{}, bool, error) {
		return nil, false, nil
	})
	var got []interface{}
	for {
		v, ok, err := it.Next()
		if err != nil {
			t.Fatalf("Next(): %v", err)
		}
		if !ok {
			break
		}
		got = append(got, v)
	}
	if len(got) != 3 {
		t.Fatalf("collected %d items, want 3", len(got))
	}
}

func TestPageIteratorCrossesPages(t *testing.T) {
	pages := [][]interface{}{{1, 2}, {3}}
	next := 0
	it := NewPageIterator(pages[0], func() ([]interface{}, bool, error) {
		next++
		if next >= len(pages) {
			return nil, false, nil
		}
		more := next < len(pages)-1
		return pages[next], more, nil
	})
	var got []interface{}
	for {
		v, ok, err := it.Next()
		if err != nil {
			t.Fatalf("Next(): %v", err)
		}
		if !ok {
			break
		}
		got = append(got, v)
	}
	if len(got) != 3 {
		t.Fatalf("collected %v across pages, want 3 items", got)
	}
}

func TestPageIteratorPropagatesFetchError(t *testing.T) {
	wantErr := errors.New("fetch failed")
	it := NewPageIterator(nil, func() ([]interface{}, bool, error) {
		return nil, false, wantErr
	})
	_, _, err := it.Next()
	if err != wantErr {
		t.Errorf("Next() error = %v, want %v", err, wantErr)
	}
}
