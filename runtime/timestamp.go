// Package sdkruntime is the small set of collaborators generated code
// calls into directly: the date-time wrapper, the streaming-payload
// union, the paged-result base, and the XML node tree ShapeWalker's
// ParseXML fragments are written against. None of it is part of the
// core generator; it is the "runtime" half of spec.md §6 that the
// generator's output depends on at compile time.
package sdkruntime

import (
	"time"

	smithytime "github.com/aws/smithy-go/time"
)

// Timestamp is the emitted type for the "timestamp" wire shape
// (spec.md §6.3): constructible from an already-parsed time.Time or
// from wire text, without the generated field ever needing to know
// which.
type Timestamp struct {
	t time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t}
}

// ParseTimestamp parses an ISO-8601 instant, the wire form AWS-style
// query/XML protocols use, via smithy-go's shared date-time parser
// rather than a hand-rolled time.Parse call list.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := smithytime.ParseDateTime(s)
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp{t: t}, nil
}

// FormatTimestamp renders the wire form used when serializing a
// request.
func FormatTimestamp(ts Timestamp) string {
	return smithytime.FormatDateTime(ts.t)
}

func (ts Timestamp) Time() time.Time { return ts.t }

func (ts Timestamp) String() string { return FormatTimestamp(ts) }
