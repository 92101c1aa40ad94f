package sdkruntime

import (
	"io"
	"strings"
)

// StreamingPayload is the input-side union from spec.md §6.4: a
// streaming member accepts a raw string, an io.Reader, or a zero-arg
// producer function that lazily yields the contents.
type StreamingPayload struct {
	raw      string
	reader   io.Reader
	producer func() (io.Reader, error)
}

func StreamFromString(s string) StreamingPayload {
	return StreamingPayload{raw: s}
}

func StreamFromReader(r io.Reader) StreamingPayload {
	return StreamingPayload{reader: r}
}

func StreamFromProducer(p func() (io.Reader, error)) StreamingPayload {
	return StreamingPayload{producer: p}
}

// Reader resolves the union to a single io.Reader, calling the
// producer lazily if that's how the payload was constructed.
func (p StreamingPayload) Reader() (io.Reader, error) {
	switch {
	case p.producer != nil:
		return p.producer()
	case p.reader != nil:
		return p.reader, nil
	default:
		return strings.NewReader(p.raw), nil
	}
}

// StreamableBody is the output-side handle from spec.md §6.4: a
// wrapper around the HTTP response body that the Result class
// populates a streaming payload field with.
type StreamableBody struct {
	io.ReadCloser
}

func NewStreamableBody(r io.ReadCloser) StreamableBody {
	return StreamableBody{ReadCloser: r}
}

// NewStreamableBodyFromReader wraps a plain io.Reader (a response
// body the transport hasn't given a Close method to) into a
// StreamableBody, for the no-httpClient fallback path of
// populateResult.
func NewStreamableBodyFromReader(r io.Reader) StreamableBody {
	if rc, ok := r.(io.ReadCloser); ok {
		return StreamableBody{ReadCloser: rc}
	}
	return StreamableBody{ReadCloser: io.NopCloser(r)}
}
