package sdkruntime

import (
	"io"
	"strings"
	"testing"
)

func TestStreamFromStringReader(t *testing.T) {
	p := StreamFromString("hello")
	r, err := p.Reader()
	if err != nil {
		t.Fatalf("Reader(): %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("Reader() content = %q, want %q", got, "hello")
	}
}

func TestStreamFromReaderPassesThrough(t *testing.T) {
	src := strings.NewReader("world")
	p := StreamFromReader(src)
	r, err := p.Reader()
	if err != nil {
		t.Fatalf("Reader(): %v", err)
	}
	if r != src {
		t.Error("Reader() did not return the original io.Reader")
	}
}

func TestStreamFromProducerIsLazy(t *testing.T) {
	called := false
	p := StreamFromProducer(func() (io.Reader, error) {
		called = true
		return strings.NewReader("lazy"), nil
	})
	if called {
		t.Fatal("producer invoked before Reader() was called")
	}
	r, err := p.Reader()
	if err != nil {
		t.Fatalf("Reader(): %v", err)
	}
	if !called {
		t.Error("producer never invoked by Reader()")
	}
	got, _ := io.ReadAll(r)
	if string(got) != "lazy" {
		t.Errorf("Reader() content = %q, want lazy", got)
	}
}

func TestNewStreamableBodyFromReaderWrapsPlainReaders(t *testing.T) {
	body := NewStreamableBodyFromReader(strings.NewReader("data"))
	got, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "data" {
		t.Errorf("StreamableBody content = %q, want data", got)
	}
	if err := body.Close(); err != nil {
		t.Errorf("Close() on a NopCloser-wrapped reader = %v, want nil", err)
	}
}

func TestNewStreamableBodyFromReaderPreservesExistingReadCloser(t *testing.T) {
	rc := io.NopCloser(strings.NewReader("data"))
	body := NewStreamableBodyFromReader(rc)
	if body.ReadCloser != rc {
		t.Error("NewStreamableBodyFromReader rewrapped an already-ReadCloser reader instead of reusing it")
	}
}
