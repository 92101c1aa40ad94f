package sdkruntime

import (
	"testing"
	"time"
)

func TestTimestampRoundTripsThroughWireForm(t *testing.T) {
	original := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)
	ts := NewTimestamp(original)
	wire := FormatTimestamp(ts)

	parsed, err := ParseTimestamp(wire)
	if err != nil {
		t.Fatalf("ParseTimestamp(%q): %v", wire, err)
	}
	if !parsed.Time().Equal(original) {
		t.Errorf("round trip produced %v, want %v", parsed.Time(), original)
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	if _, err := ParseTimestamp("not a timestamp"); err == nil {
		t.Error("ParseTimestamp(garbage) = nil error, want an error")
	}
}

func TestTimestampString(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC))
	if got, want := ts.String(), FormatTimestamp(ts); got != want {
		t.Errorf("Timestamp.String() = %q, want %q", got, want)
	}
}
