package codegen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassAddMethodPreservesOrder(t *testing.T) {
	cls := NewClass("client", "Widget")
	cls.AddMethod(&Method{Name: "GetName", Body: "func ... {}"})
	cls.AddMethod(&Method{Name: "GetId", Body: "func ... {}"})
	cls.AddMethod(&Method{Name: "validate", Body: "func ... {}"})

	want := []string{"GetName", "GetId", "validate"}
	if diff := cmp.Diff(want, cls.MethodOrder()); diff != "" {
		t.Errorf("MethodOrder() mismatch (-want +got):\n%s", diff)
	}
}

func TestClassAddMethodOverwriteKeepsOriginalPosition(t *testing.T) {
	cls := NewClass("client", "Widget")
	cls.AddMethod(&Method{Name: "GetName", Body: "v1"})
	cls.AddMethod(&Method{Name: "GetId", Body: "v1"})
	cls.AddMethod(&Method{Name: "GetName", Body: "v2"})

	want := []string{"GetName", "GetId"}
	if diff := cmp.Diff(want, cls.MethodOrder()); diff != "" {
		t.Errorf("MethodOrder() mismatch (-want +got):\n%s", diff)
	}
	if cls.Methods["GetName"].Body != "v2" {
		t.Errorf("Methods[GetName].Body = %q, want v2 (last write wins)", cls.Methods["GetName"].Body)
	}
}

func TestClassRemoveMethod(t *testing.T) {
	cls := NewClass("client", "Widget")
	cls.AddMethod(&Method{Name: "GetName", Body: "..."})
	cls.AddMethod(&Method{Name: "GetId", Body: "..."})
	cls.RemoveMethod("GetName")

	if cls.HasMethod("GetName") {
		t.Error("HasMethod(GetName) = true after RemoveMethod, want false")
	}
	if diff := cmp.Diff([]string{"GetId"}, cls.MethodOrder()); diff != "" {
		t.Errorf("MethodOrder() mismatch (-want +got):\n%s", diff)
	}
}

func TestClassRemoveMethodOnAbsentNameIsNoOp(t *testing.T) {
	cls := NewClass("client", "Widget")
	cls.AddMethod(&Method{Name: "GetId", Body: "..."})
	cls.RemoveMethod("DoesNotExist")
	if diff := cmp.Diff([]string{"GetId"}, cls.MethodOrder()); diff != "" {
		t.Errorf("MethodOrder() mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"no newline", "one line", []string{"one line"}},
		{"two lines", "first\nsecond", []string{"first", "second"}},
		{"trailing newline", "first\n", []string{"first", ""}},
		{"empty", "", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, splitLines(tt.in)); diff != "" {
				t.Errorf("splitLines(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}
