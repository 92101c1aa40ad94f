package model

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestQualify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare String", "String", "base#string"},
		{"lowercase string", "string", "base#string"},
		{"bare Long", "Long", "base#long"},
		{"bare Timestamp", "Timestamp", "base#timestamp"},
		{"already-qualified structure", "com.example.svc#Node", "com.example.svc#Node"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := qualify(tt.in); got != tt.want {
				t.Errorf("qualify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWirePaginationKeys(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{"bare string", `"Items"`, []string{"Items"}, false},
		{"list of strings", `["Items","More"]`, []string{"Items", "More"}, false},
		{"empty string", `""`, nil, false},
		{"not a string or list", `42`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &wirePagination{ResultKey: []byte(tt.raw)}
			got, err := p.keys()
			if (err != nil) != tt.wantErr {
				t.Fatalf("keys() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("keys() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadJSONServiceFixture(t *testing.T) {
	def, err := LoadJSONFile("example", "../testdata/service.json")
	if err != nil {
		t.Fatalf("LoadJSONFile: %v", err)
	}

	if got, want := def.GetAPIVersion(), "2024-01-01"; got != want {
		t.Errorf("GetAPIVersion() = %q, want %q", got, want)
	}
	if got, want := def.GetEndpointPrefix(), "example"; got != want {
		t.Errorf("GetEndpointPrefix() = %q, want %q", got, want)
	}

	if err := Validate(def); err != nil {
		t.Fatalf("Validate() on a well-formed fixture: %v", err)
	}

	echo, ok := def.GetOperation("com.example.svc#Echo")
	if !ok {
		t.Fatal("Echo operation not found")
	}
	if echo.Input == nil || echo.Input.Shape != "com.example.svc#EchoInput" {
		t.Errorf("Echo.Input = %+v, want shape com.example.svc#EchoInput", echo.Input)
	}

	echoInput, ok := def.GetShape("com.example.svc#EchoInput")
	if !ok {
		t.Fatal("EchoInput shape not found")
	}
	if !echoInput.Required["Message"] {
		t.Errorf("EchoInput.Required[Message] = false, want true")
	}
	msg := echoInput.Members["Message"]
	if msg == nil || msg.Shape != "com.example.svc#EchoString" {
		t.Errorf("EchoInput.Members[Message] = %+v, want shape com.example.svc#EchoString", msg)
	}

	listItems, ok := def.GetOperationPagination("com.example.svc#ListItems")
	if !ok {
		t.Fatal("ListItems has no pagination")
	}
	if diff := cmp.Diff([]string{"Items"}, listItems.ResultKey); diff != "" {
		t.Errorf("ListItems pagination result_key mismatch (-want +got):\n%s", diff)
	}

	node, ok := def.GetShape("com.example.svc#Node")
	if !ok {
		t.Fatal("Node shape not found")
	}
	child := node.Members["Child"]
	if child == nil || child.Shape != node.Name {
		t.Errorf("Node.Child = %+v, want self-reference to %s", child, node.Name)
	}
}

func TestLoadJSONIsDeterministic(t *testing.T) {
	a, err := LoadJSONFile("example", "../testdata/service.json")
	if err != nil {
		t.Fatalf("LoadJSONFile: %v", err)
	}
	b, err := LoadJSONFile("example", "../testdata/service.json")
	if err != nil {
		t.Fatalf("LoadJSONFile: %v", err)
	}
	if diff := cmp.Diff(a.GetShapes(), b.GetShapes()); diff != "" {
		t.Errorf("GetShapes() order differs across loads (-first +second):\n%s", diff)
	}
	for _, name := range a.GetShapes() {
		sa, _ := a.GetShape(name)
		if diff := cmp.Diff(sa.MemberOrder, sortedKeys(sa.Members), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("%s.MemberOrder not sorted (-got +sorted):\n%s", name, diff)
		}
	}
}

func TestLoadJSONRejectsGarbage(t *testing.T) {
	_, err := LoadJSON("example", strings.NewReader("not json"))
	if err == nil {
		t.Fatal("LoadJSON(garbage) = nil error, want a parse error")
	}
}

func TestLoadJSONPreservesEmptyPaginationForValidateToReject(t *testing.T) {
	doc := `{
		"metadata": {"apiVersion": "2024-01-01"},
		"operations": {
			"com.example.svc#Broken": {
				"name": "Broken",
				"http": {"method": "POST", "requestUri": "/"},
				"pagination": {}
			}
		},
		"shapes": {}
	}`
	def, err := LoadJSON("example", strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}

	op, ok := def.GetOperation("com.example.svc#Broken")
	if !ok {
		t.Fatal("Broken operation not found")
	}
	if op.Pagination == nil {
		t.Fatal("LoadJSON dropped a present-but-empty pagination block instead of preserving it for Validate")
	}

	err = Validate(def)
	if _, ok := err.(*ErrInvalidPagination); !ok {
		t.Fatalf("Validate() = %T(%v), want *ErrInvalidPagination", err, err)
	}
}
