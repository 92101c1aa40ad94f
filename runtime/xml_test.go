package sdkruntime

import (
	"strings"
	"testing"
)

func mustParseXML(t *testing.T, body string) *XMLNode {
	t.Helper()
	node, err := ParseXMLRoot(strings.NewReader(body))
	if err != nil {
		t.Fatalf("ParseXMLRoot: %v", err)
	}
	return node
}

func TestXMLNodeChildAndText(t *testing.T) {
	root := mustParseXML(t, `<Result><Name>widget</Name></Result>`)
	if root.Name != "Result" {
		t.Fatalf("root.Name = %q, want Result", root.Name)
	}
	child := root.Child("Name")
	if child == nil || child.Text != "widget" {
		t.Fatalf("root.Child(Name) = %+v, want Text=widget", child)
	}
	if root.Child("Missing") != nil {
		t.Errorf("root.Child(Missing) = non-nil, want nil")
	}
}

func TestXMLNodeChildrenPreservesOrder(t *testing.T) {
	root := mustParseXML(t, `<Items><member>a</member><member>b</member><member>c</member></Items>`)
	members := root.Children("member")
	if len(members) != 3 {
		t.Fatalf("len(Children(member)) = %d, want 3", len(members))
	}
	for i, want := range []string{"a", "b", "c"} {
		if members[i].Text != want {
			t.Errorf("Children(member)[%d].Text = %q, want %q", i, members[i].Text, want)
		}
	}
}

func TestXMLNodeAttr(t *testing.T) {
	root := mustParseXML(t, `<Item id="abc">value</Item>`)
	v, ok := root.Attr("id")
	if !ok || v != "abc" {
		t.Errorf("Attr(id) = %q, %v, want abc, true", v, ok)
	}
	if _, ok := root.Attr("missing"); ok {
		t.Errorf("Attr(missing) = true, want false")
	}
}

func TestParseXMLListDecodesEachChild(t *testing.T) {
	root := mustParseXML(t, `<Items><member>1</member><member>2</member></Items>`)
	got := ParseXMLList(root, "member", func(n *XMLNode) int {
		v := IntFromXML(n)
		if v == nil {
			return -1
		}
		return *v
	})
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("ParseXMLList() = %v, want [1 2]", got)
	}
}

func TestParseXMLMapKeyedByChildElement(t *testing.T) {
	root := mustParseXML(t, `<Tags><entry><key>color</key><value>blue</value></entry><entry><key>size</key><value>large</value></entry></Tags>`)
	got := ParseXMLMap(root, "key", func(n *XMLNode) string {
		v := StringFromXML(n.Child("value"))
		if v == nil {
			return ""
		}
		return *v
	})
	want := map[string]string{"color": "blue", "size": "large"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ParseXMLMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
	if len(got) != len(want) {
		t.Errorf("ParseXMLMap() has %d entries, want %d", len(got), len(want))
	}
}

func TestScalarFromXMLHelpers(t *testing.T) {
	root := mustParseXML(t, `<Root><N>42</N><B>true</B><Bad>nope</Bad></Root>`)
	if got := IntFromXML(root.Child("N")); got == nil || *got != 42 {
		t.Errorf("IntFromXML(N) = %v, want 42", got)
	}
	if got := BoolFromXML(root.Child("B")); got == nil || *got != true {
		t.Errorf("BoolFromXML(B) = %v, want true", got)
	}
	if got := IntFromXML(root.Child("Bad")); got != nil {
		t.Errorf("IntFromXML(Bad) = %v, want nil", got)
	}
	if got := IntFromXML(nil); got != nil {
		t.Errorf("IntFromXML(nil) = %v, want nil", got)
	}
}

func TestXMLValueOrNullDistinguishesAbsentFromEmpty(t *testing.T) {
	root := mustParseXML(t, `<Root><Empty></Empty></Root>`)
	if got := XMLValueOrNull(root.Child("Empty")); got == nil || *got != "" {
		t.Errorf("XMLValueOrNull(present empty element) = %v, want a pointer to \"\"", got)
	}
	if got := XMLValueOrNull(root.Child("Missing")); got != nil {
		t.Errorf("XMLValueOrNull(absent element) = %v, want nil", got)
	}
}

func TestStringFromStringHelpers(t *testing.T) {
	if got := IntFromString("7"); got == nil || *got != 7 {
		t.Errorf("IntFromString(7) = %v, want 7", got)
	}
	if got := IntFromString("not a number"); got != nil {
		t.Errorf("IntFromString(garbage) = %v, want nil", got)
	}
	if got := BoolFromString("true"); got == nil || *got != true {
		t.Errorf("BoolFromString(true) = %v, want true", got)
	}
	if got := StringPtr("x"); got == nil || *got != "x" {
		t.Errorf("StringPtr(x) = %v, want pointer to x", got)
	}
}
