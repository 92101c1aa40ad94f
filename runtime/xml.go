package sdkruntime

import (
	"encoding/xml"
	"io"
	"strconv"
)

// XMLNode is the generic attribute/child-element tree ShapeWalker's
// parseXml fragments are written against. It wraps the standard
// library's streaming xml.Decoder into a materialized tree so the
// generated walker code (list/map/structure/scalar cases) can address
// children by name and attributes by name, without itself knowing
// anything about decoder state.
type XMLNode struct {
	Name     string
	Attrs    map[string]string
	Text     string
	children []*XMLNode
}

// ParseXMLRoot decodes body into a tree rooted at the document's one
// top-level element, the shape ParseXMLRoot fragments start walking
// from.
func ParseXMLRoot(body io.Reader) (*XMLNode, error) {
	dec := xml.NewDecoder(body)
	return decodeNode(dec)
}

func decodeNode(dec *xml.Decoder) (*XMLNode, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		return decodeElement(dec, start)
	}
}

func decodeElement(dec *xml.Decoder, start xml.StartElement) (*XMLNode, error) {
	n := &XMLNode{Name: start.Name.Local, Attrs: map[string]string{}}
	for _, a := range start.Attr {
		n.Attrs[a.Name.Local] = a.Value
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec, t)
			if err != nil {
				return nil, err
			}
			n.children = append(n.children, child)
		case xml.CharData:
			n.Text += string(t)
		case xml.EndElement:
			return n, nil
		}
	}
}

// Child returns the first direct child named name, or nil.
func (n *XMLNode) Child(name string) *XMLNode {
	if n == nil {
		return nil
	}
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Children returns every direct child named name, in document order.
// The list case of parseXml iterates this slice.
func (n *XMLNode) Children(name string) []*XMLNode {
	if n == nil {
		return nil
	}
	var out []*XMLNode
	for _, c := range n.children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// AllChildren returns every direct child regardless of name, the form
// the map case of parseXml iterates to pull out locationName keys.
func (n *XMLNode) AllChildren() []*XMLNode {
	if n == nil {
		return nil
	}
	return n.children
}

// Attr returns the named attribute's value and whether it was present,
// the xmlAttribute access path in parseXml.
func (n *XMLNode) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

// XMLValueOrNull is the scalar-case runtime helper parseXml emits a
// call to: nil when node is absent, else node's text content coerced
// by the caller.
func XMLValueOrNull(n *XMLNode) *string {
	if n == nil {
		return nil
	}
	v := n.Text
	return &v
}

// MustAttr is the xmlAttribute access path: the attribute value, or
// "" if the node or the attribute is absent.
func MustAttr(n *XMLNode, name string) string {
	v, _ := n.Attr(name)
	return v
}

// ParseXMLList is the list case of parseXml: collect decode(child)
// for every direct child of n named elementName, in document order.
func ParseXMLList[T any](n *XMLNode, elementName string, decode func(*XMLNode) T) []T {
	var out []T
	for _, c := range n.Children(elementName) {
		out = append(out, decode(c))
	}
	return out
}

// ParseXMLMap is the map case of parseXml: every direct child of n
// becomes one entry, keyed by the text of that child's keyLocationName
// child element, valued by decode(child). Children without that
// element are skipped; attributes are not consulted for the key.
func ParseXMLMap[T any](n *XMLNode, keyLocationName string, decode func(*XMLNode) T) map[string]T {
	out := map[string]T{}
	for _, c := range n.AllChildren() {
		key := c.Child(keyLocationName)
		if key == nil {
			continue
		}
		out[key.Text] = decode(c)
	}
	return out
}

// StringFromXML, IntFromXML, BoolFromXML, and TimestampFromXML are
// the scalar-case runtime helpers parseXml dispatches to once the
// target shape's wire type is known, each resolving XMLValueOrNull's
// *string into the concretely-typed pointer a Result field holds.
func StringFromXML(n *XMLNode) *string {
	return XMLValueOrNull(n)
}

func IntFromXML(n *XMLNode) *int {
	s := XMLValueOrNull(n)
	if s == nil {
		return nil
	}
	v, err := strconv.Atoi(*s)
	if err != nil {
		return nil
	}
	return &v
}

func BoolFromXML(n *XMLNode) *bool {
	s := XMLValueOrNull(n)
	if s == nil {
		return nil
	}
	v, err := strconv.ParseBool(*s)
	if err != nil {
		return nil
	}
	return &v
}

func TimestampFromXML(n *XMLNode) *Timestamp {
	s := XMLValueOrNull(n)
	if s == nil {
		return nil
	}
	ts, err := ParseTimestamp(*s)
	if err != nil {
		return nil
	}
	return &ts
}

// StringPtr, IntFromString, BoolFromString, and TimestampFromString
// are the xmlAttribute-path counterparts of the *FromXML helpers
// above: the attribute access expression already yields a string
// rather than a node, so there's nothing to unwrap first.
func StringPtr(s string) *string {
	return &s
}

func IntFromString(s string) *int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func BoolFromString(s string) *bool {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &v
}

func TimestampFromString(s string) *Timestamp {
	ts, err := ParseTimestamp(s)
	if err != nil {
		return nil
	}
	return &ts
}
