// Package model describes the shape graph consumed by the generator:
// structures, lists, maps, and scalars, plus the operations that bind
// them to HTTP wire locations.
package model

import (
	"fmt"
	"strings"
)

// Identifier is a short symbolic name, i.e. "EchoString".
type Identifier string

// Namespace groups identifiers, i.e. "com.example.echo".
type Namespace string

// AbsoluteIdentifier is an Identifier qualified by a Namespace, i.e.
// "com.example.echo#EchoString".
type AbsoluteIdentifier string

func (ident Identifier) Capitalized() string {
	if ident == "" {
		return ""
	}
	s := string(ident)
	if s[0] >= 'A' && s[0] <= 'Z' {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ShapeType enumerates the wire primitive kinds from spec.md §3.1.
type ShapeType int

const (
	ShapeUnknown ShapeType = iota
	ShapeString
	ShapeBoolean
	ShapeInteger
	ShapeLong
	ShapeBlob
	ShapeTimestamp
	ShapeList
	ShapeMap
	ShapeStructure
)

func (t ShapeType) String() string {
	switch t {
	case ShapeString:
		return "string"
	case ShapeBoolean:
		return "boolean"
	case ShapeInteger:
		return "integer"
	case ShapeLong:
		return "long"
	case ShapeBlob:
		return "blob"
	case ShapeTimestamp:
		return "timestamp"
	case ShapeList:
		return "list"
	case ShapeMap:
		return "map"
	case ShapeStructure:
		return "structure"
	default:
		return "unknown"
	}
}

// Location is the part of an HTTP request/response a member is carried in.
type Location string

const (
	LocationPayload     Location = "payload"
	LocationHeader       Location = "header"
	LocationHeaders      Location = "headers"
	LocationURI          Location = "uri"
	LocationQuerystring  Location = "querystring"
)

// XMLNamespace carries an xmlns URI trait on a member or shape.
type XMLNamespace struct {
	URI string `json:"uri,omitempty"`
}

// Member is an edge in the shape graph: a structure field, binding a
// member name to a target shape plus wire metadata.
type Member struct {
	Shape         AbsoluteIdentifier `json:"shape"`
	Location      Location           `json:"location,omitempty"`
	LocationName  string             `json:"locationName,omitempty"`
	Streaming     bool               `json:"streaming,omitempty"`
	XMLAttribute  bool               `json:"xmlAttribute,omitempty"`
	XMLNamespace  *XMLNamespace      `json:"xmlNamespace,omitempty"`
	Documentation string             `json:"documentation,omitempty"`
}

// Shape is a node in the shape graph, identified by a unique name.
type Shape struct {
	Name AbsoluteIdentifier `json:"-"`
	Type ShapeType          `json:"type"`

	// structure
	Members       map[string]*Member `json:"members,omitempty"`
	MemberOrder   []string           `json:"-"` // member names sorted by the loaders, for deterministic codegen
	Required      map[string]bool    `json:"required,omitempty"`
	Payload       string             `json:"payload,omitempty"`
	Documentation string             `json:"documentation,omitempty"`

	// list
	ListMember *Member `json:"member,omitempty"`

	// map
	MapKey   *Member `json:"key,omitempty"`
	MapValue *Member `json:"value,omitempty"`
}

// RequiredMembers returns the structure's required member names in
// MemberOrder order.
func (s *Shape) RequiredMembers() []string {
	var out []string
	for _, name := range s.MemberOrder {
		if s.Required[name] {
			out = append(out, name)
		}
	}
	return out
}

// PayloadMember returns the distinguished payload member name, if any.
func (s *Shape) PayloadMember() (string, *Member, bool) {
	if s.Payload == "" {
		return "", nil, false
	}
	m, ok := s.Members[s.Payload]
	return s.Payload, m, ok
}

// HTTPBinding describes the method and URI template for an operation.
type HTTPBinding struct {
	Method     string `json:"method"`
	RequestURI string `json:"requestUri"`
}

// OperationIO binds a shape name to an operation's input or output,
// optionally naming the XML element the true document is wrapped in.
type OperationIO struct {
	Shape         AbsoluteIdentifier `json:"shape"`
	ResultWrapper string             `json:"resultWrapper,omitempty"`
}

// Pagination describes the lazily-iterable result keys of an operation,
// per spec.md §3.1.
type Pagination struct {
	ResultKey []string `json:"result_key"`
}

// NewPagination builds a Pagination whose result keys are keys, in the
// order given.
func NewPagination(keys ...string) *Pagination {
	return &Pagination{ResultKey: keys}
}

// Operation is a named RPC: input shape, optional output shape, HTTP
// binding, optional pagination.
type Operation struct {
	Name              AbsoluteIdentifier `json:"name"`
	HTTP              HTTPBinding        `json:"http"`
	Input             *OperationIO       `json:"input,omitempty"`
	Output            *OperationIO       `json:"output,omitempty"`
	Documentation     string             `json:"documentation,omitempty"`
	DocumentationURL  string             `json:"documentationUrl,omitempty"`
	Pagination        *Pagination        `json:"pagination,omitempty"`
}

func (op *Operation) String() string {
	return fmt.Sprintf("Operation(%s)", op.Name)
}
