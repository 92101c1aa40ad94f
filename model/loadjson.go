package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// wireDocument mirrors a botocore-style "api-2.json" service definition:
// a metadata block, an operations map, and a shapes map. Pagination is
// folded directly onto each operation (botocore ships it in a sibling
// paginators-1.json; this generator takes the simpler merged form).
type wireDocument struct {
	Metadata struct {
		APIVersion       string `json:"apiVersion"`
		EndpointPrefix   string `json:"endpointPrefix"`
		SignatureVersion string `json:"signatureVersion"`
		ServiceID        string `json:"serviceId"`
	} `json:"metadata"`
	Operations map[string]*wireOperation `json:"operations"`
	Shapes     map[string]*wireShape     `json:"shapes"`
}

type wireOperation struct {
	Name             string           `json:"name"`
	HTTP             HTTPBinding      `json:"http"`
	Input            *wireIO          `json:"input,omitempty"`
	Output           *wireIO          `json:"output,omitempty"`
	Documentation    string           `json:"documentation,omitempty"`
	DocumentationURL string           `json:"documentationUrl,omitempty"`
	Pagination       *wirePagination  `json:"pagination,omitempty"`
}

type wireIO struct {
	Shape         string `json:"shape"`
	ResultWrapper string `json:"resultWrapper,omitempty"`
}

// wirePagination accepts result_key as either a bare string or a list,
// per spec.md §3.1.
type wirePagination struct {
	ResultKey json.RawMessage `json:"result_key"`
}

func (p *wirePagination) keys() ([]string, error) {
	if p == nil || len(p.ResultKey) == 0 {
		return nil, nil
	}
	var single string
	if err := json.Unmarshal(p.ResultKey, &single); err == nil {
		if single == "" {
			return nil, nil
		}
		return []string{single}, nil
	}
	var multi []string
	if err := json.Unmarshal(p.ResultKey, &multi); err == nil {
		return multi, nil
	}
	return nil, fmt.Errorf("pagination.result_key must be a string or list of strings")
}

type wireShape struct {
	Type          string                `json:"type"`
	Members       map[string]*wireMember `json:"members,omitempty"`
	MemberOrder   []string              `json:"-"`
	Required      []string              `json:"required,omitempty"`
	Payload       string                `json:"payload,omitempty"`
	Documentation string                `json:"documentation,omitempty"`
	Member        *wireMember           `json:"member,omitempty"`
	Key           *wireMember           `json:"key,omitempty"`
	Value         *wireMember           `json:"value,omitempty"`
}

type wireMember struct {
	Shape         string        `json:"shape"`
	Location      string        `json:"location,omitempty"`
	LocationName  string        `json:"locationName,omitempty"`
	Streaming     bool          `json:"streaming,omitempty"`
	XMLAttribute  bool          `json:"xmlAttribute,omitempty"`
	XMLNamespace  *XMLNamespace `json:"xmlNamespace,omitempty"`
	Documentation string        `json:"documentation,omitempty"`
}

func toShapeType(t string) ShapeType {
	switch t {
	case "string":
		return ShapeString
	case "boolean":
		return ShapeBoolean
	case "integer":
		return ShapeInteger
	case "long":
		return ShapeLong
	case "blob":
		return ShapeBlob
	case "timestamp":
		return ShapeTimestamp
	case "list":
		return ShapeList
	case "map":
		return ShapeMap
	case "structure":
		return ShapeStructure
	default:
		return ShapeUnknown
	}
}

func toMember(w *wireMember) *Member {
	if w == nil {
		return nil
	}
	return &Member{
		Shape:         AbsoluteIdentifier(qualify(w.Shape)),
		Location:      Location(w.Location),
		LocationName:  w.LocationName,
		Streaming:     w.Streaming,
		XMLAttribute:  w.XMLAttribute,
		XMLNamespace:  w.XMLNamespace,
		Documentation: w.Documentation,
	}
}

// qualify maps bare scalar type names onto the "base#" namespace used
// throughout the model package, and leaves structure/list/map shape
// names (which are always distinctly named in botocore documents) as
// they are.
func qualify(name string) string {
	switch name {
	case "String", "string":
		return "base#string"
	case "Boolean", "boolean":
		return "base#boolean"
	case "Integer", "integer":
		return "base#integer"
	case "Long", "long":
		return "base#long"
	case "Blob", "blob":
		return "base#blob"
	case "Timestamp", "timestamp":
		return "base#timestamp"
	default:
		return name
	}
}

// LoadJSON parses a botocore-style api-2.json document from r and
// returns a populated InMemoryDefinition.
func LoadJSON(serviceName string, r io.Reader) (*InMemoryDefinition, error) {
	var doc wireDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse service definition: %w", err)
	}
	def := NewInMemoryDefinition(serviceName)
	def.APIVersion = doc.Metadata.APIVersion
	def.EndpointPrefix = doc.Metadata.EndpointPrefix
	def.SignatureVersion = doc.Metadata.SignatureVersion

	// encoding/json decodes objects into maps, which have no stable
	// iteration order; sort shape, member, and operation names so that
	// two runs over the same document always emit in the same order
	// (spec.md §8 invariant 4: re-running the generator is idempotent).
	for _, name := range sortedKeys(doc.Shapes) {
		ws := doc.Shapes[name]
		s := &Shape{
			Name:          AbsoluteIdentifier(name),
			Type:          toShapeType(ws.Type),
			Documentation: ws.Documentation,
			Payload:       ws.Payload,
		}
		if ws.Type == "structure" {
			s.Members = make(map[string]*Member, len(ws.Members))
			s.Required = make(map[string]bool, len(ws.Required))
			for _, r := range ws.Required {
				s.Required[r] = true
			}
			s.MemberOrder = sortedKeys(ws.Members)
			for mn, wm := range ws.Members {
				s.Members[mn] = toMember(wm)
			}
		}
		if ws.Type == "list" {
			s.ListMember = toMember(ws.Member)
		}
		if ws.Type == "map" {
			s.MapKey = toMember(ws.Key)
			s.MapValue = toMember(ws.Value)
		}
		def.AddShape(s)
	}

	for _, on := range sortedKeys(doc.Operations) {
		wo := doc.Operations[on]
		op := &Operation{
			Name:             AbsoluteIdentifier(on),
			HTTP:             wo.HTTP,
			Documentation:    wo.Documentation,
			DocumentationURL: wo.DocumentationURL,
		}
		if wo.Input != nil {
			op.Input = &OperationIO{Shape: AbsoluteIdentifier(wo.Input.Shape)}
		}
		if wo.Output != nil {
			op.Output = &OperationIO{Shape: AbsoluteIdentifier(wo.Output.Shape), ResultWrapper: wo.Output.ResultWrapper}
		}
		if wo.Pagination != nil {
			keys, err := wo.Pagination.keys()
			if err != nil {
				return nil, fmt.Errorf("operation %s: %w", on, err)
			}
			// A present-but-empty pagination block is preserved rather
			// than dropped, so Validate's "result_key is empty" check
			// (spec.md §3.1) actually sees it instead of a nil Pagination
			// indistinguishable from an operation that never declared one.
			op.Pagination = &Pagination{ResultKey: keys}
		}
		def.AddOperation(op)
	}
	return def, nil
}

// LoadJSONFile is a convenience wrapper around LoadJSON for a path on disk.
func LoadJSONFile(serviceName, path string) (*InMemoryDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open service definition: %w", err)
	}
	defer f.Close()
	return LoadJSON(serviceName, f)
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
