package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kcoder/clientgen/model"
)

// xmlMemberConfig is one member edge in the pruned shape subtree
// (spec.md §4.7.1): enough for the runtime XMLBuilder to find the
// member's value by name and know where it goes on the wire.
type xmlMemberConfig struct {
	Name         string
	Shape        string
	LocationName string
	XMLAttribute bool
}

// xmlShapeConfig is one node of the pruned subtree: a structure's
// member set, or a list's element descriptor. Scalars carry only Type.
type xmlShapeConfig struct {
	Name    string
	Type    string
	Members []xmlMemberConfig
	Member  *xmlMemberConfig
}

// xmlRootConfig is the synthetic "_root" entry spec.md §4.7.1 names.
type xmlRootConfig struct {
	Type    string
	XMLName string
	URI     string
}

// xmlConfig is the full pruned map, ready to render as the literal
// argument to sdkruntime.NewXMLBuilder.
type xmlConfig struct {
	Root   xmlRootConfig
	Shapes []xmlShapeConfig
}

// PruneXMLConfig extracts the pruned shape subtree reachable from
// payloadShapeID, per spec.md §4.7.1: starting at the payload shape,
// every shape transitively reachable through structure members and
// list elements, scalars reduced to their bare type name. payloadMember
// supplies the XML element name (its locationName) and namespace for
// the synthetic root entry.
func PruneXMLConfig(def model.ServiceDefinition, payloadShapeID model.AbsoluteIdentifier, payloadMember *model.Member) (*xmlConfig, error) {
	shapes := map[string]xmlShapeConfig{}
	if err := pruneShape(def, payloadShapeID, shapes, map[model.AbsoluteIdentifier]bool{}); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(shapes))
	for n := range shapes {
		names = append(names, n)
	}
	sort.Strings(names)
	ordered := make([]xmlShapeConfig, 0, len(shapes))
	for _, n := range names {
		ordered = append(ordered, shapes[n])
	}

	xmlName := payloadMember.LocationName
	if xmlName == "" {
		xmlName = model.StripNamespace(payloadShapeID)
	}
	uri := ""
	if payloadMember.XMLNamespace != nil {
		uri = payloadMember.XMLNamespace.URI
	}
	return &xmlConfig{
		Root:   xmlRootConfig{Type: string(payloadShapeID), XMLName: xmlName, URI: uri},
		Shapes: ordered,
	}, nil
}

func pruneShape(def model.ServiceDefinition, shapeID model.AbsoluteIdentifier, out map[string]xmlShapeConfig, seen map[model.AbsoluteIdentifier]bool) error {
	if seen[shapeID] {
		return nil
	}
	seen[shapeID] = true

	shape, ok := def.GetShape(shapeID)
	if !ok {
		// A base scalar: "base#string" -> "string", matching the wire
		// type names spec.md §4.7.1 says scalars are reduced to.
		out[string(shapeID)] = xmlShapeConfig{Name: string(shapeID), Type: strings.TrimPrefix(string(shapeID), "base#")}
		return nil
	}

	switch shape.Type {
	case model.ShapeStructure:
		members := make([]xmlMemberConfig, 0, len(shape.MemberOrder))
		for _, name := range shape.MemberOrder {
			m := shape.Members[name]
			members = append(members, xmlMemberConfig{
				Name:         name,
				Shape:        string(m.Shape),
				LocationName: m.LocationName,
				XMLAttribute: m.XMLAttribute,
			})
			if err := pruneShape(def, m.Shape, out, seen); err != nil {
				return err
			}
		}
		out[string(shapeID)] = xmlShapeConfig{Name: string(shapeID), Type: "structure", Members: members}

	case model.ShapeList:
		if shape.ListMember == nil {
			return NewSchemaError("list "+string(shapeID), fmt.Errorf("missing member"))
		}
		childName := shape.ListMember.LocationName
		if childName == "" {
			childName = "member"
		}
		out[string(shapeID)] = xmlShapeConfig{
			Name: string(shapeID),
			Type: "list",
			Member: &xmlMemberConfig{
				Shape:        string(shape.ListMember.Shape),
				LocationName: childName,
			},
		}
		if err := pruneShape(def, shape.ListMember.Shape, out, seen); err != nil {
			return err
		}

	default:
		out[string(shapeID)] = xmlShapeConfig{Name: string(shapeID), Type: shape.Type.String()}
	}
	return nil
}

// GoLiteral renders the pruned config as the Go expression
// OperationGenerator splices directly into a generated method body: a
// call to sdkruntime.NewXMLBuilder configured with this subtree. Shape
// and member order are both deterministic (sorted), so two generator
// runs over the same definition produce byte-identical source.
func (c *xmlConfig) GoLiteral() string {
	var b strings.Builder
	fmt.Fprintf(&b, "sdkruntime.NewXMLBuilder(sdkruntime.XMLRootConfig{Type: %q, XMLName: %q, URI: %q}, map[string]sdkruntime.XMLShapeConfig{\n", c.Root.Type, c.Root.XMLName, c.Root.URI)
	for _, s := range c.Shapes {
		fmt.Fprintf(&b, "\t\t%q: %s,\n", s.Name, s.goLiteral())
	}
	b.WriteString("\t})")
	return b.String()
}

func (s xmlShapeConfig) goLiteral() string {
	switch {
	case s.Type == "structure":
		var mb strings.Builder
		mb.WriteString("sdkruntime.XMLShapeConfig{Type: \"structure\", Members: map[string]sdkruntime.XMLMemberConfig{")
		for i, m := range s.Members {
			if i > 0 {
				mb.WriteString(", ")
			}
			fmt.Fprintf(&mb, "%q: {Shape: %q, LocationName: %q, XMLAttribute: %t}", m.Name, m.Shape, m.LocationName, m.XMLAttribute)
		}
		mb.WriteString("}}")
		return mb.String()
	case s.Type == "list" && s.Member != nil:
		return fmt.Sprintf("sdkruntime.XMLShapeConfig{Type: \"list\", Member: &sdkruntime.XMLMemberConfig{Shape: %q, LocationName: %q}}", s.Member.Shape, s.Member.LocationName)
	default:
		return fmt.Sprintf("sdkruntime.XMLShapeConfig{Type: %q}", s.Type)
	}
}
