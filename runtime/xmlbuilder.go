package sdkruntime

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"reflect"
	"sort"
)

// XMLMemberConfig is one member edge in a pruned shape subtree
// (spec.md §4.7.1): which shape the member targets, its wire name, and
// whether it's carried as an XML attribute rather than a child element.
type XMLMemberConfig struct {
	Shape        string
	LocationName string
	XMLAttribute bool
}

// XMLShapeConfig is one node of the pruned subtree: a structure's
// member set, or a list's element descriptor. Scalar shapes carry only
// Type.
type XMLShapeConfig struct {
	Type    string
	Members map[string]XMLMemberConfig
	Member  *XMLMemberConfig
}

// XMLRootConfig is the synthetic "_root" entry codegen.PruneXMLConfig
// extracts: the payload shape's own name, its XML element name, and an
// optional namespace URI.
type XMLRootConfig struct {
	Type    string
	XMLName string
	URI     string
}

// XMLBuilder serializes a generated Input struct's payload member into
// an XML request body, driven by the pruned config OperationGenerator
// splices into the generated method as a literal (spec.md §4.7 step 4).
// It walks the value by reflection rather than per-field generated
// code, because the pruned config is dynamic (one shape graph, decided
// at generation time) while the struct it walks is statically typed:
// field lookups go by the member name's Go-capitalized form, the same
// name InputGenerator gives the exported struct field.
type XMLBuilder struct {
	root   XMLRootConfig
	shapes map[string]XMLShapeConfig
}

func NewXMLBuilder(root XMLRootConfig, shapes map[string]XMLShapeConfig) *XMLBuilder {
	return &XMLBuilder{root: root, shapes: shapes}
}

// Build renders v (the payload member's value) as a complete XML
// document rooted at the configured element name.
func (b *XMLBuilder) Build(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	attrs, err := b.attributesOf(b.root.Type, v)
	if err != nil {
		return nil, err
	}
	buf.WriteString("<" + b.root.XMLName)
	if b.root.URI != "" {
		fmt.Fprintf(&buf, " xmlns=%q", b.root.URI)
	}
	for _, a := range attrs {
		fmt.Fprintf(&buf, " %s=%q", a.name, a.value)
	}
	buf.WriteString(">")
	if err := b.writeBody(&buf, b.root.Type, v); err != nil {
		return nil, err
	}
	buf.WriteString("</" + b.root.XMLName + ">")
	return buf.Bytes(), nil
}

type xmlAttr struct {
	name  string
	value string
}

// attributesOf collects the xmlAttribute-flagged members of a
// structure shape, rendered as attributes on its own element rather
// than child elements.
func (b *XMLBuilder) attributesOf(shapeName string, v interface{}) ([]xmlAttr, error) {
	shape, ok := b.shapes[shapeName]
	if !ok || shape.Type != "structure" {
		return nil, nil
	}
	rv, ok := derefStruct(v)
	if !ok {
		return nil, nil
	}
	names := sortedMemberNames(shape.Members)
	var attrs []xmlAttr
	for _, name := range names {
		mc := shape.Members[name]
		if !mc.XMLAttribute {
			continue
		}
		field := rv.FieldByName(capitalizeMember(name))
		if !field.IsValid() {
			continue
		}
		attrs = append(attrs, xmlAttr{name: memberElementName(name, mc), value: FormatValue(field.Interface())})
	}
	return attrs, nil
}

// writeBody renders shapeName's non-attribute members as child
// elements (structures) or repeated elements (lists), or v's scalar
// text content.
func (b *XMLBuilder) writeBody(buf *bytes.Buffer, shapeName string, v interface{}) error {
	shape, ok := b.shapes[shapeName]
	if !ok {
		return fmt.Errorf("sdkruntime: xml builder has no config for shape %q", shapeName)
	}
	switch shape.Type {
	case "structure":
		rv, ok := derefStruct(v)
		if !ok {
			return nil
		}
		for _, name := range sortedMemberNames(shape.Members) {
			mc := shape.Members[name]
			if mc.XMLAttribute {
				continue
			}
			field := rv.FieldByName(capitalizeMember(name))
			if !field.IsValid() || isEmptyValue(field) {
				continue
			}
			elem := memberElementName(name, mc)
			if err := b.writeElement(buf, elem, mc.Shape, field.Interface()); err != nil {
				return err
			}
		}
		return nil
	case "list":
		return fmt.Errorf("sdkruntime: xml builder cannot render a bare list as a document body")
	default:
		return xml.EscapeText(buf, []byte(FormatValue(v)))
	}
}

// writeElement renders one member value as "<elem>...</elem>",
// recursing into writeBody for nested structures and iterating for
// lists; repeats the wrapper element once per list item.
func (b *XMLBuilder) writeElement(buf *bytes.Buffer, elem, shapeName string, v interface{}) error {
	shape, ok := b.shapes[shapeName]
	if ok && shape.Type == "list" && shape.Member != nil {
		items := reflect.ValueOf(v)
		for i := 0; i < derefLen(items); i++ {
			item := derefIndex(items, i)
			if err := b.writeElement(buf, elem, shape.Member.Shape, item); err != nil {
				return err
			}
		}
		return nil
	}

	attrs, err := b.attributesOf(shapeName, v)
	if err != nil {
		return err
	}
	buf.WriteString("<" + elem)
	for _, a := range attrs {
		fmt.Fprintf(buf, " %s=%q", a.name, a.value)
	}
	buf.WriteString(">")
	if err := b.writeBody(buf, shapeName, v); err != nil {
		return err
	}
	buf.WriteString("</" + elem + ">")
	return nil
}

func memberElementName(memberName string, mc XMLMemberConfig) string {
	if mc.LocationName != "" {
		return mc.LocationName
	}
	return memberName
}

func sortedMemberNames(members map[string]XMLMemberConfig) []string {
	names := make([]string, 0, len(members))
	for n := range members {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func capitalizeMember(name string) string {
	if name == "" {
		return ""
	}
	if name[0] >= 'a' && name[0] <= 'z' {
		return string(name[0]-'a'+'A') + name[1:]
	}
	return name
}

func derefStruct(v interface{}) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	return rv, true
}

func derefLen(v reflect.Value) int {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return 0
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return 0
	}
	return v.Len()
}

func derefIndex(v reflect.Value, i int) interface{} {
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	return v.Index(i).Interface()
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.String:
		return v.Len() == 0
	default:
		return false
	}
}
