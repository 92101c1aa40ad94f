package codegen

import (
	"fmt"
	"strings"

	"github.com/kcoder/clientgen/model"
)

// ShapeWalker exposes the four pure, per-shape code-fragment functions
// spec.md §4.4 describes (constructorInit, validate, parseXml,
// parseXmlRoot), grounded on the teacher's GolangWriter.Emitf template
// style (golang/golang-export.go) but returning fragment strings
// instead of writing directly to a buffer, so InputGenerator and
// ResultGenerator can splice them into method bodies they're still
// assembling.
type ShapeWalker struct {
	def model.ServiceDefinition
	tm  *TypeMapper
}

func NewShapeWalker(def model.ServiceDefinition, tm *TypeMapper) *ShapeWalker {
	return &ShapeWalker{def: def, tm: tm}
}

// ConstructorInit produces the Go statement assigning "out.<Member>"
// from a raw input mapping entry named key, per spec.md §4.4's eight
// rules. scope is the Go expression for the mapping being read (the
// create(input) constructor's parameter).
func (w *ShapeWalker) ConstructorInit(memberName string, member *model.Member, required bool, scope string) string {
	key := accessKey(memberName, member)
	field := model.Identifier(memberName).Capitalized()

	if member.Streaming {
		return fmt.Sprintf(`if v, ok := %s[%q]; ok { out.%s = sdkruntime.StreamFromString(fmt.Sprint(v)) } else { out.%s = sdkruntime.StreamFromString("") }`, scope, key, field, field)
	}

	shape, isShape := w.def.GetShape(member.Shape)
	switch {
	case isShape && shape.Type == model.ShapeStructure && required:
		nested := SanitizeClassName(model.StripNamespace(member.Shape))
		return fmt.Sprintf(`if v, ok := %s[%q]; ok { if p := %sFromAny(v); p != nil { out.%s = *p } }`, scope, key, nested, field)

	case isShape && shape.Type == model.ShapeStructure:
		nested := SanitizeClassName(model.StripNamespace(member.Shape))
		return fmt.Sprintf(`if v, ok := %s[%q]; ok { out.%s = %sFromAny(v) }`, scope, key, field, nested)

	case isShape && shape.Type == model.ShapeList && isStructureMember(w.def, shape.ListMember):
		nested := SanitizeClassName(model.StripNamespace(shape.ListMember.Shape))
		return fmt.Sprintf(`if v, ok := %s[%q].([]interface{}); ok { for _, item := range v { out.%s = append(out.%s, %sFromAny(item)) } }`, scope, key, field, field, nested)

	case isShape && shape.Type == model.ShapeList:
		goType := w.tm.elemGoType(shape.ListMember.Shape)
		return fmt.Sprintf(`if v, ok := %s[%q].([]%s); ok { out.%s = v }`, scope, key, goType, field)

	case isShape && shape.Type == model.ShapeMap && isStructureMember(w.def, shape.MapValue):
		nested := SanitizeClassName(model.StripNamespace(shape.MapValue.Shape))
		return fmt.Sprintf(`if v, ok := %s[%q].(map[string]interface{}); ok { out.%s = map[string]*%s{}; for k, item := range v { out.%s[k] = %sFromAny(item) } }`, scope, key, field, nested, field, nested)

	case isShape && shape.Type == model.ShapeMap:
		kt, _ := w.tm.baseGoType(shape.MapKey.Shape)
		vgo := w.tm.elemGoType(shape.MapValue.Shape)
		return fmt.Sprintf(`if v, ok := %s[%q].(map[%s]%s); ok { out.%s = v }`, scope, key, kt, vgo, field)

	case member.Shape == "base#timestamp" && required:
		return fmt.Sprintf(`if v, ok := %s[%q]; ok { if ts, ok := v.(sdkruntime.Timestamp); ok { out.%s = ts } else if s, ok := v.(string); ok { if ts, err := sdkruntime.ParseTimestamp(s); err == nil { out.%s = ts } } }`, scope, key, field, field)

	case member.Shape == "base#timestamp":
		return fmt.Sprintf(`if v, ok := %s[%q]; ok { if ts, ok := v.(sdkruntime.Timestamp); ok { out.%s = &ts } else if s, ok := v.(string); ok { if ts, err := sdkruntime.ParseTimestamp(s); err == nil { out.%s = &ts } } }`, scope, key, field, field)

	case required:
		goType := strings.TrimPrefix(w.tm.elemGoType(member.Shape), "*")
		return fmt.Sprintf(`if v, ok := %s[%q].(%s); ok { out.%s = v }`, scope, key, goType, field)

	default:
		goType := strings.TrimPrefix(w.tm.elemGoType(member.Shape), "*")
		return fmt.Sprintf(`if v, ok := %s[%q].(%s); ok { out.%s = &v }`, scope, key, goType, field)
	}
}

// Validate produces the statement validating a single member: only
// structures and lists-of-structures recurse; everything else is a
// no-op line (omitted by the caller). Required-member null checks are
// the caller's preamble, not this function's concern — except for a
// required structure member itself, whose field TypeMapper.GoType
// renders as a bare (non-pointer) class type: there's nothing to
// nil-check, so the recursive call is unconditional, mirroring the
// required/optional split ConstructorInit already makes.
func (w *ShapeWalker) Validate(memberName string, member *model.Member, required bool) string {
	field := model.Identifier(memberName).Capitalized()
	shape, ok := w.def.GetShape(member.Shape)
	if !ok {
		return ""
	}
	switch shape.Type {
	case model.ShapeStructure:
		if required {
			return fmt.Sprintf(`if err := out.%s.validate(); err != nil { return err }`, field)
		}
		return fmt.Sprintf(`if out.%s != nil { if err := out.%s.validate(); err != nil { return err } }`, field, field)
	case model.ShapeList:
		if isStructureMember(w.def, shape.ListMember) {
			return fmt.Sprintf(`for _, item := range out.%s { if item != nil { if err := item.validate(); err != nil { return err } } }`, field)
		}
	}
	return ""
}

// ParseXML produces the Go expression decoding memberName from the
// XML tree node currentExpr, per spec.md §4.4's selection-by-type and
// access-path rules. A map member whose key carries no locationName is
// a hard SchemaError (spec.md §4.4/§7.1): there's no way to generate a
// child-element lookup without it, so ParseXML returns the error
// instead of splicing a placeholder into the generated source.
func (w *ShapeWalker) ParseXML(currentExpr, memberName string, member *model.Member) (string, error) {
	shape, ok := w.def.GetShape(member.Shape)
	if !ok {
		return fmt.Sprintf("sdkruntime.XMLValueOrNull(%s)", w.xmlAccess(currentExpr, memberName, member)), nil
	}
	switch shape.Type {
	case model.ShapeList:
		access := w.xmlAccess(currentExpr, memberName, member)
		inner := w.parseXMLMember("child", shape.ListMember)
		childName := shape.ListMember.LocationName
		if childName == "" {
			childName = "member"
		}
		return fmt.Sprintf(`sdkruntime.ParseXMLList(%s, %q, func(child *sdkruntime.XMLNode) %s { return %s })`, access, childName, w.tm.elemGoType(shape.ListMember.Shape), inner), nil

	case model.ShapeMap:
		if shape.MapKey.LocationName == "" {
			return "", NewSchemaError("map "+string(member.Shape), fmt.Errorf("missing key.locationName"))
		}
		access := w.xmlAccess(currentExpr, memberName, member)
		valueExpr := w.parseXMLMember("child", shape.MapValue)
		return fmt.Sprintf(`sdkruntime.ParseXMLMap(%s, %q, func(child *sdkruntime.XMLNode) %s { return %s })`, access, shape.MapKey.LocationName, w.tm.elemGoType(shape.MapValue.Shape), valueExpr), nil

	case model.ShapeStructure:
		access := w.xmlAccess(currentExpr, memberName, member)
		class := SanitizeClassName(model.StripNamespace(member.Shape))
		return fmt.Sprintf("%sFromXML(%s)", class, access), nil

	default:
		return w.scalarParseXML(currentExpr, memberName, member), nil
	}
}

// scalarParseXML dispatches a scalar member to the runtime helper
// matching its wire type, via attribute indexing when xmlAttribute is
// set, else the usual child-element access path.
func (w *ShapeWalker) scalarParseXML(currentExpr, memberName string, member *model.Member) string {
	if member.XMLAttribute {
		attr := fmt.Sprintf(`sdkruntime.MustAttr(%s, %q)`, currentExpr, attrAccessName(memberName, member))
		return scalarFromString(member.Shape, attr)
	}
	access := w.xmlAccess(currentExpr, memberName, member)
	return scalarFromNode(member.Shape, access)
}

func scalarFromNode(shapeID model.AbsoluteIdentifier, access string) string {
	switch shapeID {
	case "base#integer", "base#long":
		return fmt.Sprintf("sdkruntime.IntFromXML(%s)", access)
	case "base#boolean":
		return fmt.Sprintf("sdkruntime.BoolFromXML(%s)", access)
	case "base#timestamp":
		return fmt.Sprintf("sdkruntime.TimestampFromXML(%s)", access)
	default:
		return fmt.Sprintf("sdkruntime.StringFromXML(%s)", access)
	}
}

func scalarFromString(shapeID model.AbsoluteIdentifier, expr string) string {
	switch shapeID {
	case "base#integer", "base#long":
		return fmt.Sprintf("sdkruntime.IntFromString(%s)", expr)
	case "base#boolean":
		return fmt.Sprintf("sdkruntime.BoolFromString(%s)", expr)
	case "base#timestamp":
		return fmt.Sprintf("sdkruntime.TimestampFromString(%s)", expr)
	default:
		return fmt.Sprintf("sdkruntime.StringPtr(%s)", expr)
	}
}

func attrAccessName(memberName string, member *model.Member) string {
	if member.LocationName != "" {
		return member.LocationName
	}
	return memberName
}

// parseXMLMember is ParseXML's recursive step for a list/map element,
// keyed only on the member descriptor (no outer member name, since
// list/map elements have none of their own).
func (w *ShapeWalker) parseXMLMember(currentExpr string, member *model.Member) string {
	shape, ok := w.def.GetShape(member.Shape)
	if ok && shape.Type == model.ShapeStructure {
		class := SanitizeClassName(model.StripNamespace(member.Shape))
		return fmt.Sprintf("%sFromXML(%s)", class, currentExpr)
	}
	return scalarFromNode(member.Shape, currentExpr)
}

// xmlAccess resolves the access-path rule for non-attribute members:
// explicit locationName child, bare member-name child, or the node
// itself, in that priority order.
func (w *ShapeWalker) xmlAccess(currentExpr, memberName string, member *model.Member) string {
	if member.LocationName != "" {
		return fmt.Sprintf("%s.Child(%q)", currentExpr, member.LocationName)
	}
	if memberName != "" {
		return fmt.Sprintf("%s.Child(%q)", currentExpr, memberName)
	}
	return currentExpr
}

// ParseXMLRoot produces, for every top-level structure member whose
// location is not header/headers, the statement assigning
// "out.<Name> = parseXml($data, <name>, data)". It fails on the first
// member ParseXML can't generate a fragment for, rather than emitting
// a broken line and continuing.
func (w *ShapeWalker) ParseXMLRoot(shape *model.Shape) ([]string, error) {
	var lines []string
	for _, name := range shape.MemberOrder {
		m := shape.Members[name]
		if m.Location == model.LocationHeader || m.Location == model.LocationHeaders {
			continue
		}
		field := model.Identifier(name).Capitalized()
		expr, err := w.ParseXML("root", name, m)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fmt.Sprintf("out.%s = %s", field, expr))
	}
	return lines, nil
}

func accessKey(memberName string, member *model.Member) string {
	if member.LocationName != "" {
		return member.LocationName
	}
	return memberName
}

func isStructureMember(def model.ServiceDefinition, member *model.Member) bool {
	if member == nil {
		return false
	}
	s, ok := def.GetShape(member.Shape)
	return ok && s.Type == model.ShapeStructure
}
