package codegen

import "github.com/kcoder/clientgen/model"

// TypeMapper is the total function from wire primitive names to Go
// type strings, for both signatures and doc annotations (spec.md §4.1,
// component C1).
type TypeMapper struct {
	def model.ServiceDefinition
}

func NewTypeMapper(def model.ServiceDefinition) *TypeMapper {
	return &TypeMapper{def: def}
}

// GoType returns the Go type used for a member's signature. Required
// scalar/structure members collapse the spec's "nullable by default"
// rule into Go's type system (design note, §9 of SPEC_FULL.md): they
// get the bare value type, so an unset-vs-zero-value distinction is
// never representable and Validate() is the only source of truth for
// "missing". Optional members, and streaming/list/map members
// regardless of required-ness, keep the spec's literal table.
func (tm *TypeMapper) GoType(shapeID model.AbsoluteIdentifier, member *model.Member, required bool) string {
	if member != nil && member.Streaming {
		return "sdkruntime.StreamingPayload"
	}
	base, nullableDefault := tm.baseGoType(shapeID)
	if !nullableDefault || required {
		return base
	}
	return "*" + base
}

// ResultGoType returns the Go type used in a generated Result struct
// field. Result fields are always populated from the wire rather than
// constructed by a caller, so every scalar/structure field stays a
// pointer regardless of required-ness — there is no validation step on
// the decode path to fall back on. member may be nil for callers (like
// pagination result-key lookups) that only have a shape ID in hand.
func (tm *TypeMapper) ResultGoType(shapeID model.AbsoluteIdentifier, member *model.Member) string {
	if member != nil && member.Streaming {
		return "sdkruntime.StreamableBody"
	}
	base, nullableDefault := tm.baseGoType(shapeID)
	if !nullableDefault {
		return base
	}
	return "*" + base
}

// baseGoType returns the unwrapped Go type and whether the wire type
// defaults to a nullable pointer (everything except list/map, which
// default to an empty, non-nil container per spec.md §4.1's table).
func (tm *TypeMapper) baseGoType(shapeID model.AbsoluteIdentifier) (string, bool) {
	switch shapeID {
	case "base#boolean":
		return "bool", true
	case "base#integer":
		return "int", true
	case "base#long":
		return "string", true // wire form preserves precision; see SPEC_FULL.md §9
	case "base#blob":
		return "string", true
	case "base#timestamp":
		return "sdkruntime.Timestamp", true
	case "base#string":
		return "string", true
	}
	s, ok := tm.def.GetShape(shapeID)
	if !ok {
		return "string", true
	}
	switch s.Type {
	case model.ShapeList:
		return "[]" + tm.elemGoType(s.ListMember.Shape), false
	case model.ShapeMap:
		kt, _ := tm.baseGoType(s.MapKey.Shape)
		return "map[" + kt + "]" + tm.elemGoType(s.MapValue.Shape), false
	case model.ShapeStructure:
		return SanitizeClassName(model.StripNamespace(shapeID)), true
	default:
		return "string", true
	}
}

// elemGoType returns the Go type used for a list/map element: pointer
// wrapped when the underlying scalar/structure shape would itself be
// nullable, never wrapped for nested containers (which already default
// to a non-nil empty value).
func (tm *TypeMapper) elemGoType(shapeID model.AbsoluteIdentifier) string {
	t, nullable := tm.baseGoType(shapeID)
	if nullable {
		return "*" + t
	}
	return t
}

// DocType returns the type name used in @var-style doc comments.
func (tm *TypeMapper) DocType(shapeID model.AbsoluteIdentifier) string {
	t, nullable := tm.baseGoType(shapeID)
	if nullable {
		return t + "|nil"
	}
	return t
}
