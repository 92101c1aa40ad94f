package model

import (
	"fmt"
	"sort"

	"github.com/boynton/smithy"
)

// LoadSmithy parses a Smithy IDL or AST file and projects its shapes
// onto the model.Shape graph LoadJSON also produces. Only shape kinds,
// member, list-element and map key/value targets, the required trait,
// and operation input/output are carried over; HTTP bindings, member
// locations, documentation and pagination are not, and targets are
// kept as written (a prelude target such as smithy.api#String is not
// mapped to its base# name). Mirrors the teacher's own AssembleModel (model.go), which
// dispatches ".smithy"/".json" files to github.com/boynton/smithy the
// same way.
func LoadSmithy(serviceName, path string) (*InMemoryDefinition, error) {
	ast, err := smithy.Parse(path)
	if err != nil {
		ast, err = smithy.LoadAST(path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse smithy model %s: %w", path, err)
	}
	return fromSmithyAST(serviceName, ast)
}

func fromSmithyAST(serviceName string, ast *smithy.AST) (*InMemoryDefinition, error) {
	if ast.Shapes == nil {
		return NewInMemoryDefinition(serviceName), nil
	}
	def := NewInMemoryDefinition(serviceName)
	ids := ast.Shapes.Keys()
	for _, id := range ids {
		shape := ast.GetShape(id)
		if shape == nil {
			continue
		}
		switch shape.Type {
		case "structure":
			s := &Shape{
				Name:     AbsoluteIdentifier(id),
				Type:     ShapeStructure,
				Members:  map[string]*Member{},
				Required: map[string]bool{},
			}
			// shape.Members is smithy's own *Map[*Member], keyed by
			// name but not ranged over directly; its Keys() preserve
			// the source file's declaration order, which is already
			// deterministic per file but not comparable across a
			// reordered-but-equivalent source, so sort explicitly —
			// same treatment LoadJSON's sortedKeys gives the JSON
			// dialect (spec.md §8 invariant 4).
			s.MemberOrder = shape.Members.Keys()
			sort.Strings(s.MemberOrder)
			for _, mname := range s.MemberOrder {
				member := shape.Members.Get(mname)
				s.Members[mname] = &Member{Shape: AbsoluteIdentifier(member.Target)}
				if member.Traits != nil && member.Traits.GetBool("smithy.api#required") {
					s.Required[mname] = true
				}
			}
			def.AddShape(s)
		case "list":
			if shape.Member != nil {
				def.AddShape(&Shape{
					Name:       AbsoluteIdentifier(id),
					Type:       ShapeList,
					ListMember: &Member{Shape: AbsoluteIdentifier(shape.Member.Target)},
				})
			}
		case "map":
			if shape.Key != nil && shape.Value != nil {
				def.AddShape(&Shape{
					Name:     AbsoluteIdentifier(id),
					Type:     ShapeMap,
					MapKey:   &Member{Shape: AbsoluteIdentifier(shape.Key.Target)},
					MapValue: &Member{Shape: AbsoluteIdentifier(shape.Value.Target)},
				})
			}
		case "string", "boolean", "integer", "long", "blob", "timestamp":
			def.AddShape(&Shape{Name: AbsoluteIdentifier(id), Type: toShapeType(shape.Type)})
		case "operation":
			op := &Operation{Name: AbsoluteIdentifier(id)}
			if shape.Input != nil {
				op.Input = &OperationIO{Shape: AbsoluteIdentifier(shape.Input.Target)}
			}
			if shape.Output != nil {
				op.Output = &OperationIO{Shape: AbsoluteIdentifier(shape.Output.Target)}
			}
			def.AddOperation(op)
		}
	}
	return def, nil
}
