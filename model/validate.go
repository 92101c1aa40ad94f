package model

// Validate checks the structural invariants the rest of the generator
// relies on (spec.md §3.1/§7): every referenced shape resolves, a
// structure's payload member is one of its declared members, lists
// have a member and maps a key and a value, and every pagination
// result key names an output member whose shape is a list. A map key's
// locationName is not checked here. Mirrors the teacher's Schema.Validate /
// ValidateOperation shape, but walks the AWS-style shape graph instead
// of the teacher's type-def list.
func Validate(def ServiceDefinition) error {
	for _, name := range def.GetShapes() {
		s, _ := def.GetShape(name)
		if err := validateShape(def, s); err != nil {
			return err
		}
	}
	for _, op := range def.Operations() {
		if err := validateOperation(def, op); err != nil {
			return err
		}
	}
	return nil
}

func validateShape(def ServiceDefinition, s *Shape) error {
	switch s.Type {
	case ShapeStructure:
		if s.Payload != "" {
			if _, ok := s.Members[s.Payload]; !ok {
				return &ErrInvalidShape{Name: s.Name, Reason: "payload member " + s.Payload + " not declared"}
			}
		}
		for name, m := range s.Members {
			if err := resolveMember(def, s.Name, name, m); err != nil {
				return err
			}
		}
	case ShapeList:
		if s.ListMember == nil {
			return &ErrInvalidShape{Name: s.Name, Reason: "list shape has no member"}
		}
		if err := resolveMember(def, s.Name, "member", s.ListMember); err != nil {
			return err
		}
	case ShapeMap:
		if s.MapKey == nil || s.MapValue == nil {
			return &ErrInvalidShape{Name: s.Name, Reason: "map shape missing key or value"}
		}
		if err := resolveMember(def, s.Name, "key", s.MapKey); err != nil {
			return err
		}
		if err := resolveMember(def, s.Name, "value", s.MapValue); err != nil {
			return err
		}
	}
	return nil
}

func resolveMember(def ServiceDefinition, owner AbsoluteIdentifier, name string, m *Member) error {
	if isScalarShapeName(m.Shape) {
		return nil
	}
	if _, ok := def.GetShape(m.Shape); !ok {
		return &ErrShapeNotFound{Name: m.Shape}
	}
	return nil
}

func validateOperation(def ServiceDefinition, op *Operation) error {
	if op.Input != nil {
		if _, ok := def.GetShape(op.Input.Shape); !ok && !isScalarShapeName(op.Input.Shape) {
			return &ErrShapeNotFound{Name: op.Input.Shape}
		}
	}
	if op.Output != nil {
		if _, ok := def.GetShape(op.Output.Shape); !ok && !isScalarShapeName(op.Output.Shape) {
			return &ErrShapeNotFound{Name: op.Output.Shape}
		}
	}
	if op.Pagination != nil {
		if len(op.Pagination.ResultKey) == 0 {
			return &ErrInvalidPagination{Operation: op.Name, Reason: "result_key is empty"}
		}
		if op.Output == nil {
			return &ErrInvalidPagination{Operation: op.Name, Reason: "pagination declared but operation has no output"}
		}
		out, ok := def.GetShape(op.Output.Shape)
		if !ok {
			return &ErrShapeNotFound{Name: op.Output.Shape}
		}
		for _, key := range op.Pagination.ResultKey {
			m, ok := out.Members[key]
			if !ok {
				return &ErrInvalidPagination{Operation: op.Name, Reason: "result_key " + key + " not a member of " + string(out.Name)}
			}
			target, ok := def.GetShape(m.Shape)
			if !ok || target.Type != ShapeList {
				return &ErrInvalidPagination{Operation: op.Name, Reason: "result_key " + key + " does not resolve to a list shape"}
			}
		}
	}
	return nil
}

func isScalarShapeName(id AbsoluteIdentifier) bool {
	switch id {
	case "base#string", "base#boolean", "base#integer", "base#long", "base#blob", "base#timestamp":
		return true
	}
	return false
}
