package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kcoder/clientgen/model"
)

// InputGenerator emits one Class per structure reachable from an
// operation's input shape (spec.md §4.5, component C5), following the
// teacher's GenerateType/GenerateTypes per-shape loop (golang-export.go)
// but driven by ShapeWalker fragments instead of a direct field dump.
type InputGenerator struct {
	def    model.ServiceDefinition
	tm     *TypeMapper
	df     *DocFormatter
	walker *ShapeWalker
}

func NewInputGenerator(def model.ServiceDefinition, tm *TypeMapper, walker *ShapeWalker) *InputGenerator {
	return &InputGenerator{def: def, tm: tm, df: NewDocFormatter(), walker: walker}
}

// GenerateTree walks every structure reachable from rootShape (via
// member edges on structures and lists/maps of structures) and
// returns one Class per structure, rootShape first. Recursion is
// bounded by a per-call memoization set so cyclic shape graphs
// terminate (spec.md §4's recursion note).
func (g *InputGenerator) GenerateTree(opName model.AbsoluteIdentifier, rootShape model.AbsoluteIdentifier) ([]*Class, error) {
	seen := map[model.AbsoluteIdentifier]bool{}
	var classes []*Class
	if err := g.walk(rootShape, opName, true, seen, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (g *InputGenerator) walk(shapeID model.AbsoluteIdentifier, opName model.AbsoluteIdentifier, isRoot bool, seen map[model.AbsoluteIdentifier]bool, out *[]*Class) error {
	if seen[shapeID] {
		return nil
	}
	seen[shapeID] = true

	shape, ok := g.def.GetShape(shapeID)
	if !ok {
		return NewSchemaError("input shape", fmt.Errorf("%s not found", shapeID))
	}
	if shape.Type != model.ShapeStructure {
		return nil
	}

	cls, err := g.generateClass(shape, opName, isRoot)
	if err != nil {
		return err
	}
	*out = append(*out, cls)

	for _, name := range shape.MemberOrder {
		m := shape.Members[name]
		nested, ok := g.def.GetShape(m.Shape)
		if !ok {
			continue
		}
		switch nested.Type {
		case model.ShapeStructure:
			if err := g.walk(m.Shape, opName, false, seen, out); err != nil {
				return err
			}
		case model.ShapeList:
			if nested.ListMember != nil {
				if err := g.walk(nested.ListMember.Shape, opName, false, seen, out); err != nil {
					return err
				}
			}
		case model.ShapeMap:
			if nested.MapValue != nil {
				if err := g.walk(nested.MapValue.Shape, opName, false, seen, out); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (g *InputGenerator) generateClass(shape *model.Shape, opName model.AbsoluteIdentifier, isRoot bool) (*Class, error) {
	className := SanitizeClassName(model.StripNamespace(shape.Name))
	cls := NewClass("client", className)
	cls.AddImport("github.com/kcoder/clientgen/runtime")
	for _, name := range shape.MemberOrder {
		if shape.Members[name].Streaming {
			cls.AddImport("fmt")
			break
		}
	}

	if doc, ok := g.def.GetShapesDocumentation(shape.Name); ok {
		if formatted, _, err := g.df.Format(doc, true); err == nil {
			cls.Doc = formatted
		}
	}

	for _, name := range shape.MemberOrder {
		m := shape.Members[name]
		field := model.Identifier(name).Capitalized()
		required := shape.Required[name]
		goType := g.tm.GoType(m.Shape, m, required)
		f := &Field{Name: field, Type: goType}
		if doc, ok := g.def.GetParameterDocumentation(shape.Name, name); ok {
			if formatted, _, err := g.df.Format(doc, false); err == nil {
				f.Doc = fmt.Sprintf("%s is the %q member. @var %s", formatted, name, g.tm.DocType(m.Shape))
			}
		}
		cls.Fields = append(cls.Fields, f)
	}

	g.addFromAny(cls, shape)
	g.addCreate(cls, shape)
	g.addGettersSetters(cls, shape)
	g.addValidate(cls, shape)

	if isRoot {
		g.addRequestHelpers(cls, shape, opName)
	}
	return cls, nil
}

// addFromAny emits the static "<Class>FromAny(v interface{}) *<Class>"
// constructor ConstructorInit's nested-structure case calls into:
// forwards an already-typed instance, or builds one from a raw
// map[string]interface{} (spec.md Design Note 2's tagged-variant
// constructor, realized in Go as a type switch over interface{}).
func (g *InputGenerator) addFromAny(cls *Class, shape *model.Shape) {
	var b strings.Builder
	fmt.Fprintf(&b, "func %sFromAny(v interface{}) *%s {\n", cls.Name, cls.Name)
	fmt.Fprintf(&b, "\tif typed, ok := v.(*%s); ok {\n\t\treturn typed\n\t}\n", cls.Name)
	fmt.Fprintf(&b, "\tif m, ok := v.(map[string]interface{}); ok {\n\t\treturn New%s(m)\n\t}\n", cls.Name)
	b.WriteString("\treturn nil\n}")
	cls.AddMethod(&Method{Name: cls.Name + "FromAny", Body: b.String()})
}

// addCreate emits the static named constructor create(input): passes
// through an already-typed instance, or forwards a raw mapping to the
// primary constructor.
func (g *InputGenerator) addCreate(cls *Class, shape *model.Shape) {
	var b strings.Builder
	fmt.Fprintf(&b, "func Create%s(input interface{}) *%s {\n\treturn %sFromAny(input)\n}", cls.Name, cls.Name, cls.Name)
	cls.AddMethod(&Method{Name: "Create" + cls.Name, Body: b.String()})

	var ctor strings.Builder
	hasRequired := len(shape.RequiredMembers()) > 0
	param := "input map[string]interface{}"
	fmt.Fprintf(&ctor, "// New%s is the primary constructor: %s\n", cls.Name, requiredDoc(hasRequired))
	fmt.Fprintf(&ctor, "func New%s(%s) *%s {\n", cls.Name, param, cls.Name)
	ctor.WriteString("\tout := &" + cls.Name + "{}\n")
	for _, name := range shape.MemberOrder {
		m := shape.Members[name]
		required := shape.Required[name]
		ctor.WriteString("\t" + g.walker.ConstructorInit(name, m, required, "input") + "\n")
	}
	ctor.WriteString("\treturn out\n}")
	cls.AddMethod(&Method{Name: "New" + cls.Name, Body: ctor.String()})
}

func requiredDoc(hasRequired bool) string {
	if hasRequired {
		return "input is mandatory, since at least one member is required."
	}
	return "input may be nil; every member is optional."
}

// addGettersSetters emits one pair per member: a getter returning the
// property, and a chaining setter returning the receiver.
func (g *InputGenerator) addGettersSetters(cls *Class, shape *model.Shape) {
	for _, name := range shape.MemberOrder {
		m := shape.Members[name]
		field := model.Identifier(name).Capitalized()
		required := shape.Required[name]
		goType := g.tm.GoType(m.Shape, m, required)

		getter := fmt.Sprintf("func (c *%s) Get%s() %s {\n\treturn c.%s\n}", cls.Name, field, goType, field)
		cls.AddMethod(&Method{Name: "Get" + field, Body: getter})

		setter := fmt.Sprintf("func (c *%s) Set%s(v %s) *%s {\n\tc.%s = v\n\treturn c\n}", cls.Name, field, goType, cls.Name, field)
		cls.AddMethod(&Method{Name: "Set" + field, Body: setter})
	}
}

// addValidate emits validate(): required-member null checks failing
// with MissingParameterError, then recursive validation of nested
// structures and lists of structures (spec.md §4.5).
func (g *InputGenerator) addValidate(cls *Class, shape *model.Shape) {
	var b strings.Builder
	fmt.Fprintf(&b, "func (c *%s) validate() error {\n", cls.Name)
	for _, name := range shape.RequiredMembers() {
		field := model.Identifier(name).Capitalized()
		m := shape.Members[name]
		if !strings.HasPrefix(g.tm.GoType(m.Shape, m, true), "*") {
			continue // required scalar/structure fields collapse to bare types; no nil check is representable
		}
		fmt.Fprintf(&b, "\tif c.%s == nil {\n\t\treturn &sdkruntime.MissingParameterError{Member: %q, Class: %q}\n\t}\n", field, name, cls.Name)
	}
	for _, name := range shape.MemberOrder {
		m := shape.Members[name]
		if line := g.walker.Validate(name, m, shape.Required[name]); line != "" {
			b.WriteString("\t" + line + "\n")
		}
	}
	b.WriteString("\treturn nil\n}")
	cls.AddMethod(&Method{Name: "validate", Body: b.String()})
}

// addRequestHelpers emits requestHeaders/requestQuery/requestBody for
// the root input class, plus requestUri when the operation's http
// binding contains a template.
func (g *InputGenerator) addRequestHelpers(cls *Class, shape *model.Shape, opName model.AbsoluteIdentifier) {
	op, _ := g.def.GetOperation(opName)

	g.addRequestBucket(cls, shape, "requestHeaders", model.LocationHeader)
	g.addRequestBucket(cls, shape, "requestQuery", model.LocationQuerystring)
	g.addRequestBody(cls, shape, opName)

	if op != nil && op.HTTP.RequestURI != "" {
		g.addRequestURI(cls, shape, op.HTTP.RequestURI)
	}
}

func (g *InputGenerator) addRequestBucket(cls *Class, shape *model.Shape, methodName string, loc model.Location) {
	var b strings.Builder
	fmt.Fprintf(&b, "func (c *%s) %s() map[string]string {\n", cls.Name, methodName)
	b.WriteString("\tout := map[string]string{}\n")
	for _, name := range shape.MemberOrder {
		m := shape.Members[name]
		effective := m.Location
		if effective == "" {
			effective = model.LocationPayload
		}
		if effective != loc {
			continue
		}
		field := model.Identifier(name).Capitalized()
		key := name
		if m.LocationName != "" {
			key = m.LocationName
		}
		fmt.Fprintf(&b, "\tif v := sdkruntime.FormatValue(c.%s); v != \"\" {\n\t\tout[%q] = v\n\t}\n", field, key)
	}
	b.WriteString("\treturn out\n}")
	cls.AddMethod(&Method{Name: methodName, Body: b.String()})
}

// addRequestBody seeds the payload bucket with {Action, Version} for
// the default form-urlencoded protocol, then every member whose
// effective location is "payload".
func (g *InputGenerator) addRequestBody(cls *Class, shape *model.Shape, opName model.AbsoluteIdentifier) {
	var b strings.Builder
	fmt.Fprintf(&b, "func (c *%s) requestBody() map[string]string {\n", cls.Name)
	fmt.Fprintf(&b, "\tout := map[string]string{\"Action\": %q, \"Version\": %q}\n", model.StripNamespace(opName), g.def.GetAPIVersion())
	for _, name := range shape.MemberOrder {
		m := shape.Members[name]
		effective := m.Location
		if effective == "" {
			effective = model.LocationPayload
		}
		if effective != model.LocationPayload {
			continue
		}
		field := model.Identifier(name).Capitalized()
		key := name
		if m.LocationName != "" {
			key = m.LocationName
		}
		fmt.Fprintf(&b, "\tif v := sdkruntime.FormatValue(c.%s); v != \"\" {\n\t\tout[%q] = v\n\t}\n", field, key)
	}
	b.WriteString("\treturn out\n}")
	cls.AddMethod(&Method{Name: "requestBody", Body: b.String()})
}

// addRequestURI substitutes {name} and {name+} tokens in template
// with values from members whose location is "uri".
func (g *InputGenerator) addRequestURI(cls *Class, shape *model.Shape, template string) {
	uriMembers := map[string]string{} // locationName-or-name -> field
	for _, name := range shape.MemberOrder {
		m := shape.Members[name]
		if m.Location != model.LocationURI {
			continue
		}
		key := name
		if m.LocationName != "" {
			key = m.LocationName
		}
		uriMembers[key] = model.Identifier(name).Capitalized()
	}
	keys := make([]string, 0, len(uriMembers))
	for k := range uriMembers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "func (c *%s) requestUri() string {\n", cls.Name)
	fmt.Fprintf(&b, "\tout := %q\n", template)
	for _, k := range keys {
		field := uriMembers[k]
		fmt.Fprintf(&b, "\tout = strings.ReplaceAll(out, %q, sdkruntime.FormatValue(c.%s))\n", "{"+k+"}", field)
		fmt.Fprintf(&b, "\tout = strings.ReplaceAll(out, %q, sdkruntime.FormatValue(c.%s))\n", "{"+k+"+}", field)
	}
	b.WriteString("\treturn out\n}")
	cls.AddMethod(&Method{Name: "requestUri", Body: b.String()})
	if len(keys) > 0 {
		cls.AddImport("strings")
	}
}
