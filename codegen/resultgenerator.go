package codegen

import (
	"fmt"
	"strings"

	"github.com/kcoder/clientgen/model"
)

// ResultGenerator emits one Class per structure reachable from an
// operation's output shape (spec.md §4.6, component C6). The root
// class embeds the runtime Result base type and gets populateResult
// plus pagination support; nested classes get only the
// constructor/getter treatment.
type ResultGenerator struct {
	def    model.ServiceDefinition
	tm     *TypeMapper
	df     *DocFormatter
	walker *ShapeWalker
}

func NewResultGenerator(def model.ServiceDefinition, tm *TypeMapper, walker *ShapeWalker) *ResultGenerator {
	return &ResultGenerator{def: def, tm: tm, df: NewDocFormatter(), walker: walker}
}

func (g *ResultGenerator) GenerateTree(op *model.Operation, rootShape model.AbsoluteIdentifier) ([]*Class, error) {
	seen := map[model.AbsoluteIdentifier]bool{}
	var classes []*Class
	if err := g.walk(rootShape, op, true, seen, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (g *ResultGenerator) walk(shapeID model.AbsoluteIdentifier, op *model.Operation, isRoot bool, seen map[model.AbsoluteIdentifier]bool, out *[]*Class) error {
	if seen[shapeID] {
		return nil
	}
	seen[shapeID] = true

	shape, ok := g.def.GetShape(shapeID)
	if !ok {
		return NewSchemaError("output shape", fmt.Errorf("%s not found", shapeID))
	}
	if shape.Type != model.ShapeStructure {
		return nil
	}

	cls, err := g.generateClass(shape, op, isRoot)
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
			if err := g.walk(m.Shape, op, false, seen, out); err != nil {
				return err
			}
		case model.ShapeList:
			if nested.ListMember != nil {
				if err := g.walk(nested.ListMember.Shape, op, false, seen, out); err != nil {
					return err
				}
			}
		case model.ShapeMap:
			if nested.MapValue != nil {
				if err := g.walk(nested.MapValue.Shape, op, false, seen, out); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (g *ResultGenerator) generateClass(shape *model.Shape, op *model.Operation, isRoot bool) (*Class, error) {
	className := SanitizeClassName(model.StripNamespace(shape.Name))
	cls := NewClass("client", className)
	cls.AddImport("github.com/kcoder/clientgen/runtime")

	if doc, ok := g.def.GetShapesDocumentation(shape.Name); ok {
		if formatted, _, err := g.df.Format(doc, true); err == nil {
			cls.Doc = formatted
		}
	}

	if isRoot {
		cls.Fields = append(cls.Fields, &Field{Name: "Result", Type: "sdkruntime.Result"})
	}
	for _, name := range shape.MemberOrder {
		m := shape.Members[name]
		field := model.Identifier(name).Capitalized()
		goType := g.tm.ResultGoType(m.Shape, m)
		f := &Field{Name: field, Type: goType}
		if doc, ok := g.def.GetParameterDocumentation(shape.Name, name); ok {
			if formatted, _, err := g.df.Format(doc, false); err == nil {
				f.Doc = formatted
			}
		}
		cls.Fields = append(cls.Fields, f)
	}

	if err := g.addFromXML(cls, shape); err != nil {
		return nil, err
	}
	g.addGetters(cls, shape)

	if isRoot {
		if err := g.addPopulateResult(cls, shape, op); err != nil {
			return nil, err
		}
		if op.Pagination != nil {
			if err := g.addPagination(cls, shape, op); err != nil {
				return nil, err
			}
		}
	}
	return cls, nil
}

// addFromXML emits "<Class>FromXML(node *sdkruntime.XMLNode) *<Class>",
// the structure case of parseXml: one field assignment per member,
// built from ShapeWalker.ParseXML.
func (g *ResultGenerator) addFromXML(cls *Class, shape *model.Shape) error {
	var b strings.Builder
	fmt.Fprintf(&b, "func %sFromXML(node *sdkruntime.XMLNode) *%s {\n", cls.Name, cls.Name)
	b.WriteString("\tif node == nil {\n\t\treturn nil\n\t}\n")
	b.WriteString("\tout := &" + cls.Name + "{}\n")
	for _, name := range shape.MemberOrder {
		m := shape.Members[name]
		field := model.Identifier(name).Capitalized()
		expr, err := g.walker.ParseXML("node", name, m)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "\tout.%s = %s\n", field, expr)
	}
	b.WriteString("\treturn out\n}")
	cls.AddMethod(&Method{Name: cls.Name + "FromXML", Body: b.String()})
	return nil
}

func (g *ResultGenerator) addGetters(cls *Class, shape *model.Shape) {
	for _, name := range shape.MemberOrder {
		m := shape.Members[name]
		field := model.Identifier(name).Capitalized()
		goType := g.tm.ResultGoType(m.Shape, m)
		getter := fmt.Sprintf("func (c *%s) Get%s() %s {\n\treturn c.%s\n}", cls.Name, field, goType, field)
		cls.AddMethod(&Method{Name: "Get" + field, Body: getter})
	}
}

// addPopulateResult assembles the three-phase body: header phase,
// body phase (streaming/non-streaming/resultWrapper), and a
// TODO-verify-correctness comment flagging machine-generated code.
func (g *ResultGenerator) addPopulateResult(cls *Class, shape *model.Shape, op *model.Operation) error {
	var b strings.Builder
	fmt.Fprintf(&b, "// TODO Verify correctness\nfunc (c *%s) populateResult(response *sdkruntime.HTTPResponse, httpClient sdkruntime.HTTPClient) error {\n", cls.Name)

	payloadName, payloadMember, hasPayload := shape.PayloadMember()

	for _, name := range shape.MemberOrder {
		m := shape.Members[name]
		field := model.Identifier(name).Capitalized()
		switch m.Location {
		case model.LocationHeader:
			key := name
			if m.LocationName != "" {
				key = m.LocationName
			}
			fmt.Fprintf(&b, "\tif hv := response.HeaderValue(%q); hv != nil {\n\t\tc.%s = %s\n\t}\n", strings.ToLower(key), field, scalarFromString(m.Shape, "*hv"))
		case model.LocationHeaders:
			prefix := name
			if m.LocationName != "" {
				prefix = m.LocationName
			}
			fmt.Fprintf(&b, "\tc.%s = response.HeadersWithPrefix(%q)\n", field, strings.ToLower(prefix))
		}
	}

	switch {
	case hasPayload && payloadMember.Streaming:
		fmt.Fprintf(&b, "\tif httpClient != nil {\n\t\tc.%s = sdkruntime.NewStreamableBody(httpClient.Stream(response))\n\t} else {\n\t\tc.%s = sdkruntime.NewStreamableBodyFromReader(response.Body)\n\t}\n", model.Identifier(payloadName).Capitalized(), model.Identifier(payloadName).Capitalized())

	case hasPayload:
		nested, ok := g.def.GetShape(payloadMember.Shape)
		if !ok {
			return NewSchemaError("output payload", fmt.Errorf("%s not found", payloadMember.Shape))
		}
		class := SanitizeClassName(model.StripNamespace(payloadMember.Shape))
		b.WriteString("\troot, err := sdkruntime.ParseXMLRoot(response.Body)\n\tif err != nil {\n\t\treturn err\n\t}\n")
		if nested.Type == model.ShapeStructure {
			fmt.Fprintf(&b, "\tc.%s = %sFromXML(root)\n", model.Identifier(payloadName).Capitalized(), class)
		} else {
			fmt.Fprintf(&b, "\tc.%s = %s\n", model.Identifier(payloadName).Capitalized(), scalarFromNode(payloadMember.Shape, "root"))
		}

	default:
		b.WriteString("\troot, err := sdkruntime.ParseXMLRoot(response.Body)\n\tif err != nil {\n\t\treturn err\n\t}\n")
		if op.Output != nil && op.Output.ResultWrapper != "" {
			fmt.Fprintf(&b, "\troot = root.Child(%q)\n", op.Output.ResultWrapper)
		}
		lines, err := g.walker.ParseXMLRoot(shape)
		if err != nil {
			return err
		}
		for _, line := range lines {
			b.WriteString("\t" + line + "\n")
		}
	}

	b.WriteString("\treturn nil\n}")
	cls.AddMethod(&Method{Name: "populateResult", Body: b.String()})
	return nil
}

// addPagination emits get<ResultKey>(currentPageOnly) and iterator(),
// per spec.md §4.6. Only one result key may be list-typed.
func (g *ResultGenerator) addPagination(cls *Class, shape *model.Shape, op *model.Operation) error {
	var listKey string
	for _, rk := range op.Pagination.ResultKey {
		m, ok := shape.Members[rk]
		if !ok {
			continue
		}
		s, ok := g.def.GetShape(m.Shape)
		if ok && s.Type == model.ShapeList {
			if listKey != "" {
				return &PaginationNotIterableErrorAtGenTime{Operation: string(op.Name)}
			}
			listKey = rk
		}
	}
	if listKey == "" {
		return &PaginationNotIterableErrorAtGenTime{Operation: string(op.Name)}
	}

	field := model.Identifier(listKey).Capitalized()
	elemMember := shape.Members[listKey]
	listShape, _ := g.def.GetShape(elemMember.Shape)
	elemType := g.tm.elemGoType(listShape.ListMember.Shape)

	// currentPageOnly=true returns the page already in memory;
	// currentPageOnly=false drains Iterator() instead, the lazy
	// sequence across every page (spec.md §4.6, Scenario D). They're
	// the same items today only because fetchNext is still
	// TODO-stubbed to report no further page — once that's filled in,
	// the two diverge for real.
	var b strings.Builder
	fmt.Fprintf(&b, "func (c *%s) Get%s(currentPageOnly bool) []%s {\n", cls.Name, field, elemType)
	fmt.Fprintf(&b, "\tif currentPageOnly {\n\t\treturn c.%s\n\t}\n", field)
	fmt.Fprintf(&b, "\tvar all []%s\n\tit := c.Iterator()\n\tfor {\n\t\tv, ok, err := it.Next()\n\t\tif !ok || err != nil {\n\t\t\tbreak\n\t\t}\n\t\tall = append(all, v.(%s))\n\t}\n\treturn all\n}", elemType, elemType)
	cls.AddMethod(&Method{Name: "Get" + field, Body: b.String()})

	var it strings.Builder
	fmt.Fprintf(&it, "// iterator yields every %s across all pages.\n// TODO load the next page once result.NextToken is non-empty.\n", elemType)
	fmt.Fprintf(&it, "func (c *%s) Iterator() *sdkruntime.PageIterator {\n\tpage := make([]interface{}, len(c.%s))\n\tfor i, v := range c.%s {\n\t\tpage[i] = v\n\t}\n\treturn sdkruntime.NewPageIterator(page, func() ([]interface{}, bool, error) {\n\t\treturn nil, false, nil\n\t})\n}", cls.Name, field, field)
	cls.AddMethod(&Method{Name: "Iterator", Body: it.String()})
	return nil
}

// PaginationNotIterableErrorAtGenTime is the generation-time error for
// spec.md §4.6's "at most one list-typed result key" rule, returned by
// addPagination when more than one result key, or none, is list-typed.
// It is its own type and is not wrapped in a SchemaError; distinct from runtime's PaginationNotIterableError, which the
// generated iterator would never itself raise (the shape was already
// rejected here).
type PaginationNotIterableErrorAtGenTime struct {
	Operation string
}

func (e *PaginationNotIterableErrorAtGenTime) Error() string {
	return fmt.Sprintf("pagination for %s is not iterable: at most one result key may be list-typed", e.Operation)
}
