package codegen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kcoder/clientgen/model"
)

// OperationGenerator orchestrates one operation end to end (spec.md
// §4.7, component C7): input tree, client-class method, result tree,
// all merged through ClassMerger and written through FileWriter.
type OperationGenerator struct {
	def     model.ServiceDefinition
	tm      *TypeMapper
	walker  *ShapeWalker
	input   *InputGenerator
	result  *ResultGenerator
	merger  *ClassMerger
	writer  FileWriter
	outDir  string
}

func NewOperationGenerator(def model.ServiceDefinition, writer FileWriter, outDir string) *OperationGenerator {
	tm := NewTypeMapper(def)
	walker := NewShapeWalker(def, tm)
	return &OperationGenerator{
		def:    def,
		tm:     tm,
		walker: walker,
		input:  NewInputGenerator(def, tm, walker),
		result: NewResultGenerator(def, tm, walker),
		merger: NewClassMerger(writer),
		writer: writer,
		outDir: outDir,
	}
}

// Generate runs the full per-operation pipeline described by
// spec.md §4.7's four numbered steps.
func (g *OperationGenerator) Generate(opName model.AbsoluteIdentifier) error {
	op, ok := g.def.GetOperation(opName)
	if !ok {
		return NewSchemaError("operation", fmt.Errorf("%s not found", opName))
	}

	if op.Input != nil {
		inputClasses, err := g.input.GenerateTree(opName, op.Input.Shape)
		if err != nil {
			return err
		}
		for _, cls := range inputClasses {
			if err := g.merger.Merge(g.classPath(cls.Name), cls); err != nil {
				return err
			}
		}
	}

	var resultClasses []*Class
	if op.Output != nil {
		var err error
		resultClasses, err = g.result.GenerateTree(op, op.Output.Shape)
		if err != nil {
			return err
		}
		for _, cls := range resultClasses {
			if err := g.merger.Merge(g.classPath(cls.Name), cls); err != nil {
				return err
			}
		}
	}

	return g.mergeClientMethod(op)
}

// writeRequestBody implements spec.md §4.7 step 4's either/or: when
// the input has a payload member that resolves to a structure shape,
// assemble the XML body via an sdkruntime.XMLBuilder configured from
// the pruned shape subtree rooted at that payload (§4.7.1); otherwise
// use requestBody()'s form-urlencoded map directly. A streaming or
// scalar payload member isn't a structure shape in the shape graph
// (GetShape misses on base scalars), so it falls through to the
// default branch unchanged.
func (g *OperationGenerator) writeRequestBody(b *strings.Builder, cls *Class, op *model.Operation) error {
	shape, ok := g.def.GetShape(op.Input.Shape)
	if ok {
		if payloadName, payloadMember, hasPayload := shape.PayloadMember(); hasPayload {
			if nested, ok := g.def.GetShape(payloadMember.Shape); ok && nested.Type == model.ShapeStructure {
				cfg, err := PruneXMLConfig(g.def, payloadMember.Shape, payloadMember)
				if err != nil {
					return err
				}
				cls.AddImport("bytes")
				field := model.Identifier(payloadName).Capitalized()
				fmt.Fprintf(b, "\tbuilder := %s\n", cfg.GoLiteral())
				fmt.Fprintf(b, "\txmlBody, err := builder.Build(typed.%s)\n\tif err != nil {\n\t\treturn nil, err\n\t}\n", field)
				b.WriteString("\treq.Body = bytes.NewReader(xmlBody)\n")
				return nil
			}
		}
	}
	b.WriteString("\treq.Body = sdkruntime.EncodeForm(typed.requestBody())\n")
	return nil
}

func (g *OperationGenerator) classPath(className string) string {
	return filepath.Join(g.outDir, strings.ToLower(className)+".go")
}

func (g *OperationGenerator) clientPath() string {
	return filepath.Join(g.outDir, "client.go")
}

// mergeClientMethod loads the shared client class, adds
// getServiceCode if it is absent (returning the endpoint prefix, which
// may be empty), replaces getSignatureVersion whenever the service
// declares a signature version, removes any pre-existing method named
// after the operation, and re-adds it with a fresh body (step 2-4 of
// spec.md §4.7).
func (g *OperationGenerator) mergeClientMethod(op *model.Operation) error {
	path := g.clientPath()
	cls := NewClass("client", "Client")
	cls.AddImport("github.com/kcoder/clientgen/runtime")

	// getServiceCode is always declared, even when GetEndpointPrefix()
	// is empty (legal per spec.md §6.1): buildOperationMethod's
	// WrapOperationError call site calls it unconditionally for any
	// operation with an output, so an endpointPrefix-less service
	// definition would otherwise generate a client.go that fails to
	// compile the moment it declares one such operation.
	if has, _ := g.merger.HasMethod(path, "getServiceCode"); !has {
		cls.AddMethod(&Method{Name: "getServiceCode", Body: fmt.Sprintf(
			"func (c *Client) getServiceCode() string {\n\treturn %q\n}", g.def.GetEndpointPrefix())})
	}
	if g.def.GetSignatureVersion() != "" {
		cls.AddMethod(&Method{Name: "getSignatureVersion", Body: fmt.Sprintf(
			"func (c *Client) getSignatureVersion() string {\n\treturn %q\n}", g.def.GetSignatureVersion())})
	}

	// methodName is the exported name the generated body actually
	// declares (buildOperationMethod re-derives the same capitalization),
	// so the Method's key here matches what ClassMerger's removeMethods
	// looks for on the next run.
	methodName := model.StripNamespace(op.Name)
	body, err := g.buildOperationMethod(cls, op, methodName)
	if err != nil {
		return err
	}
	cls.AddMethod(&Method{Name: methodName, Body: body})

	return g.merger.Merge(path, cls)
}

// buildOperationMethod assembles the method body: create(input),
// validate(), request assembly, dispatch, response wrapping
// (spec.md §4.7 step 4). cls is the in-progress client Class, so this
// can add imports (e.g. "bytes") the request-assembly branch it picks
// ends up needing.
func (g *OperationGenerator) buildOperationMethod(cls *Class, op *model.Operation, methodName string) (string, error) {
	inputType := "map[string]interface{}"
	if op.Input != nil {
		if _, ok := g.def.GetShape(op.Input.Shape); !ok {
			return "", NewSchemaError("operation input", fmt.Errorf("%s not found", op.Input.Shape))
		}
		inputType = "interface{}"
	}

	outputType := "*sdkruntime.Result"
	if op.Output != nil {
		outputType = "*" + SanitizeClassName(model.StripNamespace(op.Output.Shape))
	}

	var b strings.Builder
	doc, _ := g.def.GetOperationDocumentation(op.Name)
	df := NewDocFormatter()
	if formatted, _, err := df.Format(doc, true); err == nil && formatted != "" {
		fmt.Fprintf(&b, "// %s\n", strings.ReplaceAll(formatted, "\n", "\n// "))
	}
	fmt.Fprintf(&b, "func (c *Client) %s(input %s) (%s, error) {\n", strings.ToUpper(methodName[:1])+methodName[1:], inputType, outputType)

	if op.Input != nil {
		inputClass := SanitizeClassName(model.StripNamespace(op.Input.Shape))
		fmt.Fprintf(&b, "\ttyped := %sFromAny(input)\n", inputClass)
		b.WriteString("\tif err := typed.validate(); err != nil {\n\t\treturn nil, err\n\t}\n")
		b.WriteString("\treq := &sdkruntime.HTTPRequest{\n")
		fmt.Fprintf(&b, "\t\tMethod: %q,\n", op.HTTP.Method)
		b.WriteString("\t\tHeaders: typed.requestHeaders(),\n")
		b.WriteString("\t\tQuery:   typed.requestQuery(),\n")
		b.WriteString("\t}\n")
		if op.HTTP.RequestURI != "" {
			b.WriteString("\treq.URL = c.endpoint(typed.requestUri())\n")
		} else {
			b.WriteString("\treq.URL = c.endpoint(\"\")\n")
		}
		if err := g.writeRequestBody(&b, cls, op); err != nil {
			return "", err
		}
	} else {
		fmt.Fprintf(&b, "\treq := &sdkruntime.HTTPRequest{Method: %q, URL: c.endpoint(\"\")}\n", op.HTTP.Method)
	}

	b.WriteString("\tresponse, err := c.httpClient.Do(req)\n\tif err != nil {\n\t\treturn nil, err\n\t}\n")

	if op.Output != nil {
		outputClass := SanitizeClassName(model.StripNamespace(op.Output.Shape))
		fmt.Fprintf(&b, "\tresult := &%s{}\n", outputClass)
		shape, ok := g.def.GetShape(op.Output.Shape)
		needsClient := false
		if ok {
			if _, pm, has := shape.PayloadMember(); has && pm.Streaming {
				needsClient = true
			}
		}
		if needsClient {
			b.WriteString("\tif err := result.populateResult(response, c.httpClient); err != nil {\n\t\treturn nil, sdkruntime.WrapOperationError(c.getServiceCode(), " + fmt.Sprintf("%q", model.StripNamespace(op.Name)) + ", err)\n\t}\n")
		} else {
			b.WriteString("\tif err := result.populateResult(response, nil); err != nil {\n\t\treturn nil, sdkruntime.WrapOperationError(c.getServiceCode(), " + fmt.Sprintf("%q", model.StripNamespace(op.Name)) + ", err)\n\t}\n")
		}
		b.WriteString("\treturn result, nil\n")
	} else {
		b.WriteString("\treturn &sdkruntime.Result{}, nil\n")
	}
	b.WriteString("}")
	return b.String(), nil
}
