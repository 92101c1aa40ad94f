package codegen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"

	"golang.org/x/tools/go/ast/astutil"
)

// ClassMerger loads a pre-existing generated file (if any) and
// applies a Class's methods on top of it, leaving every method the
// Class didn't touch untouched — the "merge into existing classes
// without clobbering hand-written members" contract of spec.md §4.8
// and Design Note "Merging into existing classes". Grounded on
// hono0130-goat's mermaid package, which drives go/parser and
// go/token.FileSet over a Go package to analyze it in place; here the
// same machinery rewrites rather than just reads.
type ClassMerger struct {
	writer FileWriter
}

func NewClassMerger(writer FileWriter) *ClassMerger {
	return &ClassMerger{writer: writer}
}

// Merge loads path (or starts from an empty file in cls's package if
// absent), removes every method cls declares by name, re-adds cls's
// methods as fresh top-level func declarations, adds cls's imports,
// and writes the result back out. Methods present in the file that
// cls does not declare survive unchanged, in their original position.
func (cm *ClassMerger) Merge(path string, cls *Class) error {
	fset := token.NewFileSet()
	existing, found, err := cm.writer.ReadFile(path)
	if err != nil {
		return err
	}

	var file *ast.File
	if found {
		file, err = parser.ParseFile(fset, path, existing, parser.ParseComments)
		if err != nil {
			return NewSchemaError("parse existing file "+path, err)
		}
	} else {
		file, err = parser.ParseFile(fset, path, "package "+cls.Package+"\n", parser.ParseComments)
		if err != nil {
			return NewSchemaError("build empty file for "+path, err)
		}
	}

	removeMethods(file, cls.MethodOrder())

	if len(cls.Fields) > 0 {
		removeTypeDecl(file, cls.Name)
		typeDecl, err := parseTypeDecl(fset, cls)
		if err != nil {
			return NewSchemaError(fmt.Sprintf("parse generated struct %s", cls.Name), err)
		}
		file.Decls = append(file.Decls, typeDecl)
	}

	for _, name := range cls.MethodOrder() {
		m := cls.Methods[name]
		decl, err := parseFuncDecl(fset, m.Body)
		if err != nil {
			return NewSchemaError(fmt.Sprintf("parse generated method %s", name), err)
		}
		file.Decls = append(file.Decls, decl)
	}

	for importPath := range cls.Imports {
		astutil.AddImport(fset, file, importPath)
	}

	var buf bytes.Buffer
	if !found {
		buf.WriteString("// Code generated by svcgen. Hand-written methods below the generated\n")
		buf.WriteString("// block are preserved across reruns; generated methods are replaced wholesale.\n")
	}
	if err := printer.Fprint(&buf, fset, file); err != nil {
		return NewSchemaError("render merged file "+path, err)
	}
	return cm.writer.WriteFile(path, buf.Bytes())
}

// removeMethods deletes every top-level func declaration in file
// whose name (ignoring receiver) is in names.
func removeMethods(file *ast.File, names []string) {
	nameSet := map[string]bool{}
	for _, n := range names {
		nameSet[n] = true
	}
	kept := file.Decls[:0]
	for _, d := range file.Decls {
		if fn, ok := d.(*ast.FuncDecl); ok && nameSet[fn.Name.Name] {
			continue
		}
		kept = append(kept, d)
	}
	file.Decls = kept
}

// removeTypeDecl deletes the top-level "type Name struct{...}" declaration
// from file, if present, so a fresh one can replace it wholesale (the
// struct fields are generator-owned the same way methods are).
func removeTypeDecl(file *ast.File, name string) {
	kept := file.Decls[:0]
	for _, d := range file.Decls {
		if gd, ok := d.(*ast.GenDecl); ok && gd.Tok == token.TYPE && len(gd.Specs) == 1 {
			if ts, ok := gd.Specs[0].(*ast.TypeSpec); ok && ts.Name.Name == name {
				continue
			}
		}
		kept = append(kept, d)
	}
	file.Decls = kept
}

// parseTypeDecl renders cls's struct declaration (with its class- and
// field-level doc comments) as Go source and parses it into a
// standalone *ast.GenDecl for splicing into another file's Decls.
func parseTypeDecl(fset *token.FileSet, cls *Class) (ast.Decl, error) {
	var b bytes.Buffer
	writeDocComment(&b, cls.Doc)
	fmt.Fprintf(&b, "type %s struct {\n", cls.Name)
	for _, f := range cls.Fields {
		writeDocComment(&b, f.Doc)
		if f.Tag != "" {
			fmt.Fprintf(&b, "\t%s %s `%s`\n", f.Name, f.Type, f.Tag)
		} else {
			fmt.Fprintf(&b, "\t%s %s\n", f.Name, f.Type)
		}
	}
	b.WriteString("}\n")

	src := "package p\n\n" + b.String()
	f, err := parser.ParseFile(fset, "", src, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	for _, d := range f.Decls {
		if gd, ok := d.(*ast.GenDecl); ok && gd.Tok == token.TYPE {
			return gd, nil
		}
	}
	return nil, fmt.Errorf("no type declaration found in generated struct")
}

func writeDocComment(b *bytes.Buffer, doc string) {
	if doc == "" {
		return
	}
	for _, line := range splitLines(doc) {
		if line == "" {
			b.WriteString("//\n")
		} else {
			fmt.Fprintf(b, "// %s\n", line)
		}
	}
}

// parseFuncDecl parses a single function body string (as produced by
// the C5/C6/C7 emitters) into an *ast.FuncDecl suitable for splicing
// into another file's Decls.
func parseFuncDecl(fset *token.FileSet, body string) (*ast.FuncDecl, error) {
	src := "package p\n\n" + body + "\n"
	f, err := parser.ParseFile(fset, "", src, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	for _, d := range f.Decls {
		if fn, ok := d.(*ast.FuncDecl); ok {
			return fn, nil
		}
	}
	return nil, fmt.Errorf("no function declaration found in generated body")
}

// HasMethod reports whether path's current on-disk contents declare
// a top-level function named name, without requiring a full Class to
// be built first — OperationGenerator's "create the method only if
// absent" check for getServiceCode/getSignatureVersion.
func (cm *ClassMerger) HasMethod(path, name string) (bool, error) {
	contents, found, err := cm.writer.ReadFile(path)
	if err != nil || !found {
		return false, err
	}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, contents, 0)
	if err != nil {
		return false, NewSchemaError("parse existing file "+path, err)
	}
	for _, d := range file.Decls {
		if fn, ok := d.(*ast.FuncDecl); ok && fn.Name.Name == name {
			return true, nil
		}
	}
	return false, nil
}
