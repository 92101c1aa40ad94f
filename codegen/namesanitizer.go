package codegen

import "strings"

// goReservedWords is the Go keyword set plus the handful of
// predeclared identifiers that would otherwise shadow a generated
// type in confusing ways (Go permits shadowing predeclared
// identifiers, but an Input/Result class named "error" or "string" is
// a trap for the humans reading the generated code).
var goReservedWords = map[string]bool{
	"break": true, "default": true, "func": true, "interface": true, "select": true,
	"case": true, "defer": true, "go": true, "map": true, "struct": true,
	"chan": true, "else": true, "goto": true, "package": true, "switch": true,
	"const": true, "fallthrough": true, "if": true, "range": true, "type": true,
	"continue": true, "for": true, "import": true, "return": true, "var": true,
	"any": true, "bool": true, "byte": true, "comparable": true, "complex64": true,
	"complex128": true, "error": true, "float32": true, "float64": true, "int": true,
	"int8": true, "int16": true, "int32": true, "int64": true, "rune": true,
	"string": true, "uint": true, "uint8": true, "uint16": true, "uint32": true,
	"uint64": true, "uintptr": true,
}

// legacyReservedWords is the fixed set carried from the reference
// implementation for call-site compatibility (spec.md §4.2), even
// though none of these collide with Go itself.
var legacyReservedWords = map[string]bool{
	"Object": true, "Class": true, "Trait": true,
}

// SanitizeClassName renames a candidate class name that collides with
// a reserved word, by prefixing "Aws" (spec.md §4.2). Total and
// idempotent: sanitizing an already-sanitized name is a no-op, since
// "AwsXxx" never collides with anything in either reserved set.
func SanitizeClassName(name string) string {
	if isReserved(name) {
		return "Aws" + name
	}
	return name
}

func isReserved(name string) bool {
	lower := strings.ToLower(name)
	if goReservedWords[lower] {
		return true
	}
	return legacyReservedWords[name]
}
