package beef

import (
	"fmt"
	"strings"

	generror "github.com/Alia5/tmplgen/internal/codegen/error"
)

// keywords are reserved in Beef and cannot be used as plain identifiers.
var keywords = map[string]struct{}{
	"abstract": {}, "alignof": {}, "alloctype": {}, "append": {}, "as": {},
	"asm": {}, "base": {}, "box": {}, "break": {}, "case": {},
	"catch": {}, "checked": {}, "class": {}, "comptype": {}, "concrete": {},
	"const": {}, "continue": {}, "decltype": {}, "default": {}, "defer": {},
	"delegate": {}, "delete": {}, "do": {}, "else": {}, "enum": {},
	"explicit": {}, "extension": {}, "extern": {}, "fallthrough": {}, "false": {},
	"finally": {}, "fixed": {}, "for": {}, "function": {}, "if": {},
	"implicit": {}, "in": {}, "inline": {}, "interface": {}, "internal": {},
	"is": {}, "isconst": {}, "let": {}, "mixin": {}, "mut": {},
	"nameof": {}, "namespace": {}, "new": {}, "null": {}, "nullable": {},
	"offsetof": {}, "operator": {}, "out": {}, "override": {}, "params": {},
	"private": {}, "protected": {}, "public": {}, "readonly": {}, "ref": {},
	"repeat": {}, "rettype": {}, "return": {}, "scope": {}, "sealed": {},
	"sizeof": {}, "stack": {}, "static": {}, "strideof": {}, "struct": {},
	"switch": {}, "this": {}, "throw": {}, "true": {}, "try": {},
	"typealias": {}, "typeof": {}, "unchecked": {}, "using": {}, "var": {},
	"virtual": {}, "volatile": {}, "when": {}, "where": {}, "while": {},
	"yield": {},
}

// IsKeyword reports whether s is a reserved Beef word.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// ValidateIdentifier checks that id can be used verbatim as a Beef identifier.
func ValidateIdentifier(id string) error {
	if id == "" {
		return generror.InvalidIdentifier(id, "identifier is empty")
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return generror.InvalidIdentifier(id, "identifier starts with a digit")
			}
		default:
			return generror.InvalidIdentifier(id, "identifier contains disallowed characters")
		}
	}
	if IsKeyword(id) {
		return generror.InvalidIdentifier(id, "identifier is a reserved word")
	}
	return nil
}

// ValidateNamespace checks a dotted namespace such as "Foo.Bar".
func ValidateNamespace(ns string) error {
	for _, part := range strings.Split(ns, ".") {
		if err := ValidateIdentifier(part); err != nil {
			return generror.InvalidIdentifier(ns, fmt.Sprintf("namespace segment %q is invalid", part))
		}
	}
	return nil
}
