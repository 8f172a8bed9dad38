package strcase

import (
	"strings"
	"unicode"
)

func ToCamelCase(name string) string {
	if name == "" {
		return name
	}

	firstChar := name[0]
	if firstChar >= 'A' && firstChar <= 'Z' {
		return string(firstChar+32) + name[1:]
	}

	return name
}

func ToPascalCase(name string) string {
	if name == "" {
		return name
	}

	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// ToLowerCamel joins the alphanumeric words of s into lowerCamelCase,
// e.g. "get-item" -> "getItem" and "page_size" -> "pageSize".
func ToLowerCamel(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(ToCamelCase(w))
			continue
		}
		b.WriteString(ToPascalCase(w))
	}
	return b.String()
}

// IsIdentifier reports whether s can be used as a TypeScript identifier.
func IsIdentifier(s string) bool {
	if s == "" || reserved[s] {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// ToIdentifier returns s unchanged when it is already a valid identifier and
// a lowerCamelCase rewrite of it otherwise.
func ToIdentifier(s string) string {
	if IsIdentifier(s) {
		return s
	}

	id := ToLowerCamel(s)
	if id == "" {
		return "_"
	}
	if unicode.IsDigit([]rune(id)[0]) || reserved[id] {
		id = "_" + id
	}
	return id
}

var reserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "let": true, "static": true, "yield": true, "await": true,
}
