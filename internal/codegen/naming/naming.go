// Package naming converts schema identifiers into the casing target languages expect.
package naming

import (
	"strings"
	"unicode"
)

// SnakeCase converts "MyStruct", "HTTPServer" or "userID" into "my_struct",
// "http_server" and "user_id".
func SnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		switch {
		case r == '-' || r == ' ' || r == '.':
			b.WriteRune('_')
			continue
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteRune('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PascalCase converts "IN_PROGRESS", "active" or "user_id" into "InProgress",
// "Active" and "UserId". Mixed-case words keep their inner casing.
func PascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
	var b strings.Builder
	for _, part := range parts {
		if strings.ToUpper(part) == part {
			part = strings.ToLower(part)
		}
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

// LowerCamel converts a name to camelCase with a lower-case first letter
func LowerCamel(s string) string {
	p := PascalCase(s)
	if p == "" {
		return ""
	}
	runes := []rune(p)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// Package turns a namespace such as "stellar.xdr" or "My-API" into a lower-case
// identifier usable as a Go or protobuf package name.
func Package(namespace string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(namespace) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	pkg := strings.Trim(b.String(), "_")
	if pkg != "" && unicode.IsDigit(rune(pkg[0])) {
		pkg = "_" + pkg
	}
	return pkg
}
