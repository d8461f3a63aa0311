package schema

import (
	"regexp"
)

// metadataDirectiveRegex matches a top-level @okra(...) declaration, allowing one level of
// nested parentheses inside the argument list.
var metadataDirectiveRegex = regexp.MustCompile(`(?m)^[ \t]*@okra\s*\(((?:[^()]*|\([^)]*\))*)\)`)

// serviceStartRegex matches "service Name {" at the start of a line.
var serviceStartRegex = regexp.MustCompile(`(?m)^([ \t]*)service\s+(\w+)\s*{`)

// PreprocessGraphQL rewrites `@okra(...)` and `service` blocks into valid GraphQL `type`
// definitions so the document can be handed to a stock GraphQL parser.
func PreprocessGraphQL(input string) string {
	input = metadataDirectiveRegex.ReplaceAllStringFunc(input, func(match string) string {
		args := metadataDirectiveRegex.FindStringSubmatch(match)[1]
		return "type _Schema {\n  _: String @okra(" + args + ")\n}"
	})

	return serviceStartRegex.ReplaceAllString(input, "${1}type Service_${2} {")
}
