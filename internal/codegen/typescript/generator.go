// Package typescript renders okra schemas as a single TypeScript module.
package typescript

import (
	"strings"

	"github.com/okra-platform/okragen/internal/codegen/naming"
	"github.com/okra-platform/okragen/internal/codegen/writer"
	"github.com/okra-platform/okragen/internal/output"
	"github.com/okra-platform/okragen/internal/schema"
)

const header = "// Code generated by okragen. DO NOT EDIT."

var builtinTypes = map[string]string{
	"String":  "string",
	"ID":      "string",
	"Int":     "number",
	"Int32":   "number",
	"Int64":   "number",
	"Float":   "number",
	"Float64": "number",
	"Boolean": "boolean",
	"Bool":    "boolean",
	"Bytes":   "Uint8Array",
	"Time":    "Date",
	"Any":     "any",
}

// Generator generates TypeScript code from an okra schema
type Generator struct {
	generateClasses bool
}

// NewGenerator creates a new TypeScript code generator
func NewGenerator() *Generator {
	return &Generator{}
}

// WithClasses configures the generator to produce classes instead of interfaces
func (g *Generator) WithClasses(useClasses bool) *Generator {
	g.generateClasses = useClasses
	return g
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return "typescript"
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".ts"
}

// Render writes <namespace>.ts holding every definition inside `export module <namespace>`.
// Without a namespace the file is index.ts and no module wrapper is written.
func (g *Generator) Render(s *schema.Schema, namespace string, out *output.Tree) error {
	w := writer.NewWriter("  ")
	w.WriteLine(header)
	w.BlankLine()

	if namespace != "" {
		w.WriteLinef("export module %s {", namespace)
		w.Indent()
	}

	var blocks []func()
	for _, enum := range s.Enums {
		enum := enum
		blocks = append(blocks, func() { g.generateEnum(w, enum) })
	}
	for _, scalar := range s.Scalars {
		scalar := scalar
		if _, builtin := builtinTypes[scalar.Name]; builtin {
			continue
		}
		blocks = append(blocks, func() {
			g.writeJSDoc(w, scalar.Doc)
			w.WriteLinef("export type %s = string;", scalar.Name)
		})
	}
	for _, typ := range s.Types {
		typ := typ
		blocks = append(blocks, func() { g.generateType(w, typ) })
	}
	for _, union := range s.Unions {
		union := union
		blocks = append(blocks, func() {
			g.writeJSDoc(w, union.Doc)
			w.WriteLinef("export type %s = %s;", union.Name, strings.Join(union.Members, " | "))
		})
	}
	for _, svc := range s.Services {
		svc := svc
		blocks = append(blocks, func() { g.generateServiceInterface(w, svc) })
	}

	for i, block := range blocks {
		if i > 0 {
			w.BlankLine()
		}
		block()
	}

	if namespace != "" {
		w.Dedent()
		w.WriteLine("}")
	}

	name := naming.Package(namespace)
	if name == "" {
		name = "index"
	}
	return out.WriteFile(name+g.FileExtension(), w.Bytes())
}

// generateEnum generates a string enum plus a type guard
func (g *Generator) generateEnum(w *writer.Writer, enum schema.EnumType) {
	g.writeJSDoc(w, enum.Doc)

	w.WriteBlock("export enum "+enum.Name+" {", "}", func() {
		for _, value := range enum.Values {
			g.writeJSDoc(w, value.Doc)
			w.WriteLinef("%s = \"%s\",", naming.PascalCase(value.Name), value.Name)
		}
	})

	w.BlankLine()
	w.WriteBlock("export function is"+enum.Name+"(value: any): value is "+enum.Name+" {", "}", func() {
		w.WriteLine("return Object.values(" + enum.Name + ").includes(value);")
	})
}

// generateType generates an interface or class for an object type
func (g *Generator) generateType(w *writer.Writer, typ schema.ObjectType) {
	g.writeJSDoc(w, typ.Doc)

	keyword := "interface"
	if g.generateClasses {
		keyword = "class"
	}

	w.WriteBlock("export "+keyword+" "+typ.Name+" {", "}", func() {
		for _, field := range typ.Fields {
			g.writeJSDoc(w, field.Doc)
			optional := ""
			if !field.Required {
				optional = "?"
			}
			w.WriteLinef("%s%s: %s;", field.Name, optional, mapToTSType(field.Type))
		}
	})
}

// generateServiceInterface generates an interface and an abstract client for a service
func (g *Generator) generateServiceInterface(w *writer.Writer, svc schema.Service) {
	g.writeJSDoc(w, svc.Doc)

	w.WriteBlock("export interface "+svc.Name+" {", "}", func() {
		for i, method := range svc.Methods {
			g.writeJSDoc(w, method.Doc)
			w.WriteLine(methodSignature(method) + ";")
			if i < len(svc.Methods)-1 {
				w.BlankLine()
			}
		}
	})

	w.BlankLine()
	w.WriteBlock("export abstract class "+svc.Name+"Client implements "+svc.Name+" {", "}", func() {
		for _, method := range svc.Methods {
			w.WriteLine("abstract " + methodSignature(method) + ";")
		}
	})
}

func methodSignature(method schema.Method) string {
	params := ""
	if method.InputType != "" {
		params = "input: " + mapToTSType(method.InputType)
	}
	return naming.LowerCamel(method.Name) + "(" + params + "): Promise<" + mapToTSType(method.OutputType) + ">"
}

// mapToTSType maps schema types to TypeScript types
func mapToTSType(typ string) string {
	if schema.IsListType(typ) {
		return mapToTSType(schema.ElemType(typ)) + "[]"
	}
	if tsType, ok := builtinTypes[typ]; ok {
		return tsType
	}
	return typ
}

// writeJSDoc writes JSDoc style comments
func (g *Generator) writeJSDoc(w *writer.Writer, doc string) {
	if doc == "" {
		return
	}

	lines := strings.Split(strings.TrimSpace(doc), "\n")
	if len(lines) == 1 {
		w.WriteLinef("/** %s */", lines[0])
		return
	}
	w.WriteLine("/**")
	for _, line := range lines {
		w.WriteLinef(" * %s", strings.TrimSpace(line))
	}
	w.WriteLine(" */")
}
