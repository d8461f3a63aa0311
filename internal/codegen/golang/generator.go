// Package golang renders okra schemas as Go source, one file per definition.
package golang

import (
	"sort"
	"strings"

	"github.com/okra-platform/okragen/internal/codegen/naming"
	"github.com/okra-platform/okragen/internal/codegen/writer"
	"github.com/okra-platform/okragen/internal/output"
	"github.com/okra-platform/okragen/internal/schema"
)

const header = "// Code generated by okragen. DO NOT EDIT."

// defaultPackage is used when the namespace yields no usable identifier
const defaultPackage = "types"

// builtinTypes maps schema scalars to Go types; declared scalars with these
// names are not emitted as named types.
var builtinTypes = map[string]string{
	"String":  "string",
	"ID":      "string",
	"Int":     "int",
	"Int32":   "int32",
	"Int64":   "int64",
	"Float":   "float32",
	"Float64": "float64",
	"Boolean": "bool",
	"Bool":    "bool",
	"Bytes":   "[]byte",
	"Time":    "time.Time",
	"Any":     "interface{}",
}

// Generator generates Go code from an okra schema
type Generator struct{}

// NewGenerator creates a new Go code generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return "go"
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".go"
}

// Render writes one Go file per enum, scalar, type, union and service. The
// package clause is derived from namespace.
func (g *Generator) Render(s *schema.Schema, namespace string, out *output.Tree) error {
	pkg := naming.Package(namespace)
	if pkg == "" {
		pkg = defaultPackage
	}

	for _, enum := range s.Enums {
		enum := enum
		if err := g.emit(out, pkg, enum.Name, nil, func(w *writer.Writer) {
			g.generateEnum(w, enum)
		}); err != nil {
			return err
		}
	}

	for _, scalar := range s.Scalars {
		scalar := scalar
		if _, builtin := builtinTypes[scalar.Name]; builtin {
			continue
		}
		if err := g.emit(out, pkg, scalar.Name, nil, func(w *writer.Writer) {
			g.generateScalar(w, scalar)
		}); err != nil {
			return err
		}
	}

	for _, typ := range s.Types {
		typ := typ
		types := make([]string, 0, len(typ.Fields))
		for _, field := range typ.Fields {
			types = append(types, field.Type)
		}
		if err := g.emit(out, pkg, typ.Name, collectImports(types...), func(w *writer.Writer) {
			g.generateType(w, typ)
		}); err != nil {
			return err
		}
	}

	for _, union := range s.Unions {
		union := union
		if err := g.emit(out, pkg, union.Name, nil, func(w *writer.Writer) {
			g.generateUnion(w, union)
		}); err != nil {
			return err
		}
	}

	for _, svc := range s.Services {
		svc := svc
		types := make([]string, 0, 2*len(svc.Methods))
		for _, method := range svc.Methods {
			types = append(types, method.InputType, method.OutputType)
		}
		if err := g.emit(out, pkg, svc.Name, collectImports(types...), func(w *writer.Writer) {
			g.generateServiceInterface(w, svc)
		}); err != nil {
			return err
		}
	}

	return nil
}

// emit writes the file header, package clause and imports, then the body.
func (g *Generator) emit(out *output.Tree, pkg, name string, imports []string, body func(w *writer.Writer)) error {
	w := writer.NewWriter("\t")

	w.WriteLine(header)
	w.BlankLine()
	w.WriteLinef("package %s", pkg)
	w.BlankLine()

	if len(imports) > 0 {
		w.WriteBlock("import (", ")", func() {
			for _, imp := range imports {
				w.WriteLinef("%q", imp)
			}
		})
		w.BlankLine()
	}

	body(w)

	return out.WriteFile(naming.SnakeCase(name)+g.FileExtension(), w.Bytes())
}

// collectImports returns the sorted standard library imports the given schema types need
func collectImports(types ...string) []string {
	set := make(map[string]bool)
	for _, typ := range types {
		for schema.IsListType(typ) {
			typ = schema.ElemType(typ)
		}
		if typ == "Time" {
			set["time"] = true
		}
	}

	imports := make([]string, 0, len(set))
	for imp := range set {
		imports = append(imports, imp)
	}
	sort.Strings(imports)
	return imports
}

// generateEnum generates a string-backed Go type with one constant per value
func (g *Generator) generateEnum(w *writer.Writer, enum schema.EnumType) {
	w.WriteDocComment(enum.Doc)
	w.WriteLinef("type %s string", enum.Name)
	w.BlankLine()

	constants := make([]string, 0, len(enum.Values))
	w.WriteBlock("const (", ")", func() {
		for _, value := range enum.Values {
			w.WriteDocComment(value.Doc)
			constant := enum.Name + naming.PascalCase(value.Name)
			constants = append(constants, constant)
			w.WriteLinef("%s %s = %q", constant, enum.Name, value.Name)
		}
	})

	w.BlankLine()
	w.WriteLinef("// Valid returns true if the %s is a valid value", enum.Name)
	w.WriteBlock("func (e "+enum.Name+") Valid() bool {", "}", func() {
		if len(constants) == 0 {
			w.WriteLine("return false")
			return
		}
		w.WriteLine("switch e {")
		w.WriteLinef("case %s:", strings.Join(constants, ", "))
		w.Indent()
		w.WriteLine("return true")
		w.Dedent()
		w.WriteLine("default:")
		w.Indent()
		w.WriteLine("return false")
		w.Dedent()
		w.WriteLine("}")
	})
}

// generateScalar generates a named string type for a custom scalar
func (g *Generator) generateScalar(w *writer.Writer, scalar schema.ScalarType) {
	w.WriteDocComment(scalar.Doc)
	w.WriteLinef("type %s string", scalar.Name)
}

// generateType generates a Go struct for an object or input type
func (g *Generator) generateType(w *writer.Writer, typ schema.ObjectType) {
	w.WriteDocComment(typ.Doc)
	w.WriteBlock("type "+typ.Name+" struct {", "}", func() {
		for _, field := range typ.Fields {
			w.WriteDocComment(field.Doc)
			goType := mapToGoType(field.Type, field.Required)
			w.WriteLinef("%s %s `json:\"%s\"`", exportedName(field.Name), goType, jsonTag(field))
		}
	})
}

// generateUnion generates a struct with one optional pointer per member and a
// Which accessor reporting the member that is set.
func (g *Generator) generateUnion(w *writer.Writer, union schema.UnionType) {
	if union.Doc != "" {
		w.WriteDocComment(union.Doc)
	} else {
		w.WriteLinef("// %s holds exactly one of: %s", union.Name, strings.Join(union.Members, ", "))
	}

	w.WriteBlock("type "+union.Name+" struct {", "}", func() {
		for _, member := range union.Members {
			w.WriteLinef("%s *%s `json:\"%s,omitempty\"`", exportedName(member), mapToGoType(member, true), naming.LowerCamel(member))
		}
	})

	w.BlankLine()
	w.WriteLine("// Which returns the name of the member that is set, or an empty string")
	w.WriteBlock("func (u "+union.Name+") Which() string {", "}", func() {
		w.WriteLine("switch {")
		for _, member := range union.Members {
			w.WriteLinef("case u.%s != nil:", exportedName(member))
			w.Indent()
			w.WriteLinef("return %q", member)
			w.Dedent()
		}
		w.WriteLine("default:")
		w.Indent()
		w.WriteLine(`return ""`)
		w.Dedent()
		w.WriteLine("}")
	})
}

// generateServiceInterface generates a Go interface for a service
func (g *Generator) generateServiceInterface(w *writer.Writer, svc schema.Service) {
	if svc.Doc != "" {
		w.WriteDocComment(svc.Doc)
	} else {
		w.WriteLinef("// %s defines the service interface", svc.Name)
	}

	w.WriteBlock("type "+svc.Name+" interface {", "}", func() {
		for i, method := range svc.Methods {
			w.WriteDocComment(method.Doc)

			outputType := "*" + mapToGoType(method.OutputType, true)
			if method.InputType == "" {
				w.WriteLinef("%s() (%s, error)", exportedName(method.Name), outputType)
			} else {
				inputType := "*" + mapToGoType(method.InputType, true)
				w.WriteLinef("%s(input %s) (%s, error)", exportedName(method.Name), inputType, outputType)
			}

			if i < len(svc.Methods)-1 {
				w.BlankLine()
			}
		}
	})
}

// mapToGoType maps schema types to Go types; optional values become pointers
func mapToGoType(typ string, required bool) string {
	if !required {
		if schema.IsListType(typ) {
			return "*[]" + mapToGoType(schema.ElemType(typ), true)
		}
		return "*" + mapToGoType(typ, true)
	}

	if schema.IsListType(typ) {
		return "[]" + mapToGoType(schema.ElemType(typ), true)
	}

	if goType, ok := builtinTypes[typ]; ok {
		return goType
	}
	return typ
}

func jsonTag(field schema.Field) string {
	if !field.Required {
		return field.Name + ",omitempty"
	}
	return field.Name
}

// exportedName capitalizes the first letter of a schema name
func exportedName(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
