package schema

import (
	"fmt"
	"os"
	"strings"

	"github.com/wundergraph/graphql-go-tools/v2/pkg/ast"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/astparser"
)

// ParseFile reads and parses a single schema file. Every failure, including an
// unreadable or empty file, is reported as a *ParseError naming the path.
func ParseFile(path string) (*Schema, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if len(strings.TrimSpace(string(content))) == 0 {
		return nil, &ParseError{Path: path, Err: ErrEmptySchema}
	}

	s, err := ParseSchema(string(content))
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return s, nil
}

// ParseSchema parses a GraphQL schema (after preprocessing) into our Schema model
func ParseSchema(input string) (*Schema, error) {
	preprocessed := PreprocessGraphQL(input)

	doc, report := astparser.ParseGraphqlDocumentString(preprocessed)
	if report.HasErrors() {
		return nil, fmt.Errorf("failed to parse GraphQL: %v", report)
	}

	schema := &Schema{
		Types:    []ObjectType{},
		Enums:    []EnumType{},
		Unions:   []UnionType{},
		Scalars:  []ScalarType{},
		Services: []Service{},
		Meta:     Metadata{},
	}

	// Root nodes keep source order, which generators rely on for stable output.
	for i := range doc.RootNodes {
		node := &doc.RootNodes[i]
		switch node.Kind {
		case ast.NodeKindObjectTypeDefinition:
			if err := parseObjectType(&doc, node.Ref, schema); err != nil {
				return nil, err
			}
		case ast.NodeKindInputObjectTypeDefinition:
			parseInputType(&doc, node.Ref, schema)
		case ast.NodeKindEnumTypeDefinition:
			parseEnumType(&doc, node.Ref, schema)
		case ast.NodeKindUnionTypeDefinition:
			parseUnionType(&doc, node.Ref, schema)
		case ast.NodeKindScalarTypeDefinition:
			scalarDef := doc.ScalarTypeDefinitions[node.Ref]
			schema.Scalars = append(schema.Scalars, ScalarType{
				Name: doc.Input.ByteSliceString(scalarDef.Name),
				Doc:  getDescription(&doc, scalarDef.Description),
			})
		}
	}

	return schema, nil
}

func parseObjectType(doc *ast.Document, ref int, schema *Schema) error {
	typeDef := doc.ObjectTypeDefinitions[ref]
	typeName := doc.Input.ByteSliceString(typeDef.Name)

	// _Schema carries the @okra metadata
	if typeName == "_Schema" {
		parseOkraMetadata(doc, typeDef, schema)
		return nil
	}

	if strings.HasPrefix(typeName, "Service_") {
		serviceName := strings.TrimPrefix(typeName, "Service_")
		if serviceName == "" {
			return fmt.Errorf("service declaration without a name")
		}
		parseService(doc, typeDef, serviceName, schema)
		return nil
	}

	objType := ObjectType{
		Name:   typeName,
		Doc:    getDescription(doc, typeDef.Description),
		Fields: []Field{},
	}
	for _, fieldRef := range typeDef.FieldsDefinition.Refs {
		objType.Fields = append(objType.Fields, parseField(doc, fieldRef))
	}

	schema.Types = append(schema.Types, objType)
	return nil
}

func parseInputType(doc *ast.Document, ref int, schema *Schema) {
	inputDef := doc.InputObjectTypeDefinitions[ref]

	objType := ObjectType{
		Name:   doc.Input.ByteSliceString(inputDef.Name),
		Doc:    getDescription(doc, inputDef.Description),
		Input:  true,
		Fields: []Field{},
	}
	for _, valueRef := range inputDef.InputFieldsDefinition.Refs {
		valueDef := doc.InputValueDefinitions[valueRef]
		typeStr, required := parseType(doc, valueDef.Type)
		objType.Fields = append(objType.Fields, Field{
			Name:       doc.Input.ByteSliceString(valueDef.Name),
			Doc:        getDescription(doc, valueDef.Description),
			Type:       typeStr,
			Required:   required,
			Directives: parseDirectives(doc, valueDef.Directives),
		})
	}

	schema.Types = append(schema.Types, objType)
}

func parseEnumType(doc *ast.Document, ref int, schema *Schema) {
	enumDef := doc.EnumTypeDefinitions[ref]

	enumType := EnumType{
		Name:   doc.Input.ByteSliceString(enumDef.Name),
		Doc:    getDescription(doc, enumDef.Description),
		Values: []EnumValue{},
	}
	for _, valueRef := range enumDef.EnumValuesDefinition.Refs {
		valueDef := doc.EnumValueDefinitions[valueRef]
		enumType.Values = append(enumType.Values, EnumValue{
			Name: doc.Input.ByteSliceString(valueDef.EnumValue),
			Doc:  getDescription(doc, valueDef.Description),
		})
	}

	schema.Enums = append(schema.Enums, enumType)
}

func parseUnionType(doc *ast.Document, ref int, schema *Schema) {
	unionDef := doc.UnionTypeDefinitions[ref]

	union := UnionType{
		Name:    doc.Input.ByteSliceString(unionDef.Name),
		Doc:     getDescription(doc, unionDef.Description),
		Members: []string{},
	}
	for _, typeRef := range unionDef.UnionMemberTypes.Refs {
		member, _ := parseType(doc, typeRef)
		union.Members = append(union.Members, member)
	}

	schema.Unions = append(schema.Unions, union)
}

func parseOkraMetadata(doc *ast.Document, typeDef ast.ObjectTypeDefinition, schema *Schema) {
	for _, fieldRef := range typeDef.FieldsDefinition.Refs {
		fieldDef := doc.FieldDefinitions[fieldRef]

		for _, directiveRef := range fieldDef.Directives.Refs {
			directive := doc.Directives[directiveRef]
			if doc.Input.ByteSliceString(directive.Name) != "okra" {
				continue
			}
			args := parseDirectiveArgs(doc, directive)
			schema.Meta.Namespace = args["namespace"]
			schema.Meta.Version = args["version"]
			schema.Meta.Service = args["service"]
			return
		}
	}
}

func parseService(doc *ast.Document, typeDef ast.ObjectTypeDefinition, serviceName string, schema *Schema) {
	service := Service{
		Name:      serviceName,
		Doc:       getDescription(doc, typeDef.Description),
		Namespace: schema.Meta.Namespace,
		Version:   schema.Meta.Version,
		Methods:   []Method{},
	}
	for _, fieldRef := range typeDef.FieldsDefinition.Refs {
		service.Methods = append(service.Methods, parseMethod(doc, fieldRef))
	}

	schema.Services = append(schema.Services, service)
}

func parseField(doc *ast.Document, fieldRef int) Field {
	fieldDef := doc.FieldDefinitions[fieldRef]

	field := Field{
		Name:       doc.Input.ByteSliceString(fieldDef.Name),
		Doc:        getDescription(doc, fieldDef.Description),
		Directives: parseDirectives(doc, fieldDef.Directives),
	}
	field.Type, field.Required = parseType(doc, fieldDef.Type)

	return field
}

func parseMethod(doc *ast.Document, fieldRef int) Method {
	fieldDef := doc.FieldDefinitions[fieldRef]

	method := Method{
		Name:       doc.Input.ByteSliceString(fieldDef.Name),
		Doc:        getDescription(doc, fieldDef.Description),
		Directives: parseDirectives(doc, fieldDef.Directives),
	}
	method.OutputType, _ = parseType(doc, fieldDef.Type)

	// The first argument is the method input
	if len(fieldDef.ArgumentsDefinition.Refs) > 0 {
		argDef := doc.InputValueDefinitions[fieldDef.ArgumentsDefinition.Refs[0]]
		method.InputType, _ = parseType(doc, argDef.Type)
	}

	return method
}

func parseType(doc *ast.Document, typeRef int) (string, bool) {
	required := false
	currentRef := typeRef

	if doc.Types[currentRef].TypeKind == ast.TypeKindNonNull {
		required = true
		currentRef = doc.Types[currentRef].OfType
	}

	switch doc.Types[currentRef].TypeKind {
	case ast.TypeKindList:
		innerType, _ := parseType(doc, doc.Types[currentRef].OfType)
		return "[" + innerType + "]", required
	case ast.TypeKindNamed:
		return doc.Input.ByteSliceString(doc.Types[currentRef].Name), required
	}

	return "Unknown", required
}

func parseDirectives(doc *ast.Document, directives ast.DirectiveList) []Directive {
	result := []Directive{}
	for _, directiveRef := range directives.Refs {
		directive := doc.Directives[directiveRef]
		result = append(result, Directive{
			Name: doc.Input.ByteSliceString(directive.Name),
			Args: parseDirectiveArgs(doc, directive),
		})
	}
	return result
}

func parseDirectiveArgs(doc *ast.Document, directive ast.Directive) map[string]string {
	args := make(map[string]string)
	for _, argRef := range directive.Arguments.Refs {
		arg := doc.Arguments[argRef]
		args[doc.Input.ByteSliceString(arg.Name)] = parseValue(doc, doc.ArgumentValue(argRef))
	}
	return args
}

func parseValue(doc *ast.Document, value ast.Value) string {
	switch value.Kind {
	case ast.ValueKindString:
		return doc.StringValueContentString(value.Ref)
	case ast.ValueKindEnum:
		if value.Ref >= 0 && value.Ref < len(doc.EnumValues) {
			return doc.Input.ByteSliceString(doc.EnumValues[value.Ref].Name)
		}
	case ast.ValueKindBoolean:
		if value.Ref >= 0 && value.Ref < len(doc.BooleanValues) {
			if doc.BooleanValues[value.Ref] {
				return "true"
			}
			return "false"
		}
	case ast.ValueKindInteger:
		return fmt.Sprintf("%d", doc.IntValueAsInt(value.Ref))
	case ast.ValueKindFloat:
		return fmt.Sprintf("%f", doc.FloatValueAsFloat32(value.Ref))
	}
	return ""
}

func getDescription(doc *ast.Document, desc ast.Description) string {
	if !desc.IsDefined {
		return ""
	}
	content := strings.TrimSpace(doc.Input.ByteSliceString(desc.Content))
	content = strings.TrimSuffix(strings.TrimPrefix(content, `"""`), `"""`)
	content = strings.TrimSuffix(strings.TrimPrefix(content, `"`), `"`)
	return strings.TrimSpace(content)
}
