package schema

// Schema is the combined model of one or more parsed .okra.gql files
type Schema struct {
	Types    []ObjectType `json:"types"`
	Enums    []EnumType   `json:"enums"`
	Unions   []UnionType  `json:"unions"`
	Scalars  []ScalarType `json:"scalars"`
	Services []Service    `json:"services"`
	Meta     Metadata     `json:"meta"`
}

// Metadata represents global metadata declared with @okra(...)
type Metadata struct {
	Namespace string `json:"namespace"`
	Version   string `json:"version"`
	Service   string `json:"service"`
}

// ObjectType represents a top-level "type" or "input" block
type ObjectType struct {
	Name   string  `json:"name"`
	Doc    string  `json:"doc"`
	Input  bool    `json:"input"`
	Fields []Field `json:"fields"`
}

// Field represents a field inside a type or input object
type Field struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Required   bool        `json:"required"`
	Directives []Directive `json:"directives"`
	Doc        string      `json:"doc"`
}

// IsList reports whether the field holds a list, written as "[Inner]"
func (f Field) IsList() bool {
	return IsListType(f.Type)
}

// EnumType represents an enum definition
type EnumType struct {
	Name   string      `json:"name"`
	Doc    string      `json:"doc"`
	Values []EnumValue `json:"values"`
}

// EnumValue represents a single value inside an enum
type EnumValue struct {
	Name string `json:"name"`
	Doc  string `json:"doc"`
}

// UnionType represents "union X = A | B"
type UnionType struct {
	Name    string   `json:"name"`
	Doc     string   `json:"doc"`
	Members []string `json:"members"`
}

// ScalarType represents a custom "scalar X" declaration
type ScalarType struct {
	Name string `json:"name"`
	Doc  string `json:"doc"`
}

// Service represents a "service" block (transformed from type Service_*)
type Service struct {
	Name      string   `json:"name"`
	Doc       string   `json:"doc"`
	Namespace string   `json:"namespace"`
	Version   string   `json:"version"`
	Methods   []Method `json:"methods"`
}

// Method represents a single service method
type Method struct {
	Name       string      `json:"name"`
	InputType  string      `json:"inputType"`
	OutputType string      `json:"outputType"`
	Directives []Directive `json:"directives"`
	Doc        string      `json:"doc"`
}

// Directive represents an attached directive (e.g. @auth, @validate)
type Directive struct {
	Name string            `json:"name"`
	Args map[string]string `json:"args"`
	Doc  string            `json:"doc"`
}

// IsListType reports whether typ is a list type such as "[String]"
func IsListType(typ string) bool {
	return len(typ) >= 2 && typ[0] == '[' && typ[len(typ)-1] == ']'
}

// ElemType strips one list level from typ; non-list types are returned unchanged
func ElemType(typ string) string {
	if IsListType(typ) {
		return typ[1 : len(typ)-1]
	}
	return typ
}

// IsScalar reports whether name was declared with "scalar name"
func (s *Schema) IsScalar(name string) bool {
	for _, sc := range s.Scalars {
		if sc.Name == name {
			return true
		}
	}
	return false
}

// IsEnum reports whether name refers to an enum declared in the schema
func (s *Schema) IsEnum(name string) bool {
	for _, e := range s.Enums {
		if e.Name == name {
			return true
		}
	}
	return false
}
