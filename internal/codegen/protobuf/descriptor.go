package protobuf

import (
	"fmt"
	"sort"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/okra-platform/okragen/internal/codegen/naming"
	"github.com/okra-platform/okragen/internal/schema"
)

const (
	timestampImport = "google/protobuf/timestamp.proto"
	emptyImport     = "google/protobuf/empty.proto"
)

var scalarKinds = map[string]descriptorpb.FieldDescriptorProto_Type{
	"String":  descriptorpb.FieldDescriptorProto_TYPE_STRING,
	"ID":      descriptorpb.FieldDescriptorProto_TYPE_STRING,
	"Int":     descriptorpb.FieldDescriptorProto_TYPE_INT32,
	"Int32":   descriptorpb.FieldDescriptorProto_TYPE_INT32,
	"Int64":   descriptorpb.FieldDescriptorProto_TYPE_INT64,
	"Long":    descriptorpb.FieldDescriptorProto_TYPE_INT64,
	"Float":   descriptorpb.FieldDescriptorProto_TYPE_FLOAT,
	"Float64": descriptorpb.FieldDescriptorProto_TYPE_DOUBLE,
	"Double":  descriptorpb.FieldDescriptorProto_TYPE_DOUBLE,
	"Boolean": descriptorpb.FieldDescriptorProto_TYPE_BOOL,
	"Bool":    descriptorpb.FieldDescriptorProto_TYPE_BOOL,
	"Bytes":   descriptorpb.FieldDescriptorProto_TYPE_BYTES,
	"Any":     descriptorpb.FieldDescriptorProto_TYPE_BYTES,
}

var timestampTypes = map[string]bool{
	"Time":      true,
	"DateTime":  true,
	"Timestamp": true,
}

// builder turns a schema into a FileDescriptorProto. Comments are kept on the
// side in docs, keyed by the dotted path of the element they belong to.
type builder struct {
	s        *schema.Schema
	pkg      string
	docs     map[string]string
	imports  map[string]bool
	wrappers []*descriptorpb.DescriptorProto
}

func newBuilder(s *schema.Schema, pkg string) *builder {
	return &builder{
		s:       s,
		pkg:     pkg,
		docs:    make(map[string]string),
		imports: make(map[string]bool),
	}
}

func (b *builder) build() (*descriptorpb.FileDescriptorProto, error) {
	fd := &descriptorpb.FileDescriptorProto{
		Name:    proto.String(b.pkg + ".proto"),
		Package: proto.String(b.pkg),
		Syntax:  proto.String("proto3"),
	}

	for _, enum := range b.s.Enums {
		fd.EnumType = append(fd.EnumType, b.enum(enum))
	}

	for _, typ := range b.s.Types {
		msg, err := b.message(typ)
		if err != nil {
			return nil, err
		}
		fd.MessageType = append(fd.MessageType, msg)
	}

	for _, union := range b.s.Unions {
		fd.MessageType = append(fd.MessageType, b.union(union))
	}

	for _, svc := range b.s.Services {
		sd, err := b.service(svc)
		if err != nil {
			return nil, err
		}
		fd.Service = append(fd.Service, sd)
	}

	fd.MessageType = append(fd.MessageType, b.wrappers...)

	for imp := range b.imports {
		fd.Dependency = append(fd.Dependency, imp)
	}
	sort.Strings(fd.Dependency)

	return fd, nil
}

// enumPrefix returns the UPPER_SNAKE prefix that keeps value names unique
// across the package.
func enumPrefix(name string) string {
	return strings.ToUpper(naming.SnakeCase(name))
}

func (b *builder) enum(enum schema.EnumType) *descriptorpb.EnumDescriptorProto {
	prefix := enumPrefix(enum.Name)
	ed := &descriptorpb.EnumDescriptorProto{
		Name: proto.String(enum.Name),
		Value: []*descriptorpb.EnumValueDescriptorProto{{
			Name:   proto.String(prefix + "_UNSPECIFIED"),
			Number: proto.Int32(0),
		}},
	}
	b.docs[enum.Name] = enum.Doc

	for i, value := range enum.Values {
		name := prefix + "_" + strings.ToUpper(naming.SnakeCase(value.Name))
		ed.Value = append(ed.Value, &descriptorpb.EnumValueDescriptorProto{
			Name:   proto.String(name),
			Number: proto.Int32(int32(i + 1)),
		})
		b.docs[enum.Name+"."+name] = value.Doc
	}
	return ed
}

func (b *builder) message(typ schema.ObjectType) (*descriptorpb.DescriptorProto, error) {
	msg := &descriptorpb.DescriptorProto{Name: proto.String(typ.Name)}
	b.docs[typ.Name] = typ.Doc

	for i, field := range typ.Fields {
		fp, err := b.field(field, int32(i+1))
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", typ.Name, field.Name, err)
		}
		msg.Field = append(msg.Field, fp)
		b.docs[typ.Name+"."+fp.GetName()] = field.Doc
	}

	// proto3 optional fields each live in a synthetic oneof declared after
	// any real ones.
	for _, fp := range msg.Field {
		if !fp.GetProto3Optional() {
			continue
		}
		fp.OneofIndex = proto.Int32(int32(len(msg.OneofDecl)))
		msg.OneofDecl = append(msg.OneofDecl, &descriptorpb.OneofDescriptorProto{
			Name: proto.String("_" + fp.GetName()),
		})
	}
	return msg, nil
}

func (b *builder) union(union schema.UnionType) *descriptorpb.DescriptorProto {
	msg := &descriptorpb.DescriptorProto{
		Name:      proto.String(union.Name),
		OneofDecl: []*descriptorpb.OneofDescriptorProto{{Name: proto.String("value")}},
	}
	b.docs[union.Name] = union.Doc

	for i, member := range union.Members {
		fp := &descriptorpb.FieldDescriptorProto{
			Name:       proto.String(naming.SnakeCase(member)),
			Number:     proto.Int32(int32(i + 1)),
			Label:      descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
			OneofIndex: proto.Int32(0),
		}
		b.setType(fp, member)
		msg.Field = append(msg.Field, fp)
	}
	return msg
}

func (b *builder) field(field schema.Field, number int32) (*descriptorpb.FieldDescriptorProto, error) {
	typ := field.Type
	list := schema.IsListType(typ)
	if list {
		typ = schema.ElemType(typ)
		if schema.IsListType(typ) {
			return nil, fmt.Errorf("nested list %s has no protobuf representation", field.Type)
		}
	}

	fp := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(naming.SnakeCase(field.Name)),
		Number: proto.Int32(number),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
	}
	b.setType(fp, typ)

	switch {
	case list:
		fp.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	case !field.Required && fp.GetType() != descriptorpb.FieldDescriptorProto_TYPE_MESSAGE:
		fp.Proto3Optional = proto.Bool(true)
	}
	return fp, nil
}

func (b *builder) setType(fp *descriptorpb.FieldDescriptorProto, typ string) {
	if kind, ok := scalarKinds[typ]; ok {
		fp.Type = kind.Enum()
		return
	}

	switch {
	case timestampTypes[typ]:
		b.imports[timestampImport] = true
		fp.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
		fp.TypeName = proto.String(".google.protobuf.Timestamp")
	case b.s.IsScalar(typ):
		fp.Type = descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum()
	case b.s.IsEnum(typ):
		fp.Type = descriptorpb.FieldDescriptorProto_TYPE_ENUM.Enum()
		fp.TypeName = proto.String(b.qualify(typ))
	default:
		// Unknown names are left for protodesc to reject.
		fp.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
		fp.TypeName = proto.String(b.qualify(typ))
	}
}

func (b *builder) service(svc schema.Service) (*descriptorpb.ServiceDescriptorProto, error) {
	sd := &descriptorpb.ServiceDescriptorProto{Name: proto.String(svc.Name)}
	b.docs[svc.Name] = svc.Doc

	for _, method := range svc.Methods {
		name := naming.PascalCase(method.Name)
		input, err := b.rpcType(svc.Name+name+"Request", method.InputType)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", svc.Name, method.Name, err)
		}
		output, err := b.rpcType(svc.Name+name+"Response", method.OutputType)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", svc.Name, method.Name, err)
		}
		sd.Method = append(sd.Method, &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(name),
			InputType:  proto.String(input),
			OutputType: proto.String(output),
		})
		b.docs[svc.Name+"."+name] = method.Doc
	}
	return sd, nil
}

// rpcType returns the fully qualified message used for a method argument or
// result. Anything that is not a message gets a single-field wrapper.
func (b *builder) rpcType(wrapper, typ string) (string, error) {
	if typ == "" {
		b.imports[emptyImport] = true
		return ".google.protobuf.Empty", nil
	}
	if b.isMessage(typ) {
		return b.qualify(typ), nil
	}

	fp, err := b.field(schema.Field{Name: "value", Type: typ, Required: true}, 1)
	if err != nil {
		return "", err
	}
	b.wrappers = append(b.wrappers, &descriptorpb.DescriptorProto{
		Name:  proto.String(wrapper),
		Field: []*descriptorpb.FieldDescriptorProto{fp},
	})
	return b.qualify(wrapper), nil
}

func (b *builder) isMessage(name string) bool {
	for _, typ := range b.s.Types {
		if typ.Name == name {
			return true
		}
	}
	for _, union := range b.s.Unions {
		if union.Name == name {
			return true
		}
	}
	return false
}

func (b *builder) qualify(name string) string {
	return "." + b.pkg + "." + name
}
