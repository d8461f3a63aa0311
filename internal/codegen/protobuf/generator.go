// Package protobuf renders okra schemas as a proto3 file and, optionally, a
// binary FileDescriptorSet describing it.
package protobuf

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"

	// Register the well-known imports the descriptor may depend on.
	_ "google.golang.org/protobuf/types/known/emptypb"
	_ "google.golang.org/protobuf/types/known/timestamppb"

	"github.com/okra-platform/okragen/internal/codegen/naming"
	"github.com/okra-platform/okragen/internal/codegen/writer"
	"github.com/okra-platform/okragen/internal/output"
	"github.com/okra-platform/okragen/internal/schema"
)

const header = "// Code generated by okragen. DO NOT EDIT."

const defaultPackage = "okra"

// Generator generates protobuf definitions from okra schemas
type Generator struct {
	descriptor bool
}

// NewGenerator creates a new protobuf generator
func NewGenerator() *Generator {
	return &Generator{}
}

// WithDescriptor also writes <package>.pb.desc, a serialized FileDescriptorSet
func (g *Generator) WithDescriptor(enabled bool) *Generator {
	g.descriptor = enabled
	return g
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return "protobuf"
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".proto"
}

// Render writes <package>.proto. The descriptor is checked with protodesc
// before anything is written, so unresolved type references fail here.
func (g *Generator) Render(s *schema.Schema, namespace string, out *output.Tree) error {
	pkg := naming.Package(namespace)
	if pkg == "" {
		pkg = defaultPackage
	}

	fd, docs, err := describe(s, pkg)
	if err != nil {
		return err
	}
	if err := out.WriteFile(pkg+g.FileExtension(), printFile(fd, docs)); err != nil {
		return err
	}

	if !g.descriptor {
		return nil
	}
	data, err := proto.MarshalOptions{Deterministic: true}.Marshal(&descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{fd},
	})
	if err != nil {
		return fmt.Errorf("marshal descriptor set: %w", err)
	}
	return out.WriteFile(pkg+".pb.desc", data)
}

// Descriptor builds and validates the file descriptor for s in package pkg
func Descriptor(s *schema.Schema, pkg string) (*descriptorpb.FileDescriptorProto, error) {
	fd, _, err := describe(s, pkg)
	return fd, err
}

func describe(s *schema.Schema, pkg string) (*descriptorpb.FileDescriptorProto, map[string]string, error) {
	b := newBuilder(s, pkg)
	fd, err := b.build()
	if err != nil {
		return nil, nil, err
	}
	if _, err := protodesc.NewFile(fd, protoregistry.GlobalFiles); err != nil {
		return nil, nil, fmt.Errorf("invalid protobuf definition: %w", err)
	}
	return fd, b.docs, nil
}

func printFile(fd *descriptorpb.FileDescriptorProto, docs map[string]string) []byte {
	w := writer.NewWriter("  ")
	w.WriteLine(header)
	w.BlankLine()
	w.WriteLinef("syntax = %q;", fd.GetSyntax())
	w.BlankLine()
	w.WriteLinef("package %s;", fd.GetPackage())

	if len(fd.Dependency) > 0 {
		w.BlankLine()
		for _, dep := range fd.Dependency {
			w.WriteLinef("import %q;", dep)
		}
	}

	for _, ed := range fd.EnumType {
		ed := ed
		w.BlankLine()
		w.WriteDocComment(docs[ed.GetName()])
		w.WriteBlock("enum "+ed.GetName()+" {", "}", func() {
			for _, v := range ed.Value {
				w.WriteDocComment(docs[ed.GetName()+"."+v.GetName()])
				w.WriteLinef("%s = %d;", v.GetName(), v.GetNumber())
			}
		})
	}

	for _, msg := range fd.MessageType {
		msg := msg
		w.BlankLine()
		w.WriteDocComment(docs[msg.GetName()])
		w.WriteBlock("message "+msg.GetName()+" {", "}", func() {
			printFields(w, fd.GetPackage(), msg, docs)
		})
	}

	for _, sd := range fd.Service {
		sd := sd
		w.BlankLine()
		w.WriteDocComment(docs[sd.GetName()])
		w.WriteBlock("service "+sd.GetName()+" {", "}", func() {
			for _, m := range sd.Method {
				w.WriteDocComment(docs[sd.GetName()+"."+m.GetName()])
				w.WriteLinef("rpc %s(%s) returns (%s);", m.GetName(),
					typeName(fd.GetPackage(), m.GetInputType()),
					typeName(fd.GetPackage(), m.GetOutputType()))
			}
		})
	}

	return w.Bytes()
}

// printFields writes plain fields first, then one block per real oneof.
func printFields(w *writer.Writer, pkg string, msg *descriptorpb.DescriptorProto, docs map[string]string) {
	oneofs := make(map[int32][]*descriptorpb.FieldDescriptorProto)
	for _, fp := range msg.Field {
		if fp.OneofIndex != nil && !fp.GetProto3Optional() {
			oneofs[fp.GetOneofIndex()] = append(oneofs[fp.GetOneofIndex()], fp)
			continue
		}
		w.WriteDocComment(docs[msg.GetName()+"."+fp.GetName()])
		w.WriteLine(fieldLine(pkg, fp))
	}

	for i, decl := range msg.OneofDecl {
		fields := oneofs[int32(i)]
		if len(fields) == 0 {
			continue
		}
		w.WriteBlock("oneof "+decl.GetName()+" {", "}", func() {
			for _, fp := range fields {
				w.WriteLine(fieldLine(pkg, fp))
			}
		})
	}
}

func fieldLine(pkg string, fp *descriptorpb.FieldDescriptorProto) string {
	var prefix string
	switch {
	case fp.GetLabel() == descriptorpb.FieldDescriptorProto_LABEL_REPEATED:
		prefix = "repeated "
	case fp.GetProto3Optional():
		prefix = "optional "
	}

	var typ string
	switch fp.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		typ = typeName(pkg, fp.GetTypeName())
	default:
		typ = strings.ToLower(strings.TrimPrefix(fp.GetType().String(), "TYPE_"))
	}

	return fmt.Sprintf("%s%s %s = %d;", prefix, typ, fp.GetName(), fp.GetNumber())
}

// typeName drops the leading dot and, for local types, the package.
func typeName(pkg, qualified string) string {
	name := strings.TrimPrefix(qualified, ".")
	return strings.TrimPrefix(name, pkg+".")
}
