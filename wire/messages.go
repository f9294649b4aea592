package wire

import (
	"errors"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Line carries the tokens of one input line.
type Line struct {
	Number uint64
	Tokens []string
}

// Trailer closes a stream. Checksum is the md5 of every Line payload sent before it.
type Trailer struct {
	Lines    uint64
	Tokens   uint64
	Checksum []byte
}

// Wrapper is the unit sent on the wire; exactly one of Line or Trailer is set.
type Wrapper struct {
	Line    *Line
	Trailer *Trailer
}

var errOneof = errors.New("wrapper must hold exactly one message")

// Descriptors for wire.proto. Keep both in step: streams are written to disk and piped between tools.
var (
	wrapper_desc protoreflect.MessageDescriptor
	wrapper_msg  protoreflect.OneofDescriptor
	wrapper_ln   protoreflect.FieldDescriptor
	wrapper_tr   protoreflect.FieldDescriptor

	line_number protoreflect.FieldDescriptor
	line_tokens protoreflect.FieldDescriptor

	trailer_lines    protoreflect.FieldDescriptor
	trailer_tokens   protoreflect.FieldDescriptor
	trailer_checksum protoreflect.FieldDescriptor
)

func field(name string, num int32, typ descriptorpb.FieldDescriptorProto_Type, label descriptorpb.FieldDescriptorProto_Label) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		JsonName: proto.String(name),
		Number:   proto.Int32(num),
		Type:     typ.Enum(),
		Label:    label.Enum(),
	}
}

func oneof_field(name string, num int32, type_name string) *descriptorpb.FieldDescriptorProto {
	f := field(name, num, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL)
	f.TypeName = proto.String(type_name)
	f.OneofIndex = proto.Int32(0)
	return f
}

func init() {
	const (
		optional = descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
		repeated = descriptorpb.FieldDescriptorProto_LABEL_REPEATED
	)

	fdp := &descriptorpb.FileDescriptorProto{
		Name:    proto.String("wordnorm/wire/wire.proto"),
		Package: proto.String("wordnorm.wire"),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Line"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("number", 1, descriptorpb.FieldDescriptorProto_TYPE_UINT64, optional),
					field("tokens", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING, repeated),
				},
			},
			{
				Name: proto.String("Trailer"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("lines", 1, descriptorpb.FieldDescriptorProto_TYPE_UINT64, optional),
					field("tokens", 2, descriptorpb.FieldDescriptorProto_TYPE_UINT64, optional),
					field("checksum", 3, descriptorpb.FieldDescriptorProto_TYPE_BYTES, optional),
				},
			},
			{
				Name: proto.String("Wrapper"),
				Field: []*descriptorpb.FieldDescriptorProto{
					oneof_field("line", 1, ".wordnorm.wire.Line"),
					oneof_field("trailer", 2, ".wordnorm.wire.Trailer"),
				},
				OneofDecl: []*descriptorpb.OneofDescriptorProto{{Name: proto.String("msg")}},
			},
		},
	}

	fd, err := protodesc.NewFile(fdp, new(protoregistry.Files))
	if err != nil {
		panic(err)
	}

	msgs := fd.Messages()
	wrapper_desc = msgs.ByName("Wrapper")
	wrapper_msg = wrapper_desc.Oneofs().ByName("msg")
	wrapper_ln = wrapper_desc.Fields().ByName("line")
	wrapper_tr = wrapper_desc.Fields().ByName("trailer")

	line_number = msgs.ByName("Line").Fields().ByName("number")
	line_tokens = msgs.ByName("Line").Fields().ByName("tokens")

	trailer_lines = msgs.ByName("Trailer").Fields().ByName("lines")
	trailer_tokens = msgs.ByName("Trailer").Fields().ByName("tokens")
	trailer_checksum = msgs.ByName("Trailer").Fields().ByName("checksum")
}

func Marshal(w *Wrapper) ([]byte, error) {
	m := dynamicpb.NewMessage(wrapper_desc)

	switch {
	case w.Line != nil && w.Trailer == nil:
		ln := m.Mutable(wrapper_ln).Message()
		ln.Set(line_number, protoreflect.ValueOfUint64(w.Line.Number))
		tokens := ln.Mutable(line_tokens).List()
		for _, t := range w.Line.Tokens {
			tokens.Append(protoreflect.ValueOfString(t))
		}
	case w.Trailer != nil && w.Line == nil:
		tr := m.Mutable(wrapper_tr).Message()
		tr.Set(trailer_lines, protoreflect.ValueOfUint64(w.Trailer.Lines))
		tr.Set(trailer_tokens, protoreflect.ValueOfUint64(w.Trailer.Tokens))
		tr.Set(trailer_checksum, protoreflect.ValueOfBytes(w.Trailer.Checksum))
	default:
		return nil, errOneof
	}

	return proto.Marshal(m)
}

// Unmarshal decodes one payload; unknown fields are ignored.
func Unmarshal(b []byte) (*Wrapper, error) {
	m := dynamicpb.NewMessage(wrapper_desc)
	if err := proto.Unmarshal(b, m); err != nil {
		return nil, err
	}

	w := &Wrapper{}
	switch m.WhichOneof(wrapper_msg) {
	case wrapper_ln:
		ln := m.Get(wrapper_ln).Message()
		w.Line = &Line{Number: ln.Get(line_number).Uint()}
		tokens := ln.Get(line_tokens).List()
		for i := 0; i < tokens.Len(); i++ {
			w.Line.Tokens = append(w.Line.Tokens, tokens.Get(i).String())
		}
	case wrapper_tr:
		tr := m.Get(wrapper_tr).Message()
		w.Trailer = &Trailer{
			Lines:    tr.Get(trailer_lines).Uint(),
			Tokens:   tr.Get(trailer_tokens).Uint(),
			Checksum: append([]byte(nil), tr.Get(trailer_checksum).Bytes()...),
		}
	default:
		return nil, errOneof
	}
	return w, nil
}
