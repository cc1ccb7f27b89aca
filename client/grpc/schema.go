package grpc

import (
	"context"
	"embed"
	"io"
	"path"

	"github.com/NilFoundation/suiflow/common/check"
	"github.com/bufbuild/protocompile"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// The sui.rpc.v2 schema is compiled from the bundled .proto files once, at
// startup. Only the fields this client uses are declared; unknown fields of
// newer servers are kept as unknown and ignored.

//go:embed proto
var protoFiles embed.FS

const protoPackage = "sui.rpc.v2."

var protoSources = []string{
	"sui/rpc/v2/ledger_service.proto",
	"sui/rpc/v2/state_service.proto",
	"sui/rpc/v2/transaction_execution_service.proto",
}

type schema map[protoreflect.FullName]protoreflect.MessageDescriptor

var messages = mustLoadSchema()

func loadSchema(ctx context.Context) (schema, error) {
	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(&protocompile.SourceResolver{
			Accessor: func(name string) (io.ReadCloser, error) {
				return protoFiles.Open(path.Join("proto", name))
			},
		}),
	}
	files, err := compiler.Compile(ctx, protoSources...)
	if err != nil {
		return nil, err
	}

	s := make(schema)
	seen := make(map[string]bool)
	var collectFile func(fd protoreflect.FileDescriptor)
	collectFile = func(fd protoreflect.FileDescriptor) {
		if seen[fd.Path()] {
			return
		}
		seen[fd.Path()] = true
		s.collect(fd.Messages())
		imports := fd.Imports()
		for i := range imports.Len() {
			collectFile(imports.Get(i).FileDescriptor)
		}
	}
	for _, f := range files {
		collectFile(f)
	}
	return s, nil
}

func (s schema) collect(mds protoreflect.MessageDescriptors) {
	for i := range mds.Len() {
		md := mds.Get(i)
		s[md.FullName()] = md
		s.collect(md.Messages())
	}
}

func mustLoadSchema() schema {
	s, err := loadSchema(context.Background())
	check.PanicIfErr(err)
	return s
}

// message is a sui.rpc.v2 message backed by the compiled schema.
type message struct {
	pb protoreflect.Message
}

func newMessage(name string) message {
	md, ok := messages[protoreflect.FullName(protoPackage+name)]
	check.PanicIfNotf(ok, "unknown message %s%s", protoPackage, name)
	return message{pb: dynamicpb.NewMessage(md)}
}

func (m message) proto() proto.Message {
	return m.pb.Interface()
}

func (m message) field(name string) protoreflect.FieldDescriptor {
	fd := m.pb.Descriptor().Fields().ByName(protoreflect.Name(name))
	check.PanicIfNotf(fd != nil, "%s has no field %s", m.pb.Descriptor().FullName(), name)
	return fd
}

func (m message) has(name string) bool {
	return m.pb.Has(m.field(name))
}

func (m message) setString(name, v string) {
	m.pb.Set(m.field(name), protoreflect.ValueOfString(v))
}

func (m message) setBytes(name string, v []byte) {
	m.pb.Set(m.field(name), protoreflect.ValueOfBytes(v))
}

func (m message) setBool(name string, v bool) {
	m.pb.Set(m.field(name), protoreflect.ValueOfBool(v))
}

// setUint sets an unsigned integer or enum field.
func (m message) setUint(name string, v uint64) {
	fd := m.field(name)
	switch fd.Kind() {
	case protoreflect.Uint32Kind:
		m.pb.Set(fd, protoreflect.ValueOfUint32(uint32(v)))
	case protoreflect.EnumKind:
		m.pb.Set(fd, protoreflect.ValueOfEnum(protoreflect.EnumNumber(v)))
	default:
		m.pb.Set(fd, protoreflect.ValueOfUint64(v))
	}
}

func (m message) getString(name string) (string, bool) {
	if !m.has(name) {
		return "", false
	}
	return m.pb.Get(m.field(name)).String(), true
}

func (m message) getBytes(name string) []byte {
	return m.pb.Get(m.field(name)).Bytes()
}

func (m message) getBool(name string) (bool, bool) {
	if !m.has(name) {
		return false, false
	}
	return m.pb.Get(m.field(name)).Bool(), true
}

func (m message) getUint(name string) (uint64, bool) {
	fd := m.field(name)
	if !m.pb.Has(fd) {
		return 0, false
	}
	v := m.pb.Get(fd)
	if fd.Kind() == protoreflect.EnumKind {
		return uint64(v.Enum()), true
	}
	return v.Uint(), true
}

func (m message) getMessage(name string) (message, bool) {
	if !m.has(name) {
		return message{}, false
	}
	return message{pb: m.pb.Get(m.field(name)).Message()}, true
}

// mutable returns the sub-message of field name, creating it when unset.
func (m message) mutable(name string) message {
	return message{pb: m.pb.Mutable(m.field(name)).Message()}
}

func (m message) list(name string) []message {
	l := m.pb.Get(m.field(name)).List()
	out := make([]message, 0, l.Len())
	for i := range l.Len() {
		out = append(out, message{pb: l.Get(i).Message()})
	}
	return out
}

func (m message) appendMessage(name string) message {
	l := m.pb.Mutable(m.field(name)).List()
	v := l.NewElement()
	l.Append(v)
	return message{pb: v.Message()}
}

// setProto copies a well-known message, such as a FieldMask, into field name.
func (m message) setProto(name string, v proto.Message) error {
	b, err := proto.Marshal(v)
	if err != nil {
		return err
	}
	return proto.UnmarshalOptions{Merge: true}.Unmarshal(b, m.mutable(name).proto())
}

// getProto copies field name into a well-known message.
func (m message) getProto(name string, v proto.Message) (bool, error) {
	sub, ok := m.getMessage(name)
	if !ok {
		return false, nil
	}
	b, err := proto.Marshal(sub.proto())
	if err != nil {
		return false, err
	}
	return true, proto.Unmarshal(b, v)
}
