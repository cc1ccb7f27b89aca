package types

import (
	"fmt"
)

type ObjectInputKind uint8

const (
	InputImmOrOwned ObjectInputKind = iota
	InputShared
	InputReceiving
)

// ObjectInput is how a transaction names an object it touches.
// Owned and receiving inputs carry a full ref; shared inputs carry the
// initial shared version and whether the object is mutated.
type ObjectInput struct {
	Kind                 ObjectInputKind
	Ref                  ObjectRef
	InitialSharedVersion uint64
	Mutable              bool
}

func OwnedInput(ref ObjectRef) ObjectInput {
	return ObjectInput{Kind: InputImmOrOwned, Ref: ref}
}

func SharedInput(id ObjectId, initialSharedVersion uint64, mutable bool) ObjectInput {
	return ObjectInput{
		Kind:                 InputShared,
		Ref:                  ObjectRef{ObjectId: id},
		InitialSharedVersion: initialSharedVersion,
		Mutable:              mutable,
	}
}

func ReceivingInput(ref ObjectRef) ObjectInput {
	return ObjectInput{Kind: InputReceiving, Ref: ref}
}

func (in ObjectInput) ObjectId() ObjectId {
	return in.Ref.ObjectId
}

func (in ObjectInput) String() string {
	switch in.Kind {
	case InputShared:
		return fmt.Sprintf("Shared(%s, initial=%d, mutable=%t)", in.Ref.ObjectId.ShortHex(), in.InitialSharedVersion, in.Mutable)
	case InputReceiving:
		return "Receiving(" + in.Ref.String() + ")"
	default:
		return "Owned(" + in.Ref.String() + ")"
	}
}

// CallArg is one transaction input: either BCS bytes of a pure value or an object.
type CallArg struct {
	Pure   []byte
	Object *ObjectInput
}

func PureArg(b []byte) CallArg {
	return CallArg{Pure: b}
}

func ObjectArg(in ObjectInput) CallArg {
	return CallArg{Object: &in}
}

func (a CallArg) IsPure() bool {
	return a.Object == nil
}
