package types

import (
	"fmt"

	"github.com/fardream/go-bcs/bcs"
	"github.com/holiman/uint256"
)

// Canonical layouts of the transaction structures. An enum struct has exactly
// one field set and the position of that field is the variant index.

type unit struct{}

type bcsObjectRef struct {
	ObjectId Address
	Version  uint64
	Digest   []byte
}

type bcsSharedObject struct {
	ObjectId             Address
	InitialSharedVersion uint64
	Mutable              bool
}

type bcsObjectArg struct {
	ImmOrOwnedObject *bcsObjectRef
	SharedObject     *bcsSharedObject
	Receiving        *bcsObjectRef
}

func (bcsObjectArg) IsBcsEnum() {}

type bcsCallArg struct {
	Pure   *[]byte
	Object *bcsObjectArg
}

func (bcsCallArg) IsBcsEnum() {}

type bcsNestedResult struct {
	Command uint16
	Result  uint16
}

type bcsArgument struct {
	GasCoin      *unit
	Input        *uint16
	Result       *uint16
	NestedResult *bcsNestedResult
}

func (bcsArgument) IsBcsEnum() {}

type bcsStructTag struct {
	Address    Address
	Module     string
	Name       string
	TypeParams []bcsTypeTag
}

type bcsTypeTag struct {
	Bool    *unit
	U8      *unit
	U64     *unit
	U128    *unit
	Address *unit
	Signer  *unit
	Vector  *bcsTypeTag
	Struct  *bcsStructTag
	U16     *unit
	U32     *unit
	U256    *unit
}

func (bcsTypeTag) IsBcsEnum() {}

type bcsMoveCall struct {
	Package       Address
	Module        string
	Function      string
	TypeArguments []bcsTypeTag
	Arguments     []bcsArgument
}

type bcsTransferObjects struct {
	Objects   []bcsArgument
	Recipient bcsArgument
}

type bcsSplitCoins struct {
	Coin    bcsArgument
	Amounts []bcsArgument
}

type bcsMergeCoins struct {
	Destination bcsArgument
	Sources     []bcsArgument
}

type bcsCommand struct {
	MoveCall        *bcsMoveCall
	TransferObjects *bcsTransferObjects
	SplitCoins      *bcsSplitCoins
	MergeCoins      *bcsMergeCoins
}

func (bcsCommand) IsBcsEnum() {}

type bcsProgrammableTransaction struct {
	Inputs   []bcsCallArg
	Commands []bcsCommand
}

type bcsTransactionKind struct {
	ProgrammableTransaction *bcsProgrammableTransaction
}

func (bcsTransactionKind) IsBcsEnum() {}

type bcsGasData struct {
	Payment []bcsObjectRef
	Owner   Address
	Price   uint64
	Budget  uint64
}

type bcsExpiration struct {
	None  *unit
	Epoch *uint64
}

func (bcsExpiration) IsBcsEnum() {}

type bcsTransactionDataV1 struct {
	Kind       bcsTransactionKind
	Sender     Address
	GasData    bcsGasData
	Expiration bcsExpiration
}

type bcsTransactionData struct {
	V1 *bcsTransactionDataV1
}

func (bcsTransactionData) IsBcsEnum() {}

// U128 is a Move u128 in its little-endian layout.
type U128 struct {
	Lo uint64
	Hi uint64
}

func NewU128(v *uint256.Int) (U128, error) {
	if v.BitLen() > 128 {
		return U128{}, fmt.Errorf("%w: %s does not fit u128", ErrInvalidInput, v.Dec())
	}
	return U128{Lo: v[0], Hi: v[1]}, nil
}

func marshalBcs[B any](conv func() (B, error)) ([]byte, error) {
	v, err := conv()
	if err != nil {
		return nil, err
	}
	return bcs.Marshal(v)
}

func toBcsSeq[T, B any](items []T, conv func(T) (B, error)) ([]B, error) {
	out := make([]B, 0, len(items))
	for _, item := range items {
		b, err := conv(item)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (r ObjectRef) toBcs() (bcsObjectRef, error) {
	return bcsObjectRef{ObjectId: r.ObjectId, Version: r.Version, Digest: r.Digest.Bytes()}, nil
}

func (in ObjectInput) toBcs() (bcsObjectArg, error) {
	switch in.Kind {
	case InputImmOrOwned, InputReceiving:
		ref, _ := in.Ref.toBcs()
		if in.Kind == InputReceiving {
			return bcsObjectArg{Receiving: &ref}, nil
		}
		return bcsObjectArg{ImmOrOwnedObject: &ref}, nil
	case InputShared:
		return bcsObjectArg{SharedObject: &bcsSharedObject{
			ObjectId:             in.Ref.ObjectId,
			InitialSharedVersion: in.InitialSharedVersion,
			Mutable:              in.Mutable,
		}}, nil
	default:
		return bcsObjectArg{}, fmt.Errorf("%w: object input kind %d", ErrInvalidInput, in.Kind)
	}
}

func (a CallArg) toBcs() (bcsCallArg, error) {
	if a.IsPure() {
		pure := a.Pure
		if pure == nil {
			pure = []byte{}
		}
		return bcsCallArg{Pure: &pure}, nil
	}
	obj, err := a.Object.toBcs()
	if err != nil {
		return bcsCallArg{}, err
	}
	return bcsCallArg{Object: &obj}, nil
}

func (a Argument) toBcs() (bcsArgument, error) {
	switch a.Kind {
	case ArgGasCoin:
		return bcsArgument{GasCoin: &unit{}}, nil
	case ArgInput:
		return bcsArgument{Input: &a.Index}, nil
	case ArgResult:
		return bcsArgument{Result: &a.Index}, nil
	case ArgNestedResult:
		return bcsArgument{NestedResult: &bcsNestedResult{Command: a.Index, Result: a.Nested}}, nil
	default:
		return bcsArgument{}, fmt.Errorf("%w: argument kind %d", ErrInvalidInput, a.Kind)
	}
}

func (t TypeTag) toBcs() (bcsTypeTag, error) {
	var out bcsTypeTag
	switch t.Kind {
	case TagBool:
		out.Bool = &unit{}
	case TagU8:
		out.U8 = &unit{}
	case TagU16:
		out.U16 = &unit{}
	case TagU32:
		out.U32 = &unit{}
	case TagU64:
		out.U64 = &unit{}
	case TagU128:
		out.U128 = &unit{}
	case TagU256:
		out.U256 = &unit{}
	case TagAddress:
		out.Address = &unit{}
	case TagSigner:
		out.Signer = &unit{}
	case TagVector:
		if t.Elem == nil {
			return out, fmt.Errorf("%w: vector without element type", ErrInvalidInput)
		}
		elem, err := t.Elem.toBcs()
		if err != nil {
			return out, err
		}
		out.Vector = &elem
	case TagStruct:
		if t.Struct == nil {
			return out, fmt.Errorf("%w: struct tag missing", ErrInvalidInput)
		}
		st, err := t.Struct.toBcs()
		if err != nil {
			return out, err
		}
		out.Struct = &st
	default:
		return out, fmt.Errorf("%w: type tag kind %d", ErrInvalidInput, t.Kind)
	}
	return out, nil
}

func (s StructTag) toBcs() (bcsStructTag, error) {
	params, err := toBcsSeq(s.TypeParams, TypeTag.toBcs)
	if err != nil {
		return bcsStructTag{}, err
	}
	return bcsStructTag{Address: s.Address, Module: s.Module, Name: s.Name, TypeParams: params}, nil
}

func (c MoveCall) toBcs() (bcsMoveCall, error) {
	typeArgs, err := toBcsSeq(c.TypeArguments, TypeTag.toBcs)
	if err != nil {
		return bcsMoveCall{}, err
	}
	args, err := toBcsSeq(c.Arguments, Argument.toBcs)
	if err != nil {
		return bcsMoveCall{}, err
	}
	return bcsMoveCall{
		Package:       c.Package,
		Module:        c.Module,
		Function:      c.Function,
		TypeArguments: typeArgs,
		Arguments:     args,
	}, nil
}

func (c Command) toBcs() (bcsCommand, error) {
	if c.Kind == CmdMoveCall {
		if c.Call == nil {
			return bcsCommand{}, fmt.Errorf("%w: empty move call", ErrInvalidInput)
		}
		call, err := c.Call.toBcs()
		if err != nil {
			return bcsCommand{}, err
		}
		return bcsCommand{MoveCall: &call}, nil
	}

	target, err := c.Target.toBcs()
	if err != nil {
		return bcsCommand{}, err
	}
	switch c.Kind {
	case CmdTransferObjects:
		objects, err := toBcsSeq(c.Objects, Argument.toBcs)
		if err != nil {
			return bcsCommand{}, err
		}
		return bcsCommand{TransferObjects: &bcsTransferObjects{Objects: objects, Recipient: target}}, nil
	case CmdSplitCoins:
		amounts, err := toBcsSeq(c.Amounts, Argument.toBcs)
		if err != nil {
			return bcsCommand{}, err
		}
		return bcsCommand{SplitCoins: &bcsSplitCoins{Coin: target, Amounts: amounts}}, nil
	case CmdMergeCoins:
		sources, err := toBcsSeq(c.Objects, Argument.toBcs)
		if err != nil {
			return bcsCommand{}, err
		}
		return bcsCommand{MergeCoins: &bcsMergeCoins{Destination: target, Sources: sources}}, nil
	default:
		return bcsCommand{}, fmt.Errorf("%w: command kind %d", ErrInvalidInput, c.Kind)
	}
}

func (pt ProgrammableTransaction) toBcs() (bcsProgrammableTransaction, error) {
	inputs, err := toBcsSeq(pt.Inputs, CallArg.toBcs)
	if err != nil {
		return bcsProgrammableTransaction{}, err
	}
	commands, err := toBcsSeq(pt.Commands, Command.toBcs)
	if err != nil {
		return bcsProgrammableTransaction{}, err
	}
	return bcsProgrammableTransaction{Inputs: inputs, Commands: commands}, nil
}

func (t *TransactionData) toBcs() (bcsTransactionData, error) {
	kind, err := t.Kind.toBcs()
	if err != nil {
		return bcsTransactionData{}, err
	}
	payment, _ := toBcsSeq(t.Gas.Payment, ObjectRef.toBcs)

	expiration := bcsExpiration{None: &unit{}}
	if t.ExpireAtEpoch != 0 {
		epoch := t.ExpireAtEpoch
		expiration = bcsExpiration{Epoch: &epoch}
	}
	return bcsTransactionData{V1: &bcsTransactionDataV1{
		Kind:   bcsTransactionKind{ProgrammableTransaction: &kind},
		Sender: t.Sender,
		GasData: bcsGasData{
			Payment: payment,
			Owner:   t.Gas.Owner,
			Price:   t.Gas.Price,
			Budget:  t.Gas.Budget,
		},
		Expiration: expiration,
	}}, nil
}

// MarshalBCS returns the canonical encoding of the input.
func (a CallArg) MarshalBCS() ([]byte, error) {
	return marshalBcs(a.toBcs)
}

// MarshalBCS returns the canonical encoding of the command.
func (c Command) MarshalBCS() ([]byte, error) {
	return marshalBcs(c.toBcs)
}

// MarshalBCS returns the canonical encoding of the type tag.
func (t TypeTag) MarshalBCS() ([]byte, error) {
	return marshalBcs(t.toBcs)
}
