// Package ptb assembles programmable transactions.
//
// A Builder is an append-only arena: inputs and commands get dense indices in
// the order they are added, and a command can only name results of commands
// added before it. The first invalid addition is remembered and every later
// call becomes a no-op, so callers can chain additions and check once in Finish.
package ptb

import (
	"fmt"
	"math"

	"github.com/NilFoundation/suiflow/core/types"
)

type Builder struct {
	tx      types.ProgrammableTransaction
	objects map[types.ObjectId]uint16
	err     error
}

func NewBuilder() *Builder {
	return &Builder{objects: make(map[types.ObjectId]uint16)}
}

// Err returns the first error recorded by the builder.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) addInput(arg types.CallArg) types.Argument {
	if b.err != nil {
		return types.Argument{}
	}
	if len(b.tx.Inputs) > math.MaxUint16 {
		b.fail(fmt.Errorf("%w: too many inputs", types.ErrInvalidInput))
		return types.Argument{}
	}
	b.tx.Inputs = append(b.tx.Inputs, arg)
	return types.Input(uint16(len(b.tx.Inputs) - 1))
}

// Object adds an object input. Adding the same object twice returns the
// existing input; a shared object used both read-only and mutably becomes mutable.
func (b *Builder) Object(in types.ObjectInput) types.Argument {
	if b.err != nil {
		return types.Argument{}
	}

	id := in.ObjectId()
	idx, ok := b.objects[id]
	if !ok {
		arg := b.addInput(types.ObjectArg(in))
		if b.err == nil {
			b.objects[id] = arg.Index
		}
		return arg
	}

	prev := b.tx.Inputs[idx].Object
	if prev.Kind != in.Kind {
		b.fail(fmt.Errorf("%w: object %s used as both %s and %s", types.ErrInvalidInput, id.ShortHex(), prev, in))
		return types.Argument{}
	}
	switch in.Kind {
	case types.InputShared:
		if prev.InitialSharedVersion != in.InitialSharedVersion {
			b.fail(fmt.Errorf("%w: object %s has conflicting initial shared versions %d and %d",
				types.ErrInvalidInput, id.ShortHex(), prev.InitialSharedVersion, in.InitialSharedVersion))
			return types.Argument{}
		}
		prev.Mutable = prev.Mutable || in.Mutable
	default:
		if prev.Ref != in.Ref {
			b.fail(fmt.Errorf("%w: object %s has conflicting refs %s and %s", types.ErrInvalidInput, id.ShortHex(), prev.Ref, in.Ref))
			return types.Argument{}
		}
	}
	return types.Input(idx)
}

// Command appends cmd after checking its references and returns its result.
func (b *Builder) Command(cmd types.Command) types.Argument {
	if b.err != nil {
		return types.Argument{}
	}
	if len(b.tx.Commands) > math.MaxUint16 {
		b.fail(fmt.Errorf("%w: too many commands", types.ErrInvalidInput))
		return types.Argument{}
	}

	b.tx.Commands = append(b.tx.Commands, cmd)
	i := len(b.tx.Commands) - 1
	if err := b.tx.ValidateCommand(i); err != nil {
		b.tx.Commands = b.tx.Commands[:i]
		b.fail(err)
		return types.Argument{}
	}
	return types.Result(uint16(i))
}

func (b *Builder) SplitCoins(coin types.Argument, amounts ...types.Argument) types.Argument {
	return b.Command(types.NewSplitCoins(coin, amounts))
}

func (b *Builder) MergeCoins(destination types.Argument, sources ...types.Argument) types.Argument {
	return b.Command(types.NewMergeCoins(destination, sources))
}

func (b *Builder) TransferObjects(objects []types.Argument, recipient types.Argument) types.Argument {
	return b.Command(types.NewTransferObjects(objects, recipient))
}

// MoveCall calls pkg::module::function with the given type arguments.
func (b *Builder) MoveCall(
	pkg types.Address, module, function string, typeArgs []types.TypeTag, args ...types.Argument,
) types.Argument {
	return b.Command(types.NewMoveCall(types.MoveCall{
		Package:       pkg,
		Module:        module,
		Function:      function,
		TypeArguments: typeArgs,
		Arguments:     args,
	}))
}

// Finish seals the arena into a plan. The builder must not be used afterwards.
func (b *Builder) Finish(sender types.Address, gas types.GasData, opts ...PlanOption) (*Plan, error) {
	if b.err != nil {
		return nil, b.err
	}
	plan, err := NewPlan(b.tx, sender, gas, opts...)
	if err != nil {
		return nil, err
	}
	b.err = errFinished
	return plan, nil
}
