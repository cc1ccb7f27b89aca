package ptb

import (
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/fardream/go-bcs/bcs"
	"github.com/holiman/uint256"
)

// Pure encodes v and adds it as a pure input.
func (b *Builder) Pure(v any) types.Argument {
	if b.err != nil {
		return types.Argument{}
	}
	raw, err := bcs.Marshal(v)
	if err != nil {
		b.fail(err)
		return types.Argument{}
	}
	return b.PureBytes(raw)
}

// PureBytes adds already encoded bytes as a pure input.
func (b *Builder) PureBytes(raw []byte) types.Argument {
	return b.addInput(types.PureArg(raw))
}

func (b *Builder) PureU8(v uint8) types.Argument {
	return b.Pure(v)
}

func (b *Builder) PureU32(v uint32) types.Argument {
	return b.Pure(v)
}

func (b *Builder) PureU64(v uint64) types.Argument {
	return b.Pure(v)
}

func (b *Builder) PureU128(v *uint256.Int) types.Argument {
	u, err := types.NewU128(v)
	if err != nil {
		b.fail(err)
		return types.Argument{}
	}
	return b.Pure(u)
}

func (b *Builder) PureBool(v bool) types.Argument {
	return b.Pure(v)
}

func (b *Builder) PureAddress(addr types.Address) types.Argument {
	return b.Pure(addr)
}

func (b *Builder) PureString(s string) types.Argument {
	return b.Pure(s)
}
