package types

import (
	"fmt"
)

type ArgumentKind uint8

const (
	ArgGasCoin ArgumentKind = iota
	ArgInput
	ArgResult
	ArgNestedResult
)

// Argument refers to a value available to a command: the gas coin, a
// transaction input, the result of an earlier command or one element of it.
type Argument struct {
	Kind   ArgumentKind
	Index  uint16
	Nested uint16
}

func GasCoin() Argument          { return Argument{Kind: ArgGasCoin} }
func Input(i uint16) Argument    { return Argument{Kind: ArgInput, Index: i} }
func Result(cmd uint16) Argument { return Argument{Kind: ArgResult, Index: cmd} }
func NestedResult(cmd, i uint16) Argument {
	return Argument{Kind: ArgNestedResult, Index: cmd, Nested: i}
}

// Command returns the index of the command this argument depends on.
func (a Argument) Command() (uint16, bool) {
	if a.Kind == ArgResult || a.Kind == ArgNestedResult {
		return a.Index, true
	}
	return 0, false
}

func (a Argument) String() string {
	switch a.Kind {
	case ArgGasCoin:
		return "GasCoin"
	case ArgInput:
		return fmt.Sprintf("Input(%d)", a.Index)
	case ArgResult:
		return fmt.Sprintf("Result(%d)", a.Index)
	case ArgNestedResult:
		return fmt.Sprintf("NestedResult(%d, %d)", a.Index, a.Nested)
	default:
		return fmt.Sprintf("Argument(%d)", a.Kind)
	}
}

func (a Argument) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// CommandKind values are the BCS variant indices.
type CommandKind uint8

const (
	CmdMoveCall CommandKind = iota
	CmdTransferObjects
	CmdSplitCoins
	CmdMergeCoins
)

func (k CommandKind) String() string {
	switch k {
	case CmdMoveCall:
		return "MoveCall"
	case CmdTransferObjects:
		return "TransferObjects"
	case CmdSplitCoins:
		return "SplitCoins"
	case CmdMergeCoins:
		return "MergeCoins"
	default:
		return fmt.Sprintf("CommandKind(%d)", uint8(k))
	}
}

type MoveCall struct {
	Package       Address
	Module        string
	Function      string
	TypeArguments []TypeTag
	Arguments     []Argument
}

func (c *MoveCall) Target() string {
	return fmt.Sprintf("%s::%s::%s", c.Package.ShortHex(), c.Module, c.Function)
}

// Command is one step of a programmable transaction.
//
//	MoveCall:        Call
//	TransferObjects: Objects -> Target
//	SplitCoins:      Target split into Amounts
//	MergeCoins:      Objects merged into Target
type Command struct {
	Kind    CommandKind
	Call    *MoveCall
	Target  Argument
	Objects []Argument
	Amounts []Argument
}

func NewMoveCall(call MoveCall) Command {
	return Command{Kind: CmdMoveCall, Call: &call}
}

func NewTransferObjects(objects []Argument, recipient Argument) Command {
	return Command{Kind: CmdTransferObjects, Objects: objects, Target: recipient}
}

func NewSplitCoins(coin Argument, amounts []Argument) Command {
	return Command{Kind: CmdSplitCoins, Target: coin, Amounts: amounts}
}

func NewMergeCoins(destination Argument, sources []Argument) Command {
	return Command{Kind: CmdMergeCoins, Target: destination, Objects: sources}
}

// Arguments lists every argument the command reads.
func (c *Command) Arguments() []Argument {
	switch c.Kind {
	case CmdMoveCall:
		if c.Call == nil {
			return nil
		}
		return c.Call.Arguments
	case CmdTransferObjects, CmdMergeCoins:
		return append(append([]Argument{}, c.Objects...), c.Target)
	case CmdSplitCoins:
		return append([]Argument{c.Target}, c.Amounts...)
	default:
		return nil
	}
}

// Dependencies returns the indices of earlier commands whose results are used.
func (c *Command) Dependencies() []uint16 {
	var deps []uint16
	for _, a := range c.Arguments() {
		if idx, ok := a.Command(); ok {
			deps = append(deps, idx)
		}
	}
	return deps
}

func (c Command) String() string {
	switch c.Kind {
	case CmdMoveCall:
		return fmt.Sprintf("MoveCall(%s, %v, %v)", c.Call.Target(), c.Call.TypeArguments, c.Call.Arguments)
	case CmdTransferObjects:
		return fmt.Sprintf("TransferObjects(%v, %s)", c.Objects, c.Target)
	case CmdSplitCoins:
		return fmt.Sprintf("SplitCoins(%s, %v)", c.Target, c.Amounts)
	case CmdMergeCoins:
		return fmt.Sprintf("MergeCoins(%s, %v)", c.Target, c.Objects)
	default:
		return c.Kind.String()
	}
}
