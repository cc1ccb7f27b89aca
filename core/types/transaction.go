package types

import (
	"fmt"

	"github.com/NilFoundation/suiflow/common"
)

// ProgrammableTransaction is an ordered command list over a shared input table.
type ProgrammableTransaction struct {
	Inputs   []CallArg
	Commands []Command
}

// Validate checks that every Input argument names an existing input and every
// Result or NestedResult names a strictly earlier command.
func (pt *ProgrammableTransaction) Validate() error {
	if len(pt.Commands) == 0 {
		return fmt.Errorf("%w: transaction has no commands", ErrInvalidInput)
	}
	for i := range pt.Commands {
		if err := pt.ValidateCommand(i); err != nil {
			return err
		}
	}
	return nil
}

// ValidateCommand checks command i against the inputs and the commands before it.
func (pt *ProgrammableTransaction) ValidateCommand(i int) error {
	cmd := &pt.Commands[i]
	switch cmd.Kind {
	case CmdMoveCall:
		if cmd.Call == nil {
			return fmt.Errorf("%w: command %d: empty move call", ErrInvalidInput, i)
		}
		if !IsValidIdentifier(cmd.Call.Module) || !IsValidIdentifier(cmd.Call.Function) {
			return fmt.Errorf("%w: command %d: bad call target %s", ErrInvalidInput, i, cmd.Call.Target())
		}
	case CmdTransferObjects, CmdMergeCoins:
		if len(cmd.Objects) == 0 {
			return fmt.Errorf("%w: command %d: %s needs at least one object", ErrInvalidInput, i, cmd.Kind)
		}
	case CmdSplitCoins:
		if len(cmd.Amounts) == 0 {
			return fmt.Errorf("%w: command %d: SplitCoins needs at least one amount", ErrInvalidInput, i)
		}
	default:
		return fmt.Errorf("%w: command %d: unknown kind %d", ErrInvalidInput, i, cmd.Kind)
	}

	for _, arg := range cmd.Arguments() {
		switch arg.Kind {
		case ArgGasCoin:
		case ArgInput:
			if int(arg.Index) >= len(pt.Inputs) {
				return fmt.Errorf("%w: command %d uses %s but there are %d inputs",
					ErrInvalidReference, i, arg, len(pt.Inputs))
			}
		case ArgResult, ArgNestedResult:
			if int(arg.Index) >= i {
				return fmt.Errorf("%w: command %d uses %s, only earlier commands may be referenced",
					ErrInvalidReference, i, arg)
			}
		default:
			return fmt.Errorf("%w: command %d: unknown argument kind %d", ErrInvalidReference, i, arg.Kind)
		}
	}
	return nil
}

type GasData struct {
	Payment []ObjectRef
	Owner   Address
	Price   uint64
	Budget  uint64
}

// TransactionData is the V1 transaction envelope with a programmable kind.
// ExpireAtEpoch zero means no expiration.
type TransactionData struct {
	Kind          ProgrammableTransaction
	Sender        Address
	Gas           GasData
	ExpireAtEpoch uint64
}

// Bytes returns the canonical encoding that is hashed and signed.
func (t *TransactionData) Bytes() ([]byte, error) {
	return marshalBcs(t.toBcs)
}

func (t *TransactionData) Digest() (Digest, error) {
	b, err := t.Bytes()
	if err != nil {
		return Digest{}, err
	}
	return TransactionDigest(b), nil
}

// Intent prefixes every signed message with scope, version and app id.
type Intent [3]byte

// IntentTransactionData is the intent of a user transaction on the Sui app.
var IntentTransactionData = Intent{0, 0, 0}

// SigningDigest is blake2b-256 over the intent message wrapping payload.
func (i Intent) SigningDigest(payload []byte) [32]byte {
	return common.Blake2b256(i[:], payload)
}
