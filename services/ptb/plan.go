package ptb

import (
	"errors"
	"fmt"
	"slices"

	"github.com/NilFoundation/suiflow/core/types"
)

var errFinished = errors.New("builder already finished")

// Plan is a validated transaction ready to be signed. It is never modified
// after construction; accessors return copies.
type Plan struct {
	data   types.TransactionData
	bytes  []byte
	digest types.Digest
}

type PlanOption func(*types.TransactionData)

// WithExpiration makes the transaction invalid after the given epoch.
func WithExpiration(epoch uint64) PlanOption {
	return func(d *types.TransactionData) {
		d.ExpireAtEpoch = epoch
	}
}

// NewPlan validates tx and wraps it with the sender and gas data.
// An empty gas owner defaults to the sender.
func NewPlan(tx types.ProgrammableTransaction, sender types.Address, gas types.GasData, opts ...PlanOption) (*Plan, error) {
	tx = cloneTransaction(tx)
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	if sender.IsEmpty() {
		return nil, fmt.Errorf("%w: empty sender", types.ErrInvalidInput)
	}
	if err := checkGas(&tx, gas); err != nil {
		return nil, err
	}
	if gas.Owner.IsEmpty() {
		gas.Owner = sender
	}

	data := types.TransactionData{
		Kind:   tx,
		Sender: sender,
		Gas: types.GasData{
			Payment: slices.Clone(gas.Payment),
			Owner:   gas.Owner,
			Price:   gas.Price,
			Budget:  gas.Budget,
		},
	}
	for _, opt := range opts {
		opt(&data)
	}

	raw, err := data.Bytes()
	if err != nil {
		return nil, err
	}
	return &Plan{
		data:   data,
		bytes:  raw,
		digest: types.TransactionDigest(raw),
	}, nil
}

func checkGas(tx *types.ProgrammableTransaction, gas types.GasData) error {
	if len(gas.Payment) == 0 {
		return fmt.Errorf("%w: no gas payment objects", types.ErrInvalidInput)
	}
	if gas.Price == 0 {
		return fmt.Errorf("%w: zero gas price", types.ErrInvalidInput)
	}
	if gas.Budget == 0 {
		return fmt.Errorf("%w: zero gas budget", types.ErrInvalidInput)
	}
	for _, in := range tx.Inputs {
		if in.IsPure() {
			continue
		}
		for _, ref := range gas.Payment {
			if ref.ObjectId == in.Object.ObjectId() {
				return fmt.Errorf("%w: gas object %s is also a transaction input", types.ErrInvalidInput, ref.ObjectId.ShortHex())
			}
		}
	}
	return nil
}

func cloneTransaction(tx types.ProgrammableTransaction) types.ProgrammableTransaction {
	out := types.ProgrammableTransaction{
		Inputs:   make([]types.CallArg, len(tx.Inputs)),
		Commands: make([]types.Command, len(tx.Commands)),
	}
	for i, in := range tx.Inputs {
		if in.IsPure() {
			out.Inputs[i] = types.PureArg(slices.Clone(in.Pure))
		} else {
			out.Inputs[i] = types.ObjectArg(*in.Object)
		}
	}
	for i, cmd := range tx.Commands {
		c := types.Command{
			Kind:    cmd.Kind,
			Target:  cmd.Target,
			Objects: slices.Clone(cmd.Objects),
			Amounts: slices.Clone(cmd.Amounts),
		}
		if cmd.Call != nil {
			call := *cmd.Call
			call.TypeArguments = slices.Clone(call.TypeArguments)
			call.Arguments = slices.Clone(call.Arguments)
			c.Call = &call
		}
		out.Commands[i] = c
	}
	return out
}

// Bytes returns the BCS encoding of the transaction data.
func (p *Plan) Bytes() []byte {
	return slices.Clone(p.bytes)
}

func (p *Plan) Digest() types.Digest {
	return p.digest
}

func (p *Plan) Sender() types.Address {
	return p.data.Sender
}

func (p *Plan) Gas() types.GasData {
	gas := p.data.Gas
	gas.Payment = slices.Clone(gas.Payment)
	return gas
}

func (p *Plan) ExpireAtEpoch() uint64 {
	return p.data.ExpireAtEpoch
}

// Transaction returns a copy of the inputs and commands.
func (p *Plan) Transaction() types.ProgrammableTransaction {
	return cloneTransaction(p.data.Kind)
}

type planView struct {
	Digest        types.Digest  `yaml:"digest"`
	Sender        types.Address `yaml:"sender"`
	GasOwner      types.Address `yaml:"gasOwner"`
	GasPayment    []string      `yaml:"gasPayment"`
	GasPrice      uint64        `yaml:"gasPrice"`
	GasBudget     uint64        `yaml:"gasBudget"`
	ExpireAtEpoch uint64        `yaml:"expireAtEpoch,omitempty"`
	Inputs        []string      `yaml:"inputs"`
	Commands      []string      `yaml:"commands"`
}

// MarshalYAML renders the plan in a readable form for dry runs.
func (p *Plan) MarshalYAML() (any, error) {
	v := planView{
		Digest:        p.digest,
		Sender:        p.data.Sender,
		GasOwner:      p.data.Gas.Owner,
		GasPrice:      p.data.Gas.Price,
		GasBudget:     p.data.Gas.Budget,
		ExpireAtEpoch: p.data.ExpireAtEpoch,
	}
	for _, ref := range p.data.Gas.Payment {
		v.GasPayment = append(v.GasPayment, ref.String())
	}
	for _, in := range p.data.Kind.Inputs {
		if in.IsPure() {
			v.Inputs = append(v.Inputs, fmt.Sprintf("Pure(0x%x)", in.Pure))
		} else {
			v.Inputs = append(v.Inputs, in.Object.String())
		}
	}
	for _, cmd := range p.data.Kind.Commands {
		v.Commands = append(v.Commands, cmd.String())
	}
	return v, nil
}
