package cliservice

import (
	"context"
	"fmt"

	"github.com/NilFoundation/suiflow/common/logging"
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/NilFoundation/suiflow/services/ptb"
)

// Transfer sends amount MIST split off the gas coin to recipient.
func (s *Service) Transfer(ctx context.Context, recipient types.Address, amount uint64) (*Outcome, error) {
	sender, err := s.sender()
	if err != nil {
		return nil, err
	}
	if amount == 0 {
		return nil, fmt.Errorf("%w: zero amount", types.ErrInvalidInput)
	}

	sw := s.stopwatch("transfer")
	gas, err := s.gasData(ctx, sender, amount)
	if err != nil {
		return nil, err
	}
	sw.Lap(stageResolve)

	b := ptb.NewBuilder()
	coin := b.SplitCoins(types.GasCoin(), b.PureU64(amount))
	b.TransferObjects([]types.Argument{coin}, b.PureAddress(recipient))

	s.logger.Info().
		Stringer(logging.FieldRecipient, recipient).
		Uint64(logging.FieldAmount, amount).
		Msg("Transferring SUI")
	return s.execute(ctx, sw, b, sender, gas)
}

// MergeCoins joins every coin of coinType owned by the key into one.
// SUI coins are merged by paying gas with all of them and sending the gas
// coin back to the owner.
func (s *Service) MergeCoins(ctx context.Context, coinType types.TypeTag) (*Outcome, error) {
	sender, err := s.sender()
	if err != nil {
		return nil, err
	}

	sw := s.stopwatch("merge")
	coins, err := s.resolver.ListCoins(ctx, sender, coinType)
	if err != nil {
		return nil, err
	}
	if len(coins) < 2 {
		return nil, fmt.Errorf("%w: %d coin(s) of %s, nothing to merge", types.ErrInvalidInput, len(coins), coinType)
	}

	b := ptb.NewBuilder()
	var gas types.GasData
	if coinType.Equal(types.SuiCoinType) {
		if gas, err = s.gasData(ctx, sender, 0); err != nil {
			return nil, err
		}
		gas.Payment = gas.Payment[:0]
		for _, c := range coins {
			gas.Payment = append(gas.Payment, c.Ref)
		}
		b.TransferObjects([]types.Argument{types.GasCoin()}, b.PureAddress(sender))
	} else {
		ids := make([]types.ObjectId, len(coins))
		for i, c := range coins {
			ids[i] = c.Ref.ObjectId
		}
		if gas, err = s.gasData(ctx, sender, 0, ids...); err != nil {
			return nil, err
		}
		destination := b.Object(types.OwnedInput(coins[0].Ref))
		sources := make([]types.Argument, 0, len(coins)-1)
		for _, c := range coins[1:] {
			sources = append(sources, b.Object(types.OwnedInput(c.Ref)))
		}
		b.MergeCoins(destination, sources...)
	}
	sw.Lap(stageResolve)

	s.logger.Info().
		Stringer(logging.FieldCoinType, coinType).
		Int("coins", len(coins)).
		Msg("Merging coins")
	return s.execute(ctx, sw, b, sender, gas)
}
