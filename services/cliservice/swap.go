package cliservice

import (
	"context"

	"github.com/NilFoundation/suiflow/common/logging"
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/NilFoundation/suiflow/services/momentum"
	"github.com/NilFoundation/suiflow/services/ptb"
	"github.com/NilFoundation/suiflow/services/resolver"
)

// MomentumSwap swaps params.AmountIn of the input coin through a flash swap on pool.
// A SUI input is split from the gas coin, any other input is taken from the
// largest owned coins of that type.
func (s *Service) MomentumSwap(ctx context.Context, pool momentum.Pool, params momentum.SwapParams) (*Outcome, error) {
	sender, err := s.sender()
	if err != nil {
		return nil, err
	}
	if params.Recipient.IsEmpty() {
		params.Recipient = sender
	}

	sw := s.stopwatch("swap")
	inType := pool.InputType(params.Direction)

	var (
		coinIds []types.ObjectId
		gasNeed uint64
	)
	if inType.Equal(types.SuiCoinType) {
		gasNeed = params.AmountIn
	} else {
		coins, err := s.resolver.ListCoins(ctx, sender, inType)
		if err != nil {
			return nil, err
		}
		selected, _, err := resolver.SelectCoins(coins, params.AmountIn)
		if err != nil {
			return nil, err
		}
		for _, c := range selected {
			coinIds = append(coinIds, c.Ref.ObjectId)
		}
	}

	objs, err := momentum.ResolveObjects(ctx, s.resolver, pool, coinIds)
	if err != nil {
		return nil, err
	}
	gas, err := s.gasData(ctx, sender, gasNeed, coinIds...)
	if err != nil {
		return nil, err
	}
	sw.Lap(stageResolve)

	b := ptb.NewBuilder()
	momentum.BuildSwap(b, pool, params, objs)

	s.logger.Info().
		Stringer("direction", params.Direction).
		Stringer(logging.FieldCoinType, inType).
		Uint64(logging.FieldAmount, params.AmountIn).
		Int("inputCoins", len(coinIds)).
		Msg("Swapping on Momentum")
	return s.execute(ctx, sw, b, sender, gas)
}
