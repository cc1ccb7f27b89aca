package cliservice

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/NilFoundation/suiflow/common/logging"
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/NilFoundation/suiflow/services/momentum"
	"github.com/NilFoundation/suiflow/services/ptb"
	"github.com/NilFoundation/suiflow/services/resolver"
)

// depositCoins picks owned coins of coinType worth amount. SUI is split from
// the gas coin instead and counted in the returned gas need.
func (s *Service) depositCoins(
	ctx context.Context, sender types.Address, coinType types.TypeTag, amount uint64,
) ([]types.ObjectId, uint64, error) {
	if amount == 0 {
		return nil, 0, nil
	}
	if coinType.Equal(types.SuiCoinType) {
		return nil, amount, nil
	}
	coins, err := s.resolver.ListCoins(ctx, sender, coinType)
	if err != nil {
		return nil, 0, err
	}
	selected, _, err := resolver.SelectCoins(coins, amount)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]types.ObjectId, 0, len(selected))
	for _, c := range selected {
		ids = append(ids, c.Ref.ObjectId)
	}
	return ids, 0, nil
}

// MomentumAddLiquidity opens a position on pool between the sqrt price bounds
// of params and deposits both amounts into it.
func (s *Service) MomentumAddLiquidity(
	ctx context.Context, d momentum.Deployment, pool momentum.Pool, params momentum.AddLiquidityParams,
) (*Outcome, error) {
	sender, err := s.sender()
	if err != nil {
		return nil, err
	}
	if params.Recipient.IsEmpty() {
		params.Recipient = sender
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	sw := s.stopwatch("addLiquidity")
	coinsX, needX, err := s.depositCoins(ctx, sender, pool.CoinX, params.AmountX)
	if err != nil {
		return nil, err
	}
	coinsY, needY, err := s.depositCoins(ctx, sender, pool.CoinY, params.AmountY)
	if err != nil {
		return nil, err
	}
	gasNeed, carry := bits.Add64(needX, needY, 0)
	if carry != 0 {
		return nil, fmt.Errorf("%w: deposit overflows u64", types.ErrInvalidInput)
	}

	objs, err := momentum.ResolveLiquidityObjects(ctx, s.resolver, d, pool.Pool, coinsX, coinsY)
	if err != nil {
		return nil, err
	}
	gas, err := s.gasData(ctx, sender, gasNeed, append(coinsX, coinsY...)...)
	if err != nil {
		return nil, err
	}
	sw.Lap(stageResolve)

	b := ptb.NewBuilder()
	if err := momentum.BuildAddLiquidity(b, d, pool, params, objs); err != nil {
		return nil, err
	}

	s.logger.Info().
		Stringer(logging.FieldObjectId, pool.Pool).
		Uint64("amountX", params.AmountX).
		Uint64("amountY", params.AmountY).
		Str("lowerSqrtPrice", params.LowerSqrtPrice.Dec()).
		Str("upperSqrtPrice", params.UpperSqrtPrice.Dec()).
		Msg("Adding liquidity on Momentum")
	return s.execute(ctx, sw, b, sender, gas)
}

// MomentumCreatePool creates and shares a pool of the params coin pair.
func (s *Service) MomentumCreatePool(
	ctx context.Context, d momentum.Deployment, params momentum.CreatePoolParams,
) (*Outcome, error) {
	sender, err := s.sender()
	if err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	sw := s.stopwatch("createPool")
	objs, err := momentum.ResolveCreatePoolObjects(ctx, s.resolver, d)
	if err != nil {
		return nil, err
	}
	gas, err := s.gasData(ctx, sender, 0)
	if err != nil {
		return nil, err
	}
	sw.Lap(stageResolve)

	b := ptb.NewBuilder()
	if err := momentum.BuildCreatePool(b, d, params, objs); err != nil {
		return nil, err
	}

	s.logger.Info().
		Stringer("coinX", params.CoinX).
		Stringer("coinY", params.CoinY).
		Uint64("feeRate", params.FeeRate).
		Str("sqrtPrice", params.InitialSqrtPrice.Dec()).
		Msg("Creating Momentum pool")
	return s.execute(ctx, sw, b, sender, gas)
}

// MomentumPoolPrice reads the current price of pool. Negative decimals give
// the price in base units.
func (s *Service) MomentumPoolPrice(ctx context.Context, pool types.ObjectId, decimalsX, decimalsY int32) (*momentum.PoolPrice, error) {
	if decimalsX < 0 || decimalsY < 0 {
		decimalsX, decimalsY = 0, 0
	}
	price, err := momentum.ReadPoolPrice(ctx, s.resolver, pool, decimalsX, decimalsY)
	if err != nil {
		s.logger.Error().Err(err).Stringer(logging.FieldObjectId, pool).Msg("Failed to read pool price")
		return nil, err
	}
	return price, nil
}
