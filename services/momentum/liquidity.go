package momentum

import (
	"context"
	"fmt"
	"math/big"

	"github.com/NilFoundation/suiflow/core/types"
	"github.com/NilFoundation/suiflow/services/ptb"
	"github.com/NilFoundation/suiflow/services/resolver"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Deployment locates the core package of the protocol and the shared objects
// its liquidity entry points take.
type Deployment struct {
	Package      types.Address  `mapstructure:"package"`
	GlobalConfig types.ObjectId `mapstructure:"globalConfig"`
	Version      types.ObjectId `mapstructure:"version"`
}

// TestnetDeployment is the core package deployed on testnet.
var TestnetDeployment = Deployment{
	Package:      types.MustParseAddress("0xd7c99e1546b1fc87a6489afdc08bcece4ae1340cbd8efd2ab152ad71dea0f0f2"),
	GlobalConfig: types.MustParseAddress("0x3c4385bf373c7997a953ee548f45188d9f1ca4284ec835467688d8ee276e1af7"),
	Version:      types.MustParseAddress("0x83ea3e3e7384efd6b524ff973e4b627cd84d190c45d3f4fd9f5f4fc6c95fd26b"),
}

const (
	DefaultTickSpacing = 60
	// DefaultFeeRate of a new pool in millionths, i.e. 0.3%.
	DefaultFeeRate = 3000
)

// Q64 is the fixed-point one of sqrt prices: a sqrt price of 2^64 is a price of 1.
var Q64 = new(uint256.Int).Lsh(uint256.NewInt(1), 64)

func checkSqrtPrice(name string, v *uint256.Int) error {
	if v == nil {
		return fmt.Errorf("%w: %s is required", types.ErrInvalidInput, name)
	}
	if v.Lt(minSqrtPriceLimit) || v.Gt(maxSqrtPriceLimit) {
		return fmt.Errorf("%w: %s %s is out of range [%s, %s]",
			types.ErrInvalidInput, name, v.Dec(), minSqrtPriceLimit.Dec(), maxSqrtPriceLimit.Dec())
	}
	return nil
}

type AddLiquidityParams struct {
	// LowerSqrtPrice and UpperSqrtPrice bound the position. Their ticks are
	// rounded toward zero to a multiple of TickSpacing on chain.
	LowerSqrtPrice *uint256.Int
	UpperSqrtPrice *uint256.Int
	TickSpacing    uint32
	AmountX        uint64
	AmountY        uint64
	MinAmountX     uint64
	MinAmountY     uint64
	Recipient      types.Address
}

func (p *AddLiquidityParams) Validate() error {
	if err := checkSqrtPrice("lower sqrt price", p.LowerSqrtPrice); err != nil {
		return err
	}
	if err := checkSqrtPrice("upper sqrt price", p.UpperSqrtPrice); err != nil {
		return err
	}
	if !p.LowerSqrtPrice.Lt(p.UpperSqrtPrice) {
		return fmt.Errorf("%w: lower sqrt price %s is not below upper %s",
			types.ErrInvalidInput, p.LowerSqrtPrice.Dec(), p.UpperSqrtPrice.Dec())
	}
	if p.TickSpacing == 0 {
		return fmt.Errorf("%w: tick spacing must be positive", types.ErrInvalidInput)
	}
	if p.AmountX == 0 && p.AmountY == 0 {
		return fmt.Errorf("%w: nothing to deposit", types.ErrInvalidInput)
	}
	if p.MinAmountX > p.AmountX || p.MinAmountY > p.AmountY {
		return fmt.Errorf("%w: minimum deposit exceeds the amount", types.ErrInvalidInput)
	}
	return nil
}

// LiquidityObjects are the resolved object inputs of a deposit. Empty coins
// of a side with a positive amount mean that side is split from the gas coin.
type LiquidityObjects struct {
	Pool    types.ObjectInput
	Clock   types.ObjectInput
	Version types.ObjectInput
	CoinsX  []types.ObjectInput
	CoinsY  []types.ObjectInput
}

func resolveCoins(ctx context.Context, r *resolver.Resolver, ids []types.ObjectId) ([]types.ObjectInput, error) {
	if len(ids) > MaxInputCoins {
		return nil, fmt.Errorf("%w: deposit needs %d coins, at most %d are merged; merge coins first",
			types.ErrInvalidInput, len(ids), MaxInputCoins)
	}
	out := make([]types.ObjectInput, 0, len(ids))
	for _, id := range ids {
		in, err := r.OwnedInput(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}

func ResolveLiquidityObjects(
	ctx context.Context, r *resolver.Resolver, d Deployment, pool types.ObjectId, coinsX, coinsY []types.ObjectId,
) (*LiquidityObjects, error) {
	var (
		objs LiquidityObjects
		err  error
	)
	if objs.Pool, err = r.SharedInput(ctx, pool, true); err != nil {
		return nil, err
	}
	if objs.Clock, err = r.SharedInput(ctx, types.ClockObjectId, false); err != nil {
		return nil, err
	}
	if objs.Version, err = r.SharedInput(ctx, d.Version, false); err != nil {
		return nil, err
	}
	if objs.CoinsX, err = resolveCoins(ctx, r, coinsX); err != nil {
		return nil, err
	}
	if objs.CoinsY, err = resolveCoins(ctx, r, coinsY); err != nil {
		return nil, err
	}
	return &objs, nil
}

// depositCoin is a coin of amount, or coin::zero when nothing is deposited on that side.
func depositCoin(b *ptb.Builder, coinType types.TypeTag, coins []types.ObjectInput, amount uint64) types.Argument {
	if amount == 0 {
		return b.MoveCall(types.FrameworkAddress, "coin", "zero", []types.TypeTag{coinType})
	}
	coin, _ := splitInput(b, coins, amount)
	return coin
}

// BuildAddLiquidity appends the deposit command graph to b:
//
//	turn both sqrt price bounds into ticks aligned to the tick spacing,
//	open a position over them, add both coins to it and transfer the
//	position with the unused remainders to the recipient.
func BuildAddLiquidity(b *ptb.Builder, d Deployment, pool Pool, params AddLiquidityParams, objs *LiquidityObjects) error {
	if err := params.Validate(); err != nil {
		return err
	}
	pair := []types.TypeTag{pool.CoinX, pool.CoinY}

	lowerTick := b.MoveCall(d.Package, "tick_math", "get_tick_at_sqrt_price", nil, b.PureU128(params.LowerSqrtPrice))
	upperTick := b.MoveCall(d.Package, "tick_math", "get_tick_at_sqrt_price", nil, b.PureU128(params.UpperSqrtPrice))
	spacing := b.MoveCall(d.Package, "i32", "from_u32", nil, b.PureU32(params.TickSpacing))
	lowerRem := b.MoveCall(d.Package, "i32", "mod", nil, lowerTick, spacing)
	upperRem := b.MoveCall(d.Package, "i32", "mod", nil, upperTick, spacing)
	lower := b.MoveCall(d.Package, "i32", "sub", nil, lowerTick, lowerRem)
	upper := b.MoveCall(d.Package, "i32", "sub", nil, upperTick, upperRem)

	poolArg := b.Object(objs.Pool)
	versionArg := b.Object(objs.Version)
	position := b.MoveCall(d.Package, "liquidity", "open_position", pair, poolArg, lower, upper, versionArg)

	coinX := depositCoin(b, pool.CoinX, objs.CoinsX, params.AmountX)
	coinY := depositCoin(b, pool.CoinY, objs.CoinsY, params.AmountY)
	remainders := b.MoveCall(d.Package, "liquidity", "add_liquidity", pair,
		poolArg, position, coinX, coinY,
		b.PureU64(params.MinAmountX), b.PureU64(params.MinAmountY),
		b.Object(objs.Clock), versionArg)

	b.TransferObjects([]types.Argument{nested(remainders, 0), nested(remainders, 1), position},
		b.PureAddress(params.Recipient))
	return b.Err()
}

type CreatePoolParams struct {
	CoinX types.TypeTag
	CoinY types.TypeTag
	// FeeRate in millionths.
	FeeRate          uint64
	InitialSqrtPrice *uint256.Int
}

func (p *CreatePoolParams) Validate() error {
	if p.CoinX.Equal(p.CoinY) {
		return fmt.Errorf("%w: pool of %s against itself", types.ErrInvalidInput, p.CoinX)
	}
	if p.FeeRate == 0 || p.FeeRate >= 1_000_000 {
		return fmt.Errorf("%w: fee rate %d is out of range (0, 1000000)", types.ErrInvalidInput, p.FeeRate)
	}
	return checkSqrtPrice("initial sqrt price", p.InitialSqrtPrice)
}

type CreatePoolObjects struct {
	GlobalConfig types.ObjectInput
	Clock        types.ObjectInput
	Version      types.ObjectInput
}

func ResolveCreatePoolObjects(ctx context.Context, r *resolver.Resolver, d Deployment) (*CreatePoolObjects, error) {
	var (
		objs CreatePoolObjects
		err  error
	)
	if objs.GlobalConfig, err = r.SharedInput(ctx, d.GlobalConfig, true); err != nil {
		return nil, err
	}
	if objs.Clock, err = r.SharedInput(ctx, types.ClockObjectId, false); err != nil {
		return nil, err
	}
	if objs.Version, err = r.SharedInput(ctx, d.Version, false); err != nil {
		return nil, err
	}
	return &objs, nil
}

// BuildCreatePool appends create_pool::new, pool::initialize at the initial
// sqrt price and pool::transfer, which shares the new pool.
func BuildCreatePool(b *ptb.Builder, d Deployment, params CreatePoolParams, objs *CreatePoolObjects) error {
	if err := params.Validate(); err != nil {
		return err
	}
	pair := []types.TypeTag{params.CoinX, params.CoinY}

	versionArg := b.Object(objs.Version)
	pool := b.MoveCall(d.Package, "create_pool", "new", pair,
		b.Object(objs.GlobalConfig), b.PureU64(params.FeeRate), versionArg)
	b.MoveCall(d.Package, "pool", "initialize", pair, pool, b.PureU128(params.InitialSqrtPrice), b.Object(objs.Clock))
	b.MoveCall(d.Package, "pool", "transfer", pair, pool)
	return b.Err()
}

// SqrtPrice reads the current sqrt price from the contents of a pool object.
func SqrtPrice(info *types.ObjectInfo) (*uint256.Int, error) {
	if err := info.Require(types.FieldContents); err != nil {
		return nil, err
	}
	raw, ok := info.Contents["sqrt_price"]
	if !ok {
		return nil, fmt.Errorf("%w: object %s has no sqrt_price", types.ErrIncompleteResponse, info.ObjectId)
	}
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%w: sqrt_price of %s is %T, not a decimal string", types.ErrInvalidInput, info.ObjectId, raw)
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: sqrt_price %q: %w", types.ErrInvalidInput, s, err)
	}
	return v, nil
}

// Price converts a sqrt price into the price of one whole X in whole Y.
func Price(sqrtPrice *uint256.Int, decimalsX, decimalsY int32) decimal.Decimal {
	sq := new(big.Int).Mul(sqrtPrice.ToBig(), sqrtPrice.ToBig())
	q128 := new(big.Int).Lsh(big.NewInt(1), 128)
	raw := decimal.NewFromBigInt(sq, 0).DivRound(decimal.NewFromBigInt(q128, 0), 38)
	return raw.Shift(decimalsX - decimalsY)
}

// PoolPrice is the price state of a pool.
type PoolPrice struct {
	Pool      types.ObjectId `yaml:"pool"`
	Version   uint64         `yaml:"version"`
	SqrtPrice string         `yaml:"sqrtPrice"`
	Price     string         `yaml:"price"`
}

// ReadPoolPrice fetches the pool and reads its price. The price is in base
// units unless the decimals of both coins are given.
func ReadPoolPrice(ctx context.Context, r *resolver.Resolver, pool types.ObjectId, decimalsX, decimalsY int32) (*PoolPrice, error) {
	info, err := r.GetObject(ctx, pool, types.MaskRef|types.FieldContents)
	if err != nil {
		return nil, err
	}
	sqrtPrice, err := SqrtPrice(info)
	if err != nil {
		return nil, err
	}
	return &PoolPrice{
		Pool:      info.ObjectId,
		Version:   info.Version,
		SqrtPrice: sqrtPrice.Dec(),
		Price:     Price(sqrtPrice, decimalsX, decimalsY).String(),
	}, nil
}
