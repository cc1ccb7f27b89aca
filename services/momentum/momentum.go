// Package momentum builds swaps against a Momentum concentrated-liquidity pool
// using the flash swap entry points of the trade package.
package momentum

import (
	"context"
	"fmt"
	"strings"

	"github.com/NilFoundation/suiflow/core/types"
	"github.com/NilFoundation/suiflow/services/ptb"
	"github.com/NilFoundation/suiflow/services/resolver"
	"github.com/holiman/uint256"
)

// MaxInputCoins bounds how many coins are merged into the swap input.
const MaxInputCoins = 3

// Pool describes a pool and the packages that operate on it.
// CoinX and CoinY follow the order of the pool's type parameters.
type Pool struct {
	TradePackage    types.Address  `mapstructure:"tradePackage"`
	SlippagePackage types.Address  `mapstructure:"slippagePackage"`
	Pool            types.ObjectId `mapstructure:"pool"`
	GlobalConfig    types.ObjectId `mapstructure:"globalConfig"`
	CoinX           types.TypeTag  `mapstructure:"coinX"`
	CoinY           types.TypeTag  `mapstructure:"coinY"`
}

// MainnetSuiUsdc is the SUI/USDC pool on mainnet.
var MainnetSuiUsdc = Pool{
	TradePackage:    types.MustParseAddress("0x60e8683e01d5611cd13a69aca2b0c9aace7c6b559734df1b4a7ad9d6bddf007b"),
	SlippagePackage: types.MustParseAddress("0x8add2f0f8bc9748687639d7eb59b2172ba09a0172d9e63c029e23a7dbdb6abe6"),
	Pool:            types.MustParseAddress("0x455cf8d2ac91e7cb883f515874af750ed3cd18195c970b7a2d46235ac2b0c388"),
	GlobalConfig:    types.MustParseAddress("0x2375a0b1ec12010aaea3b2545acfa2ad34cfbba03ce4b59f4c39e1e25eed1b2a"),
	CoinX:           types.SuiCoinType,
	CoinY:           types.MustParseTypeTag("0xdba34672e30cb065b1f93e3ab55318768fd6fef66c15942c9f7cb846e2f900e7::usdc::USDC"),
}

var (
	// just above the minimum and just below the maximum sqrt price, i.e. no price limit
	minSqrtPriceLimit = uint256.NewInt(4295048016)
	maxSqrtPriceLimit = uint256.MustFromDecimal("79226673515401279992447579055")
)

type Direction uint8

const (
	XForY Direction = iota
	YForX
)

func (d Direction) String() string {
	if d == XForY {
		return "x-for-y"
	}
	return "y-for-x"
}

// ParseDirection accepts "x-for-y", "y-for-x" or "<in>-<out>" named by the
// last path segment of the pool's coin types, e.g. "sui-usdc".
func (p Pool) ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	x, y := coinSymbol(p.CoinX), coinSymbol(p.CoinY)
	switch s {
	case "x-for-y", x + "-" + y:
		return XForY, nil
	case "y-for-x", y + "-" + x:
		return YForX, nil
	}
	return 0, fmt.Errorf("%w: unknown swap direction %q", types.ErrInvalidInput, s)
}

func coinSymbol(t types.TypeTag) string {
	if t.Struct == nil {
		return t.String()
	}
	return strings.ToLower(t.Struct.Name)
}

// InputType is the coin type paid into the pool.
func (p Pool) InputType(d Direction) types.TypeTag {
	if d == XForY {
		return p.CoinX
	}
	return p.CoinY
}

// OutputType is the coin type received from the pool.
func (p Pool) OutputType(d Direction) types.TypeTag {
	if d == XForY {
		return p.CoinY
	}
	return p.CoinX
}

type SwapParams struct {
	Direction Direction
	AmountIn  uint64
	// SqrtPriceLimit nil means no limit in the swap direction.
	SqrtPriceLimit *uint256.Int
	Recipient      types.Address
}

func (p *SwapParams) priceLimit() *uint256.Int {
	if p.SqrtPriceLimit != nil {
		return p.SqrtPriceLimit
	}
	if p.Direction == XForY {
		return minSqrtPriceLimit
	}
	return maxSqrtPriceLimit
}

// SwapObjects are the resolved object inputs of a swap. Empty Coins means the
// input is split from the gas coin.
type SwapObjects struct {
	Pool   types.ObjectInput
	Clock  types.ObjectInput
	Config types.ObjectInput
	Coins  []types.ObjectInput
}

// ResolveObjects fetches the shared objects of the pool and fresh refs of coins.
func ResolveObjects(ctx context.Context, r *resolver.Resolver, pool Pool, coins []types.ObjectId) (*SwapObjects, error) {
	if len(coins) > MaxInputCoins {
		return nil, fmt.Errorf("%w: swap input needs %d coins, at most %d are merged; merge coins first",
			types.ErrInvalidInput, len(coins), MaxInputCoins)
	}

	var (
		objs SwapObjects
		err  error
	)
	if objs.Pool, err = r.SharedInput(ctx, pool.Pool, true); err != nil {
		return nil, err
	}
	if objs.Clock, err = r.SharedInput(ctx, types.ClockObjectId, false); err != nil {
		return nil, err
	}
	if objs.Config, err = r.SharedInput(ctx, pool.GlobalConfig, false); err != nil {
		return nil, err
	}
	for _, id := range coins {
		in, err := r.OwnedInput(ctx, id)
		if err != nil {
			return nil, err
		}
		objs.Coins = append(objs.Coins, in)
	}
	return &objs, nil
}

func nested(a types.Argument, i uint16) types.Argument {
	return types.NestedResult(a.Index, i)
}

// splitInput merges coins into the first of them and splits amount off it,
// or off the gas coin when coins is empty. It returns the new coin and the
// amount input.
func splitInput(b *ptb.Builder, coins []types.ObjectInput, amount uint64) (types.Argument, types.Argument) {
	source := types.GasCoin()
	if len(coins) > 0 {
		source = b.Object(coins[0])
		if len(coins) > 1 {
			sources := make([]types.Argument, 0, len(coins)-1)
			for _, c := range coins[1:] {
				sources = append(sources, b.Object(c))
			}
			b.MergeCoins(source, sources...)
		}
	}
	amountArg := b.PureU64(amount)
	return nested(b.SplitCoins(source, amountArg), 0), amountArg
}

// BuildSwap appends the flash swap command graph to b:
//
//	split the input amount off the (merged) input coin or the gas coin,
//	flash_swap, destroy the empty input-side balance, wrap the output balance,
//	split the debt off the input coin and repay with it plus a zero balance of
//	the output side, check slippage, transfer the output and the remainder.
func BuildSwap(b *ptb.Builder, pool Pool, params SwapParams, objs *SwapObjects) {
	xForY := params.Direction == XForY
	inType, outType := pool.InputType(params.Direction), pool.OutputType(params.Direction)
	pair := []types.TypeTag{pool.CoinX, pool.CoinY}

	inputCoin, amount := splitInput(b, objs.Coins, params.AmountIn)

	poolArg := b.Object(objs.Pool)
	clockArg := b.Object(objs.Clock)
	configArg := b.Object(objs.Config)
	xForYArg := b.PureBool(xForY)
	limitArg := b.PureU128(params.priceLimit())

	flash := b.MoveCall(pool.TradePackage, "trade", "flash_swap", pair,
		poolArg, xForYArg, b.PureBool(true), amount, limitArg, clockArg, configArg)
	balanceX, balanceY, receipt := nested(flash, 0), nested(flash, 1), nested(flash, 2)

	emptyIn, out := balanceX, balanceY
	if !xForY {
		emptyIn, out = balanceY, balanceX
	}
	b.MoveCall(types.FrameworkAddress, "balance", "destroy_zero", []types.TypeTag{inType}, emptyIn)
	outputCoin := b.MoveCall(types.FrameworkAddress, "coin", "from_balance", []types.TypeTag{outType}, out)

	debts := b.MoveCall(pool.TradePackage, "trade", "swap_receipt_debts", nil, receipt)
	debt := nested(debts, 0)
	if !xForY {
		debt = nested(debts, 1)
	}

	repayCoin := b.MoveCall(types.FrameworkAddress, "coin", "split", []types.TypeTag{inType}, inputCoin, debt)
	repayBalance := b.MoveCall(types.FrameworkAddress, "coin", "into_balance", []types.TypeTag{inType}, repayCoin)
	zeroCoin := b.MoveCall(types.FrameworkAddress, "coin", "zero", []types.TypeTag{outType})
	zeroBalance := b.MoveCall(types.FrameworkAddress, "coin", "into_balance", []types.TypeTag{outType}, zeroCoin)

	payX, payY := repayBalance, zeroBalance
	if !xForY {
		payX, payY = zeroBalance, repayBalance
	}
	b.MoveCall(pool.TradePackage, "trade", "repay_flash_swap", pair, poolArg, receipt, payX, payY, configArg)
	b.MoveCall(pool.SlippagePackage, "slippage_check", "assert_slippage", pair, poolArg, limitArg, xForYArg)

	b.TransferObjects([]types.Argument{outputCoin, inputCoin}, b.PureAddress(params.Recipient))
}
