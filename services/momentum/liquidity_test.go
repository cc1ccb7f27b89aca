package momentum

import (
	"testing"

	"github.com/NilFoundation/suiflow/core/types"
	"github.com/NilFoundation/suiflow/services/ptb"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var (
	tokenPool = Pool{
		Pool:  types.MustParseAddress("0xa3593a0e01b6294da826ac24e0d5fdfbd276862fce7e1528136c8fa1f2b9b9c9"),
		CoinX: types.MustParseTypeTag("0x0576369c9dd28886d5b94e0bd3cc4b5f23fb1728abfde5b61e672ca7d4994ba4::atoken::ATOKEN"),
		CoinY: types.MustParseTypeTag("0x0576369c9dd28886d5b94e0bd3cc4b5f23fb1728abfde5b61e672ca7d4994ba4::btoken::BTOKEN"),
	}
	liquidityObjects = LiquidityObjects{
		Pool:    types.SharedInput(tokenPool.Pool, 400, true),
		Clock:   types.SharedInput(types.ClockObjectId, 1, false),
		Version: types.SharedInput(TestnetDeployment.Version, 300, false),
		CoinsX: []types.ObjectInput{types.OwnedInput(types.ObjectRef{
			ObjectId: types.MustParseAddress("0x387ef1e803c10c1176d4eb6e364d1b7a42de4ec59c9224619cc6f3a2189d7295"), Version: 5,
		})},
		CoinsY: []types.ObjectInput{types.OwnedInput(types.ObjectRef{
			ObjectId: types.MustParseAddress("0x09fa250545954bd877206cb8e6d887b1be187f0d35a329a75b88a70b8f8bfe47"), Version: 6,
		})},
	}
	addParams = AddLiquidityParams{
		LowerSqrtPrice: uint256.MustFromDecimal("17979662081777052694"),
		UpperSqrtPrice: uint256.MustFromDecimal("18902287831555877210"),
		TickSpacing:    DefaultTickSpacing,
		AmountX:        1_000,
		AmountY:        2_000,
		Recipient:      sender,
	}
)

func TestAddLiquidity(t *testing.T) {
	t.Parallel()

	b := ptb.NewBuilder()
	objs := liquidityObjects
	require.NoError(t, BuildAddLiquidity(b, TestnetDeployment, tokenPool, addParams, &objs))
	plan, err := b.Finish(sender, gas)
	require.NoError(t, err)
	tx := plan.Transaction()

	assert.Equal(t, []string{
		"tick_math::get_tick_at_sqrt_price",
		"tick_math::get_tick_at_sqrt_price",
		"i32::from_u32",
		"i32::mod",
		"i32::mod",
		"i32::sub",
		"i32::sub",
		"liquidity::open_position",
		"SplitCoins",
		"SplitCoins",
		"liquidity::add_liquidity",
		"TransferObjects",
	}, targets(tx))

	for _, cmd := range tx.Commands[:8] {
		assert.Equal(t, TestnetDeployment.Package, cmd.Call.Package)
	}
	lower := tx.Inputs[tx.Commands[0].Call.Arguments[0].Index].Pure
	assert.Equal(t, []byte{0x16, 0xac, 0xe1, 0x2d, 0x67, 0x97, 0x84, 0xf9, 0, 0, 0, 0, 0, 0, 0, 0}, lower)
	spacing := tx.Inputs[tx.Commands[2].Call.Arguments[0].Index].Pure
	assert.Equal(t, []byte{60, 0, 0, 0}, spacing)

	assert.Equal(t, []types.Argument{types.Result(0), types.Result(2)}, tx.Commands[3].Call.Arguments)
	assert.Equal(t, []types.Argument{types.Result(1), types.Result(2)}, tx.Commands[4].Call.Arguments)
	assert.Equal(t, []types.Argument{types.Result(0), types.Result(3)}, tx.Commands[5].Call.Arguments)
	assert.Equal(t, []types.Argument{types.Result(1), types.Result(4)}, tx.Commands[6].Call.Arguments)

	open := tx.Commands[7].Call
	pair := []types.TypeTag{tokenPool.CoinX, tokenPool.CoinY}
	assert.Equal(t, pair, open.TypeArguments)
	require.Len(t, open.Arguments, 4)
	assert.Equal(t, []types.Argument{types.Result(5), types.Result(6)}, open.Arguments[1:3])

	add := tx.Commands[10].Call
	assert.Equal(t, pair, add.TypeArguments)
	require.Len(t, add.Arguments, 8)
	assert.Equal(t, open.Arguments[0], add.Arguments[0], "pool input is shared")
	assert.Equal(t, types.Result(7), add.Arguments[1])
	assert.Equal(t, types.NestedResult(8, 0), add.Arguments[2])
	assert.Equal(t, types.NestedResult(9, 0), add.Arguments[3])
	assert.Equal(t, open.Arguments[3], add.Arguments[7], "version input is shared")
	assert.Equal(t, types.ClockObjectId, tx.Inputs[add.Arguments[6].Index].Object.ObjectId())

	transfer := tx.Commands[11]
	assert.Equal(t, []types.Argument{types.NestedResult(10, 0), types.NestedResult(10, 1), types.Result(7)}, transfer.Objects)
}

func TestAddLiquidityOneSided(t *testing.T) {
	t.Parallel()

	params := addParams
	params.AmountY = 0
	objs := liquidityObjects
	objs.CoinsY = nil

	b := ptb.NewBuilder()
	require.NoError(t, BuildAddLiquidity(b, TestnetDeployment, tokenPool, params, &objs))
	plan, err := b.Finish(sender, gas)
	require.NoError(t, err)
	tx := plan.Transaction()

	zero := tx.Commands[9].Call
	assert.Equal(t, "coin::zero", zero.Module+"::"+zero.Function)
	assert.Equal(t, []types.TypeTag{tokenPool.CoinY}, zero.TypeArguments)
	assert.Equal(t, types.Result(9), tx.Commands[10].Call.Arguments[3])
}

func TestAddLiquidityParams(t *testing.T) {
	t.Parallel()

	for name, mutate := range map[string]func(p *AddLiquidityParams){
		"missing bound":   func(p *AddLiquidityParams) { p.LowerSqrtPrice = nil },
		"inverted bounds": func(p *AddLiquidityParams) { p.LowerSqrtPrice, p.UpperSqrtPrice = p.UpperSqrtPrice, p.LowerSqrtPrice },
		"equal bounds":    func(p *AddLiquidityParams) { p.UpperSqrtPrice = p.LowerSqrtPrice },
		"below range":     func(p *AddLiquidityParams) { p.LowerSqrtPrice = uint256.NewInt(1) },
		"above range":     func(p *AddLiquidityParams) { p.UpperSqrtPrice = new(uint256.Int).Lsh(uint256.NewInt(1), 100) },
		"zero spacing":    func(p *AddLiquidityParams) { p.TickSpacing = 0 },
		"empty deposit":   func(p *AddLiquidityParams) { p.AmountX, p.AmountY = 0, 0 },
		"minimum too big": func(p *AddLiquidityParams) { p.MinAmountY = p.AmountY + 1 },
	} {
		params := addParams
		mutate(&params)
		b := ptb.NewBuilder()
		err := BuildAddLiquidity(b, TestnetDeployment, tokenPool, params, &liquidityObjects)
		require.ErrorIs(t, err, types.ErrInvalidInput, name)
	}
}

func TestCreatePool(t *testing.T) {
	t.Parallel()

	objs := CreatePoolObjects{
		GlobalConfig: types.SharedInput(TestnetDeployment.GlobalConfig, 200, true),
		Clock:        types.SharedInput(types.ClockObjectId, 1, false),
		Version:      types.SharedInput(TestnetDeployment.Version, 300, false),
	}
	params := CreatePoolParams{
		CoinX:            tokenPool.CoinX,
		CoinY:            tokenPool.CoinY,
		FeeRate:          DefaultFeeRate,
		InitialSqrtPrice: Q64,
	}

	b := ptb.NewBuilder()
	require.NoError(t, BuildCreatePool(b, TestnetDeployment, params, &objs))
	plan, err := b.Finish(sender, gas)
	require.NoError(t, err)
	tx := plan.Transaction()

	assert.Equal(t, []string{"create_pool::new", "pool::initialize", "pool::transfer"}, targets(tx))
	pair := []types.TypeTag{tokenPool.CoinX, tokenPool.CoinY}
	for _, cmd := range tx.Commands {
		assert.Equal(t, TestnetDeployment.Package, cmd.Call.Package)
		assert.Equal(t, pair, cmd.Call.TypeArguments)
	}

	create := tx.Commands[0].Call
	assert.Equal(t, []byte{0xb8, 0x0b, 0, 0, 0, 0, 0, 0}, tx.Inputs[create.Arguments[1].Index].Pure)

	initialize := tx.Commands[1].Call
	assert.Equal(t, types.Result(0), initialize.Arguments[0])
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0}, tx.Inputs[initialize.Arguments[1].Index].Pure)
	assert.Equal(t, []types.Argument{types.Result(0)}, tx.Commands[2].Call.Arguments)

	params.CoinY = params.CoinX
	require.ErrorIs(t, BuildCreatePool(ptb.NewBuilder(), TestnetDeployment, params, &objs), types.ErrInvalidInput)
	params.CoinY, params.FeeRate = tokenPool.CoinY, 0
	require.ErrorIs(t, BuildCreatePool(ptb.NewBuilder(), TestnetDeployment, params, &objs), types.ErrInvalidInput)
}

func TestSqrtPrice(t *testing.T) {
	t.Parallel()

	info := &types.ObjectInfo{
		ObjectId: tokenPool.Pool,
		Contents: map[string]any{"sqrt_price": "5464238785"},
		Present:  types.FieldContents,
	}
	v, err := SqrtPrice(info)
	require.NoError(t, err)
	assert.Equal(t, uint64(5464238785), v.Uint64())

	info.Contents["sqrt_price"] = 5464238785.0
	_, err = SqrtPrice(info)
	require.ErrorIs(t, err, types.ErrInvalidInput)

	info.Contents["sqrt_price"] = "-5"
	_, err = SqrtPrice(info)
	require.ErrorIs(t, err, types.ErrInvalidInput)

	delete(info.Contents, "sqrt_price")
	_, err = SqrtPrice(info)
	require.ErrorIs(t, err, types.ErrIncompleteResponse)

	info.Present = 0
	_, err = SqrtPrice(info)
	require.ErrorIs(t, err, types.ErrIncompleteResponse)
}

func TestPrice(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1", Price(Q64, 0, 0).String())
	assert.Equal(t, "1000", Price(Q64, 9, 6).String())
	assert.Equal(t, "0.25", Price(new(uint256.Int).Rsh(Q64, 1), 0, 0).String())

	rapid.Check(t, func(t *rapid.T) {
		k := rapid.Uint64Range(1, 1<<32).Draw(t, "k")
		sqrtPrice := new(uint256.Int).Mul(uint256.NewInt(k), Q64)
		expected := decimal.NewFromUint64(k).Mul(decimal.NewFromUint64(k))
		if !Price(sqrtPrice, 0, 0).Equal(expected) {
			t.Fatalf("price of %d * 2^64 is %s, expected %s", k, Price(sqrtPrice, 0, 0), expected)
		}
	})
}
