package resolver

import (
	"context"
	"testing"

	"github.com/NilFoundation/suiflow/client"
	"github.com/NilFoundation/suiflow/common/logging"
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func coinInfo(id string, balance uint64, objectType string) *types.ObjectInfo {
	return &types.ObjectInfo{
		ObjectId:   types.MustParseAddress(id),
		Version:    1,
		Digest:     types.TransactionDigest([]byte(id)),
		ObjectType: objectType,
		Balance:    balance,
		Present:    types.MaskCoin,
	}
}

func TestListCoinsPaginates(t *testing.T) {
	t.Parallel()

	suiCoin := types.CoinObjectType(types.SuiCoinType)
	pages := map[string]*client.ObjectPage{
		"": {
			Objects:       []*types.ObjectInfo{coinInfo("0x1a", 10, suiCoin), coinInfo("0x1b", 20, "0x2::coin::Coin<0x3::x::X>")},
			NextPageToken: "p2",
		},
		"p2": {
			Objects: []*types.ObjectInfo{coinInfo("0x1c", 30, suiCoin)},
		},
	}

	mock := &client.ClientMock{
		ListOwnedObjectsFunc: func(_ context.Context, req *client.ListOwnedRequest) (*client.ObjectPage, error) {
			assert.Equal(t, suiCoin, req.ObjectType)
			assert.Equal(t, types.MaskCoin, req.Mask)
			return pages[req.PageToken], nil
		},
	}
	r := NewResolver(mock, nil, logging.NewLogger("coins_test"))

	coins, err := r.ListCoins(t.Context(), types.MustParseAddress("0xabc"), types.SuiCoinType)
	require.NoError(t, err)
	require.Len(t, coins, 2)
	assert.Equal(t, uint64(40), TotalBalance(coins))
	assert.Len(t, mock.ListOwnedObjectsCalls(), 2)
}

func TestListCoinsRepeatedToken(t *testing.T) {
	t.Parallel()

	mock := &client.ClientMock{
		ListOwnedObjectsFunc: func(context.Context, *client.ListOwnedRequest) (*client.ObjectPage, error) {
			return &client.ObjectPage{NextPageToken: "same"}, nil
		},
	}
	r := NewResolver(mock, nil, logging.NewLogger("coins_test"))

	_, err := r.ListCoins(t.Context(), types.MustParseAddress("0xabc"), types.SuiCoinType)
	require.ErrorIs(t, err, client.ErrTransport)
}

func TestSelectCoins(t *testing.T) {
	t.Parallel()

	coins := []Coin{
		{Ref: types.ObjectRef{ObjectId: types.MustParseAddress("0x1")}, Balance: 5},
		{Ref: types.ObjectRef{ObjectId: types.MustParseAddress("0x2")}, Balance: 50},
		{Ref: types.ObjectRef{ObjectId: types.MustParseAddress("0x3")}, Balance: 20},
	}

	selected, total, err := SelectCoins(coins, 60)
	require.NoError(t, err)
	assert.Equal(t, uint64(70), total)
	require.Len(t, selected, 2)
	assert.Equal(t, uint64(50), selected[0].Balance)
	assert.Equal(t, uint64(20), selected[1].Balance)

	_, total, err = SelectCoins(coins, 100)
	require.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, uint64(75), total)
}

func TestSelectCoinsProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		balances := rapid.SliceOfN(rapid.Uint64Range(1, 1_000_000), 1, 20).Draw(t, "balances")
		coins := make([]Coin, len(balances))
		var sum uint64
		for i, b := range balances {
			coins[i] = Coin{Ref: types.ObjectRef{ObjectId: types.BytesToAddress([]byte{byte(i + 1)})}, Balance: b}
			sum += b
		}
		amount := rapid.Uint64Range(1, sum).Draw(t, "amount")

		selected, total, err := SelectCoins(coins, amount)
		require.NoError(t, err)
		require.GreaterOrEqual(t, total, amount)
		require.Equal(t, TotalBalance(selected), total)
		// dropping the smallest selected coin must leave the amount uncovered
		require.Less(t, total-selected[len(selected)-1].Balance, amount)
	})
}
