package resolver

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/NilFoundation/suiflow/client"
	"github.com/NilFoundation/suiflow/common/logging"
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/google/btree"
)

const (
	listPageSize = 50
	btreeDegree  = 8
)

var ErrInsufficientBalance = errors.New("insufficient balance")

// Coin is an owned coin object with its balance.
type Coin struct {
	Ref     types.ObjectRef `yaml:"ref"`
	Type    types.TypeTag   `yaml:"type"`
	Balance uint64          `yaml:"balance"`
}

// ListCoins walks every page of the owner's coins of coinType.
func (r *Resolver) ListCoins(ctx context.Context, owner types.Address, coinType types.TypeTag) ([]Coin, error) {
	req := &client.ListOwnedRequest{
		Owner:      owner,
		ObjectType: types.CoinObjectType(coinType),
		PageSize:   listPageSize,
		Mask:       types.MaskCoin,
	}

	var coins []Coin
	for {
		page, err := r.client.ListOwnedObjects(ctx, req)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Objects {
			if err := obj.Require(types.MaskCoin); err != nil {
				return nil, err
			}
			t, ok := types.CoinType(obj.ObjectType)
			if !ok || !t.Equal(coinType) {
				continue
			}
			coins = append(coins, Coin{Ref: obj.Ref(), Type: t, Balance: obj.Balance})
		}

		if page.NextPageToken == "" {
			break
		}
		if page.NextPageToken == req.PageToken {
			return nil, fmt.Errorf("%w: page token %q repeated", client.ErrTransport, page.NextPageToken)
		}
		req.PageToken = page.NextPageToken
	}

	r.logger.Debug().
		Stringer(logging.FieldSender, owner).
		Stringer(logging.FieldCoinType, coinType).
		Int("coins", len(coins)).
		Msg("Listed coins")
	return coins, nil
}

func coinLess(a, b Coin) bool {
	if a.Balance != b.Balance {
		return a.Balance > b.Balance
	}
	return bytes.Compare(a.Ref.ObjectId[:], b.Ref.ObjectId[:]) < 0
}

// SelectCoins picks the largest coins until their total reaches amount.
// Ties are broken by object id so the choice is deterministic.
func SelectCoins(coins []Coin, amount uint64) ([]Coin, uint64, error) {
	set := btree.NewG(btreeDegree, coinLess)
	for _, c := range coins {
		set.ReplaceOrInsert(c)
	}

	var (
		selected []Coin
		total    uint64
	)
	set.Ascend(func(c Coin) bool {
		if total >= amount && len(selected) > 0 {
			return false
		}
		selected = append(selected, c)
		total += c.Balance
		return true
	})

	if total < amount {
		return nil, total, fmt.Errorf("%w: need %d, have %d", ErrInsufficientBalance, amount, total)
	}
	return selected, total, nil
}

func TotalBalance(coins []Coin) uint64 {
	var total uint64
	for _, c := range coins {
		total += c.Balance
	}
	return total
}
