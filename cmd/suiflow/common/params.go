package common

import (
	"fmt"
	"strings"

	"github.com/NilFoundation/suiflow/core/types"
	"github.com/NilFoundation/suiflow/services/cliservice"
	"github.com/NilFoundation/suiflow/services/momentum"
)

var knownDecimals = map[string]int32{
	types.SuiCoinType.String():             cliservice.SuiDecimals,
	momentum.MainnetSuiUsdc.CoinY.String(): 6,
}

// ParseCoinType accepts a full type tag or the "sui" and "usdc" shortcuts.
func ParseCoinType(s string) (types.TypeTag, error) {
	switch strings.ToLower(s) {
	case "", "sui":
		return types.SuiCoinType, nil
	case "usdc":
		return momentum.MainnetSuiUsdc.CoinY, nil
	}
	return types.ParseTypeTag(s)
}

// CoinDecimals returns the decimals of a known coin, or override when it is set.
func CoinDecimals(t types.TypeTag, override int32) (int32, error) {
	if override >= 0 {
		return override, nil
	}
	if d, ok := knownDecimals[t.String()]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("%w: decimals of %s are unknown, pass --decimals", types.ErrInvalidInput, t)
}
