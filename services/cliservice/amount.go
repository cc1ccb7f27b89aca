package cliservice

import (
	"fmt"
	"math"

	"github.com/NilFoundation/suiflow/core/types"
	"github.com/shopspring/decimal"
)

const SuiDecimals = 9

var maxU64 = decimal.NewFromUint64(math.MaxUint64)

// ParseAmount converts a decimal coin amount such as "1.5" into base units.
func ParseAmount(s string, decimals int32) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q: %w", types.ErrInvalidInput, s, err)
	}
	units := d.Shift(decimals)
	if !units.IsInteger() {
		return 0, fmt.Errorf("%w: amount %q has more than %d decimals", types.ErrInvalidInput, s, decimals)
	}
	if units.IsNegative() || units.GreaterThan(maxU64) {
		return 0, fmt.Errorf("%w: amount %q out of range", types.ErrInvalidInput, s)
	}
	return units.BigInt().Uint64(), nil
}

// FormatAmount renders base units as a decimal coin amount.
func FormatAmount(units uint64, decimals int32) string {
	return decimal.NewFromUint64(units).Shift(-decimals).String()
}
