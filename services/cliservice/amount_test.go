package cliservice

import (
	"testing"

	"github.com/NilFoundation/suiflow/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()

	for in, expected := range map[string]uint64{
		"1":           1_000_000_000,
		"0.5":         500_000_000,
		"0.000000001": 1,
		"12.25":       12_250_000_000,
	} {
		v, err := ParseAmount(in, SuiDecimals)
		require.NoError(t, err, in)
		assert.Equal(t, expected, v, in)
	}

	for in, decimals := range map[string]int32{
		"0.0000000001":         SuiDecimals,
		"-1":                   SuiDecimals,
		"abc":                  SuiDecimals,
		"18446744073709551616": 0,
	} {
		_, err := ParseAmount(in, decimals)
		require.ErrorIs(t, err, types.ErrInvalidInput, in)
	}
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1.5", FormatAmount(1_500_000_000, SuiDecimals))
	assert.Equal(t, "0.000001", FormatAmount(1, 6))
	assert.Equal(t, "42", FormatAmount(42, 0))
}

func TestKeyInfo(t *testing.T) {
	t.Parallel()

	info, err := KeyFromString("suiprivkey1qzwkrvvaal745c96s390fyhv9nzygjw9d9any6gewqa6cqcu4elkqqfr3zg")
	require.NoError(t, err)
	assert.Equal(t, types.MustParseAddress("0x304af458e90e97c841685b8cbbc59b909f3e2cf150df590ada4c81452c29737d"), info.Address)
	assert.Equal(t, "suiprivkey1qzwkrvvaal745c96s390fyhv9nzygjw9d9any6gewqa6cqcu4elkqqfr3zg", info.PrivateKey)

	generated, err := GenerateKey()
	require.NoError(t, err)
	again, err := KeyFromString(generated.PrivateKey)
	require.NoError(t, err)
	assert.Equal(t, generated, again)
}
