package main

import (
	"strings"
	"testing"

	"github.com/NilFoundation/suiflow/client"
	"github.com/NilFoundation/suiflow/cmd/suiflow/common"
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/NilFoundation/suiflow/services/momentum"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
endpoint: "http://127.0.0.1:9000"
transport: jsonrpc
private_key: "suiprivkey1qzwkrvvaal745c96s390fyhv9nzygjw9d9any6gewqa6cqcu4elkqqfr3zg"
gas_budget: 20000000
momentum:
  tradePackage: "0xaa"
  slippagePackage: "0xbb"
  pool: "0xcc"
  globalConfig: "0xdd"
  coinX: "0x2::sui::SUI"
  coinY: "0xee::usdt::USDT"
`

func TestDecodeConfig(t *testing.T) {
	t.Parallel()

	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(testConfig)))

	var cfg common.Config
	require.NoError(t, v.Unmarshal(&cfg, updateDecoderConfig))

	assert.Equal(t, "http://127.0.0.1:9000", cfg.Endpoint)
	assert.Equal(t, client.TransportJsonRpc, cfg.Transport)
	assert.Equal(t, uint64(20_000_000), cfg.GasBudget)
	require.NotNil(t, cfg.PrivateKey)
	assert.Equal(t,
		types.MustParseAddress("0x304af458e90e97c841685b8cbbc59b909f3e2cf150df590ada4c81452c29737d"),
		cfg.PrivateKey.Address())

	pool := cfg.MomentumPool()
	assert.Equal(t, types.MustParseAddress("0xcc"), pool.Pool)
	assert.Equal(t, types.MustParseTypeTag("0xee::usdt::USDT"), pool.CoinY)
}

func TestDecodeConfigDefaults(t *testing.T) {
	t.Parallel()

	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`private_key: ""`)))

	var cfg common.Config
	require.NoError(t, v.Unmarshal(&cfg, updateDecoderConfig))
	assert.Nil(t, cfg.PrivateKey)
	assert.Equal(t, momentum.MainnetSuiUsdc, cfg.MomentumPool())
}

func TestDecodeConfigBadKey(t *testing.T) {
	t.Parallel()

	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`private_key: "AQ=="`)))

	var cfg common.Config
	require.Error(t, v.Unmarshal(&cfg, updateDecoderConfig))
}
