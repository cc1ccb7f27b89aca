package common

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/NilFoundation/suiflow/client"
	"github.com/NilFoundation/suiflow/common/check"
	"github.com/NilFoundation/suiflow/core/crypto"
	"github.com/NilFoundation/suiflow/services/cliservice"
	"github.com/NilFoundation/suiflow/services/momentum"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Endpoint   string             `mapstructure:"endpoint"`
	Transport  client.Transport   `mapstructure:"transport"`
	ApiKey     string             `mapstructure:"api_key"`
	PrivateKey *crypto.PrivateKey `mapstructure:"private_key"`
	GasBudget  uint64             `mapstructure:"gas_budget"`
	GasPrice   uint64             `mapstructure:"gas_price"`
	CacheSize  int                `mapstructure:"cache_size"`
	Momentum   momentum.Pool      `mapstructure:"momentum"`
	// MomentumCore is the deployment used for liquidity and pool creation.
	MomentumCore momentum.Deployment `mapstructure:"momentum_core"`

	DryRun bool `mapstructure:"-"`
}

const (
	EndpointField   = "endpoint"
	TransportField  = "transport"
	ApiKeyField     = "api_key"
	PrivateKeyField = "private_key"
	GasBudgetField  = "gas_budget"
	GasPriceField   = "gas_price"
	CacheSizeField  = "cache_size"

	DefaultEndpoint = "https://fullnode.mainnet.sui.io:443"
)

const InitConfigTemplate = `---
# Configuration of suiflow

# Full node endpoint and its protocol, "grpc" or "jsonrpc"
# endpoint: "https://fullnode.mainnet.sui.io:443"
# transport: "grpc"

# API key sent as x-api-key, if the provider needs one
# api_key: ""

# Ed25519 private key, "suiprivkey1..." or base64 of flag || key.
# SUIFLOW_PRIVATE_KEY and PRIVATE_KEY override it.
# private_key: "WRITE_YOUR_PRIVATE_KEY_HERE"

# Gas budget in MIST; gas price 0 uses the reference gas price
# gas_budget: 50000000
# gas_price: 0

# Momentum pool to swap against, mainnet SUI/USDC when omitted
# momentum:
#   tradePackage: "0x60e8683e01d5611cd13a69aca2b0c9aace7c6b559734df1b4a7ad9d6bddf007b"
#   slippagePackage: "0x8add2f0f8bc9748687639d7eb59b2172ba09a0172d9e63c029e23a7dbdb6abe6"
#   pool: "0x455cf8d2ac91e7cb883f515874af750ed3cd18195c970b7a2d46235ac2b0c388"
#   globalConfig: "0x2375a0b1ec12010aaea3b2545acfa2ad34cfbba03ce4b59f4c39e1e25eed1b2a"
#   coinX: "0x2::sui::SUI"
#   coinY: "0xdba34672e30cb065b1f93e3ab55318768fd6fef66c15942c9f7cb846e2f900e7::usdc::USDC"

# Core package for liquidity and pool creation, testnet when omitted
# momentum_core:
#   package: "0xd7c99e1546b1fc87a6489afdc08bcece4ae1340cbd8efd2ab152ad71dea0f0f2"
#   globalConfig: "0x3c4385bf373c7997a953ee548f45188d9f1ca4284ec835467688d8ee276e1af7"
#   version: "0x83ea3e3e7384efd6b524ff973e4b627cd84d190c45d3f4fd9f5f4fc6c95fd26b"
`

var DefaultConfigPath string

func init() {
	homeDir, err := os.UserHomeDir()
	check.PanicIfErr(err)

	DefaultConfigPath = filepath.Join(homeDir, ".config/suiflow/config.yaml")
}

// SetDefaults registers defaults and environment overrides with viper.
func SetDefaults() {
	viper.SetDefault(EndpointField, DefaultEndpoint)
	viper.SetDefault(TransportField, string(client.TransportGrpc))
	viper.SetDefault(GasBudgetField, cliservice.DefaultGasBudget)
	viper.SetDefault(CacheSizeField, cliservice.DefaultConfig().CacheSize)

	viper.SetEnvPrefix("SUIFLOW")
	viper.AutomaticEnv()
	check.PanicIfErr(viper.BindEnv(PrivateKeyField, "SUIFLOW_PRIVATE_KEY", "PRIVATE_KEY"))
	check.PanicIfErr(viper.BindEnv(ApiKeyField, "SUIFLOW_API_KEY"))
	check.PanicIfErr(viper.BindEnv(EndpointField, "SUIFLOW_ENDPOINT"))
}

// BindFlags makes the named flags override the matching config keys.
func BindFlags(flags *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		f := flags.Lookup(name)
		if f == nil {
			return fmt.Errorf("unknown flag %q", name)
		}
		if err := viper.BindPFlag(name, f); err != nil {
			return err
		}
	}
	return nil
}

// SetConfigFile sets the config file for the viper
func SetConfigFile(cfgFile string) {
	if cfgFile == "" {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("$HOME/.config/suiflow/")
		viper.AddConfigPath(".")
	} else {
		viper.SetConfigFile(cfgFile)
	}
}

func InitDefaultConfig(configPath string) (string, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	dirPath := filepath.Dir(configPath)
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(configPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(InitConfigTemplate); err != nil {
		return "", fmt.Errorf("failed to write template to config file: %w", err)
	}
	return configPath, nil
}

func PatchConfig(delta map[string]any, force bool) error {
	for key, value := range delta {
		oldValue := viper.GetString(key)
		if !force && oldValue != "" && oldValue != value {
			return fmt.Errorf("key %q already exists in the config file", key)
		}
		viper.Set(key, value)
	}

	if err := viper.MergeConfigMap(delta); err != nil {
		return err
	}
	return viper.WriteConfig()
}
