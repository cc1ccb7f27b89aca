package common

import (
	"fmt"

	"github.com/NilFoundation/suiflow/client"
	"github.com/NilFoundation/suiflow/client/grpc"
	"github.com/NilFoundation/suiflow/client/rpc"
	"github.com/NilFoundation/suiflow/common/logging"
	"github.com/NilFoundation/suiflow/common/version"
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/NilFoundation/suiflow/services/cliservice"
	"github.com/NilFoundation/suiflow/services/momentum"
	grpclib "google.golang.org/grpc"
)

const appName = "suiflow"

func headers(cfg *Config) client.Headers {
	h := client.Headers{}
	if cfg.ApiKey != "" {
		h[client.HeaderApiKey] = cfg.ApiKey
	}
	return h
}

// NewClient opens the configured transport.
func NewClient(cfg *Config) (client.Client, error) {
	switch cfg.Transport {
	case client.TransportGrpc, "":
		c, err := grpc.NewClient(cfg.Endpoint, logging.NewLogger("grpcClient"), headers(cfg),
			grpclib.WithUserAgent(version.UserAgent(appName)))
		if err != nil {
			return nil, err
		}
		return c, nil
	case client.TransportJsonRpc:
		h := headers(cfg)
		h["User-Agent"] = version.UserAgent(appName)
		c, err := rpc.NewClientWithDefaultHeaders(cfg.Endpoint, logging.NewLogger("rpcClient"), h)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: unknown transport %q", types.ErrInvalidInput, cfg.Transport)
	}
}

// NewService connects to the ledger. When needKey is set, a missing key is an error.
func NewService(cfg *Config, needKey bool) (*cliservice.Service, client.Client, error) {
	if needKey && cfg.PrivateKey == nil {
		return nil, nil, fmt.Errorf("%w: set %s in the config or SUIFLOW_PRIVATE_KEY", cliservice.ErrNoKey, PrivateKeyField)
	}

	c, err := NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}

	svcCfg := cliservice.Config{
		GasBudget: cfg.GasBudget,
		GasPrice:  cfg.GasPrice,
		DryRun:    cfg.DryRun,
		CacheSize: cfg.CacheSize,
	}
	s, err := cliservice.NewService(c, cfg.PrivateKey, svcCfg)
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	return s, c, nil
}

// MomentumPool is the configured pool or mainnet SUI/USDC.
func (cfg *Config) MomentumPool() momentum.Pool {
	if cfg.Momentum.Pool.IsEmpty() {
		return momentum.MainnetSuiUsdc
	}
	return cfg.Momentum
}

// MomentumDeployment is the configured core deployment or the testnet one.
func (cfg *Config) MomentumDeployment() momentum.Deployment {
	if cfg.MomentumCore.Package.IsEmpty() {
		return momentum.TestnetDeployment
	}
	return cfg.MomentumCore
}
