package liquidity

import (
	"fmt"

	"github.com/NilFoundation/suiflow/cmd/suiflow/common"
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/NilFoundation/suiflow/services/cliservice"
	"github.com/NilFoundation/suiflow/services/momentum"
	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
)

type addParams struct {
	pool        types.ObjectId
	coinX       string
	coinY       string
	decimalsX   int32
	decimalsY   int32
	tickSpacing uint32
	minX        string
	minY        string
	recipient   types.Address
}

func GetCommand(cfg *common.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liquidity",
		Short: "Provide liquidity to Momentum pools",
	}
	cmd.AddCommand(getAddCommand(cfg))
	return cmd
}

func getAddCommand(cfg *common.Config) *cobra.Command {
	p := &addParams{}
	cmd := &cobra.Command{
		Use:   "add <lower-sqrt-price> <upper-sqrt-price> <amount-x> <amount-y>",
		Short: "Open a position and deposit both coins of the pool into it",
		Long: `Open a position between two sqrt prices and deposit both coins of the pool.

Sqrt prices are decimal u128 values, 2^64 being a price of 1. Amounts are in
units of the coins, e.g. 1.5 SUI. The pool defaults to the configured one.`,
		Args:         cobra.ExactArgs(4),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, params, err := parseAdd(cfg.MomentumPool(), p, args)
			if err != nil {
				return err
			}

			service, c, err := common.NewService(cfg, true)
			if err != nil {
				return err
			}
			defer c.Close()

			out, err := service.MomentumAddLiquidity(cmd.Context(), cfg.MomentumDeployment(), pool, *params)
			if err != nil {
				return err
			}
			return common.PrintOutcome(out)
		},
	}
	cmd.Flags().Var(&p.pool, "pool", "Pool object, defaults to the configured pool")
	cmd.Flags().StringVar(&p.coinX, "coin-x", "", "First type parameter of the pool")
	cmd.Flags().StringVar(&p.coinY, "coin-y", "", "Second type parameter of the pool")
	cmd.Flags().Int32Var(&p.decimalsX, "decimals-x", -1, "Decimals of coin X when it is not a known coin")
	cmd.Flags().Int32Var(&p.decimalsY, "decimals-y", -1, "Decimals of coin Y when it is not a known coin")
	cmd.Flags().Uint32Var(&p.tickSpacing, "tick-spacing", momentum.DefaultTickSpacing, "Tick spacing of the pool")
	cmd.Flags().StringVar(&p.minX, "min-x", "0", "Minimum amount of coin X to deposit")
	cmd.Flags().StringVar(&p.minY, "min-y", "0", "Minimum amount of coin Y to deposit")
	cmd.Flags().Var(&p.recipient, "recipient", "Receiver of the position, defaults to the sender")
	return cmd
}

func parseSqrtPrice(name, s string) (*uint256.Int, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", types.ErrInvalidInput, name, err)
	}
	return v, nil
}

func parseAmount(coinType types.TypeTag, decimals int32, amount string) (uint64, error) {
	d, err := common.CoinDecimals(coinType, decimals)
	if err != nil {
		return 0, err
	}
	return cliservice.ParseAmount(amount, d)
}

// parseAdd resolves the pool from the flags and parses the positional arguments.
func parseAdd(configured momentum.Pool, p *addParams, args []string) (momentum.Pool, *momentum.AddLiquidityParams, error) {
	pool := configured
	if !p.pool.IsEmpty() {
		pool.Pool = p.pool
	}
	var err error
	if p.coinX != "" {
		if pool.CoinX, err = common.ParseCoinType(p.coinX); err != nil {
			return pool, nil, err
		}
	}
	if p.coinY != "" {
		if pool.CoinY, err = common.ParseCoinType(p.coinY); err != nil {
			return pool, nil, err
		}
	}

	params := &momentum.AddLiquidityParams{
		TickSpacing: p.tickSpacing,
		Recipient:   p.recipient,
	}
	if params.LowerSqrtPrice, err = parseSqrtPrice("lower sqrt price", args[0]); err != nil {
		return pool, nil, err
	}
	if params.UpperSqrtPrice, err = parseSqrtPrice("upper sqrt price", args[1]); err != nil {
		return pool, nil, err
	}
	if params.AmountX, err = parseAmount(pool.CoinX, p.decimalsX, args[2]); err != nil {
		return pool, nil, err
	}
	if params.AmountY, err = parseAmount(pool.CoinY, p.decimalsY, args[3]); err != nil {
		return pool, nil, err
	}
	if params.MinAmountX, err = parseAmount(pool.CoinX, p.decimalsX, p.minX); err != nil {
		return pool, nil, err
	}
	if params.MinAmountY, err = parseAmount(pool.CoinY, p.decimalsY, p.minY); err != nil {
		return pool, nil, err
	}
	return pool, params, params.Validate()
}
