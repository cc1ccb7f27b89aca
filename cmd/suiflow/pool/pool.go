package pool

import (
	"fmt"

	"github.com/NilFoundation/suiflow/cmd/suiflow/common"
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/NilFoundation/suiflow/services/momentum"
	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
)

func GetCommand(cfg *common.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Create Momentum pools and read their price",
	}
	cmd.AddCommand(getCreateCommand(cfg), getPriceCommand(cfg))
	return cmd
}

type createParams struct {
	feeRate   uint64
	sqrtPrice string
}

func getCreateCommand(cfg *common.Config) *cobra.Command {
	p := &createParams{}
	cmd := &cobra.Command{
		Use:          "create <coin-x> <coin-y>",
		Short:        "Create, initialize and share a pool of two coin types",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseCreate(p, args[0], args[1])
			if err != nil {
				return err
			}

			service, c, err := common.NewService(cfg, true)
			if err != nil {
				return err
			}
			defer c.Close()

			out, err := service.MomentumCreatePool(cmd.Context(), cfg.MomentumDeployment(), *params)
			if err != nil {
				return err
			}
			return common.PrintOutcome(out)
		},
	}
	cmd.Flags().Uint64Var(&p.feeRate, "fee-rate", momentum.DefaultFeeRate, "Swap fee in millionths")
	cmd.Flags().StringVar(&p.sqrtPrice, "sqrt-price", momentum.Q64.Dec(), "Initial sqrt price as a decimal u128, 2^64 is a price of 1")
	return cmd
}

func parseCreate(p *createParams, coinX, coinY string) (*momentum.CreatePoolParams, error) {
	params := &momentum.CreatePoolParams{FeeRate: p.feeRate}
	var err error
	if params.CoinX, err = common.ParseCoinType(coinX); err != nil {
		return nil, err
	}
	if params.CoinY, err = common.ParseCoinType(coinY); err != nil {
		return nil, err
	}
	if params.InitialSqrtPrice, err = uint256.FromDecimal(p.sqrtPrice); err != nil {
		return nil, fmt.Errorf("%w: sqrt price: %w", types.ErrInvalidInput, err)
	}
	return params, params.Validate()
}

type priceParams struct {
	decimalsX int32
	decimalsY int32
}

func getPriceCommand(cfg *common.Config) *cobra.Command {
	p := &priceParams{}
	cmd := &cobra.Command{
		Use:   "price [pool]",
		Short: "Print the current sqrt price and price of a pool",
		Long: `Print the current sqrt price and price of a pool.

The price is of one X in Y. It is in whole coins for the configured pool and
when both --decimals flags are set, in base units otherwise.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, decimalsX, decimalsY, err := priceTarget(cfg.MomentumPool(), p, args)
			if err != nil {
				return err
			}

			service, c, err := common.NewService(cfg, false)
			if err != nil {
				return err
			}
			defer c.Close()

			price, err := service.MomentumPoolPrice(cmd.Context(), id, decimalsX, decimalsY)
			if err != nil {
				return err
			}
			if common.Quiet {
				fmt.Println(price.Price)
				return nil
			}
			return common.PrintYAML(price)
		},
	}
	cmd.Flags().Int32Var(&p.decimalsX, "decimals-x", -1, "Decimals of coin X")
	cmd.Flags().Int32Var(&p.decimalsY, "decimals-y", -1, "Decimals of coin Y")
	return cmd
}

// priceTarget picks the pool and the decimals the price is scaled with.
func priceTarget(configured momentum.Pool, p *priceParams, args []string) (types.ObjectId, int32, int32, error) {
	if len(args) == 1 {
		id, err := types.ParseAddress(args[0])
		if err != nil {
			return id, 0, 0, err
		}
		return id, p.decimalsX, p.decimalsY, nil
	}

	decimalsX, err := common.CoinDecimals(configured.CoinX, p.decimalsX)
	if err != nil {
		return configured.Pool, -1, -1, nil
	}
	decimalsY, err := common.CoinDecimals(configured.CoinY, p.decimalsY)
	if err != nil {
		return configured.Pool, -1, -1, nil
	}
	return configured.Pool, decimalsX, decimalsY, nil
}
