package swap

import (
	"fmt"

	"github.com/NilFoundation/suiflow/cmd/suiflow/common"
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/NilFoundation/suiflow/services/cliservice"
	"github.com/NilFoundation/suiflow/services/momentum"
	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
)

type params struct {
	recipient  types.Address
	priceLimit string
}

func GetCommand(cfg *common.Config) *cobra.Command {
	p := &params{}
	cmd := &cobra.Command{
		Use:   "swap <direction> <amount>",
		Short: "Swap on the Momentum pool with a flash swap",
		Long: `Swap on the Momentum pool with a flash swap.

Direction is "sui-usdc", "usdc-sui", "x-for-y" or "y-for-x". The amount is in
units of the input coin, e.g. 1.5 SUI or 10 USDC.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool := cfg.MomentumPool()
			swap, err := parseSwap(pool, p, args[0], args[1])
			if err != nil {
				return err
			}

			service, c, err := common.NewService(cfg, true)
			if err != nil {
				return err
			}
			defer c.Close()

			out, err := service.MomentumSwap(cmd.Context(), pool, *swap)
			if err != nil {
				return err
			}
			return common.PrintOutcome(out)
		},
	}
	cmd.Flags().Var(&p.recipient, "recipient", "Receiver of the output, defaults to the sender")
	cmd.Flags().StringVar(&p.priceLimit, "sqrt-price-limit", "", "Sqrt price limit as a decimal u128, no limit when empty")
	return cmd
}

func parseSwap(pool momentum.Pool, p *params, direction, amount string) (*momentum.SwapParams, error) {
	d, err := pool.ParseDirection(direction)
	if err != nil {
		return nil, err
	}
	decimals, err := common.CoinDecimals(pool.InputType(d), -1)
	if err != nil {
		return nil, err
	}
	amountIn, err := cliservice.ParseAmount(amount, decimals)
	if err != nil {
		return nil, err
	}

	swap := &momentum.SwapParams{
		Direction: d,
		AmountIn:  amountIn,
		Recipient: p.recipient,
	}
	if p.priceLimit != "" {
		if swap.SqrtPriceLimit, err = uint256.FromDecimal(p.priceLimit); err != nil {
			return nil, fmt.Errorf("%w: sqrt price limit: %w", types.ErrInvalidInput, err)
		}
	}
	return swap, nil
}
