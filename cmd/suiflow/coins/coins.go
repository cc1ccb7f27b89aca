package coins

import (
	"context"
	"fmt"

	"github.com/NilFoundation/suiflow/cmd/suiflow/common"
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/NilFoundation/suiflow/services/cliservice"
	"github.com/NilFoundation/suiflow/services/resolver"
	"github.com/spf13/cobra"
)

type params struct {
	coinType string
	owner    types.Address
	decimals int32
}

func GetCommand(cfg *common.Config) *cobra.Command {
	p := &params{}
	cmd := &cobra.Command{
		Use:   "coins",
		Short: "List and merge coins",
	}
	cmd.PersistentFlags().StringVarP(&p.coinType, "type", "t", "sui", "Coin type, e.g. sui, usdc or 0x2::sui::SUI")

	listCmd := &cobra.Command{
		Use:          "list",
		Short:        "List owned coins of a type",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), cfg, p)
		},
	}
	listCmd.Flags().Var(&p.owner, "owner", "Owner address, defaults to the configured key")
	listCmd.Flags().Int32Var(&p.decimals, "decimals", -1, "Decimals of the coin type")

	mergeCmd := &cobra.Command{
		Use:          "merge",
		Short:        "Merge all owned coins of a type into one",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd.Context(), cfg, p)
		},
	}

	cmd.AddCommand(listCmd, mergeCmd)
	return cmd
}

type coinView struct {
	Id      types.ObjectId `yaml:"id"`
	Version uint64         `yaml:"version"`
	Balance string         `yaml:"balance"`
}

func runList(ctx context.Context, cfg *common.Config, p *params) error {
	coinType, err := common.ParseCoinType(p.coinType)
	if err != nil {
		return err
	}
	decimals, err := common.CoinDecimals(coinType, p.decimals)
	if err != nil {
		return err
	}

	service, c, err := common.NewService(cfg, p.owner.IsEmpty())
	if err != nil {
		return err
	}
	defer c.Close()

	coins, err := service.ListCoins(ctx, p.owner, coinType)
	if err != nil {
		return err
	}

	total := cliservice.FormatAmount(resolver.TotalBalance(coins), decimals)
	if common.Quiet {
		fmt.Println(total)
		return nil
	}
	views := make([]coinView, len(coins))
	for i, coin := range coins {
		views[i] = coinView{
			Id:      coin.Ref.ObjectId,
			Version: coin.Ref.Version,
			Balance: cliservice.FormatAmount(coin.Balance, decimals),
		}
	}
	if err := common.PrintYAML(map[string]any{"coinType": coinType.String(), "coins": views}); err != nil {
		return err
	}
	fmt.Println(common.CyanStr("total: %s", total))
	return nil
}

func runMerge(ctx context.Context, cfg *common.Config, p *params) error {
	coinType, err := common.ParseCoinType(p.coinType)
	if err != nil {
		return err
	}

	service, c, err := common.NewService(cfg, true)
	if err != nil {
		return err
	}
	defer c.Close()

	out, err := service.MergeCoins(ctx, coinType)
	if err != nil {
		return err
	}
	return common.PrintOutcome(out)
}
