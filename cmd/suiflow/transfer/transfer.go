package transfer

import (
	"github.com/NilFoundation/suiflow/cmd/suiflow/common"
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/NilFoundation/suiflow/services/cliservice"
	"github.com/spf13/cobra"
)

func GetCommand(cfg *common.Config) *cobra.Command {
	return &cobra.Command{
		Use:          "transfer <recipient> <amount>",
		Short:        "Send SUI split off the gas coin",
		Long:         "Send SUI split off the gas coin. The amount is in SUI, e.g. 0.5.",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			recipient, err := types.ParseAddress(args[0])
			if err != nil {
				return err
			}
			amount, err := cliservice.ParseAmount(args[1], cliservice.SuiDecimals)
			if err != nil {
				return err
			}

			service, c, err := common.NewService(cfg, true)
			if err != nil {
				return err
			}
			defer c.Close()

			out, err := service.Transfer(cmd.Context(), recipient, amount)
			if err != nil {
				return err
			}
			return common.PrintOutcome(out)
		},
	}
}
