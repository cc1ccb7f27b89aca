package keygen

import (
	"fmt"

	"github.com/NilFoundation/suiflow/cmd/suiflow/common"
	"github.com/NilFoundation/suiflow/services/cliservice"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func GetCommand(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new key or inspect an existing one",
	}

	var save bool
	newCmd := &cobra.Command{
		Use:          "new",
		Short:        "Generate a new ed25519 key",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := cliservice.GenerateKey()
			if err != nil {
				return err
			}
			if save {
				common.SetConfigFile(*cfgFile)
				if err := viper.ReadInConfig(); err != nil {
					return fmt.Errorf("failed to read config file, run `suiflow config init` first: %w", err)
				}
				if err := common.PatchConfig(map[string]any{common.PrivateKeyField: info.PrivateKey}, false); err != nil {
					return err
				}
			}
			return printKey(info)
		},
	}
	newCmd.Flags().BoolVar(&save, "save", false, "Store the key in the config file")

	fromKeyCmd := &cobra.Command{
		Use:          "from-key <key>",
		Short:        "Show the address of a suiprivkey or base64 key",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := cliservice.KeyFromString(args[0])
			if err != nil {
				return err
			}
			return printKey(info)
		},
	}

	cmd.AddCommand(newCmd, fromKeyCmd)
	return cmd
}

func printKey(info *cliservice.KeyInfo) error {
	if common.Quiet {
		fmt.Println(info.PrivateKey)
		return nil
	}
	return common.PrintYAML(info)
}
