package config

import (
	"fmt"

	"github.com/NilFoundation/suiflow/cmd/suiflow/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func GetCommand(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}

	cmd.AddCommand(
		initCommand(cfgFile),
		showCommand(),
		setCommand(),
	)
	return cmd
}

func initCommand(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:          "init",
		Short:        "Create a config file from a commented template",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := common.InitDefaultConfig(*cfgFile)
			if err != nil {
				return err
			}
			if !common.Quiet {
				fmt.Print("Config created at ")
			}
			fmt.Println(path)
			return nil
		},
	}
}

func showCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "show",
		Short:        "Print the effective configuration",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := viper.AllSettings()
			for _, secret := range []string{common.PrivateKeyField, common.ApiKeyField} {
				if v, ok := settings[secret]; ok && v != "" {
					settings[secret] = "<hidden>"
				}
			}
			if used := viper.ConfigFileUsed(); used != "" && !common.Quiet {
				fmt.Println("# " + used)
			}
			return common.PrintYAML(settings)
		},
	}
}

func setCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:          "set <key> <value>",
		Short:        "Set a value in the config file",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.PatchConfig(map[string]any{args[0]: args[1]}, force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing value")
	return cmd
}
