package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"reflect"
	"syscall"

	"github.com/NilFoundation/suiflow/cmd/suiflow/coins"
	"github.com/NilFoundation/suiflow/cmd/suiflow/common"
	"github.com/NilFoundation/suiflow/cmd/suiflow/config"
	"github.com/NilFoundation/suiflow/cmd/suiflow/keygen"
	"github.com/NilFoundation/suiflow/cmd/suiflow/liquidity"
	"github.com/NilFoundation/suiflow/cmd/suiflow/object"
	"github.com/NilFoundation/suiflow/cmd/suiflow/pool"
	"github.com/NilFoundation/suiflow/cmd/suiflow/swap"
	"github.com/NilFoundation/suiflow/cmd/suiflow/transfer"
	"github.com/NilFoundation/suiflow/cmd/suiflow/version"
	"github.com/NilFoundation/suiflow/common/check"
	"github.com/NilFoundation/suiflow/common/logging"
	"github.com/NilFoundation/suiflow/core/crypto"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type RootCommand struct {
	baseCmd  *cobra.Command
	config   common.Config
	cfgFile  string
	logLevel string
}

var logger = logging.NewLogger("rootCommand")

var noConfigCmd = map[string]struct{}{
	"help":     {},
	"init":     {},
	"keygen":   {},
	"new":      {},
	"from-key": {},
	"version":  {},
}

func main() {
	var rootCmd *RootCommand

	rootCmd = &RootCommand{
		baseCmd: &cobra.Command{
			Use:   "suiflow",
			Short: "CLI tool for building, signing and submitting Sui transactions",
			PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
				if rootCmd.logLevel == "" {
					logging.SetLogSeverityFromEnv()
				} else if err := logging.TrySetupGlobalLevel(rootCmd.logLevel); err != nil {
					return err
				}
				if _, withoutConfig := noConfigCmd[cmd.Name()]; withoutConfig {
					return nil
				}
				return rootCmd.loadConfig()
			},
			SilenceErrors: true,
		},
	}

	flags := rootCmd.baseCmd.PersistentFlags()
	flags.StringVarP(&rootCmd.cfgFile, "config", "c", "", "Path to config file (default "+common.DefaultConfigPath+")")
	flags.StringVarP(&rootCmd.logLevel, "log-level", "l", "", "Log level: trace|debug|info|warn|error (default $LOG_LEVEL or info)")
	flags.BoolVarP(&common.Quiet, "quiet", "q", false, "Print only the result")
	flags.BoolVar(&rootCmd.config.DryRun, "dry-run", false, "Build and sign transactions without submitting them")
	flags.String(common.EndpointField, common.DefaultEndpoint, "Full node endpoint")
	flags.String(common.TransportField, "grpc", "Endpoint protocol: grpc|jsonrpc")
	flags.Uint64(common.GasBudgetField, 0, "Gas budget in MIST")

	check.PanicIfErr(common.BindFlags(flags, common.EndpointField, common.TransportField, common.GasBudgetField))
	common.SetDefaults()

	rootCmd.registerSubCommands()
	rootCmd.Execute()
}

// registerSubCommands adds all subcommands to the root command
func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(
		config.GetCommand(&rc.cfgFile),
		keygen.GetCommand(&rc.cfgFile),
		object.GetCommand(&rc.config),
		coins.GetCommand(&rc.config),
		transfer.GetCommand(&rc.config),
		swap.GetCommand(&rc.config),
		liquidity.GetCommand(&rc.config),
		pool.GetCommand(&rc.config),
		version.GetCommand(),
	)

	logger.Trace().Msg("Subcommands registered")
}

func decodePrivateKey(f reflect.Type, t reflect.Type, data any) (any, error) {
	if f.Kind() == reflect.String && t == reflect.TypeOf(&crypto.PrivateKey{}) {
		s, _ := data.(string)
		if s == "" {
			return nil, nil
		}
		return crypto.DecodePrivateKey(s)
	}
	return data, nil
}

func updateDecoderConfig(config *mapstructure.DecoderConfig) {
	config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		config.DecodeHook,
		decodePrivateKey,
		mapstructure.TextUnmarshallerHookFunc(),
	)
}

// loadConfig loads the configuration from the config file and the environment.
// A missing default config file is not an error.
func (rc *RootCommand) loadConfig() error {
	common.SetConfigFile(rc.cfgFile)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if rc.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		logger.Debug().Msg("No config file, using flags and environment")
	}

	dryRun := rc.config.DryRun
	if err := viper.Unmarshal(&rc.config, updateDecoderConfig); err != nil {
		return fmt.Errorf("unable to decode config: %w", err)
	}
	rc.config.DryRun = dryRun

	logger.Debug().
		Str(logging.FieldUrl, rc.config.Endpoint).
		Str(logging.FieldRpcTransport, string(rc.config.Transport)).
		Bool("key", rc.config.PrivateKey != nil).
		Msg("Configuration loaded")
	return nil
}

// Execute runs the root command and handles any errors
func (rc *RootCommand) Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rc.baseCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, common.DescribeError(err))

		os.Exit(1)
	}

	logger.Trace().Msg("Command executed successfully")
}
