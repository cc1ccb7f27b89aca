package object

import (
	"context"
	"fmt"

	"github.com/NilFoundation/suiflow/cmd/suiflow/common"
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/spf13/cobra"
)

type params struct {
	fields   []string
	requests int
}

func GetCommand(cfg *common.Config) *cobra.Command {
	p := &params{}
	cmd := &cobra.Command{
		Use:          "object <id>",
		Short:        "Fetch an object",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runObject(cmd.Context(), cfg, p, args[0])
		},
	}
	cmd.PersistentFlags().StringSliceVar(&p.fields, "fields", []string{"summary"},
		"Fields to request: object_id,version,digest,owner,object_type,balance,json or ref|summary|all")

	benchCmd := &cobra.Command{
		Use:          "bench <id>",
		Short:        "Measure object lookup latency",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.Context(), cfg, p, args[0])
		},
	}
	benchCmd.Flags().IntVarP(&p.requests, "requests", "n", 10, "Number of sequential requests")

	cmd.AddCommand(benchCmd)
	return cmd
}

func parse(p *params, id string) (types.ObjectId, types.ReadMask, error) {
	objectId, err := types.ParseAddress(id)
	if err != nil {
		return types.ObjectId{}, 0, err
	}
	mask, err := types.ParseReadMask(p.fields)
	if err != nil {
		return types.ObjectId{}, 0, err
	}
	return objectId, mask, nil
}

func runObject(ctx context.Context, cfg *common.Config, p *params, id string) error {
	objectId, mask, err := parse(p, id)
	if err != nil {
		return err
	}
	service, c, err := common.NewService(cfg, false)
	if err != nil {
		return err
	}
	defer c.Close()

	info, err := service.GetObject(ctx, objectId, mask)
	if err != nil {
		return err
	}
	return common.PrintYAML(info)
}

func runBench(ctx context.Context, cfg *common.Config, p *params, id string) error {
	objectId, mask, err := parse(p, id)
	if err != nil {
		return err
	}
	service, c, err := common.NewService(cfg, false)
	if err != nil {
		return err
	}
	defer c.Close()

	res, err := service.BenchGetObject(ctx, objectId, mask, p.requests)
	if err != nil {
		return err
	}
	if common.Quiet {
		fmt.Println(res.Avg)
		return nil
	}
	return common.PrintYAML(res)
}
