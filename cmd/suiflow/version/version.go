package version

import (
	"fmt"

	"github.com/NilFoundation/suiflow/common/version"
	"github.com/spf13/cobra"
)

const versionTitle = "suiflow"

func GetCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "version",
		Short:        "Get current version",
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.BuildVersionString(versionTitle))
		},
	}
}
