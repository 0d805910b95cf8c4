package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// set at build time via -ldflags "-X github.com/danmuck/mspctl/internal/cli.mspctlVersion=x.y.z"
var mspctlVersion = "0.0.1"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the mspctl version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "mspctl version %s\n", mspctlVersion)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
