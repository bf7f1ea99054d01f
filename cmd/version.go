package cmd

import (
	"fmt"

	"github.com/alexiusacademia/rcsched/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rcsched",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
		fmt.Fprintln(cmd.OutOrStdout(), "Reinforced Concrete Beam Reinforcement Scheduler")
		fmt.Fprintln(cmd.OutOrStdout(), "Detailing per ACI 318")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
