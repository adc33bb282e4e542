package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strenlab/tensile/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tensile",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "tensile v%s\n", version.Version)
		fmt.Fprintln(out, "Tensile Test Stress-Strain Analysis")
		fmt.Fprintf(out, "Commit: %s, built: %s\n", version.GitCommit, version.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
