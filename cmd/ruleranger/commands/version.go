package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ruleranger/cmd"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, and build date of ruleranger.`,
	Run: func(c *cobra.Command, _ []string) {
		version, commit, date := cmd.BuildInfo()
		out := c.OutOrStdout()
		fmt.Fprintf(out, "ruleranger version %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}
