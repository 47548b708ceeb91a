package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ruleranger/internal/rule"
	"github.com/thoreinstein/ruleranger/internal/session"
)

var scanFlags runFlags

func init() {
	scanFlags.register(scanCmd)
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan [asset...]",
	Short: "Report rule violations without changing assets",
	Long: `Run every applicable rule against the content and report violations.

Assets are never modified. Rules restricted to other triggers in
rules.apply_on are not run.

Exit codes:
  0 - No unresolved violation at or above session.threshold
  1 - Violations found
  2 - The session could not run or was interrupted`,
	Example: `  # Scan all content
  ruleranger scan

  # Scan one asset by path or descriptor file
  ruleranger scan /Game/Core/Hero
  ruleranger scan Content/Core/Hero.yaml

  # Scan only blueprints, as JSON for CI
  ruleranger scan --kind blueprint --format json

  # Choose assets interactively
  ruleranger scan --pick`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, &scanFlags, session.ModeCheckOnly, rule.TriggerReport, args)
	},
}
