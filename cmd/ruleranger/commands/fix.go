package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ruleranger/internal/rule"
	"github.com/thoreinstein/ruleranger/internal/session"
)

var fixFlags runFlags

func init() {
	fixFlags.register(fixCmd)
	rootCmd.AddCommand(fixCmd)
}

var fixCmd = &cobra.Command{
	Use:   "fix [asset...]",
	Short: "Fix rule violations",
	Long: `Run every applicable rule and apply the fixes rules offer.

Each fix runs in a reversible edit: if it fails, the descriptor is left
unchanged. Every applied fix is checked again, and the report shows
whether the violation was resolved.

Exit codes:
  0 - No unresolved violation at or above session.threshold
  1 - Violations remain
  2 - The session could not run or was interrupted`,
	Example: `  # Fix all content
  ruleranger fix

  # Fix a single asset
  ruleranger fix /Game/UI/Menu`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, &fixFlags, session.ModeAutoFix, rule.TriggerFix, args)
	},
}
