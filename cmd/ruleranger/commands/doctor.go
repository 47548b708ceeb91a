package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ruleranger/internal/config"
	"github.com/thoreinstein/ruleranger/internal/doctor"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/paths"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
	doctorFix     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"fix the issues that can be fixed, then check again")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and content issues",
	Long: `Run diagnostic checks on the ruleranger configuration and content root.

Validates the configuration, builds the rule registry, parses every asset
descriptor, and looks for permission problems and empty content folders.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Example: `  # Diagnose the current project
  ruleranger doctor

  # Remove empty folders and repair permissions
  ruleranger doctor --fix`,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	for _, set := range []bool{doctorJSON, doctorQuiet, doctorVerbose} {
		if set {
			count++
		}
	}
	if count > 1 {
		return errors.NewUserError(
			errors.New("flags --json, --quiet, and --verbose are mutually exclusive"), "")
	}
	return nil
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	runner := doctorRunner(cfg, configLoadErr)

	report := runner.Run()
	if doctorFix {
		fixes := runner.Fix()
		if len(fixes) > 0 {
			if !doctorQuiet && !doctorJSON {
				outputFixResults(out, fixes)
			}
			report = runner.Run()
		}
	}

	if err := outputDoctorReport(out, report); err != nil {
		return err
	}

	if report.HasErrors() {
		return errors.NewExitError(errDoctorErrors, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

// doctorRunner assembles the checks. Content checks are added only when
// the content root can be resolved from the configuration.
func doctorRunner(c *config.Config, loadErr error) *doctor.Runner {
	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewConfigCheck(c, loadErr))
	if c == nil {
		return runner
	}
	runner.AddCheck(doctor.NewRulesCheck(c))

	root, err := paths.ResolveContentRoot(c.Content.Root, c.File)
	if err != nil {
		return runner
	}
	runner.AddCheck(doctor.NewDescriptorSyntaxCheck(root))
	runner.AddCheck(doctor.NewContentPermissionCheck(root))
	runner.AddCheck(doctor.NewEmptyFolderCheck(root))
	return runner
}

func outputDoctorReport(w io.Writer, report *doctor.DoctorReport) error {
	if doctorQuiet {
		return nil
	}
	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(report), "encoding JSON")
	}
	outputDoctorText(w, report)
	return nil
}

func outputDoctorText(w io.Writer, report *doctor.DoctorReport) {
	// In normal mode, show only errors and warnings
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status.Problem()
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", result.Status.Icon(), result.Category, result.Name, result.Message)
		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput || showAll {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func outputFixResults(w io.Writer, fixes []doctor.FixResult) {
	for _, f := range fixes {
		if f.Fixed {
			fmt.Fprintf(w, "✓ fixed %s: %s\n", f.Path, f.Description)
			continue
		}
		if f.Error != nil {
			fmt.Fprintf(w, "✗ %s: %s (%v)\n", f.Path, f.Description, f.Error)
			continue
		}
		fmt.Fprintf(w, "- %s: %s\n", f.Path, f.Description)
	}
	fmt.Fprintln(w)
}

// errDoctorWarnings exits 1 without an error message.
var errDoctorWarnings = errors.Mark(errors.New("warnings found"), ErrSilent)

// errDoctorErrors exits 2 without an error message.
var errDoctorErrors = errors.Mark(errors.New("errors found"), ErrSilent)
