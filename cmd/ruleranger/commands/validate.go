package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/engine"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/rule"
	"github.com/thoreinstein/ruleranger/internal/session"
	"github.com/thoreinstein/ruleranger/internal/sink"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

var (
	validateSave bool
	validateJSON bool
)

func init() {
	validateCmd.Flags().BoolVar(&validateSave, "save", false,
		"validate as on save: rules may fix the asset")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false,
		"output verdicts as JSON")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <asset>...",
	Short: "Validate assets and print their verdicts",
	Long: `Answer a data-validation request for each asset: valid, invalid or
not validated (no rule applies, or the asset could not be checked).

Violations are printed as message log entries grouped by asset. With
--save the request is treated as an asset save, which lets rules apply
their fixes before the verdict is decided.

Exit codes:
  0 - Every asset is valid or not validated
  1 - At least one asset is invalid`,
	Example: `  # Validate one asset
  ruleranger validate /Game/Core/BP_Hero

  # Validate descriptors as a pre-commit hook would
  ruleranger validate Content/UI/WBP_Menu.yaml --save`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

// assetVerdict is one line of validate output.
type assetVerdict struct {
	Path    string             `json:"path"`
	Verdict sink.Verdict       `json:"verdict"`
	Issues  []validator.Report `json:"issues,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var opts []engine.Option
	if !validateJSON {
		opts = append(opts, engine.WithMessageLog(out))
	}
	e, err := openEngine(cmd, opts...)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	handles, err := selectHandles(ctx, e, args, nil, false)
	if err != nil {
		return err
	}

	var verdicts []assetVerdict
	if validateSave {
		result, err := e.Run(ctx, session.ModeAutoFix, rule.TriggerSave, handles...)
		if err != nil {
			return errors.NewSystemError(err, "")
		}
		for _, a := range result.Assets {
			verdicts = append(verdicts, assetVerdict{
				Path:    a.Path,
				Verdict: sink.VerdictFor(a, result.Threshold),
				Issues:  sink.Issues(a),
			})
		}
	} else {
		for _, h := range handles {
			v, err := validateOne(cmd, e, h)
			if err != nil {
				return err
			}
			verdicts = append(verdicts, v)
		}
	}

	if err := writeVerdicts(out, verdicts); err != nil {
		return err
	}
	for _, v := range verdicts {
		if v.Verdict == sink.Invalid {
			return errors.NewExitError(errValidationFailed, errors.ExitUser)
		}
	}
	return nil
}

func validateOne(cmd *cobra.Command, e *engine.Engine, h asset.Handle) (assetVerdict, error) {
	verdict, result, err := e.Validate(cmd.Context(), h.Path)
	if err != nil {
		return assetVerdict{}, errors.NewSystemError(err, "")
	}
	v := assetVerdict{Path: h.Path, Verdict: verdict}
	if a, ok := result.Asset(h.Path); ok {
		v.Issues = sink.Issues(a)
	}
	return v, nil
}

func writeVerdicts(w io.Writer, verdicts []assetVerdict) error {
	if validateJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(verdicts); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
		return nil
	}

	for _, v := range verdicts {
		switch v.Verdict {
		case sink.Valid:
			fmt.Fprintf(w, "%s %s: valid\n", color.GreenString("✓"), v.Path)
		case sink.Invalid:
			fmt.Fprintf(w, "%s %s: invalid (%d issue(s))\n", color.RedString("✗"), v.Path, len(v.Issues))
		default:
			fmt.Fprintf(w, "%s %s: not validated\n", color.HiBlackString("-"), v.Path)
		}
	}
	return nil
}
