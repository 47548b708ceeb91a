package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ruleranger/internal/editor"
	"github.com/thoreinstein/ruleranger/internal/engine"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/rule"
	"github.com/thoreinstein/ruleranger/internal/session"
	"github.com/thoreinstein/ruleranger/internal/sink"
)

var editCheckOnly bool

func init() {
	editCmd.Flags().BoolVar(&editCheckOnly, "check-only", false,
		"report violations after editing without applying fixes")
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <asset>",
	Short: "Edit an asset descriptor, then validate it as saved",
	Long: `Open the descriptor of an asset in your editor. When the editor exits the
asset is reloaded and validated with the save trigger, so rules may fix it.

The editor is taken from $RULERANGER_EDITOR, $EDITOR or $VISUAL, falling
back to nano or vi.`,
	Example: `  ruleranger edit /Game/Core/BP_Hero
  EDITOR="code --wait" ruleranger edit Content/UI/WBP_Menu.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	e, err := openEngine(cmd, engine.WithMessageLog(out))
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	h, err := e.Handle(ctx, args[0])
	if err != nil {
		return errors.NewUserError(err, "pass an asset path such as /Game/Core/BP_Hero or a descriptor file")
	}
	file, ok := e.Content.File(h.Path)
	if !ok {
		return errors.NewUserError(errors.Newf("%s has no descriptor file", h.Path), "")
	}

	fmt.Fprintf(out, "Location: %s\n", file)
	streams := editor.StdStreams()
	streams.Out = out
	if err := editor.Open(ctx, file, streams); err != nil {
		return errors.NewUserError(err, "set RULERANGER_EDITOR or EDITOR")
	}

	h, removed, err := e.Content.Reload(ctx, file)
	if err != nil {
		return errors.NewUserError(err, "fix the descriptor and run: ruleranger validate "+file)
	}
	if removed {
		fmt.Fprintf(out, "%s was removed\n", file)
		return nil
	}

	mode := session.ModeAutoFix
	if editCheckOnly {
		mode = session.ModeCheckOnly
	}
	result, err := e.Run(ctx, mode, rule.TriggerSave, h)
	if err != nil {
		return errors.NewSystemError(err, "")
	}

	var verdicts []assetVerdict
	for _, a := range result.Assets {
		verdicts = append(verdicts, assetVerdict{
			Path:    a.Path,
			Verdict: sink.VerdictFor(a, result.Threshold),
			Issues:  sink.Issues(a),
		})
	}
	if err := writeVerdicts(out, verdicts); err != nil {
		return err
	}
	return resultError(result)
}
