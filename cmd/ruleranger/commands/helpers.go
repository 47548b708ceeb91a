package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/engine"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/rule"
	"github.com/thoreinstein/ruleranger/internal/session"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

// errValidationFailed is returned when a result does not pass its
// threshold. The report was already printed.
var errValidationFailed = errors.Mark(errors.New("validation failed"), ErrSilent)

// errCancelled is returned when a session was interrupted.
var errCancelled = errors.New("session cancelled before every asset was processed")

// runFlags are shared by the scan and fix commands.
type runFlags struct {
	format string
	all    bool
	kinds  []string
	pick   bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "text", "output format: text, json")
	cmd.Flags().BoolVar(&f.all, "all", false, "list clean assets and info reports too")
	cmd.Flags().StringSliceVarP(&f.kinds, "kind", "k", nil,
		"restrict to asset kinds: generic, blueprint, niagara, material, soundgraph")
	cmd.Flags().BoolVar(&f.pick, "pick", false, "choose assets interactively")
}

func (f *runFlags) validate() error {
	switch validator.Format(f.format) {
	case validator.FormatText, validator.FormatJSON:
	default:
		return errors.NewUserError(errors.Newf("unknown format %q", f.format), "use --format text or --format json")
	}
	if f.pick && f.format == string(validator.FormatJSON) {
		return errors.NewUserError(errors.New("--pick cannot be combined with --format json"), "")
	}
	return nil
}

func (f *runFlags) parsedKinds() ([]asset.Kind, error) {
	kinds := make([]asset.Kind, 0, len(f.kinds))
	for _, k := range f.kinds {
		kind, err := asset.ParseKind(k)
		if err != nil {
			return nil, errors.NewUserError(err, "")
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// runSession runs one session over the selected assets, prints the report
// and maps the outcome onto an exit error.
func runSession(cmd *cobra.Command, f *runFlags, mode session.Mode, trigger rule.Trigger, refs []string) error {
	if err := f.validate(); err != nil {
		return err
	}
	kinds, err := f.parsedKinds()
	if err != nil {
		return err
	}

	e, err := openEngine(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	handles, err := selectHandles(ctx, e, refs, kinds, f.pick)
	if err != nil {
		return err
	}
	if handles != nil && len(handles) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No assets selected.")
		return nil
	}

	result, err := e.Run(ctx, mode, trigger, handles...)
	if err != nil {
		return errors.NewSystemError(err, "")
	}

	reporter := validator.NewReporter(cmd.OutOrStdout(), validator.Format(f.format)).WithVerbose(f.all)
	if err := reporter.Report(result); err != nil {
		return errors.Wrap(err, "writing report")
	}
	return resultError(result)
}

// selectHandles resolves explicit references, a kind filter or an
// interactive pick. A nil slice means every asset.
func selectHandles(ctx context.Context, e *engine.Engine, refs []string, kinds []asset.Kind, pick bool) ([]asset.Handle, error) {
	if len(refs) > 0 {
		handles := make([]asset.Handle, 0, len(refs))
		for _, ref := range refs {
			h, err := e.Handle(ctx, ref)
			if err != nil {
				return nil, errors.NewUserError(err, "pass an asset path such as /Game/Core/BP_Hero or a descriptor file")
			}
			handles = append(handles, h)
		}
		return handles, nil
	}

	if len(kinds) == 0 && !pick {
		return nil, nil
	}

	handles, err := e.Handles(ctx, kinds...)
	if err != nil {
		return nil, err
	}
	if handles == nil {
		handles = []asset.Handle{}
	}
	if pick {
		return pickHandles(e, handles)
	}
	return handles, nil
}

// pickHandles lets the user choose assets with a fuzzy finder.
func pickHandles(e *engine.Engine, handles []asset.Handle) ([]asset.Handle, error) {
	if len(handles) == 0 {
		return handles, nil
	}

	idx, err := fuzzyfinder.FindMulti(
		handles,
		func(i int) string {
			return fmt.Sprintf("%s (%s)", handles[i].Path, handles[i].Kind)
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			h := handles[i]
			var ids []string
			for _, r := range e.Registry.RulesFor(h.Kind) {
				ids = append(ids, r.Meta().ID)
			}
			preview := fmt.Sprintf("Path: %s\nKind: %s\n", h.Path, h.Kind)
			if e.Content != nil {
				if file, ok := e.Content.File(h.Path); ok {
					preview += fmt.Sprintf("File: %s\n", file)
				}
			}
			return preview + "\nRules:\n  " + strings.Join(ids, "\n  ")
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return []asset.Handle{}, nil
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}

	picked := make([]asset.Handle, 0, len(idx))
	for _, i := range idx {
		picked = append(picked, handles[i])
	}
	return picked, nil
}

// resultError maps a finished session onto the process exit code.
func resultError(result *validator.ValidationResult) error {
	if result.Cancelled {
		return errors.NewSystemError(errCancelled, "")
	}
	if !result.Passed() {
		return errors.NewExitError(errValidationFailed, errors.ExitUser)
	}
	return nil
}
