package commands

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/engine"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/host"
	"github.com/thoreinstein/ruleranger/internal/logging"
	"github.com/thoreinstein/ruleranger/internal/rule"
	"github.com/thoreinstein/ruleranger/internal/session"
)

var (
	watchCheckOnly bool
	watchDelay     time.Duration
)

func init() {
	watchCmd.Flags().BoolVar(&watchCheckOnly, "check-only", false,
		"report violations without applying fixes")
	watchCmd.Flags().DurationVar(&watchDelay, "delay", 250*time.Millisecond,
		"wait this long after the last change before validating")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Validate assets whenever their descriptors change",
	Long: `Watch the content root and validate each asset as it is saved.

Changed descriptors are reloaded and validated with the save trigger, so
rules may fix them unless --check-only is given. Violations are printed
as message log entries. Stop with Ctrl-C.`,
	Example: `  # Validate and fix on save
  ruleranger watch

  # Only report
  ruleranger watch --check-only`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, _ []string) error {
	e, err := openEngine(cmd, engine.WithMessageLog(cmd.OutOrStdout()))
	if err != nil {
		return err
	}
	defer e.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating watcher"), "")
	}
	defer watcher.Close()

	if err := watchTree(watcher, e.Content.Root()); err != nil {
		return errors.NewSystemError(err, "")
	}

	w := &contentWatcher{
		engine:  e,
		watcher: watcher,
		delay:   watchDelay,
		mode:    session.ModeAutoFix,
		logger:  logging.FromContext(cmd.Context()),
	}
	if watchCheckOnly {
		w.mode = session.ModeCheckOnly
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl-C to stop)\n", e.Content.Root())
	return w.run(cmd.Context())
}

// watchTree adds root and every non-hidden folder below it.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return errors.Wrapf(watcher.Add(p), "watching %s", p)
	})
}

// contentWatcher batches descriptor changes and validates them.
type contentWatcher struct {
	engine  *engine.Engine
	watcher *fsnotify.Watcher
	delay   time.Duration
	mode    session.Mode
	logger  *slog.Logger
}

func (w *contentWatcher) run(ctx context.Context) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.delay)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(w.watcher, event.Name); err != nil {
						w.logger.Warn("cannot watch new folder", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if _, ok := host.FormatOf(event.Name); !ok {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(w.delay)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-timer.C:
			files := make([]string, 0, len(pending))
			for f := range pending {
				files = append(files, f)
			}
			clear(pending)
			slices.Sort(files)
			w.process(ctx, files)
		}
	}
}

// process reloads the changed descriptors and validates what remains.
func (w *contentWatcher) process(ctx context.Context, files []string) {
	var handles []asset.Handle
	for _, file := range files {
		h, removed, err := w.engine.Content.Reload(ctx, file)
		switch {
		case err != nil:
			w.logger.Warn("cannot load changed descriptor", "file", file, "error", err)
		case removed:
			w.logger.Info("asset removed", "file", file)
		default:
			handles = append(handles, h)
		}
	}
	if len(handles) == 0 {
		return
	}

	result, err := w.engine.Run(ctx, w.mode, rule.TriggerSave, handles...)
	if err != nil {
		w.logger.Error("validation failed", "error", err)
		return
	}
	w.logger.Info("assets validated", "assets", len(result.Assets), "passed", result.Passed())
}
