package remediate

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/inspect"
	"github.com/thoreinstein/ruleranger/internal/rule"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

// Status is the kind of outcome of a fix attempt.
type Status int

const (
	// StatusApplied means the fix was committed.
	StatusApplied Status = iota + 1
	// StatusNotApplicable means there was nothing to fix; no edit was kept.
	StatusNotApplicable
	// StatusFailed means the fix was rolled back.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusNotApplicable:
		return "not-applicable"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FixOutcome is the result of one fix attempt.
type FixOutcome struct {
	Status Status
	// Reason explains a failed or not applicable outcome.
	Reason string
	// Err is the FixFailedError of a failed outcome.
	Err error
	// Handle addresses the asset after the fix. It differs from the handle
	// the fix started from when the fix renamed the asset.
	Handle asset.Handle
}

// Applied reports whether the fix was committed.
func (o FixOutcome) Applied() bool {
	return o.Status == StatusApplied
}

// FixFailedError describes a rolled back fix. It matches errors.ErrFixFailed.
type FixFailedError struct {
	RuleID    string
	AssetPath string
	Reason    string
	Err       error
}

func (e *FixFailedError) Error() string {
	return fmt.Sprintf("fix %s on %s failed: %s", e.RuleID, e.AssetPath, e.Reason)
}

func (e *FixFailedError) Unwrap() error { return e.Err }

// Is matches errors.ErrFixFailed.
func (e *FixFailedError) Is(target error) bool {
	return target == errors.ErrFixFailed
}

// Executor applies rule fixes through host edit scopes.
type Executor struct {
	host     asset.Host
	registry *rule.Registry
	coord    *Coordinator
	logger   *slog.Logger
}

// NewExecutor creates an executor and starts its coordinator. Close releases
// it.
func NewExecutor(host asset.Host, registry *rule.Registry, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		host:     host,
		registry: registry,
		coord:    NewCoordinator(),
		logger:   logger,
	}
}

// Close stops the coordinator. Fix fails after Close.
func (e *Executor) Close() {
	e.coord.Close()
}

// Fix applies the fix of the rule that produced report to the asset c was
// inspected from. It never returns with the edit scope open.
func (e *Executor) Fix(ctx context.Context, report validator.Report, c *inspect.Context) FixOutcome {
	h := c.Handle()

	r, ok := e.registry.Lookup(report.RuleID)
	if !ok {
		return e.failed(h, report, "rule is not registered", errors.Wrapf(errors.ErrNotFound, "rule %s", report.RuleID))
	}
	fixer, ok := rule.AsFixer(r)
	if !ok || !report.Fixable {
		return FixOutcome{Status: StatusNotApplicable, Reason: "rule offers no fix", Handle: h}
	}

	var outcome FixOutcome
	err := e.coord.Do(ctx, func() {
		outcome = e.apply(ctx, fixer, report, c)
	})
	if err != nil {
		return e.failed(h, report, err.Error(), err)
	}
	return outcome
}

// apply runs on the coordinator goroutine.
func (e *Executor) apply(ctx context.Context, fixer rule.Fixer, report validator.Report, c *inspect.Context) (outcome FixOutcome) {
	h := c.Handle()
	if err := ctx.Err(); err != nil {
		return e.failed(h, report, "session cancelled", err)
	}

	scope, err := e.host.BeginEdit(ctx, h)
	if err != nil {
		return e.failed(h, report, "cannot open edit scope", err)
	}

	defer func() {
		if p := recover(); p != nil {
			e.rollback(scope, h)
			e.logger.Debug("fix panicked", "rule", report.RuleID, "asset", h.Path, "stack", string(debug.Stack()))
			outcome = e.failed(h, report, fmt.Sprintf("fix panicked: %v", p), errors.Newf("panic: %v", p))
		}
	}()

	ed := inspect.NewEditor(scope.Asset())
	if err := fixer.Fix(ctx, c, ed, report); err != nil {
		e.rollback(scope, h)
		return e.failed(h, report, err.Error(), err)
	}
	if !ed.Changed() {
		e.rollback(scope, h)
		return FixOutcome{Status: StatusNotApplicable, Reason: "fix made no changes", Handle: h}
	}
	if err := scope.Commit(ctx); err != nil {
		e.rollback(scope, h)
		return e.failed(h, report, "commit failed: "+err.Error(), err)
	}

	next := asset.Handle{Path: ed.Path(), Kind: h.Kind}
	e.logger.Info("fix applied", "rule", report.RuleID, "asset", h.Path, "final_path", next.Path)
	return FixOutcome{Status: StatusApplied, Handle: next}
}

func (e *Executor) rollback(scope asset.EditScope, h asset.Handle) {
	if err := scope.Rollback(); err != nil {
		e.logger.Warn("rollback failed", "asset", h.Path, "error", err)
	}
}

func (e *Executor) failed(h asset.Handle, report validator.Report, reason string, cause error) FixOutcome {
	err := &FixFailedError{RuleID: report.RuleID, AssetPath: h.Path, Reason: reason, Err: cause}
	e.logger.Warn("fix rolled back", "rule", report.RuleID, "asset", h.Path, "reason", reason)
	return FixOutcome{Status: StatusFailed, Reason: reason, Err: err, Handle: h}
}
