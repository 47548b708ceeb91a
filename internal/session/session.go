package session

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/inspect"
	"github.com/thoreinstein/ruleranger/internal/remediate"
	"github.com/thoreinstein/ruleranger/internal/rule"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

// Session checks assets against a sealed registry.
type Session struct {
	registry  *rule.Registry
	inspector *inspect.Inspector
	executor  *remediate.Executor
	observer  Observer
	logger    *slog.Logger
}

// New creates a session. A nil executor restricts the session to
// check-only runs.
func New(registry *rule.Registry, inspector *inspect.Inspector, executor *remediate.Executor, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		registry:  registry,
		inspector: inspector,
		executor:  executor,
		observer:  nopObserver{},
		logger:    logger,
	}
}

// WithObserver sets the observer notified of session events.
func (s *Session) WithObserver(o Observer) *Session {
	if o == nil {
		o = nopObserver{}
	}
	s.observer = o
	return s
}

// aggregator collects asset results from concurrent workers.
type aggregator struct {
	mu     sync.Mutex
	result *validator.ValidationResult
}

func (a *aggregator) add(res validator.AssetResult) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.result.Add(res)
}

// RunAll lists the host's assets of the given kinds, all kinds when none
// are given, and runs a session over them.
func (s *Session) RunAll(ctx context.Context, opts Options, kinds ...asset.Kind) (*validator.ValidationResult, error) {
	handles, err := s.inspector.Host().ListAssets(ctx, kinds...)
	if err != nil {
		return nil, errors.Wrap(err, "listing assets")
	}
	return s.Run(ctx, handles, opts)
}

// Run processes every handle and returns the aggregated result, with asset
// results sorted by path. Assets are processed concurrently, each one
// sequentially through its lifecycle. When ctx is cancelled, no further
// rule or asset is started; assets that never started are reported as
// pending and the result is marked cancelled.
func (s *Session) Run(ctx context.Context, handles []asset.Handle, opts Options) (*validator.ValidationResult, error) {
	if !s.registry.Sealed() {
		return nil, errors.New("rule registry must be sealed before running a session")
	}
	opts = opts.withDefaults()

	fix := opts.FixesAllowed()
	if opts.Mode == ModeAutoFix && !fix {
		s.logger.Debug("fixes disabled for dry-run trigger", "trigger", opts.Trigger)
	}
	if fix && s.executor == nil {
		return nil, errors.New("auto-fix session requires a remediation executor")
	}

	agg := &aggregator{result: validator.NewResult(opts.Threshold)}
	started := time.Now()

	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for _, h := range handles {
		g.Go(func() error {
			if ctx.Err() != nil {
				res := validator.NewAssetResult(h.Path)
				res.Kind = h.Kind.String()
				res.Reason = "session cancelled before the asset was processed"
				agg.add(*res)
				return nil
			}
			t0 := time.Now()
			res := s.processAsset(ctx, h, opts, fix)
			s.observer.AssetProcessed(res, time.Since(t0))
			agg.add(res)
			return nil
		})
	}
	_ = g.Wait()

	result := agg.result
	result.Duration = time.Since(started)
	result.Cancelled = ctx.Err() != nil
	result.Sort()
	s.observer.SessionFinished(result)

	remaining := result.Remaining()
	s.logger.Info("session finished",
		"trigger", opts.Trigger,
		"mode", opts.Mode,
		"assets", len(result.Assets),
		"errors", remaining.Errors+remaining.Fatal,
		"warnings", remaining.Warnings,
		"passed", result.Passed(),
		"cancelled", result.Cancelled,
		"duration", result.Duration,
	)
	return result, nil
}

// processAsset walks one asset through its lifecycle. Each rule's fixes
// and rechecks complete before the next rule is checked. Transitions are
// statically legal; advance only logs if that ever stops being true.
func (s *Session) processAsset(ctx context.Context, h asset.Handle, opts Options, fix bool) validator.AssetResult {
	res := validator.NewAssetResult(h.Path)
	res.Kind = h.Kind.String()
	log := s.logger.With("asset", h.Path)

	advance := func(to validator.AssetState) {
		if err := res.Advance(to); err != nil {
			log.Error("invalid asset transition", "error", err)
		}
	}
	stop := func(to validator.AssetState, reason string) validator.AssetResult {
		res.Reason = reason
		advance(to)
		log.Debug("asset "+to.String(), "reason", reason)
		return *res
	}

	advance(validator.StateInspecting)

	if !opts.inDirs(h.Path) {
		return stop(validator.StateSkipped, "outside configured directories")
	}
	if opts.SkipGeneric && h.Kind == asset.KindGeneric {
		return stop(validator.StateSkipped, "generic assets are not validated")
	}

	c, err := s.inspector.Inspect(ctx, h)
	switch {
	case errors.Is(err, errors.ErrUnsupportedAsset):
		return stop(validator.StateSkipped, err.Error())
	case err != nil:
		return stop(validator.StateErrored, err.Error())
	}

	fixed := false
	for _, r := range s.applicable(c, opts) {
		if ctx.Err() != nil {
			return stop(validator.StateErrored, "session cancelled during checks")
		}
		reports := s.check(ctx, r, c, log)
		res.RulesRun++
		if fix && slices.ContainsFunc(reports, func(rep validator.Report) bool { return rep.Fixable }) {
			fixed = true
			c = s.fixRule(ctx, r, reports, c, log)
		}
		res.Reports = append(res.Reports, reports...)
	}
	if c.Path() != h.Path {
		res.FinalPath = c.Path()
	}

	advance(validator.StateChecked)
	if fixed {
		advance(validator.StateFixing)
		advance(validator.StateRechecked)
	}

	advance(validator.StateReported)
	log.Debug("asset reported", "rules", res.RulesRun, "reports", len(res.Reports))
	return *res
}

// applicable returns the rules to run against c, honoring triggers,
// scopes, matchers and exclusions.
func (s *Session) applicable(c *inspect.Context, opts Options) []rule.Rule {
	rules := s.registry.RulesForContext(c, opts.Trigger)
	return slices.DeleteFunc(rules, func(r rule.Rule) bool {
		return rule.Excluded(opts.Exclusions, r.Meta().ID, c.Path())
	})
}

// check runs one rule. A rule error or panic becomes a single Fatal report.
func (s *Session) check(ctx context.Context, r rule.Rule, c *inspect.Context, log *slog.Logger) []validator.Report {
	meta := r.Meta()
	reports, err := s.runCheck(ctx, r, c)
	if err == nil {
		return reports
	}

	s.observer.RuleFailed(meta.ID)
	log.Warn("rule failed", "rule", meta.ID, "error", err)
	return []validator.Report{{
		RuleID:    meta.ID,
		AssetPath: c.Path(),
		Severity:  validator.SeverityFatal,
		Message:   err.Error(),
	}}
}

func (s *Session) runCheck(ctx context.Context, r rule.Rule, c *inspect.Context) (reports []validator.Report, err error) {
	meta := r.Meta()
	defer func() {
		if p := recover(); p != nil {
			reports = nil
			err = &RuleExecutionError{RuleID: meta.ID, AssetPath: c.Path(), Panic: p}
		}
	}()

	findings, err := r.Check(ctx, c)
	if err != nil {
		return nil, &RuleExecutionError{RuleID: meta.ID, AssetPath: c.Path(), Err: err}
	}

	_, hasFixer := rule.AsFixer(r)
	reports = make([]validator.Report, 0, len(findings))
	for _, f := range findings {
		reports = append(reports, rule.Report(meta, c.Path(), f, hasFixer))
	}
	return reports, nil
}

// fixRule applies the fixes for one rule's fixable reports in order,
// re-inspecting after each applied fix and rechecking that rule. It returns
// the context of the asset's state after the rule's fixes, which later
// rules are checked against.
func (s *Session) fixRule(ctx context.Context, r rule.Rule, reports []validator.Report, c *inspect.Context, log *slog.Logger) *inspect.Context {
	for i := range reports {
		rep := &reports[i]
		if !rep.Fixable {
			continue
		}
		if ctx.Err() != nil {
			log.Debug("fixing stopped, session cancelled")
			return c
		}

		outcome := s.executor.Fix(ctx, *rep, c)
		s.observer.FixAttempted(rep.RuleID, outcome.Status)
		switch outcome.Status {
		case remediate.StatusFailed:
			rep.FixError = outcome.Reason
			continue
		case remediate.StatusNotApplicable:
			continue
		}

		rep.FixApplied = true
		next, err := s.inspector.Inspect(ctx, outcome.Handle)
		if err != nil {
			log.Warn("cannot re-inspect after fix", "rule", rep.RuleID, "error", err)
			continue
		}
		c = next
		rep.Verified = s.recheck(ctx, r, c, *rep)
		if !rep.Verified {
			log.Warn("fix applied but violation persists", "rule", rep.RuleID, "object", rep.Object)
		}
	}
	return c
}

// recheck reports whether the violation is gone: no finding of the rule
// matches the original report's object and message.
func (s *Session) recheck(ctx context.Context, r rule.Rule, c *inspect.Context, rep validator.Report) bool {
	reports, err := s.runCheck(ctx, r, c)
	if err != nil {
		return false
	}
	return !slices.ContainsFunc(reports, func(again validator.Report) bool {
		return again.Object == rep.Object && again.Message == rep.Message
	})
}
