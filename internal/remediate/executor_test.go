package remediate

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/asset/mocks"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/host"
	"github.com/thoreinstein/ruleranger/internal/inspect"
	"github.com/thoreinstein/ruleranger/internal/logging"
	"github.com/thoreinstein/ruleranger/internal/rule"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

type fixRule struct {
	id  string
	fix func(ed *inspect.Editor) error
}

func (r *fixRule) Meta() rule.Meta {
	return rule.Meta{ID: r.id, Severity: validator.SeverityWarning, Kinds: asset.Kinds()}
}

func (r *fixRule) Check(context.Context, *inspect.Context) ([]rule.Finding, error) {
	return nil, nil
}

func (r *fixRule) Fix(_ context.Context, _ *inspect.Context, ed *inspect.Editor, _ validator.Report) error {
	return r.fix(ed)
}

type checkOnlyRule struct{}

func (checkOnlyRule) Meta() rule.Meta {
	return rule.Meta{ID: "check-only", Severity: validator.SeverityError, Kinds: asset.Kinds()}
}

func (checkOnlyRule) Check(context.Context, *inspect.Context) ([]rule.Finding, error) {
	return nil, nil
}

func newDoor() *asset.Asset {
	return &asset.Asset{
		Path:       "/Game/Door",
		Class:      "Blueprint",
		Metadata:   map[string]string{"Temp": "1"},
		Properties: map[string]any{"ParentClass": "Actor"},
	}
}

type fixture struct {
	host *host.Memory
	exec *Executor
	ctx  *inspect.Context
}

func newFixture(t *testing.T, rules ...rule.Rule) *fixture {
	t.Helper()
	h := host.NewMemory(newDoor())
	reg := rule.NewRegistry()
	reg.MustRegister(rules...)
	reg.Seal()

	c, err := inspect.New(h, logging.ForTest(t)).Inspect(t.Context(), asset.Handle{Path: "/Game/Door", Kind: asset.KindBlueprint})
	require.NoError(t, err)

	exec := NewExecutor(h, reg, logging.ForTest(t))
	t.Cleanup(exec.Close)
	return &fixture{host: h, exec: exec, ctx: c}
}

func (f *fixture) snapshot(t *testing.T, path string) []byte {
	t.Helper()
	a, ok := f.host.Get(path)
	require.True(t, ok, "asset %s", path)
	return a.Snapshot()
}

func report(id string) validator.Report {
	return validator.Report{RuleID: id, AssetPath: "/Game/Door", Severity: validator.SeverityWarning, Fixable: true}
}

func TestExecutor_Applied(t *testing.T) {
	f := newFixture(t, &fixRule{id: "strip", fix: func(ed *inspect.Editor) error {
		ed.RemoveMetadata("Temp")
		return nil
	}})

	out := f.exec.Fix(t.Context(), report("strip"), f.ctx)
	require.Equal(t, StatusApplied, out.Status, out.Reason)
	assert.Equal(t, "/Game/Door", out.Handle.Path)

	a, _ := f.host.Get("/Game/Door")
	assert.NotContains(t, a.Metadata, "Temp")
}

func TestExecutor_RenameReturnsNewHandle(t *testing.T) {
	f := newFixture(t, &fixRule{id: "rename", fix: func(ed *inspect.Editor) error {
		return ed.Rename("BP_Door")
	}})

	out := f.exec.Fix(t.Context(), report("rename"), f.ctx)
	require.True(t, out.Applied(), out.Reason)
	assert.Equal(t, asset.Handle{Path: "/Game/BP_Door", Kind: asset.KindBlueprint}, out.Handle)

	_, ok := f.host.Get("/Game/Door")
	assert.False(t, ok)
	_, ok = f.host.Get("/Game/BP_Door")
	assert.True(t, ok)
}

func TestExecutor_FailuresRollBack(t *testing.T) {
	tests := []struct {
		name   string
		fix    func(ed *inspect.Editor) error
		reason string
	}{
		{
			name: "error after mutation",
			fix: func(ed *inspect.Editor) error {
				ed.SetProperty("ParentClass", "Pawn")
				ed.RemoveMetadata("Temp")
				return errors.New("graph is locked")
			},
			reason: "graph is locked",
		},
		{
			name: "panic after mutation",
			fix: func(ed *inspect.Editor) error {
				ed.SetProperty("ParentClass", "Pawn")
				panic("boom")
			},
			reason: "fix panicked: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, &fixRule{id: "bad", fix: tt.fix})
			before := f.snapshot(t, "/Game/Door")

			out := f.exec.Fix(t.Context(), report("bad"), f.ctx)
			assert.Equal(t, StatusFailed, out.Status)
			assert.Equal(t, tt.reason, out.Reason)
			assert.True(t, errors.Is(out.Err, errors.ErrFixFailed))

			var failed *FixFailedError
			require.True(t, errors.As(out.Err, &failed))
			assert.Equal(t, "bad", failed.RuleID)

			assert.Equal(t, before, f.snapshot(t, "/Game/Door"), "asset is byte-identical after rollback")

			// the scope was released, so a later edit can open
			scope, err := f.host.BeginEdit(t.Context(), f.ctx.Handle())
			require.NoError(t, err)
			require.NoError(t, scope.Rollback())
		})
	}
}

func TestExecutor_NotApplicable(t *testing.T) {
	f := newFixture(t,
		&fixRule{id: "noop", fix: func(*inspect.Editor) error { return nil }},
		checkOnlyRule{},
	)
	before := f.snapshot(t, "/Game/Door")

	out := f.exec.Fix(t.Context(), report("noop"), f.ctx)
	assert.Equal(t, StatusNotApplicable, out.Status)
	assert.Equal(t, "fix made no changes", out.Reason)

	out = f.exec.Fix(t.Context(), report("check-only"), f.ctx)
	assert.Equal(t, StatusNotApplicable, out.Status)

	unfixable := report("noop")
	unfixable.Fixable = false
	assert.Equal(t, StatusNotApplicable, f.exec.Fix(t.Context(), unfixable, f.ctx).Status)

	assert.Equal(t, before, f.snapshot(t, "/Game/Door"))
}

func TestExecutor_UnknownRule(t *testing.T) {
	f := newFixture(t)
	out := f.exec.Fix(t.Context(), report("missing"), f.ctx)
	assert.Equal(t, StatusFailed, out.Status)
	assert.True(t, errors.Is(out.Err, errors.ErrNotFound))
}

func TestExecutor_CommitFailureRollsBack(t *testing.T) {
	working := newDoor()
	scope := mocks.NewMockEditScope(t)
	scope.EXPECT().Asset().Return(working)
	scope.EXPECT().Commit(mock.Anything).Return(errors.New("disk full"))
	scope.EXPECT().Rollback().Return(nil).Once()

	h := mocks.NewMockHost(t)
	h.EXPECT().BeginEdit(mock.Anything, asset.Handle{Path: "/Game/Door", Kind: asset.KindBlueprint}).Return(scope, nil)

	reg := rule.NewRegistry()
	reg.MustRegister(&fixRule{id: "strip", fix: func(ed *inspect.Editor) error {
		ed.RemoveMetadata("Temp")
		return nil
	}})
	exec := NewExecutor(h, reg, logging.ForTest(t))
	defer exec.Close()

	c, err := inspect.New(h, logging.ForTest(t)).InspectAsset(newDoor())
	require.NoError(t, err)

	out := exec.Fix(t.Context(), report("strip"), c)
	assert.Equal(t, StatusFailed, out.Status)
	assert.Contains(t, out.Reason, "disk full")
}

func TestExecutor_BeginEditFailure(t *testing.T) {
	h := mocks.NewMockHost(t)
	h.EXPECT().BeginEdit(mock.Anything, mock.Anything).Return(nil, host.ErrEditInProgress)

	reg := rule.NewRegistry()
	reg.MustRegister(&fixRule{id: "strip", fix: func(*inspect.Editor) error { return nil }})
	exec := NewExecutor(h, reg, logging.ForTest(t))
	defer exec.Close()

	c, err := inspect.New(h, logging.ForTest(t)).InspectAsset(newDoor())
	require.NoError(t, err)

	out := exec.Fix(t.Context(), report("strip"), c)
	assert.Equal(t, StatusFailed, out.Status)
	assert.True(t, errors.Is(out.Err, host.ErrEditInProgress))
}

func TestExecutor_CancelledContext(t *testing.T) {
	f := newFixture(t, &fixRule{id: "strip", fix: func(ed *inspect.Editor) error {
		ed.RemoveMetadata("Temp")
		return nil
	}})
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	out := f.exec.Fix(ctx, report("strip"), f.ctx)
	assert.Equal(t, StatusFailed, out.Status)
	a, _ := f.host.Get("/Game/Door")
	assert.Contains(t, a.Metadata, "Temp")
}

func TestExecutor_ClosedFails(t *testing.T) {
	f := newFixture(t, &fixRule{id: "strip", fix: func(*inspect.Editor) error { return nil }})
	f.exec.Close()

	out := f.exec.Fix(t.Context(), report("strip"), f.ctx)
	assert.Equal(t, StatusFailed, out.Status)
	assert.True(t, errors.Is(out.Err, ErrCoordinatorClosed))
}

func TestCoordinator_Serializes(t *testing.T) {
	c := NewCoordinator()
	defer c.Close()

	var active, maxActive atomic.Int32
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := c.Do(t.Context(), func() {
				n := active.Add(1)
				for {
					m := maxActive.Load()
					if n <= m || maxActive.CompareAndSwap(m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				active.Add(-1)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxActive.Load())
}

func TestCoordinator_SurvivesPanic(t *testing.T) {
	c := NewCoordinator()
	defer c.Close()

	err := c.Do(t.Context(), func() { panic("boom") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	ran := false
	require.NoError(t, c.Do(t.Context(), func() { ran = true }))
	assert.True(t, ran)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "applied", StatusApplied.String())
	assert.Equal(t, "not-applicable", StatusNotApplicable.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", Status(0).String())
}
