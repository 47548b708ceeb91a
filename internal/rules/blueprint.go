package rules

import (
	"context"
	"fmt"
	"slices"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/inspect"
	"github.com/thoreinstein/ruleranger/internal/rule"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

// NoEmptyEventGraph flags event graphs without any logic. The fix deletes
// the graph.
type NoEmptyEventGraph struct {
	base
}

// NewNoEmptyEventGraph creates the no-empty-event-graph rule.
func NewNoEmptyEventGraph() *NoEmptyEventGraph {
	return &NoEmptyEventGraph{base: base{meta: rule.Meta{
		ID:          "no-empty-event-graph",
		Description: "Blueprints do not keep event graphs without logic",
		Severity:    validator.SeverityWarning,
		Kinds:       []asset.Kind{asset.KindBlueprint},
	}}}
}

func (r *NoEmptyEventGraph) Check(_ context.Context, c *inspect.Context) ([]rule.Finding, error) {
	graphs, ok := c.Graphs()
	if !ok {
		return nil, nil
	}
	var findings []rule.Finding
	for _, g := range graphs {
		if g.Kind != inspect.GraphEvent || len(g.NonTrivialNodes()) > 0 {
			continue
		}
		findings = append(findings, rule.Finding{
			Object:  g.Path,
			Message: fmt.Sprintf("event graph %s contains no logic", g.Name),
			Fixable: true,
		})
	}
	return findings, nil
}

func (r *NoEmptyEventGraph) Fix(_ context.Context, _ *inspect.Context, ed *inspect.Editor, report validator.Report) error {
	if !ed.RemoveObject(report.Object) {
		return errors.Wrapf(errors.ErrNotFound, "event graph %s", report.Object)
	}
	return nil
}

// FunctionMaxNodeCount caps the number of non-trivial nodes in each function
// graph.
type FunctionMaxNodeCount struct {
	base
	max int
}

// NewFunctionMaxNodeCount creates the function-max-node-count rule.
func NewFunctionMaxNodeCount(limit int) *FunctionMaxNodeCount {
	return &FunctionMaxNodeCount{
		base: base{meta: rule.Meta{
			ID:          "function-max-node-count",
			Description: fmt.Sprintf("Blueprint functions have at most %d non-trivial nodes", limit),
			Severity:    validator.SeverityError,
			Kinds:       []asset.Kind{asset.KindBlueprint},
		}},
		max: limit,
	}
}

func (r *FunctionMaxNodeCount) Check(_ context.Context, c *inspect.Context) ([]rule.Finding, error) {
	graphs, ok := c.Graphs()
	if !ok || r.max <= 0 {
		return nil, nil
	}
	var findings []rule.Finding
	for _, g := range graphs {
		if g.Kind != inspect.GraphFunction {
			continue
		}
		if n := len(g.NonTrivialNodes()); n > r.max {
			findings = append(findings, rule.Finding{
				Object:  g.Path,
				Message: fmt.Sprintf("function %s has %d nodes, exceeding the limit of %d", g.Name, n, r.max),
			})
		}
	}
	return findings, nil
}

// DataOnlyBlueprint requires blueprints tagged data-only, or extending one
// of the configured parent classes, to contain no logic: no function or
// macro graphs and no non-trivial event graph nodes.
type DataOnlyBlueprint struct {
	base
	parents []string
}

// NewDataOnlyBlueprint creates the data-only-blueprint rule.
func NewDataOnlyBlueprint(parents []string) *DataOnlyBlueprint {
	return &DataOnlyBlueprint{
		base: base{meta: rule.Meta{
			ID:          "data-only-blueprint",
			Description: "Data-only blueprints contain no logic",
			Severity:    validator.SeverityError,
			Kinds:       []asset.Kind{asset.KindBlueprint},
		}},
		parents: slices.Clone(parents),
	}
}

func (r *DataOnlyBlueprint) reason(c *inspect.Context) (string, bool) {
	if c.Has(asset.CapabilityDataOnly) {
		return "it is tagged data-only", true
	}
	parent, _ := c.Property("ParentClass")
	if p := asset.String(parent); p != "" && slices.Contains(r.parents, p) {
		return fmt.Sprintf("it extends %s", p), true
	}
	return "", false
}

func (r *DataOnlyBlueprint) Check(_ context.Context, c *inspect.Context) ([]rule.Finding, error) {
	why, required := r.reason(c)
	if !required {
		return nil, nil
	}
	graphs, _ := c.Graphs()

	var findings []rule.Finding
	for _, g := range graphs {
		switch {
		case g.Kind != inspect.GraphEvent:
			findings = append(findings, rule.Finding{
				Object:  g.Path,
				Message: fmt.Sprintf("blueprint must be data-only because %s, but defines %s graph %s", why, g.Kind, g.Name),
			})
		case len(g.NonTrivialNodes()) > 0:
			findings = append(findings, rule.Finding{
				Object:  g.Path,
				Message: fmt.Sprintf("blueprint must be data-only because %s, but event graph %s has logic", why, g.Name),
			})
		}
	}
	return findings, nil
}
