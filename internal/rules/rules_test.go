package rules

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/host"
	"github.com/thoreinstein/ruleranger/internal/inspect"
	"github.com/thoreinstein/ruleranger/internal/logging"
	"github.com/thoreinstein/ruleranger/internal/rule"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

func inspectAsset(t *testing.T, a *asset.Asset) *inspect.Context {
	t.Helper()
	c, err := inspect.New(host.NewMemory(), logging.ForTest(t)).InspectAsset(a)
	require.NoError(t, err)
	return c
}

func check(t *testing.T, r rule.Rule, a *asset.Asset) []rule.Finding {
	t.Helper()
	findings, err := r.Check(t.Context(), inspectAsset(t, a))
	require.NoError(t, err)
	return findings
}

// fix applies the rule's fix for the finding to a copy of a and returns the
// edited copy.
func fix(t *testing.T, r rule.Rule, a *asset.Asset, f rule.Finding) *asset.Asset {
	t.Helper()
	fixer, ok := rule.AsFixer(r)
	require.True(t, ok, "rule %s has no fixer", r.Meta().ID)

	working := a.Clone()
	report := rule.Report(r.Meta(), a.Path, f, true)
	require.NoError(t, fixer.Fix(t.Context(), inspectAsset(t, a), inspect.NewEditor(working), report))
	return working
}

func TestCatalog_UniqueIDsAndMeta(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Catalog(DefaultSettings()) {
		meta := r.Meta()
		assert.False(t, seen[meta.ID], "duplicate %s", meta.ID)
		seen[meta.ID] = true
		assert.NotEmpty(t, meta.Description, meta.ID)
		assert.NotZero(t, meta.Severity, meta.ID)
		assert.NotEmpty(t, meta.Kinds, meta.ID)
	}
	for _, id := range []string{"naming-convention", "no-empty-event-graph", "function-max-node-count",
		"data-only-blueprint", "niagara-compile-status", "niagara-disabled-emitters",
		"material-texture-sample-limit", "texture-resolution", "remove-metadata-tags", "required-properties"} {
		assert.True(t, seen[id], "missing %s", id)
	}
}

func TestRegisterDefaults(t *testing.T) {
	reg := rule.NewRegistry()
	err := RegisterDefaults(reg, DefaultSettings(),
		[]string{"texture-resolution", "metasound-author-blank"},
		map[string]rule.Overrides{"naming-convention": {Severity: validator.SeverityError}},
	)
	require.NoError(t, err)

	_, ok := reg.Lookup("texture-resolution")
	assert.False(t, ok, "disabled")

	naming, ok := reg.Lookup("naming-convention")
	require.True(t, ok)
	assert.Equal(t, validator.SeverityError, naming.Meta().Severity)
	_, ok = rule.AsFixer(naming)
	assert.True(t, ok)

	err = RegisterDefaults(rule.NewRegistry(), DefaultSettings(), nil,
		map[string]rule.Overrides{"no-such-rule": {Severity: validator.SeverityInfo}})
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))

	err = RegisterDefaults(reg, DefaultSettings(), nil, nil)
	assert.True(t, errors.Is(err, errors.ErrDuplicateRule), "registering twice collides")
}

func TestNamingConvention(t *testing.T) {
	r := NewNamingConvention(append([]Convention{
		{Kind: asset.KindBlueprint, Capability: asset.CapabilityWidget, Variant: "Hover", Prefix: "WBP_", Suffix: "_Hover"},
	}, DefaultConventions()...), false)

	tests := []struct {
		name     string
		a        *asset.Asset
		expected string
	}{
		{"already conforming", &asset.Asset{Path: "/Game/BP_Door", Class: "Blueprint"}, "BP_Door"},
		{"missing prefix", &asset.Asset{Path: "/Game/Door", Class: "Blueprint"}, "BP_Door"},
		{"capability beats kind", &asset.Asset{Path: "/Game/UI/Menu", Class: "WidgetBlueprint"}, "WBP_Menu"},
		{"foreign prefix replaced", &asset.Asset{Path: "/Game/UI/BP_Menu", Class: "WidgetBlueprint"}, "WBP_Menu"},
		{"instance", &asset.Asset{Path: "/Game/M_Rock", Class: "MaterialInstanceConstant"}, "MI_Rock"},
		{"class convention", &asset.Asset{Path: "/Game/Rock", Class: "StaticMesh"}, "SM_Rock"},
		{
			"variant adds suffix",
			&asset.Asset{Path: "/Game/UI/WBP_Menu", Class: "WidgetBlueprint", Metadata: map[string]string{VariantTag: "Hover"}},
			"WBP_Menu_Hover",
		},
		{"no convention", &asset.Asset{Path: "/Game/Thing", Class: "DataTable"}, "Thing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := r.ExpectedName(inspectAsset(t, tt.a))
			assert.Equal(t, tt.expected, got)

			findings := check(t, r, tt.a)
			if tt.expected == tt.a.Name() {
				assert.Empty(t, findings)
				return
			}
			require.Len(t, findings, 1)
			assert.True(t, findings[0].Fixable)

			fixed := fix(t, r, tt.a, findings[0])
			assert.Equal(t, tt.expected, fixed.Name())
			assert.Equal(t, tt.a.Dir(), fixed.Dir())
			assert.Empty(t, check(t, r, fixed), "fix resolves the violation")
		})
	}
}

func TestNamingConvention_NotifyMissing(t *testing.T) {
	r := NewNamingConvention(DefaultConventions(), true)
	findings := check(t, r, &asset.Asset{Path: "/Game/Thing", Class: "DataTable"})
	require.Len(t, findings, 1)
	assert.False(t, findings[0].Fixable)
	assert.Contains(t, findings[0].Message, "DataTable")
}

func eventGraph(name string, nodes ...asset.Object) asset.Object {
	return asset.Object{Name: name, Class: "EventGraph", Objects: nodes}
}

func functionGraph(name string, nodes int) asset.Object {
	g := asset.Object{Name: name, Class: "FunctionGraph", Objects: []asset.Object{{Name: "Entry", Class: "K2Node_FunctionEntry"}}}
	for i := range nodes {
		g.Objects = append(g.Objects, asset.Object{Name: fmt.Sprintf("Call_%d", i), Class: "K2Node_CallFunction"})
	}
	return g
}

func TestNoEmptyEventGraph(t *testing.T) {
	r := NewNoEmptyEventGraph()
	bp := &asset.Asset{Path: "/Game/BP_Door", Class: "Blueprint", Objects: []asset.Object{
		eventGraph("EventGraph", asset.Object{Name: "Note", Class: "EdGraphNode_Comment"}),
		eventGraph("Logic", asset.Object{Name: "Tick", Class: "K2Node_Event"}),
		functionGraph("Open", 0),
	}}

	findings := check(t, r, bp)
	require.Len(t, findings, 1)
	assert.Equal(t, "EventGraph", findings[0].Object)

	fixed := fix(t, r, bp, findings[0])
	assert.Empty(t, check(t, r, fixed))
	assert.Len(t, fixed.Objects, 2)

	fixer, ok := rule.AsFixer(r)
	require.True(t, ok)
	missing := rule.Report(r.Meta(), bp.Path, rule.Finding{Object: "Nope"}, true)
	assert.Error(t, fixer.Fix(t.Context(), inspectAsset(t, bp), inspect.NewEditor(bp.Clone()), missing))
}

func TestFunctionMaxNodeCount(t *testing.T) {
	r := NewFunctionMaxNodeCount(3)
	bp := &asset.Asset{Path: "/Game/BP_Door", Class: "Blueprint", Objects: []asset.Object{
		functionGraph("Small", 3),
		functionGraph("Large", 4),
	}}

	findings := check(t, r, bp)
	require.Len(t, findings, 1)
	assert.Equal(t, "Large", findings[0].Object)
	assert.Contains(t, findings[0].Message, "4 nodes")
	assert.Equal(t, 50, DefaultSettings().MaxFunctionNodes)
}

func TestDataOnlyBlueprint(t *testing.T) {
	r := NewDataOnlyBlueprint([]string{"PrimaryDataAsset"})

	clean := &asset.Asset{Path: "/Game/BP_Config", Class: "Blueprint",
		Properties: map[string]any{"ParentClass": "PrimaryDataAsset"},
		Objects:    []asset.Object{eventGraph("EventGraph", asset.Object{Name: "BeginPlay", Class: "K2Node_Event", Properties: map[string]any{"Ghost": true}})},
	}
	assert.Empty(t, check(t, r, clean))

	logic := &asset.Asset{Path: "/Game/BP_Config", Class: "Blueprint",
		Capabilities: []asset.Capability{asset.CapabilityDataOnly},
		Objects: []asset.Object{
			eventGraph("EventGraph", asset.Object{Name: "Tick", Class: "K2Node_Event"}),
			functionGraph("Compute", 1),
		},
	}
	findings := check(t, r, logic)
	require.Len(t, findings, 2)
	assert.Contains(t, findings[0].Message, "tagged data-only")
	assert.Contains(t, findings[1].Message, "function graph Compute")

	unconstrained := &asset.Asset{Path: "/Game/BP_Door", Class: "Blueprint", Objects: logic.Objects}
	assert.Empty(t, check(t, r, unconstrained))
}

func TestNiagaraCompileStatus(t *testing.T) {
	system := &asset.Asset{Path: "/Game/NS_Fire", Class: "NiagaraSystem", Objects: []asset.Object{
		{Name: "Flames", Class: "NiagaraEmitter", Objects: []asset.Object{
			{Name: "Ok", Class: "NiagaraScript", Properties: map[string]any{"CompileStatus": "UpToDate"}},
			{Name: "Stale", Class: "NiagaraScript", Properties: map[string]any{"CompileStatus": "Dirty"}},
			{Name: "Broken", Class: "NiagaraScript", Properties: map[string]any{"CompileStatus": "Error"}},
			{Name: "Warned", Class: "NiagaraScript", Properties: map[string]any{"CompileStatus": "UpToDateWithWarnings"}},
			{Name: "Mystery", Class: "NiagaraScript"},
			{Name: "New", Class: "NiagaraScript", Properties: map[string]any{"CompileStatus": "BeingCreated"}},
		}},
	}}

	objects := func(fs []rule.Finding) []string {
		var out []string
		for _, f := range fs {
			out = append(out, f.Object)
		}
		return out
	}

	assert.Equal(t, []string{"Flames/Stale", "Flames/Broken", "Flames/Mystery"},
		objects(check(t, NewNiagaraCompileStatus(false, true), system)))
	assert.Equal(t, []string{"Flames/Stale", "Flames/Broken", "Flames/Warned"},
		objects(check(t, NewNiagaraCompileStatus(true, false), system)))
}

func TestNiagaraDisabledEmitters(t *testing.T) {
	r := NewNiagaraDisabledEmitters()
	system := &asset.Asset{Path: "/Game/NS_Fire", Class: "NiagaraSystem", Objects: []asset.Object{
		{Name: "Flames", Class: "NiagaraEmitter"},
		{Name: "Smoke", Class: "NiagaraEmitter", Properties: map[string]any{"Enabled": false}},
		{Name: "Sparks", Class: "NiagaraEmitter", Properties: map[string]any{"Enabled": "false"}},
	}}

	findings := check(t, r, system)
	require.Len(t, findings, 2)

	fixed := fix(t, r, system, findings[0])
	remaining := check(t, r, fixed)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Sparks", remaining[0].Object)

	emitter := &asset.Asset{Path: "/Game/NE_Smoke", Class: "NiagaraEmitter", Properties: map[string]any{"Enabled": false}}
	assert.Empty(t, check(t, r, emitter), "emitter assets are not systems")
}

func TestMaterialTextureSampleLimit(t *testing.T) {
	r := NewMaterialTextureSampleLimit(1)
	m := &asset.Asset{Path: "/Game/M_Wall", Class: "Material", Objects: []asset.Object{
		{Name: "A", Class: "MaterialExpressionTextureSample"},
		{Name: "B", Class: "MaterialExpressionTextureSampleParameter2D"},
	}}

	findings := check(t, r, m)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "2 texture samples")

	assert.Empty(t, check(t, NewMaterialTextureSampleLimit(2), m))
}

func TestTextureResolution(t *testing.T) {
	tex := func(w, h int) *asset.Asset {
		return &asset.Asset{Path: "/Game/T_Rock", Class: "Texture2D", Properties: map[string]any{"Width": w, "Height": h}}
	}

	pot := NewTextureResolution(TexturePowerOfTwo, 0, 2048)
	assert.Empty(t, check(t, pot, tex(512, 1024)))
	assert.Len(t, check(t, pot, tex(500, 512)), 1)
	assert.Len(t, check(t, pot, tex(4096, 4096)), 1, "too large")
	assert.Len(t, check(t, pot, tex(4000, 512)), 2)

	div := NewTextureResolution(TextureDivisible, 4, 0)
	assert.Empty(t, check(t, div, tex(500, 300)))
	assert.Len(t, check(t, div, tex(501, 300)), 1)

	missing := &asset.Asset{Path: "/Game/T_Rock", Class: "Texture2D"}
	assert.Len(t, check(t, pot, missing), 1)
}

func TestRemoveMetadataTags(t *testing.T) {
	r := NewRemoveMetadataTags([]string{"Author.Legacy", "Temp"})
	a := &asset.Asset{Path: "/Game/BP_Door", Class: "Blueprint",
		Metadata: map[string]string{"Author.Legacy": "x", "Temp": "", "Keep": "y"}}

	findings := check(t, r, a)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "Author.Legacy, Temp")

	fixed := fix(t, r, a, findings[0])
	assert.Equal(t, map[string]string{"Keep": "y"}, fixed.Metadata)
	assert.Empty(t, check(t, r, fixed))
}

func TestRequiredProperties(t *testing.T) {
	r := NewRequiredProperties(map[string][]string{"Material": {"ShadingModel", "BlendMode"}})

	m := &asset.Asset{Path: "/Game/M_Wall", Class: "Material", Properties: map[string]any{"ShadingModel": "DefaultLit", "BlendMode": ""}}
	findings := check(t, r, m)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "BlendMode")

	assert.Empty(t, check(t, r, &asset.Asset{Path: "/Game/BP_Door", Class: "Blueprint"}))
}
