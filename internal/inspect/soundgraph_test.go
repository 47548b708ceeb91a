//go:build soundgraph

package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ruleranger/internal/asset"
)

func TestSoundGraphAdapter(t *testing.T) {
	ms := &asset.Asset{
		Path:       "/Game/Audio/MS_Rain",
		Class:      "MetaSoundSource",
		Properties: map[string]any{"Author": "jdoe"},
		Objects: []asset.Object{
			{Name: "Output", Class: "MetaSoundOutput"},
			{Name: "Drops", Class: "MetaSoundReference", Properties: map[string]any{
				"Target":         "/Game/Audio/MS_Drop",
				"TargetClass":    "MetaSoundSource",
				"TargetIsPreset": false,
			}},
		},
	}
	i := newInspector(t, ms)
	require.True(t, SoundGraphSupported())

	c, err := i.Inspect(t.Context(), ms.Handle())
	require.NoError(t, err)

	g, ok := c.SoundGraph()
	require.True(t, ok)
	assert.Equal(t, "jdoe", g.Author)
	assert.False(t, g.IsPreset)
	assert.Len(t, g.Nodes, 2)
	require.Len(t, g.References, 1)
	assert.Equal(t, "/Game/Audio/MS_Drop", g.References[0].Target)
	assert.Equal(t, "Drops", g.References[0].Path)
}
