//go:build !soundgraph

package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/errors"
)

func TestSoundGraphUnsupportedWithoutBuildTag(t *testing.T) {
	ms := &asset.Asset{Path: "/Game/Audio/MS_Rain", Class: "MetaSoundSource"}
	i := newInspector(t, ms)

	assert.False(t, SoundGraphSupported())
	assert.False(t, i.Supports(asset.KindSoundGraph))

	_, err := i.Inspect(t.Context(), ms.Handle())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedAsset))
}
