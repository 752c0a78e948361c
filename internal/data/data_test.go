package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/noname-game/horde/internal/component"
	mockrng "github.com/noname-game/horde/internal/core/rng/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadLibrary(t *testing.T) {
	lib, err := LoadLibrary(writeYAML(t, `
layouts:
  monk: {tile_width: 16, tile_height: 24, columns: 4, rows: 2}
sheets:
  monsters/monk: {image: monk.png, layout: monk}
  monsters/ghost: {image: ghost.png, layout: nowhere}
animations:
  monster:
    monk_walk: [0, 1, 2]
    monk_idle: [3]
`))
	require.NoError(t, err)
	assert.Equal(t, 2, lib.Count())

	arch, err := lib.Archetype("monk", "monk_walk")
	require.NoError(t, err)
	assert.Equal(t, "monsters/monk", arch.Sheet.Name, "sheet found by substring")
	assert.Equal(t, 24.0, arch.Layout.TileHeight)
	assert.Equal(t, []int{0, 1, 2}, arch.Frames)

	_, err = lib.Archetype("monk", "monk_attack")
	assert.ErrorIs(t, err, ErrMissingAsset)
	_, err = lib.Archetype("dragon", "monk_walk")
	assert.ErrorIs(t, err, ErrMissingAsset)
	_, err = lib.Archetype("ghost", "monk_walk")
	assert.ErrorIs(t, err, ErrMissingAsset, "sheet with an unknown layout")
}

func TestLoadLibrary_DuplicateClip(t *testing.T) {
	_, err := LoadLibrary(writeYAML(t, `
animations:
  a: {walk: [0]}
  b: {walk: [1]}
`))
	assert.ErrorContains(t, err, "defined twice")
}

func TestShippedAssets(t *testing.T) {
	lib, err := LoadLibrary(filepath.Join("..", "..", "data", "yaml", "assets.yaml"))
	require.NoError(t, err)

	_, err = lib.Archetype("cleric", "player_idle")
	assert.NoError(t, err)
	for _, dir := range []string{"up", "up_left", "left", "down_left", "down", "down_right", "right", "up_right"} {
		_, err := lib.Clip("player_running_" + dir)
		assert.NoError(t, err, dir)
	}
	_, err = lib.Archetype("monk", "monk_walk")
	assert.NoError(t, err)
	for _, kind := range component.AllResourceKinds() {
		_, err := lib.Archetype("resources", kind.Clip())
		assert.NoError(t, err, kind.String())
	}

	table, err := LoadDropTable(filepath.Join("..", "..", "data", "yaml", "resource_drops.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 7, table.Count())
}

func TestDropTable_Pick(t *testing.T) {
	table := DefaultDropTable()
	tests := []struct {
		u    float64
		want component.ResourceKind
	}{
		{0, component.Gold},
		{0.19, component.Gold},
		{0.25, component.Wood},
		{0.5, component.Sulfur},
		{0.7, component.Ore},
		{0.85, component.Mercury},
		{0.92, component.Crystals},
		{0.97, component.Gems},
		{0.999999, component.Gems},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, table.Pick(tt.u), "u=%v", tt.u)
	}
}

func TestDropTable_Roll(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mockrng.NewMockSource(ctrl)
	src.EXPECT().Float64().Return(0.93)

	assert.Equal(t, component.Crystals, DefaultDropTable().Roll(src))
}

func TestNewDropTable_Validation(t *testing.T) {
	_, err := NewDropTable([]DropWeight{{Kind: "gold", Weight: -1}})
	assert.Error(t, err)
	_, err = NewDropTable([]DropWeight{{Kind: "gold", Weight: 0}})
	assert.Error(t, err)
	_, err = NewDropTable([]DropWeight{{Kind: "diamonds", Weight: 1}})
	assert.ErrorContains(t, err, "diamonds")

	table, err := NewDropTable([]DropWeight{{Kind: "ore", Weight: 0}, {Kind: "wood", Weight: 3}})
	require.NoError(t, err)
	assert.Equal(t, 1, table.Count(), "zero weights get no bucket")
	assert.Equal(t, component.Wood, table.Pick(0))
}
