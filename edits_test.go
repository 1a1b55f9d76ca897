package voxscene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/voxscene/voxelrt/rt/app"
	"github.com/gekko3d/voxscene/voxelrt/rt/model"
	"github.com/gekko3d/voxscene/voxelrt/rt/volume"
)

func TestEditStepConversion(t *testing.T) {
	g := volume.NewGrid([3]int{4, 4, 4}, volume.DefaultGridOptions())

	fill, err := EditStep{Op: "fill", Center: [3]int{1, 1, 1}, Radius: 1, Value: 3}.Edit(nil)
	require.NoError(t, err)
	assert.Equal(t, volume.Region{Origin: [3]int{0, 0, 0}, Size: [3]int{3, 3, 3}}, fill.Region.Clamped(g.Extent()))
	assert.Equal(t, uint8(3), fill.Modify([3]int{}, 1, g))

	erase, err := EditStep{Op: "erase"}.Edit(nil)
	require.NoError(t, err)
	assert.Equal(t, volume.Empty, erase.Modify([3]int{}, 1, g))

	replace, err := EditStep{Op: "replace", From: 1, Value: 2}.Edit(nil)
	require.NoError(t, err)
	assert.True(t, replace.Region.IsAll())
	assert.Equal(t, uint8(2), replace.Modify([3]int{}, 1, g))
	assert.Equal(t, uint8(5), replace.Modify([3]int{}, 5, g))

	_, err = EditStep{Op: "smudge"}.Edit(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRunAppliesStepsAtBoundedRate(t *testing.T) {
	server := NewAssetServer(nil)
	ctx := model.NewContext(PresetPalette())
	id, err := server.CreateCubeModel(ctx, 4, 4, 4, 1)
	require.NoError(t, err)
	before, _ := server.ModelAsset(id)

	a := app.NewApp()
	a.MaxEditsPerTick = 2
	steps := []EditStep{
		{Op: "erase", Center: [3]int{0, 0, 0}},
		{Op: "fill", Center: [3]int{3, 3, 3}, Value: IndexGlass},
		{Op: "replace", From: IndexStone, Value: IndexDirt},
	}
	ticks, err := server.Run(a, id, steps)
	require.NoError(t, err)
	assert.Equal(t, 2, ticks)
	assert.Equal(t, 0, a.Pending())
	assert.Nil(t, a.OnEdit, "hook is restored after the run")

	after, _ := server.ModelAsset(id)
	assert.NotEqual(t, before.Material, after.Material, "glass swapped the material asset")
	mesh, err := server.Mesh(after.Mesh)
	require.NoError(t, err)
	assert.Equal(t, uint(3), mesh.Version())

	v, _ := after.Model.Grid.Get([3]int{1, 1, 1})
	assert.Equal(t, IndexDirt, v)
	v, _ = after.Model.Grid.Get([3]int{0, 0, 0})
	assert.Equal(t, volume.Empty, v)
}

func TestRunUnknownModel(t *testing.T) {
	server := NewAssetServer(nil)
	_, err := server.Run(app.NewApp(), "missing", nil)
	assert.ErrorIs(t, err, ErrUnknownAsset)
}
