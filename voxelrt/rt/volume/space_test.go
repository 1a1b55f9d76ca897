package volume

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestLocalToVoxelSpace(t *testing.T) {
	g := NewGrid([3]int{4, 4, 4}, DefaultGridOptions())

	assert.Equal(t, [3]int{2, 2, 2}, g.LocalToVoxelSpace(mgl32.Vec3{}))
	assert.Equal(t, [3]int{0, 0, 0}, g.LocalToVoxelSpace(mgl32.Vec3{-1.9, -1.9, -1.9}))
	assert.Equal(t, [3]int{3, 3, 3}, g.LocalToVoxelSpace(mgl32.Vec3{1.9, 1.9, 1.9}))
}

func TestVoxelToLocalSpaceRoundTrip(t *testing.T) {
	g := NewGrid([3]int{6, 3, 8}, DefaultGridOptions())
	g.ForEach(func(p [3]int, _ uint8) {
		center := g.VoxelCenterToLocalSpace(p)
		if got := g.LocalToVoxelSpace(center); got != p {
			t.Errorf("Center of %v maps back to %v", p, got)
		}
	})
	assert.Equal(t, mgl32.Vec3{-3, -1.5, -4}, g.VoxelToLocalSpace([3]int{0, 0, 0}))
}

func TestVoxelSizeScaling(t *testing.T) {
	g := NewGrid([3]int{10, 10, 10}, GridOptions{MeshOuterFaces: true, VoxelSize: 0.1})
	assert.Equal(t, [3]int{5, 5, 5}, g.LocalToVoxelSpace(mgl32.Vec3{0.01, 0.01, 0.01}))
	assert.InDelta(t, -0.5, g.VoxelToLocalSpace([3]int{0, 0, 0}).X(), 1e-6)
}

func TestGlobalToVoxelSpace(t *testing.T) {
	g := NewGrid([3]int{4, 4, 4}, DefaultGridOptions())
	objectToWorld := mgl32.Translate3D(10, 0, 0)
	worldToObject := objectToWorld.Inv()

	assert.Equal(t, [3]int{2, 2, 2}, g.GlobalToVoxelSpace(mgl32.Vec3{10, 0, 0}, worldToObject))
	assert.Equal(t, [3]int{3, 2, 2}, g.GlobalToVoxelSpace(mgl32.Vec3{11.5, 0, 0}, worldToObject))

	world := g.VoxelToGlobalSpace([3]int{3, 2, 2}, objectToWorld)
	assert.InDelta(t, 11.5, world.X(), 1e-5)
}
