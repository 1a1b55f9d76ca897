package sdf

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/voxscene/voxelrt/rt/volume"
)

// Classifier turns a sampled distance at a position into a voxel value.
type Classifier interface {
	~func(distance float32, p mgl32.Vec3) uint8
}

// MapToVoxels samples s at the center of every cell of a grid of the given size
// and stores whatever classify returns. Sample positions are in the grid's local
// space, so the field's origin is the center of the model.
func MapToVoxels[F Classifier](s SDF, size [3]int, opts volume.GridOptions, classify F) *volume.Grid {
	g := volume.NewGrid(size, opts)
	if g.IsDegenerate() {
		return g
	}
	ext := g.Extent()
	for z := 0; z < ext[2]; z++ {
		for y := 0; y < ext[1]; y++ {
			for x := 0; x < ext[0]; x++ {
				cell := [3]int{x, y, z}
				p := g.VoxelCenterToLocalSpace(cell)
				_ = g.Set(classify(s(p), p), cell)
			}
		}
	}
	return g
}

// Voxelize fills every cell whose center lies strictly inside the surface.
func Voxelize(s SDF, size [3]int, opts volume.GridOptions, fill uint8) *volume.Grid {
	return MapToVoxels(s, size, opts, func(distance float32, _ mgl32.Vec3) uint8 {
		if distance < 0 {
			return fill
		}
		return volume.Empty
	})
}

// Shell fills cells within thickness of the surface, on the inside.
func Shell(s SDF, size [3]int, opts volume.GridOptions, thickness float32, fill uint8) *volume.Grid {
	return MapToVoxels(s, size, opts, func(distance float32, _ mgl32.Vec3) uint8 {
		if distance < 0 && distance > -thickness {
			return fill
		}
		return volume.Empty
	})
}
