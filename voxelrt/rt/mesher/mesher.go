// Package mesher extracts greedy-merged quad meshes from voxel grids.
package mesher

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/voxscene/voxelrt/rt/core"
	"github.com/gekko3d/voxscene/voxelrt/rt/palette"
	"github.com/gekko3d/voxscene/voxelrt/rt/volume"
)

// Result of meshing a grid. Mesh is nil when no cell is visible, Density is nil
// when no cell has density.
type Result struct {
	Mesh       *core.Mesh
	AverageIOR float32
	HasIOR     bool
	Density    *core.Texture
}

// Mesh classifies every cell, merges the visible faces into quads and emits a
// triangle mesh centered on the model's origin.
func Mesh(g *volume.Grid, p PaletteView) Result {
	if g.IsDegenerate() {
		return Result{}
	}
	c := Classify(g, p)
	res := Result{
		AverageIOR: c.AverageIOR,
		HasIOR:     c.HasIOR,
		Density:    DensityVolume(g, p),
	}
	if c.NeedsMeshing {
		res.Mesh = BuildMesh(g, GreedyQuads(g, c.Voxels))
	}
	return res
}

// BuildMesh turns quads into geometry. Positions drop the leading padding and
// are shifted by half the extent so the model's center is the origin.
func BuildMesh(g *volume.Grid, quads []Quad) *core.Mesh {
	ext := g.Extent()
	lead := float32(g.LeadingPadding())
	offset := mgl32.Vec3{
		lead + float32(ext[0])*0.5,
		lead + float32(ext[1])*0.5,
		lead + float32(ext[2])*0.5,
	}

	m := &core.Mesh{
		Positions: make([]mgl32.Vec3, 0, len(quads)*4),
		Normals:   make([]mgl32.Vec3, 0, len(quads)*4),
		UVs:       make([]mgl32.Vec2, 0, len(quads)*4),
		Indices:   make([]uint32, 0, len(quads)*6),
	}
	for _, q := range quads {
		start := uint32(len(m.Positions))
		m.Indices = append(m.Indices, start, start+1, start+2, start, start+2, start+3)

		uv := palette.AtlasUV(q.Index)
		normal := q.Normal()
		for _, c := range q.corners() {
			m.Positions = append(m.Positions, c.Sub(offset).Mul(g.VoxelSize))
			m.Normals = append(m.Normals, normal)
			m.UVs = append(m.UVs, uv)
		}
	}
	return m
}
