package editor

import (
	"github.com/gekko3d/voxscene/voxelrt/rt/mesher"
	"github.com/gekko3d/voxscene/voxelrt/rt/model"
	"github.com/gekko3d/voxscene/voxelrt/rt/volume"
)

// Modifier computes the new value of one cell. p is in voxel space (no padding),
// v is the cell's current value and g is the grid as it was before the edit.
type Modifier interface {
	~func(p [3]int, v uint8, g *volume.Grid) uint8
}

// Rewrite runs fn over the clamped region. Every call observes the original
// grid; the results are written to a copy that replaces the grid's storage
// once the whole region has been visited. It returns the number of cells
// whose value changed.
func Rewrite[F Modifier](g *volume.Grid, mode volume.RegionMode, fn F) int {
	region := mode.Clamped(g.Extent())
	if region.Volume() == 0 {
		return 0
	}
	src := g.Raw()
	updated := make([]uint8, len(src))
	copy(updated, src)

	lead := g.LeadingPadding()
	end := region.End()
	changed := 0
	for z := region.Origin[2]; z < end[2]; z++ {
		for y := region.Origin[1]; y < end[1]; y++ {
			for x := region.Origin[0]; x < end[0]; x++ {
				i := g.Linearize([3]int{x + lead, y + lead, z + lead})
				v := fn([3]int{x, y, z}, src[i], g)
				if v != src[i] {
					changed++
				}
				updated[i] = v
			}
		}
	}
	g.ReplaceRaw(updated)
	return changed
}

// Modify rewrites a region and remeshes the whole grid.
func Modify[F Modifier](g *volume.Grid, p mesher.PaletteView, mode volume.RegionMode, fn F) mesher.Result {
	Rewrite(g, mode, fn)
	return mesher.Mesh(g, p)
}

// ModifyModel edits a model's grid, remeshes it and swaps its material when it
// changes between opaque and translucent. It reports whether the material was swapped.
func ModifyModel[F Modifier](m *model.Model, mode volume.RegionMode, fn F) bool {
	return m.Apply(Modify(m.Grid, m.Context.Palette, mode, fn))
}

// Fill returns a modifier that writes v to every cell.
func Fill(v uint8) func([3]int, uint8, *volume.Grid) uint8 {
	return func([3]int, uint8, *volume.Grid) uint8 {
		return v
	}
}

// Replace returns a modifier that swaps one palette index for another.
func Replace(from, to uint8) func([3]int, uint8, *volume.Grid) uint8 {
	return func(_ [3]int, v uint8, _ *volume.Grid) uint8 {
		if v == from {
			return to
		}
		return v
	}
}
