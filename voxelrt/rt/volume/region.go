package volume

import "github.com/go-gl/mathgl/mgl32"

// Region is an axis-aligned box of a grid, expressed in voxel space.
type Region struct {
	// Origin is the lower-back-left corner of the region.
	Origin [3]int
	Size   [3]int
}

// Center returns the center of the region in voxel space.
func (r Region) Center() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(r.Origin[0]) + float32(r.Size[0])*0.5,
		float32(r.Origin[1]) + float32(r.Size[1])*0.5,
		float32(r.Origin[2]) + float32(r.Size[2])*0.5,
	}
}

// End returns the exclusive upper corner of the region.
func (r Region) End() [3]int {
	return [3]int{r.Origin[0] + r.Size[0], r.Origin[1] + r.Size[1], r.Origin[2] + r.Size[2]}
}

func (r Region) Volume() int {
	return r.Size[0] * r.Size[1] * r.Size[2]
}

// RegionMode selects either the whole grid or a box within it.
type RegionMode struct {
	all bool
	box Region
}

// All selects every cell of the grid.
func All() RegionMode {
	return RegionMode{all: true}
}

// Box selects a box region. It is clamped to the grid before use.
func Box(r Region) RegionMode {
	return RegionMode{box: r}
}

// BoxAround builds a box of the given radius (in voxels) around center.
func BoxAround(center [3]int, radius int) RegionMode {
	return Box(Region{
		Origin: [3]int{center[0] - radius, center[1] - radius, center[2] - radius},
		Size:   [3]int{2*radius + 1, 2*radius + 1, 2*radius + 1},
	})
}

func (m RegionMode) IsAll() bool {
	return m.all
}

// Clamped shrinks the region so that origin >= 0 and origin+size <= extent,
// with a minimum size of 1 on every axis. A degenerate extent yields an empty region.
func (m RegionMode) Clamped(extent [3]int) Region {
	if extent[0] <= 0 || extent[1] <= 0 || extent[2] <= 0 {
		return Region{}
	}
	if m.all {
		return Region{Size: extent}
	}
	var out Region
	for i := 0; i < 3; i++ {
		out.Origin[i] = clampInt(m.box.Origin[i], 0, extent[i]-1)
		out.Size[i] = clampInt(m.box.Size[i], 1, extent[i]-out.Origin[i])
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
