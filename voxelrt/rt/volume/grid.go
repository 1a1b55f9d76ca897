package volume

import (
	"errors"
	"fmt"
)

// Empty is the voxel value reserved for an empty cell. Palette index 0 is never rendered.
const Empty uint8 = 0

// ErrOutOfBounds is returned when a voxel-space coordinate lies outside [0, extent).
var ErrOutOfBounds = errors.New("voxel coordinate out of bounds")

type GridOptions struct {
	// MeshOuterFaces pads the stored array with one empty cell on every face
	// so the boundary of the model gets meshed.
	MeshOuterFaces bool
	// VoxelSize is the edge length of one voxel in local units.
	VoxelSize float32
}

func DefaultGridOptions() GridOptions {
	return GridOptions{
		MeshOuterFaces: true,
		VoxelSize:      1.0,
	}
}

// Grid is a dense voxel volume. Cells are stored x fastest, then y, then z.
type Grid struct {
	extent  [3]int
	raw     [3]int
	padding int
	voxels  []uint8

	VoxelSize float32
}

func NewGrid(extent [3]int, opts GridOptions) *Grid {
	for i := range extent {
		if extent[i] < 0 {
			extent[i] = 0
		}
	}
	padding := 0
	if opts.MeshOuterFaces {
		padding = 2
	}
	raw := [3]int{extent[0] + padding, extent[1] + padding, extent[2] + padding}
	size := opts.VoxelSize
	if size <= 0 {
		size = 1.0
	}
	return &Grid{
		extent:    extent,
		raw:       raw,
		padding:   padding,
		voxels:    make([]uint8, raw[0]*raw[1]*raw[2]),
		VoxelSize: size,
	}
}

// Extent is the logical model size, not including padding.
func (g *Grid) Extent() [3]int {
	return g.extent
}

// RawExtent is the size of the stored array including padding.
func (g *Grid) RawExtent() [3]int {
	return g.raw
}

// Padding is the total padding per axis: 2 when outer faces are meshed, otherwise 0.
func (g *Grid) Padding() int {
	return g.padding
}

// LeadingPadding is the padding before the first logical cell on each axis.
func (g *Grid) LeadingPadding() int {
	return g.padding / 2
}

func (g *Grid) MeshesOuterFaces() bool {
	return g.padding > 0
}

// Raw exposes the stored array. Callers must not resize it.
func (g *Grid) Raw() []uint8 {
	return g.voxels
}

// IsDegenerate reports whether any extent component is zero.
func (g *Grid) IsDegenerate() bool {
	return g.extent[0] <= 0 || g.extent[1] <= 0 || g.extent[2] <= 0
}

// Linearize maps a raw (padded) coordinate to an index into Raw().
func (g *Grid) Linearize(p [3]int) int {
	return p[0] + p[1]*g.raw[0] + p[2]*g.raw[0]*g.raw[1]
}

// Delinearize is the inverse of Linearize.
func (g *Grid) Delinearize(i int) [3]int {
	sx, sy := g.raw[0], g.raw[1]
	return [3]int{i % sx, (i / sx) % sy, i / (sx * sy)}
}

func (g *Grid) Contains(p [3]int) bool {
	for i := 0; i < 3; i++ {
		if p[i] < 0 || p[i] >= g.extent[i] {
			return false
		}
	}
	return true
}

// PointInModel returns p unchanged if it lies inside the model, otherwise ErrOutOfBounds.
func (g *Grid) PointInModel(p [3]int) ([3]int, error) {
	if !g.Contains(p) {
		return p, fmt.Errorf("%w: %v not in [0, %v)", ErrOutOfBounds, p, g.extent)
	}
	return p, nil
}

func (g *Grid) rawIndex(p [3]int) int {
	lp := g.LeadingPadding()
	return g.Linearize([3]int{p[0] + lp, p[1] + lp, p[2] + lp})
}

// Set writes one cell, given in voxel space.
func (g *Grid) Set(v uint8, p [3]int) error {
	if _, err := g.PointInModel(p); err != nil {
		return err
	}
	g.voxels[g.rawIndex(p)] = v
	return nil
}

// Get reads one cell, given in voxel space.
func (g *Grid) Get(p [3]int) (uint8, error) {
	if _, err := g.PointInModel(p); err != nil {
		return Empty, err
	}
	return g.voxels[g.rawIndex(p)], nil
}

func (g *Grid) Count() int {
	count := 0
	for _, v := range g.voxels {
		if v != Empty {
			count++
		}
	}
	return count
}

func (g *Grid) IsEmpty() bool {
	return g.Count() == 0
}

func (g *Grid) Clone() *Grid {
	newG := *g
	newG.voxels = make([]uint8, len(g.voxels))
	copy(newG.voxels, g.voxels)
	return &newG
}

// Equal compares extent, padding and every stored cell.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.extent != other.extent || g.padding != other.padding {
		return false
	}
	for i := range g.voxels {
		if g.voxels[i] != other.voxels[i] {
			return false
		}
	}
	return true
}

// ReplaceRaw swaps in a fully updated copy of the stored array, as produced by an edit pass.
func (g *Grid) ReplaceRaw(voxels []uint8) {
	if len(voxels) != len(g.voxels) {
		panic(fmt.Sprintf("voxel array length %d does not match grid shape %v", len(voxels), g.raw))
	}
	g.voxels = voxels
}

// ForEach visits every cell of the model in storage order, passing voxel-space coordinates.
func (g *Grid) ForEach(fn func(p [3]int, v uint8)) {
	lp := g.LeadingPadding()
	for z := 0; z < g.extent[2]; z++ {
		for y := 0; y < g.extent[1]; y++ {
			for x := 0; x < g.extent[0]; x++ {
				fn([3]int{x, y, z}, g.voxels[g.Linearize([3]int{x + lp, y + lp, z + lp})])
			}
		}
	}
}
