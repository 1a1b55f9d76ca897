package mesher

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/voxscene/voxelrt/rt/volume"
)

// face describes one of the six axis-aligned quad directions. u x v points along the normal
// for positive faces, so the corner order base, base+u, base+u+v, base+v is counter-clockwise.
type face struct {
	axis   int
	sign   int
	u, v   int
	normal mgl32.Vec3
}

var faces = [6]face{
	{axis: 0, sign: -1, u: 1, v: 2, normal: mgl32.Vec3{-1, 0, 0}},
	{axis: 1, sign: -1, u: 2, v: 0, normal: mgl32.Vec3{0, -1, 0}},
	{axis: 2, sign: -1, u: 0, v: 1, normal: mgl32.Vec3{0, 0, -1}},
	{axis: 0, sign: 1, u: 1, v: 2, normal: mgl32.Vec3{1, 0, 0}},
	{axis: 1, sign: 1, u: 2, v: 0, normal: mgl32.Vec3{0, 1, 0}},
	{axis: 2, sign: 1, u: 0, v: 1, normal: mgl32.Vec3{0, 0, 1}},
}

// Quad is a merged rectangle of faces in raw (padded) grid coordinates.
type Quad struct {
	Face    int
	Minimum [3]int // raw coordinate of the voxel at the quad's minimum corner
	Width   int    // extent along the face's u axis
	Height  int    // extent along the face's v axis
	Index   uint8
}

// Normal of the quad's face.
func (q Quad) Normal() mgl32.Vec3 {
	return faces[q.Face].normal
}

// corners returns the quad's corners in raw voxel units, in counter-clockwise order seen from outside.
func (q Quad) corners() [4]mgl32.Vec3 {
	f := faces[q.Face]
	var base mgl32.Vec3
	for i := 0; i < 3; i++ {
		base[i] = float32(q.Minimum[i])
	}
	if f.sign > 0 {
		base[f.axis] += 1
	}
	var du, dv mgl32.Vec3
	du[f.u] = float32(q.Width)
	dv[f.v] = float32(q.Height)

	c := [4]mgl32.Vec3{base, base.Add(du), base.Add(du).Add(dv), base.Add(dv)}
	if f.sign < 0 {
		c[1], c[3] = c[3], c[1]
	}
	return c
}

// GreedyQuads merges visible faces slice by slice. Two faces merge only when they
// have the same palette index, which also implies the same visibility. Neighbors
// outside the raw array never produce faces.
func GreedyQuads(g *volume.Grid, voxels []VisibleVoxel) []Quad {
	dims := g.RawExtent()
	var quads []Quad
	var mask []uint16

	for fi, f := range faces {
		du, dv := dims[f.u], dims[f.v]
		if cap(mask) < du*dv {
			mask = make([]uint16, du*dv)
		}
		mask = mask[:du*dv]

		for slice := 0; slice < dims[f.axis]; slice++ {
			n := slice + f.sign
			hasNeighbor := n >= 0 && n < dims[f.axis]

			// mask holds index+1 where a face is needed, 0 elsewhere.
			for i := range mask {
				mask[i] = 0
			}
			if hasNeighbor {
				for b := 0; b < dv; b++ {
					for a := 0; a < du; a++ {
						var p [3]int
						p[f.axis], p[f.u], p[f.v] = slice, a, b
						voxel := voxels[g.Linearize(p)]
						if voxel.Visibility == Empty {
							continue
						}
						p[f.axis] = n
						if faceNeedsMesh(voxel, voxels[g.Linearize(p)]) {
							mask[a+b*du] = uint16(voxel.Index) + 1
						}
					}
				}
			}

			for b := 0; b < dv; b++ {
				for a := 0; a < du; {
					key := mask[a+b*du]
					if key == 0 {
						a++
						continue
					}
					width := 1
					for a+width < du && mask[a+width+b*du] == key {
						width++
					}
					height := 1
				grow:
					for b+height < dv {
						for k := a; k < a+width; k++ {
							if mask[k+(b+height)*du] != key {
								break grow
							}
						}
						height++
					}
					for hb := b; hb < b+height; hb++ {
						for ka := a; ka < a+width; ka++ {
							mask[ka+hb*du] = 0
						}
					}

					var minimum [3]int
					minimum[f.axis], minimum[f.u], minimum[f.v] = slice, a, b
					quads = append(quads, Quad{
						Face:    fi,
						Minimum: minimum,
						Width:   width,
						Height:  height,
						Index:   uint8(key - 1),
					})
					a += width
				}
			}
		}
	}
	return quads
}
