package volume

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Primitive fills clip against the grid: cells outside the model are skipped, not reported.

func (g *Grid) setClipped(x, y, z int, paletteIdx uint8) bool {
	return g.Set(paletteIdx, [3]int{x, y, z}) == nil
}

// InSphere reports whether the center of voxel p lies within radius of center (voxel space).
func InSphere(p [3]int, center mgl32.Vec3, radius float32) bool {
	dx := float32(p[0]) + 0.5 - center.X()
	dy := float32(p[1]) + 0.5 - center.Y()
	dz := float32(p[2]) + 0.5 - center.Z()
	return dx*dx+dy*dy+dz*dz <= radius*radius
}

// SphereBounds returns the region covering a sphere in voxel space, before clamping.
func SphereBounds(center mgl32.Vec3, radius float32) Region {
	minB := [3]int{
		int(math.Floor(float64(center.X() - radius))),
		int(math.Floor(float64(center.Y() - radius))),
		int(math.Floor(float64(center.Z() - radius))),
	}
	maxB := [3]int{
		int(math.Ceil(float64(center.X() + radius))),
		int(math.Ceil(float64(center.Y() + radius))),
		int(math.Ceil(float64(center.Z() + radius))),
	}
	return Region{
		Origin: minB,
		Size:   [3]int{maxB[0] - minB[0] + 1, maxB[1] - minB[1] + 1, maxB[2] - minB[2] + 1},
	}
}

// FillSphere fills a sphere given in voxel space and returns the number of cells written.
func FillSphere(g *Grid, center mgl32.Vec3, radius float32, paletteIdx uint8) int {
	b := SphereBounds(center, radius)
	end := b.End()
	written := 0
	for x := b.Origin[0]; x < end[0]; x++ {
		for y := b.Origin[1]; y < end[1]; y++ {
			for z := b.Origin[2]; z < end[2]; z++ {
				if InSphere([3]int{x, y, z}, center, radius) && g.setClipped(x, y, z, paletteIdx) {
					written++
				}
			}
		}
	}
	return written
}

// FillBox fills the inclusive box [minB, maxB].
func FillBox(g *Grid, minB, maxB [3]int, paletteIdx uint8) int {
	written := 0
	for x := minB[0]; x <= maxB[0]; x++ {
		for y := minB[1]; y <= maxB[1]; y++ {
			for z := minB[2]; z <= maxB[2]; z++ {
				if g.setClipped(x, y, z, paletteIdx) {
					written++
				}
			}
		}
	}
	return written
}

// FillCone fills a cone in voxel space.
// base is the center of the base circle, tip is the apex
func FillCone(g *Grid, base, tip mgl32.Vec3, radius float32, paletteIdx uint8) int {
	heightVec := tip.Sub(base)
	height := heightVec.Len()
	if height < 1e-5 {
		return 0
	}
	axis := heightVec.Normalize()

	written := 0
	for x := 0; x < g.extent[0]; x++ {
		for y := 0; y < g.extent[1]; y++ {
			for z := 0; z < g.extent[2]; z++ {
				p := mgl32.Vec3{float32(x) + 0.5, float32(y) + 0.5, float32(z) + 0.5}
				v := p.Sub(base)
				distOnAxis := v.Dot(axis)
				if distOnAxis < 0 || distOnAxis > height {
					continue
				}

				radiusAtDist := radius * (1.0 - distOnAxis/height)
				distToAxis2 := v.LenSqr() - distOnAxis*distOnAxis
				if distToAxis2 <= radiusAtDist*radiusAtDist && g.setClipped(x, y, z, paletteIdx) {
					written++
				}
			}
		}
	}
	return written
}

// FillPyramid fills a square pyramid in voxel space.
func FillPyramid(g *Grid, base, tip mgl32.Vec3, size float32, paletteIdx uint8) int {
	heightVec := tip.Sub(base)
	height := heightVec.Len()
	if height < 1e-5 {
		return 0
	}
	axis := heightVec.Normalize()

	// Standard orientation helper
	up := mgl32.Vec3{0, 1, 0}
	if math.Abs(float64(axis.Dot(up))) > 0.99 {
		up = mgl32.Vec3{1, 0, 0}
	}
	right := axis.Cross(up).Normalize()
	forward := right.Cross(axis).Normalize()
	halfSize := size * 0.5

	written := 0
	for x := 0; x < g.extent[0]; x++ {
		for y := 0; y < g.extent[1]; y++ {
			for z := 0; z < g.extent[2]; z++ {
				p := mgl32.Vec3{float32(x) + 0.5, float32(y) + 0.5, float32(z) + 0.5}
				v := p.Sub(base)
				distOnAxis := v.Dot(axis)
				if distOnAxis < 0 || distOnAxis > height {
					continue
				}

				s := halfSize * (1.0 - distOnAxis/height)
				dx := v.Dot(right)
				dz := v.Dot(forward)
				if math.Abs(float64(dx)) <= float64(s) && math.Abs(float64(dz)) <= float64(s) && g.setClipped(x, y, z, paletteIdx) {
					written++
				}
			}
		}
	}
	return written
}
