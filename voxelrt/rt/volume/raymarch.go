package volume

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Hit describes the first non-empty voxel found by RayMarch.
type Hit struct {
	Coord  [3]int
	Value  uint8
	T      float32 // distance along the normalized ray, in local units
	Normal mgl32.Vec3
}

// RayMarch walks a ray given in the model's local space through the grid with a
// voxel DDA and returns the first non-empty cell within tMax.
func (g *Grid) RayMarch(origin, dir mgl32.Vec3, tMax float32) (Hit, bool) {
	if g.IsDegenerate() || dir.LenSqr() == 0 {
		return Hit{}, false
	}
	d := dir.Normalize()
	o := origin.Mul(1.0 / g.VoxelSize).Add(g.halfExtents())
	limit := tMax / g.VoxelSize

	// Slab test against [0, extent]
	tEnter, tExit := float32(-math.MaxFloat32), float32(math.MaxFloat32)
	enterAxis := -1
	for i := 0; i < 3; i++ {
		if math.Abs(float64(d[i])) < 1e-9 {
			if o[i] < 0 || o[i] > float32(g.extent[i]) {
				return Hit{}, false
			}
			continue
		}
		t1 := (0 - o[i]) / d[i]
		t2 := (float32(g.extent[i]) - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tEnter {
			tEnter = t1
			enterAxis = i
		}
		if t2 < tExit {
			tExit = t2
		}
	}
	if tEnter > tExit || tExit < 0 {
		return Hit{}, false
	}

	t := float32(0)
	normal := mgl32.Vec3{}
	if tEnter > 0 {
		t = tEnter
		if enterAxis >= 0 {
			normal[enterAxis] = -sign(d[enterAxis])
		}
	}
	if t > limit {
		return Hit{}, false
	}

	// Step slightly inside so the starting cell is the one being entered.
	tStart := t + 1e-4
	p := o.Add(d.Mul(tStart))
	var cell, step [3]int
	var tNext, tDelta [3]float32
	for i := 0; i < 3; i++ {
		cell[i] = clampInt(int(math.Floor(float64(p[i]))), 0, g.extent[i]-1)
		switch {
		case d[i] > 0:
			step[i] = 1
			tDelta[i] = 1 / d[i]
			tNext[i] = tStart + (float32(cell[i]+1)-p[i])/d[i]
		case d[i] < 0:
			step[i] = -1
			tDelta[i] = -1 / d[i]
			tNext[i] = tStart + (float32(cell[i])-p[i])/d[i]
		default:
			tDelta[i] = float32(math.MaxFloat32)
			tNext[i] = float32(math.MaxFloat32)
		}
	}

	for g.Contains(cell) {
		v := g.voxels[g.rawIndex(cell)]
		if v != Empty {
			return Hit{Coord: cell, Value: v, T: t * g.VoxelSize, Normal: normal}, true
		}
		axis := 0
		if tNext[1] < tNext[axis] {
			axis = 1
		}
		if tNext[2] < tNext[axis] {
			axis = 2
		}
		t = tNext[axis]
		if t > limit {
			break
		}
		cell[axis] += step[axis]
		tNext[axis] += tDelta[axis]
		normal = mgl32.Vec3{}
		normal[axis] = float32(-step[axis])
	}
	return Hit{}, false
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
