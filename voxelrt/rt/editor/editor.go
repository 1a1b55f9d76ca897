// Package editor applies region edits and brush strokes to voxel models.
package editor

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/voxscene/voxelrt/rt/bvh"
	"github.com/gekko3d/voxscene/voxelrt/rt/model"
	"github.com/gekko3d/voxscene/voxelrt/rt/volume"
)

const maxPickDistance = 1000.0

type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

type Editor struct {
	BrushRadius float32
	BrushValue  uint8
	Selected    *model.Model

	// Debounced Scaling
	PendingScaleFactor  float32
	LastScaleInputTime  float64
	LastScaleUpdateTime float64
}

func NewEditor() *Editor {
	return &Editor{
		BrushRadius:        2.0,
		BrushValue:         1,
		PendingScaleFactor: 1.0,
	}
}

func (e *Editor) Select(models []*model.Model, ray Ray) {
	hit := e.Pick(models, ray)
	if hit != nil {
		e.Selected = hit.Model
	} else {
		e.Selected = nil
	}
}

func (e *Editor) ScaleSelected(factor float32, now float64) {
	if e.Selected == nil {
		return
	}
	e.PendingScaleFactor *= factor
	e.LastScaleInputTime = now
}

// Update applies pending scaling once input has been idle for 200ms, or every 100ms while it continues.
func (e *Editor) Update(now float64) {
	if e.Selected == nil || e.PendingScaleFactor == 1.0 {
		return
	}

	idle := (now - e.LastScaleInputTime) > 0.2
	periodic := (now - e.LastScaleUpdateTime) > 0.1

	if idle || periodic {
		tr := e.Selected.Transform
		tr.Scale = tr.Scale.Mul(e.PendingScaleFactor)
		tr.Dirty = true
		e.PendingScaleFactor = 1.0
		e.LastScaleUpdateTime = now
	}
}

// PickRay builds a world-space ray through a pixel for a perspective camera.
func PickRay(mouseX, mouseY float64, width, height int, eye, forward, up mgl32.Vec3, fovDeg float32) Ray {
	// Normalized Device Coordinates
	nx := (2.0*float32(mouseX))/float32(width) - 1.0
	ny := 1.0 - (2.0*float32(mouseY))/float32(height) // Flip Y for NDC

	forward = forward.Normalize()
	right := forward.Cross(up).Normalize()
	trueUp := right.Cross(forward)

	aspect := float32(width) / float32(height)
	tanHalfFov := float32(math.Tan(float64(mgl32.DegToRad(fovDeg) / 2.0)))

	dir := forward.Add(right.Mul(nx * aspect * tanHalfFov)).Add(trueUp.Mul(ny * tanHalfFov))
	return Ray{eye, dir.Normalize()}
}

type HitResult struct {
	Model  *model.Model
	Coord  [3]int
	T      float32
	Normal mgl32.Vec3
}

// Pick returns the nearest voxel hit along ray across models, or nil.
func (e *Editor) Pick(models []*model.Model, ray Ray) *HitResult {
	if len(models) == 0 || ray.Direction.LenSqr() == 0 {
		return nil
	}
	bounds := make([][2]mgl32.Vec3, len(models))
	for i, m := range models {
		bounds[i][0], bounds[i][1] = m.WorldBounds()
	}
	dir := ray.Direction.Normalize()

	var bestHit *HitResult
	closestT := float32(maxPickDistance)
	bvh.Build(bounds).Ray(ray.Origin, dir, closestT, func(i int, _ float32) float32 {
		m := models[i]
		// Narrow phase: local space ray march
		ro := m.Transform.ToLocal(ray.Origin)
		rd := m.Transform.ToLocalDir(dir)
		hit, ok := m.Grid.RayMarch(ro, rd, maxPickDistance)
		if !ok {
			return closestT
		}

		pHitWs := m.Transform.ToWorld(ro.Add(rd.Normalize().Mul(hit.T)))
		tWorld := pHitWs.Sub(ray.Origin).Len()
		if tWorld < closestT {
			closestT = tWorld
			nWs := m.Transform.ObjectToWorld().Mul4x1(hit.Normal.Vec4(0.0)).Vec3().Normalize()
			bestHit = &HitResult{
				Model:  m,
				Coord:  hit.Coord,
				T:      tWorld,
				Normal: nWs,
			}
		}
		return closestT
	})
	return bestHit
}

// Stroke returns the region and modifier of a brush stroke: a sphere of
// BrushValue around center. When building, the sphere is moved one voxel out
// along the hit normal so it lands on the surface.
func (e *Editor) Stroke(center [3]int, normal mgl32.Vec3) (volume.RegionMode, func([3]int, uint8, *volume.Grid) uint8) {
	if e.BrushValue != volume.Empty {
		center[0] += int(math.Round(float64(normal.X())))
		center[1] += int(math.Round(float64(normal.Y())))
		center[2] += int(math.Round(float64(normal.Z())))
	}

	r := int(math.Ceil(float64(e.BrushRadius)))
	r2 := e.BrushRadius * e.BrushRadius
	value := e.BrushValue
	return volume.BoxAround(center, r), func(p [3]int, v uint8, _ *volume.Grid) uint8 {
		dx, dy, dz := p[0]-center[0], p[1]-center[1], p[2]-center[2]
		if float32(dx*dx+dy*dy+dz*dz) > r2 {
			return v
		}
		return value
	}
}

// ApplyBrush applies a stroke to the model and remeshes it. It reports whether
// the model's material was swapped.
func (e *Editor) ApplyBrush(m *model.Model, center [3]int, normal mgl32.Vec3) bool {
	region, fn := e.Stroke(center, normal)
	return ModifyModel(m, region, fn)
}
