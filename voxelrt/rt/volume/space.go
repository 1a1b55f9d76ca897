package volume

import (
	"github.com/go-gl/mathgl/mgl32"
)

// The model's local origin is its geometric center, so voxel (0,0,0) starts at -extent/2.

func (g *Grid) halfExtents() mgl32.Vec3 {
	return mgl32.Vec3{float32(g.extent[0]), float32(g.extent[1]), float32(g.extent[2])}.Mul(0.5)
}

// LocalToVoxelSpace converts a point in the model's local space to a voxel coordinate.
// The result is truncated toward zero and may lie outside the model.
func (g *Grid) LocalToVoxelSpace(local mgl32.Vec3) [3]int {
	p := local.Mul(1.0 / g.VoxelSize).Add(g.halfExtents())
	return [3]int{int(p.X()), int(p.Y()), int(p.Z())}
}

// GlobalToVoxelSpace applies worldToObject (see core.Transform.WorldToObject)
// and then converts the local point to voxel space.
func (g *Grid) GlobalToVoxelSpace(global mgl32.Vec3, worldToObject mgl32.Mat4) [3]int {
	local := worldToObject.Mul4x1(global.Vec4(1.0)).Vec3()
	return g.LocalToVoxelSpace(local)
}

// VoxelToLocalSpace returns the minimum corner of a voxel in local space.
func (g *Grid) VoxelToLocalSpace(voxel [3]int) mgl32.Vec3 {
	v := mgl32.Vec3{float32(voxel[0]), float32(voxel[1]), float32(voxel[2])}
	return v.Sub(g.halfExtents()).Mul(g.VoxelSize)
}

// VoxelCenterToLocalSpace returns the center of a voxel in local space.
func (g *Grid) VoxelCenterToLocalSpace(voxel [3]int) mgl32.Vec3 {
	return g.VoxelToLocalSpace(voxel).Add(mgl32.Vec3{0.5, 0.5, 0.5}.Mul(g.VoxelSize))
}

// VoxelToGlobalSpace places the center of a voxel in world space.
func (g *Grid) VoxelToGlobalSpace(voxel [3]int, objectToWorld mgl32.Mat4) mgl32.Vec3 {
	local := g.VoxelCenterToLocalSpace(voxel)
	return objectToWorld.Mul4x1(local.Vec4(1.0)).Vec3()
}
