package core

import "github.com/go-gl/mathgl/mgl32"

// Mesh is indexed triangle-list geometry.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// QuadCount assumes the mesh was built from quads of 4 vertices and 6 indices.
func (m *Mesh) QuadCount() int {
	return len(m.Indices) / 6
}

// AABB returns the bounds of all positions. An empty mesh returns zero vectors.
func (m *Mesh) AABB() (mgl32.Vec3, mgl32.Vec3) {
	if len(m.Positions) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	minB, maxB := m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for i := 0; i < 3; i++ {
			minB[i] = min(minB[i], p[i])
			maxB[i] = max(maxB[i], p[i])
		}
	}
	return minB, maxB
}

// Area sums the area of every triangle.
func (m *Mesh) Area() float32 {
	area := float32(0)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.Positions[m.Indices[i]]
		b := m.Positions[m.Indices[i+1]]
		c := m.Positions[m.Indices[i+2]]
		area += b.Sub(a).Cross(c.Sub(a)).Len() * 0.5
	}
	return area
}
