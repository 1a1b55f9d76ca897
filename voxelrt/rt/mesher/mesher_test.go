package mesher

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/voxscene/voxelrt/rt/palette"
	"github.com/gekko3d/voxscene/voxelrt/rt/volume"
)

func glassElement(ior float32) palette.Element {
	e := palette.DefaultElement()
	e.Translucency = 1
	e.RefractionIndex = ior
	return e
}

// testPalette: 1 and 4 opaque, 2 and 3 glass, 5 a medium.
func testPalette() *palette.Palette {
	return palette.New([]palette.Element{
		palette.DefaultElement(),
		palette.DefaultElement(),
		glassElement(1.2),
		glassElement(1.4),
		palette.DefaultElement(),
		palette.Medium([4]float32{1, 1, 1, 1}, 0.5),
	})
}

func filled(extent [3]int, v uint8) *volume.Grid {
	g := volume.NewGrid(extent, volume.DefaultGridOptions())
	volume.FillBox(g, [3]int{0, 0, 0}, [3]int{extent[0] - 1, extent[1] - 1, extent[2] - 1}, v)
	return g
}

func TestSolidBoxIsSixQuads(t *testing.T) {
	g := filled([3]int{2, 3, 4}, 1)
	res := Mesh(g, testPalette())

	require.NotNil(t, res.Mesh)
	assert.Equal(t, 6, res.Mesh.QuadCount())
	assert.Equal(t, 24, res.Mesh.VertexCount())
	assert.False(t, res.HasIOR)
	assert.Nil(t, res.Density)

	minB, maxB := res.Mesh.AABB()
	assert.Equal(t, mgl32.Vec3{-1, -1.5, -2}, minB)
	assert.Equal(t, mgl32.Vec3{1, 1.5, 2}, maxB)
	assert.InDelta(t, 2*(2*3+3*4+2*4), res.Mesh.Area(), 1e-4)
}

func TestVoxelSizeScalesPositions(t *testing.T) {
	g := volume.NewGrid([3]int{4, 4, 4}, volume.GridOptions{MeshOuterFaces: true, VoxelSize: 0.5})
	volume.FillBox(g, [3]int{0, 0, 0}, [3]int{3, 3, 3}, 1)
	res := Mesh(g, nil)

	require.NotNil(t, res.Mesh)
	minB, maxB := res.Mesh.AABB()
	assert.Equal(t, mgl32.Vec3{-1, -1, -1}, minB)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, maxB)
}

func TestWindingMatchesNormals(t *testing.T) {
	g := volume.NewGrid([3]int{5, 5, 5}, volume.DefaultGridOptions())
	volume.FillSphere(g, mgl32.Vec3{2.5, 2.5, 2.5}, 2.2, 1)
	res := Mesh(g, nil)
	require.NotNil(t, res.Mesh)

	m := res.Mesh
	for i := 0; i < len(m.Indices); i += 3 {
		a, b, c := m.Positions[m.Indices[i]], m.Positions[m.Indices[i+1]], m.Positions[m.Indices[i+2]]
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Dot(m.Normals[m.Indices[i]]) <= 0 {
			t.Fatalf("Triangle %d is wound against its normal %v", i/3, m.Normals[m.Indices[i]])
		}
	}
}

func TestEmptyGridHasNoMesh(t *testing.T) {
	g := volume.NewGrid([3]int{4, 4, 4}, volume.DefaultGridOptions())
	res := Mesh(g, testPalette())
	assert.Nil(t, res.Mesh)
	assert.False(t, res.HasIOR)
	assert.Nil(t, res.Density)
}

func TestDegenerateGrid(t *testing.T) {
	g := volume.NewGrid([3]int{0, 4, 4}, volume.DefaultGridOptions())
	assert.Equal(t, Result{}, Mesh(g, testPalette()))
}

func TestDifferentIndicesDoNotMerge(t *testing.T) {
	g := volume.NewGrid([3]int{2, 1, 1}, volume.DefaultGridOptions())
	_ = g.Set(1, [3]int{0, 0, 0})
	_ = g.Set(4, [3]int{1, 0, 0})
	res := Mesh(g, testPalette())

	require.NotNil(t, res.Mesh)
	assert.Equal(t, 10, res.Mesh.QuadCount())

	same := filled([3]int{2, 1, 1}, 1)
	assert.Equal(t, 6, Mesh(same, testPalette()).Mesh.QuadCount())
}

func TestOpaqueNextToTranslucent(t *testing.T) {
	g := volume.NewGrid([3]int{2, 1, 1}, volume.DefaultGridOptions())
	_ = g.Set(1, [3]int{0, 0, 0})
	_ = g.Set(2, [3]int{1, 0, 0})
	res := Mesh(g, testPalette())

	require.NotNil(t, res.Mesh)
	// 10 outer faces plus the opaque face looking into the glass.
	assert.Equal(t, 11, res.Mesh.QuadCount())
	assert.True(t, res.HasIOR)
	assert.InDelta(t, 1.2, res.AverageIOR, 1e-6)
}

func TestTranslucentNeighbors(t *testing.T) {
	differ := volume.NewGrid([3]int{2, 1, 1}, volume.DefaultGridOptions())
	_ = differ.Set(2, [3]int{0, 0, 0})
	_ = differ.Set(3, [3]int{1, 0, 0})
	assert.Equal(t, 12, Mesh(differ, testPalette()).Mesh.QuadCount())

	same := filled([3]int{2, 1, 1}, 2)
	assert.Equal(t, 6, Mesh(same, testPalette()).Mesh.QuadCount())
}

func TestAverageIORIsArithmeticMeanOverCells(t *testing.T) {
	g := volume.NewGrid([3]int{3, 1, 1}, volume.DefaultGridOptions())
	_ = g.Set(2, [3]int{0, 0, 0})
	_ = g.Set(2, [3]int{1, 0, 0})
	_ = g.Set(3, [3]int{2, 0, 0})
	res := Mesh(g, testPalette())
	assert.True(t, res.HasIOR)
	assert.InDelta(t, (1.2+1.2+1.4)/3, res.AverageIOR, 1e-6)
}

func TestUnpaddedGridSkipsBoundaryFaces(t *testing.T) {
	g := volume.NewGrid([3]int{3, 3, 3}, volume.GridOptions{MeshOuterFaces: false})
	volume.FillBox(g, [3]int{0, 0, 0}, [3]int{2, 2, 2}, 1)
	_ = g.Set(volume.Empty, [3]int{1, 1, 1})

	res := Mesh(g, nil)
	require.NotNil(t, res.Mesh)
	// Only the faces around the hollow center are visible.
	assert.Equal(t, 6, res.Mesh.QuadCount())
	minB, maxB := res.Mesh.AABB()
	assert.Equal(t, mgl32.Vec3{-0.5, -0.5, -0.5}, minB)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, maxB)
}

func TestUVsAddressQuadIndex(t *testing.T) {
	p := palette.New(make([]palette.Element, 20))
	g := filled([3]int{1, 1, 1}, 17)
	res := Mesh(g, p)
	require.NotNil(t, res.Mesh)
	for _, uv := range res.Mesh.UVs {
		assert.Equal(t, palette.AtlasUV(17), uv)
	}
}

func TestDensityOnlyModel(t *testing.T) {
	g := filled([3]int{2, 2, 3}, 5)
	_ = g.Set(volume.Empty, [3]int{0, 0, 0})
	res := Mesh(g, testPalette())

	assert.Nil(t, res.Mesh, "density cells are not meshed")
	require.NotNil(t, res.Density)
	assert.Equal(t, uint32(2), res.Density.Width)
	assert.Equal(t, uint32(2), res.Density.Height)
	assert.Equal(t, uint32(3), res.Density.Depth)

	values := res.Density.Float32s()
	require.Len(t, values, 12)
	assert.Equal(t, float32(0), values[0])
	assert.Equal(t, float32(5), values[1])
}

func TestNilPaletteIsOpaque(t *testing.T) {
	g := filled([3]int{1, 1, 1}, 2)
	c := Classify(g, nil)
	assert.True(t, c.NeedsMeshing)
	assert.False(t, c.HasIOR)
	assert.Nil(t, DensityVolume(g, nil))
}

func TestClassifyVisibility(t *testing.T) {
	g := volume.NewGrid([3]int{4, 1, 1}, volume.GridOptions{})
	for x, v := range []uint8{0, 1, 2, 5} {
		_ = g.Set(v, [3]int{x, 0, 0})
	}
	c := Classify(g, testPalette())
	var got []Visibility
	for _, v := range c.Voxels {
		got = append(got, v.Visibility)
	}
	assert.Equal(t, []Visibility{Empty, Opaque, Translucent, Empty}, got)
	assert.Equal(t, "translucent", Translucent.String())
}
