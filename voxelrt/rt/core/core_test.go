package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformRoundTrip(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{3, -2, 5}
	tr.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	tr.Scale = mgl32.Vec3{2, 2, 2}

	p := mgl32.Vec3{1, 2, 3}
	back := tr.ToLocal(tr.ToWorld(p))
	for i := 0; i < 3; i++ {
		if diff := back[i] - p[i]; diff > 1e-4 || diff < -1e-4 {
			t.Fatalf("Round trip mismatch: %v -> %v", p, back)
		}
	}

	// Directions ignore translation but not rotation or scale.
	d := tr.ToLocalDir(mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0.0, d.X(), 1e-5)
	assert.InDelta(t, 0.0, d.Y(), 1e-5)
	assert.InDelta(t, 0.5, d.Z(), 1e-5)
}

func TestMeshAABBAndCounts(t *testing.T) {
	m := &Mesh{
		Positions: []mgl32.Vec3{{-1, 0, 0}, {1, 0, 0}, {1, 2, 0}, {-1, 2, 0}},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
	minB, maxB := m.AABB()
	assert.Equal(t, mgl32.Vec3{-1, 0, 0}, minB)
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, maxB)
	assert.Equal(t, 1, m.QuadCount())
	assert.Equal(t, 2, m.TriangleCount())
	assert.InDelta(t, 4.0, m.Area(), 1e-5)

	empty := &Mesh{}
	minB, maxB = empty.AABB()
	assert.Equal(t, mgl32.Vec3{}, minB)
	assert.Equal(t, mgl32.Vec3{}, maxB)
}

func TestTextureImageConversion(t *testing.T) {
	tex := NewTexture("color", 2, 1, 1, TextureFormatRGBA8Unorm, []byte{255, 0, 0, 255, 0, 255, 0, 128})
	img, err := tex.Image(0)
	require.NoError(t, err)
	r, g, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0), g)

	_, err = tex.Image(1)
	assert.Error(t, err)
}

func TestTextureFloatDecode(t *testing.T) {
	raw := []byte{0, 0, 0x80, 0x3f, 0, 0, 0, 0x40} // 1.0, 2.0
	tex := NewTexture("density", 1, 1, 2, TextureFormatR32Float, raw)
	assert.Equal(t, []float32{1, 2}, tex.Float32s())
	assert.Nil(t, tex.Uint16s())

	img, err := tex.Image(1)
	require.NoError(t, err)
	y, _, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), y, "values above 1 clamp to white")
}

func TestNewTexturePanicsOnSizeMismatch(t *testing.T) {
	assert.Panics(t, func() {
		NewTexture("bad", 16, 16, 1, TextureFormatRGBA8Unorm, make([]byte, 10))
	})
}

func TestMaterialWithRefraction(t *testing.T) {
	base := DefaultMaterial()
	base.Transparency = 1
	glass := base.WithRefraction(1.3, 4)

	assert.NotSame(t, base, glass)
	assert.Equal(t, float32(1.5), base.IOR)
	assert.Equal(t, float32(1.3), glass.IOR)
	assert.Equal(t, float32(4), glass.Thickness)
	assert.True(t, glass.IsTranslucent())
	assert.False(t, DefaultMaterial().IsTranslucent())
}
