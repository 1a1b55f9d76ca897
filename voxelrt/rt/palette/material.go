package palette

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/voxscene/voxelrt/rt/core"
)

// AtlasSize is the edge of the square texture atlas, one texel per palette index.
const AtlasSize = 16

// AtlasUV addresses the center of the texel for index, so bilinear filtering
// never reads a neighboring entry.
func AtlasUV(index uint8) mgl32.Vec2 {
	return mgl32.Vec2{
		(float32(index%AtlasSize) + 0.5) / AtlasSize,
		(float32(index/AtlasSize) + 0.5) / AtlasSize,
	}
}

func unorm8(v float32) uint8 {
	return uint8(math32.Round(math32.Min(math32.Max(v, 0), 1) * math.MaxUint8))
}

func unorm16(v float32) uint16 {
	return uint16(math32.Min(math32.Max(v, 0), 1) * math.MaxUint16)
}

// BuildMaterial packs the palette into atlas textures. The base color texture
// is always present; the others only when a property needs it. Scalars of
// textured channels are 1 so the texture value passes through.
func BuildMaterial(p *Palette) *core.Material {
	hasEmission := p.HasEmission()
	hasRoughnessMetalness := p.Roughness.Varies() || p.Metalness.Varies()
	hasTranslucency := p.Transmission.Varies()

	m := core.DefaultMaterial()
	m.Label = "palette"
	m.BaseColor = [4]float32{1, 1, 1, 1}
	m.BaseColorTexture = colorTexture(p)

	if hasEmission {
		m.Emissive = [4]float32{1, 1, 1, 1}
		m.EmissiveTexture = emissionTexture(p)
	} else {
		m.Emissive = [4]float32{0, 0, 0, 1}
	}

	if hasRoughnessMetalness {
		m.Roughness = 1
		m.Metalness = 1
		m.MetallicRoughnessTexture = metallicRoughnessTexture(p)
	} else {
		m.Roughness, _ = p.Roughness.Value()
		m.Metalness, _ = p.Metalness.Value()
	}

	if hasTranslucency {
		m.Transparency = 1
		m.TransparencyTexture = transmissionTexture(p)
	} else {
		m.Transparency, _ = p.Transmission.Value()
	}
	return m
}

func colorTexture(p *Palette) *core.Texture {
	texels := make([]byte, 0, Size*4)
	for _, e := range p.elements {
		for _, c := range e.Color {
			texels = append(texels, unorm8(c))
		}
	}
	return core.NewTexture("material_color", AtlasSize, AtlasSize, 1, core.TextureFormatRGBA8UnormSrgb, texels)
}

func emissionTexture(p *Palette) *core.Texture {
	texels := make([]byte, 0, Size*16)
	for _, e := range p.elements {
		for _, c := range e.Color {
			texels = binary.LittleEndian.AppendUint32(texels, math.Float32bits(c*e.Emission))
		}
	}
	return core.NewTexture("material_emission", AtlasSize, AtlasSize, 1, core.TextureFormatRGBA32Float, texels)
}

// metallicRoughnessTexture follows the glTF packing: roughness in G, metalness in B.
func metallicRoughnessTexture(p *Palette) *core.Texture {
	texels := make([]byte, 0, Size*8)
	for _, e := range p.elements {
		for _, c := range [4]float32{0, e.Roughness, e.Metalness, 0} {
			texels = binary.LittleEndian.AppendUint16(texels, unorm16(c))
		}
	}
	return core.NewTexture("material_metallic_roughness", AtlasSize, AtlasSize, 1, core.TextureFormatRGBA16Unorm, texels)
}

func transmissionTexture(p *Palette) *core.Texture {
	texels := make([]byte, 0, Size*2)
	for _, e := range p.elements {
		texels = binary.LittleEndian.AppendUint16(texels, unorm16(e.Translucency))
	}
	return core.NewTexture("material_specular_transmission", AtlasSize, AtlasSize, 1, core.TextureFormatR16Unorm, texels)
}
