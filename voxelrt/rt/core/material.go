package core

// Material is the parameter bundle produced for a meshed model. Every property
// is either a scalar or a texture addressed by the palette atlas UVs. When a
// texture is present the matching scalar acts as a multiplier and is 1.
type Material struct {
	Label string

	BaseColor        [4]float32 // linear RGBA
	BaseColorTexture *Texture

	Emissive        [4]float32
	EmissiveTexture *Texture

	Roughness                float32
	Metalness                float32
	MetallicRoughnessTexture *Texture

	// Transparency is the specular transmission factor.
	Transparency        float32
	TransparencyTexture *Texture

	// IOR and Thickness are only meaningful for translucent models.
	IOR       float32
	Thickness float32
}

func DefaultMaterial() *Material {
	return &Material{
		BaseColor: [4]float32{1, 1, 1, 1},
		Emissive:  [4]float32{0, 0, 0, 1},
		Roughness: 0.5,
		Metalness: 0.0,
		IOR:       1.5,
	}
}

// Clone copies the parameters. Textures are shared.
func (m *Material) Clone() *Material {
	c := *m
	return &c
}

// WithRefraction returns a copy parameterized for a translucent model.
func (m *Material) WithRefraction(ior, thickness float32) *Material {
	c := m.Clone()
	c.IOR = ior
	c.Thickness = thickness
	return c
}

func (m *Material) IsTranslucent() bool {
	return m.Transparency > 0 || m.TransparencyTexture != nil
}

// Textures lists the textures referenced by the material in a stable order.
func (m *Material) Textures() []*Texture {
	var out []*Texture
	for _, t := range []*Texture{m.BaseColorTexture, m.EmissiveTexture, m.MetallicRoughnessTexture, m.TransparencyTexture} {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}
