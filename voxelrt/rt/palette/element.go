package palette

// Element is the physical description of one palette index.
type Element struct {
	// Color is linear RGBA in [0, 1].
	Color [4]float32
	// Emission is multiplied by Color to give the emissive color.
	Emission float32
	// Roughness is perceptual roughness in [0, 1].
	Roughness float32
	Metalness float32
	// Translucency is 0 for opaque and 1 for fully transmissive voxels.
	Translucency float32
	// RefractionIndex only has an effect when Translucency > 0.
	RefractionIndex float32
	// Density marks the element as a participating medium (cloud, smoke).
	// Such voxels are not meshed and feed the density volume instead.
	Density *float32
}

func DefaultElement() Element {
	return Element{
		Color:           [4]float32{1, 0, 0, 1},
		Emission:        0,
		Roughness:       0.5,
		Metalness:       0,
		Translucency:    0,
		RefractionIndex: 1.5,
	}
}

// WithColor returns the default element in the given color.
func WithColor(c [4]float32) Element {
	e := DefaultElement()
	e.Color = c
	return e
}

// Medium returns an element that only contributes density.
func Medium(color [4]float32, density float32) Element {
	e := WithColor(color)
	e.Density = &density
	return e
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Lerp interpolates every scalar property. Density is taken from e when t < 0.5, otherwise from other.
func (e Element) Lerp(other Element, t float32) Element {
	out := Element{
		Emission:        lerp(e.Emission, other.Emission, t),
		Roughness:       lerp(e.Roughness, other.Roughness, t),
		Metalness:       lerp(e.Metalness, other.Metalness, t),
		Translucency:    lerp(e.Translucency, other.Translucency, t),
		RefractionIndex: lerp(e.RefractionIndex, other.RefractionIndex, t),
		Density:         e.Density,
	}
	for i := range out.Color {
		out.Color[i] = lerp(e.Color[i], other.Color[i], t)
	}
	if t >= 0.5 {
		out.Density = other.Density
	}
	if e.Density != nil && other.Density != nil {
		d := lerp(*e.Density, *other.Density, t)
		out.Density = &d
	}
	return out
}
