package palette

import "strconv"

// VoxOptions tunes how MagicaVoxel materials map onto elements.
type VoxOptions struct {
	// DiffuseRoughness replaces the roughness of "_diffuse" materials, which carry none.
	DiffuseRoughness float32
	// EmissionStrength scales "_emit" * ("_flux" + 1).
	EmissionStrength float32
}

func DefaultVoxOptions() VoxOptions {
	return VoxOptions{
		DiffuseRoughness: 0.8,
		EmissionStrength: 2.0,
	}
}

// VoxMaterial is the property dictionary of one MATL chunk.
type VoxMaterial map[string]string

func (m VoxMaterial) float(key string) (float32, bool) {
	s, ok := m[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, false
	}
	return float32(v), true
}

func (m VoxMaterial) floatOr(key string, fallback float32) float32 {
	if v, ok := m.float(key); ok {
		return v
	}
	return fallback
}

// FromVox converts a MagicaVoxel palette and its MATL chunks, keyed by palette index.
// Index 0 is converted like any other slot so it does not skew property
// classification, but it is never rendered.
func FromVox(colors [Size][4]byte, materials map[int]VoxMaterial, opts VoxOptions) *Palette {
	elements := make([]Element, Size)
	for i := 0; i < Size; i++ {
		c := colors[i]
		e := Element{
			Color: [4]float32{
				float32(c[0]) / 255,
				float32(c[1]) / 255,
				float32(c[2]) / 255,
				float32(c[3]) / 255,
			},
			RefractionIndex: DefaultElement().RefractionIndex,
		}

		mat := materials[i]
		switch mat["_type"] {
		case "_diffuse", "":
			e.Roughness = opts.DiffuseRoughness
		case "_glass":
			e.Roughness = mat.floatOr("_rough", 0)
			// MagicaVoxel stores the refractive index minus one.
			e.RefractionIndex = 1 + mat.floatOr("_ior", 0.5)
		case "_media", "_cloud":
			d := mat.floatOr("_d", 0)
			e.Density = &d
		default:
			e.Roughness = mat.floatOr("_rough", 0)
		}
		e.Metalness = mat.floatOr("_metal", 0)
		e.Translucency = mat.floatOr("_trans", mat.floatOr("_alpha", 0))
		if emit, ok := mat.float("_emit"); ok {
			e.Emission = emit * (mat.floatOr("_flux", 0) + 1) * opts.EmissionStrength
		}
		elements[i] = e
	}
	return New(elements)
}
