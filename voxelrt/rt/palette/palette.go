// Package palette describes the 256 voxel materials of a model and derives
// the packed textures and material parameters used to shade its mesh.
package palette

import (
	"slices"

	"github.com/chewxy/math32"
)

// Size is the number of palette slots. Index 0 is the empty voxel.
const Size = 256

type Palette struct {
	elements [Size]Element

	Emission     Property
	Metalness    Property
	Roughness    Property
	Transmission Property

	indicesOfRefraction [Size]*float32
	densities           [Size]*float32
}

// New builds a palette from up to 256 elements, padding the rest with
// DefaultElement. Properties are classified over the supplied elements only.
func New(elements []Element) *Palette {
	if len(elements) > Size {
		elements = elements[:Size]
	}
	sample := elements
	if len(sample) == 0 {
		sample = []Element{DefaultElement()}
	}
	emission := make([]float32, len(sample))
	roughness := make([]float32, len(sample))
	metalness := make([]float32, len(sample))
	translucency := make([]float32, len(sample))
	for i, e := range sample {
		emission[i] = e.Emission
		roughness[i] = e.Roughness
		metalness[i] = e.Metalness
		translucency[i] = e.Translucency
	}

	p := &Palette{
		Emission:     Classify(emission),
		Metalness:    Classify(metalness),
		Roughness:    Classify(roughness),
		Transmission: Classify(translucency),
	}
	for i := range p.elements {
		if i < len(elements) {
			p.elements[i] = elements[i]
		} else {
			p.elements[i] = DefaultElement()
		}
		e := p.elements[i]
		if e.Translucency > 0 {
			ior := e.RefractionIndex
			p.indicesOfRefraction[i] = &ior
		}
		if e.Density != nil {
			d := *e.Density
			p.densities[i] = &d
		}
	}
	return p
}

// FromColors builds a palette of default elements in the given colors.
// colors[0] lands at index 1, since index 0 is the empty voxel.
func FromColors(colors [][4]float32) *Palette {
	elements := make([]Element, 1, len(colors)+1)
	elements[0] = DefaultElement()
	for _, c := range colors {
		elements = append(elements, WithColor(c))
	}
	return New(elements)
}

// Stop pins an element at a palette index for FromGradient.
type Stop struct {
	Index   uint8
	Element Element
}

// FromGradient fills the palette by interpolating linearly between stops.
// Indices before the first stop keep the default element; the last stop
// extends to the end of the palette.
func FromGradient(stops []Stop) *Palette {
	sorted := slices.Clone(stops)
	slices.SortStableFunc(sorted, func(a, b Stop) int {
		return int(a.Index) - int(b.Index)
	})

	elements := make([]Element, Size)
	for i := range elements {
		elements[i] = DefaultElement()
	}
	for n, stop := range sorted {
		if n+1 == len(sorted) {
			for i := int(stop.Index); i < Size; i++ {
				elements[i] = stop.Element
			}
			break
		}
		next := sorted[n+1]
		distance := float32(next.Index) - float32(stop.Index)
		for i := int(stop.Index); i < int(next.Index); i++ {
			fraction := (float32(i) - float32(stop.Index)) / distance
			elements[i] = stop.Element.Lerp(next.Element, fraction)
		}
	}
	return New(elements)
}

func (p *Palette) Element(index uint8) Element {
	return p.elements[index]
}

func (p *Palette) Elements() []Element {
	return p.elements[:]
}

// IndexOfRefraction is set only for elements with translucency.
func (p *Palette) IndexOfRefraction(index uint8) (float32, bool) {
	if ior := p.indicesOfRefraction[index]; ior != nil {
		return *ior, true
	}
	return 0, false
}

func (p *Palette) IndicesOfRefraction() [Size]*float32 {
	return p.indicesOfRefraction
}

func (p *Palette) Density(index uint8) (float32, bool) {
	if d := p.densities[index]; d != nil {
		return *d, true
	}
	return 0, false
}

func (p *Palette) Densities() [Size]*float32 {
	return p.densities
}

// HasEmission reports whether an emissive texture is needed.
func (p *Palette) HasEmission() bool {
	v, constant := p.Emission.Value()
	return !constant || v > 0
}

// Luminance of an element's color, used for previews and sorting.
func (e Element) Luminance() float32 {
	return math32.Max(0, 0.2126*e.Color[0]+0.7152*e.Color[1]+0.0722*e.Color[2])
}
