package palette

import "fmt"

// Epsilon is the tolerance under which a property is considered constant.
const Epsilon = 0.001

// Property records whether a material channel is uniform across the palette.
type Property struct {
	varies bool
	value  float32
}

func Constant(v float32) Property {
	return Property{value: v}
}

func VariesPerElement() Property {
	return Property{varies: true}
}

func (p Property) Varies() bool {
	return p.varies
}

// Value returns the constant value, or false when the property varies.
func (p Property) Value() (float32, bool) {
	return p.value, !p.varies
}

func (p Property) String() string {
	if p.varies {
		return "VariesPerElement"
	}
	return fmt.Sprintf("Constant(%g)", p.value)
}

// Classify reports Constant(max) when every value lies within Epsilon, otherwise VariesPerElement.
func Classify(values []float32) Property {
	if len(values) == 0 {
		return Constant(0)
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi-lo < Epsilon {
		return Constant(hi)
	}
	return VariesPerElement()
}
