package mesher

import "github.com/gekko3d/voxscene/voxelrt/rt/volume"

type Visibility uint8

const (
	Empty Visibility = iota
	Opaque
	Translucent
)

func (v Visibility) String() string {
	switch v {
	case Empty:
		return "empty"
	case Opaque:
		return "opaque"
	case Translucent:
		return "translucent"
	}
	return "unknown"
}

// PaletteView is the part of a palette the mesher reads. *palette.Palette implements it.
type PaletteView interface {
	IndexOfRefraction(index uint8) (float32, bool)
	Density(index uint8) (float32, bool)
}

// VisibleVoxel pairs a palette index with its derived visibility.
type VisibleVoxel struct {
	Index      uint8
	Visibility Visibility
}

// Classification is the per-cell visibility of a whole raw grid.
type Classification struct {
	Voxels       []VisibleVoxel
	AverageIOR   float32
	HasIOR       bool
	NeedsMeshing bool
}

// Classify derives visibility for every raw cell, padding included.
// Translucent cells take precedence over density; density-only cells are
// not meshed. A nil palette makes every non-empty cell opaque.
func Classify(g *volume.Grid, p PaletteView) Classification {
	raw := g.Raw()
	out := Classification{Voxels: make([]VisibleVoxel, len(raw))}

	var iorSum float32
	iorCount := 0
	for i, v := range raw {
		vis := Opaque
		switch {
		case v == volume.Empty:
			vis = Empty
		case p == nil:
		default:
			if ior, ok := p.IndexOfRefraction(v); ok {
				vis = Translucent
				iorSum += ior
				iorCount++
			} else if _, ok := p.Density(v); ok {
				vis = Empty
			}
		}
		if vis != Empty {
			out.NeedsMeshing = true
		}
		out.Voxels[i] = VisibleVoxel{Index: v, Visibility: vis}
	}
	if iorCount > 0 {
		out.AverageIOR = iorSum / float32(iorCount)
		out.HasIOR = true
	}
	return out
}

// faceNeedsMesh decides whether the face of voxel toward neighbor is visible.
func faceNeedsMesh(voxel, neighbor VisibleVoxel) bool {
	switch voxel.Visibility {
	case Opaque:
		return neighbor.Visibility != Opaque
	case Translucent:
		switch neighbor.Visibility {
		case Empty:
			return true
		case Translucent:
			return voxel.Index != neighbor.Index
		}
	}
	return false
}
