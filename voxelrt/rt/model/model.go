// Package model ties a voxel grid to its mesh and material and keeps them
// consistent across edits.
package model

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/voxscene/voxelrt/rt/core"
	"github.com/gekko3d/voxscene/voxelrt/rt/mesher"
	"github.com/gekko3d/voxscene/voxelrt/rt/palette"
	"github.com/gekko3d/voxscene/voxelrt/rt/volume"
)

// ErrEmptyModel is returned when a grid has neither a visible surface nor density.
var ErrEmptyModel = errors.New("model has no visible voxels")

// Context is shared by every model built from the same palette.
type Context struct {
	Palette *palette.Palette
	// Opaque is the material assigned to models without translucent voxels.
	Opaque *core.Material
	// Translucent parameterizes a material for a model with the given average IOR and thickness.
	Translucent func(ior, thickness float32) *core.Material
}

func NewContext(p *palette.Palette) *Context {
	opaque := palette.BuildMaterial(p)
	return &Context{
		Palette: p,
		Opaque:  opaque,
		Translucent: func(ior, thickness float32) *core.Material {
			return opaque.WithRefraction(ior, thickness)
		},
	}
}

type Model struct {
	Name      string
	Grid      *volume.Grid
	Context   *Context
	Transform *core.Transform

	Mesh     *core.Mesh
	Material *core.Material
	Density  *core.Texture

	AverageIOR      float32
	HasTranslucency bool
}

// New meshes the grid and assigns the context's opaque or translucent material.
func New(name string, g *volume.Grid, ctx *Context) (*Model, error) {
	m := &Model{
		Name:      name,
		Grid:      g,
		Context:   ctx,
		Transform: core.NewTransform(),
	}
	m.Apply(mesher.Mesh(g, ctx.Palette))
	if m.Mesh == nil && m.Density == nil {
		return nil, fmt.Errorf("model %q: %w", name, ErrEmptyModel)
	}
	return m, nil
}

// Thickness is the smallest model dimension in local units.
func (m *Model) Thickness() float32 {
	ext := m.Grid.Extent()
	return float32(min(ext[0], ext[1], ext[2])) * m.Grid.VoxelSize
}

// Apply installs a fresh mesher result. The material is replaced only when the
// model moves between opaque and translucent; otherwise the existing material
// object is kept. It reports whether the material was swapped.
func (m *Model) Apply(res mesher.Result) bool {
	m.Mesh = res.Mesh
	m.Density = res.Density
	m.AverageIOR = res.AverageIOR

	swapped := false
	switch {
	case m.Material == nil:
		swapped = true
	case res.HasIOR != m.HasTranslucency:
		swapped = true
	}
	m.HasTranslucency = res.HasIOR
	if swapped {
		if res.HasIOR {
			m.Material = m.Context.Translucent(res.AverageIOR, m.Thickness())
		} else {
			m.Material = m.Context.Opaque
		}
	}
	return swapped
}

// Remesh rebuilds the mesh from the current grid.
func (m *Model) Remesh() bool {
	return m.Apply(mesher.Mesh(m.Grid, m.Context.Palette))
}

// LocalBounds is the model's box in local space.
func (m *Model) LocalBounds() (mgl32.Vec3, mgl32.Vec3) {
	ext := m.Grid.Extent()
	half := mgl32.Vec3{float32(ext[0]), float32(ext[1]), float32(ext[2])}.Mul(0.5 * m.Grid.VoxelSize)
	return half.Mul(-1), half
}

// WorldBounds is a conservative world-space box around the model.
func (m *Model) WorldBounds() (mgl32.Vec3, mgl32.Vec3) {
	lo, hi := m.LocalBounds()
	o2w := m.Transform.ObjectToWorld()

	inf := float32(1e20)
	wMin := mgl32.Vec3{inf, inf, inf}
	wMax := mgl32.Vec3{-inf, -inf, -inf}
	for i := 0; i < 8; i++ {
		c := mgl32.Vec3{lo[0], lo[1], lo[2]}
		if i&1 != 0 {
			c[0] = hi[0]
		}
		if i&2 != 0 {
			c[1] = hi[1]
		}
		if i&4 != 0 {
			c[2] = hi[2]
		}
		wc := o2w.Mul4x1(c.Vec4(1.0)).Vec3()
		for k := 0; k < 3; k++ {
			wMin[k] = min(wMin[k], wc[k])
			wMax[k] = max(wMax[k], wc[k])
		}
	}
	return wMin, wMax
}
