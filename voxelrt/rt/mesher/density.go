package mesher

import (
	"encoding/binary"
	"math"

	"github.com/gekko3d/voxscene/voxelrt/rt/core"
	"github.com/gekko3d/voxscene/voxelrt/rt/volume"
)

// DensityScale converts palette densities into the density volume's units.
const DensityScale = 10

// DensityVolume returns an R32F 3D texture over the model extent (padding stripped)
// holding density*DensityScale per cell, or nil when no cell has density.
func DensityVolume(g *volume.Grid, p PaletteView) *core.Texture {
	if p == nil || g.IsDegenerate() {
		return nil
	}
	ext := g.Extent()
	texels := make([]byte, 0, ext[0]*ext[1]*ext[2]*4)
	found := false
	g.ForEach(func(_ [3]int, v uint8) {
		d := float32(0)
		if v != volume.Empty {
			if density, ok := p.Density(v); ok {
				d = density * DensityScale
				found = true
			}
		}
		texels = binary.LittleEndian.AppendUint32(texels, math.Float32bits(d))
	})
	if !found {
		return nil
	}
	return core.NewTexture("density", uint32(ext[0]), uint32(ext[1]), uint32(ext[2]), core.TextureFormatR32Float, texels)
}
