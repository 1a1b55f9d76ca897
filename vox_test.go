package voxscene

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/voxscene/voxelrt/rt/volume"
)

func chunk(id string, content []byte, children ...[]byte) []byte {
	var kids []byte
	for _, c := range children {
		kids = append(kids, c...)
	}
	var b bytes.Buffer
	b.WriteString(id)
	binary.Write(&b, binary.LittleEndian, int32(len(content)))
	binary.Write(&b, binary.LittleEndian, int32(len(kids)))
	b.Write(content)
	b.Write(kids)
	return b.Bytes()
}

func u32s(vs ...uint32) []byte {
	var b bytes.Buffer
	for _, v := range vs {
		binary.Write(&b, binary.LittleEndian, v)
	}
	return b.Bytes()
}

func voxString(s string) []byte {
	return append(u32s(uint32(len(s))), s...)
}

func matl(id int, props ...string) []byte {
	out := u32s(uint32(id), uint32(len(props)/2))
	for _, p := range props {
		out = append(out, voxString(p)...)
	}
	return out
}

func voxStream(children ...[]byte) []byte {
	var b bytes.Buffer
	b.WriteString(VOXMagicNumber)
	binary.Write(&b, binary.LittleEndian, int32(150))
	b.Write(chunk("MAIN", nil, children...))
	return b.Bytes()
}

func sampleVox() []byte {
	rgba := make([]byte, 256*4)
	// Entry 0 is palette index 1.
	copy(rgba[0:4], []byte{255, 0, 0, 255})
	copy(rgba[4:8], []byte{0, 0, 255, 128})
	return voxStream(
		chunk("SIZE", u32s(2, 3, 4)),
		chunk("XYZI", append(u32s(2), 0, 0, 0, 1, 1, 2, 3, 2)),
		chunk("nTRN", []byte{1, 2, 3, 4}),
		chunk("RGBA", rgba),
		chunk("MATL", matl(2, "_type", "_glass", "_ior", "0.3", "_trans", "0.5")),
	)
}

func TestReadVox(t *testing.T) {
	vf, err := ReadVox(bytes.NewReader(sampleVox()))
	require.NoError(t, err)

	assert.Equal(t, 150, vf.Version)
	require.Len(t, vf.Models, 1)
	m := vf.Models[0]
	assert.Equal(t, uint32(2), m.SizeX)
	assert.Equal(t, uint32(4), m.SizeZ)
	assert.Len(t, m.Voxels, 2)

	assert.Equal(t, [4]byte{255, 0, 0, 255}, vf.Colors[1])
	assert.Equal(t, [4]byte{0, 0, 255, 128}, vf.Colors[2])
	assert.Equal(t, [4]byte{255, 255, 255, 255}, vf.Colors[3], "unset slots stay white")

	require.Len(t, vf.Materials, 1)
	assert.Equal(t, 2, vf.Materials[0].ID)
	assert.Equal(t, "_glass", vf.Materials[0].Property["_type"])
}

func TestVoxModelConvertsToYUp(t *testing.T) {
	vf, err := ReadVox(bytes.NewReader(sampleVox()))
	require.NoError(t, err)
	m := vf.Models[0]

	assert.Equal(t, [3]int{2, 4, 3}, m.Extent())
	// x mirrors, z becomes up.
	assert.Equal(t, [3]int{1, 0, 0}, m.ToGridCoord(Voxel{X: 0, Y: 0, Z: 0}))
	assert.Equal(t, [3]int{0, 3, 2}, m.ToGridCoord(Voxel{X: 1, Y: 2, Z: 3}))

	g := m.Grid(volume.DefaultGridOptions())
	assert.Equal(t, [3]int{2, 4, 3}, g.Extent())
	assert.Equal(t, 2, g.Count())

	v, err := g.Get([3]int{1, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, uint8(1), v)
	v, err = g.Get([3]int{0, 3, 2})
	require.NoError(t, err)
	assert.Equal(t, uint8(2), v)
}

func TestVoxPalette(t *testing.T) {
	vf, err := ReadVox(bytes.NewReader(sampleVox()))
	require.NoError(t, err)
	p := vf.Palette(Default().VoxOptions())

	red := p.Element(1)
	assert.Equal(t, float32(1), red.Color[0])
	assert.Equal(t, float32(0.8), red.Roughness)

	ior, ok := p.IndexOfRefraction(2)
	require.True(t, ok, "glass slot should be translucent")
	assert.InDelta(t, 1.3, ior, 1e-6)
	assert.InDelta(t, 0.5, p.Element(2).Translucency, 1e-6)

	_, ok = p.IndexOfRefraction(1)
	assert.False(t, ok)
}

func TestReadVoxRejectsMalformedInput(t *testing.T) {
	tests := map[string][]byte{
		"magic":        []byte("RIFF\x00\x00\x00\x00"),
		"truncated":    []byte("VOX "),
		"no models":    voxStream(chunk("RGBA", make([]byte, 1024))),
		"xyzi first":   voxStream(chunk("XYZI", u32s(0))),
		"out of range": voxStream(chunk("SIZE", u32s(1, 1, 1)), chunk("XYZI", append(u32s(1), 1, 0, 0, 1))),
		"short xyzi":   voxStream(chunk("SIZE", u32s(2, 2, 2)), chunk("XYZI", u32s(5))),
		"short size":   voxStream(chunk("SIZE", u32s(2))),
		"zero size":    voxStream(chunk("SIZE", u32s(2, 0, 2)), chunk("XYZI", u32s(0))),
		"huge size":    voxStream(chunk("SIZE", u32s(1<<20, 1<<20, 1<<20)), chunk("XYZI", u32s(0))),
		"over 256":     voxStream(chunk("SIZE", u32s(257, 1, 1)), chunk("XYZI", u32s(0))),
		"bad matl":     voxStream(chunk("SIZE", u32s(1, 1, 1)), chunk("XYZI", u32s(0)), chunk("MATL", append(u32s(1, 1), u32s(99)...))),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadVox(bytes.NewReader(data))
			assert.ErrorIs(t, err, ErrInvalidVox)
		})
	}
}

func TestLoadVoxFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.vox")
	require.NoError(t, os.WriteFile(path, sampleVox(), 0644))

	vf, err := LoadVoxFile(path)
	require.NoError(t, err)
	assert.Len(t, vf.Models, 1)

	_, err = LoadVoxFile(filepath.Join(t.TempDir(), "missing.vox"))
	assert.Error(t, err)
}

func TestMultipleModels(t *testing.T) {
	data := voxStream(
		chunk("PACK", u32s(2)),
		chunk("SIZE", u32s(1, 1, 1)),
		chunk("XYZI", append(u32s(1), 0, 0, 0, 5)),
		chunk("SIZE", u32s(3, 1, 1)),
		chunk("XYZI", append(u32s(1), 2, 0, 0, 6)),
	)
	vf, err := ReadVox(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, vf.Models, 2)
	assert.Equal(t, byte(6), vf.Models[1].Voxels[0].ColorIndex)
	assert.Equal(t, [3]int{0, 0, 0}, vf.Models[1].ToGridCoord(vf.Models[1].Voxels[0]))
}
