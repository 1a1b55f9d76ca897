package voxscene

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gekko3d/voxscene/voxelrt/rt/palette"
	"github.com/gekko3d/voxscene/voxelrt/rt/volume"
)

const (
	VOXMagicNumber = "VOX "

	// maxChunkSize rejects corrupt headers before allocating.
	maxChunkSize = 1 << 28

	// maxModelSize is MagicaVoxel's per-axis model limit.
	maxModelSize = 256
)

// ErrInvalidVox is wrapped by every structural problem found while reading a .vox stream.
var ErrInvalidVox = errors.New("invalid vox data")

type Voxel struct {
	X, Y, Z, ColorIndex byte
}

// VoxModel is one model in MagicaVoxel's Z-up coordinates.
type VoxModel struct {
	SizeX, SizeY, SizeZ uint32
	Voxels              []Voxel
}

// VoxPalette is indexed by palette index; slot 0 is unused by MagicaVoxel.
type VoxPalette [palette.Size][4]byte

type VoxMaterial struct {
	ID       int
	Property palette.VoxMaterial
}

type VoxFile struct {
	Version   int
	Models    []VoxModel
	Colors    VoxPalette
	Materials []VoxMaterial
}

func LoadVoxFile(filename string) (*VoxFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	vf, err := ReadVox(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return vf, nil
}

// ReadVox parses a MagicaVoxel stream. Scene graph and layer chunks are skipped.
func ReadVox(r io.Reader) (*VoxFile, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: reading magic: %v", ErrInvalidVox, err)
	}
	if string(magic[:]) != VOXMagicNumber {
		return nil, fmt.Errorf("%w: bad magic %q", ErrInvalidVox, magic[:])
	}

	var version int32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("%w: reading version: %v", ErrInvalidVox, err)
	}

	vf := &VoxFile{
		Version: int(version),
		Colors:  defaultPalette(),
	}

	// SIZE opens a model and the following XYZI fills it.
	pendingSize := false
	for {
		var chunkID [4]byte
		if _, err := io.ReadFull(r, chunkID[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("%w: reading chunk id: %v", ErrInvalidVox, err)
		}

		var header [2]int32
		if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
			return nil, fmt.Errorf("%w: chunk %s header: %v", ErrInvalidVox, chunkID[:], err)
		}
		chunkSize := header[0]
		if chunkSize < 0 || chunkSize > maxChunkSize || header[1] < 0 {
			return nil, fmt.Errorf("%w: chunk %s has size %d", ErrInvalidVox, chunkID[:], chunkSize)
		}

		data := make([]byte, chunkSize)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, fmt.Errorf("%w: chunk %s body: %v", ErrInvalidVox, chunkID[:], err)
		}

		switch string(chunkID[:]) {
		case "MAIN":
			// Children follow inline.
		case "SIZE":
			if len(data) < 12 {
				return nil, fmt.Errorf("%w: SIZE chunk too small", ErrInvalidVox)
			}
			m := VoxModel{
				SizeX: binary.LittleEndian.Uint32(data[0:4]),
				SizeY: binary.LittleEndian.Uint32(data[4:8]),
				SizeZ: binary.LittleEndian.Uint32(data[8:12]),
			}
			for _, d := range []uint32{m.SizeX, m.SizeY, m.SizeZ} {
				if d == 0 || d > maxModelSize {
					return nil, fmt.Errorf("%w: model size %dx%dx%d", ErrInvalidVox, m.SizeX, m.SizeY, m.SizeZ)
				}
			}
			vf.Models = append(vf.Models, m)
			pendingSize = true
		case "XYZI":
			if !pendingSize {
				return nil, fmt.Errorf("%w: XYZI chunk without SIZE", ErrInvalidVox)
			}
			pendingSize = false
			voxels, err := parseVoxels(data, &vf.Models[len(vf.Models)-1])
			if err != nil {
				return nil, err
			}
			vf.Models[len(vf.Models)-1].Voxels = voxels
		case "RGBA":
			// Entry i holds the color of palette index i+1.
			for i := 0; i < palette.Size-1; i++ {
				offset := i * 4
				if offset+3 >= len(data) {
					break
				}
				copy(vf.Colors[i+1][:], data[offset:offset+4])
			}
		case "MATL":
			mat, err := parseMaterial(data)
			if err != nil {
				return nil, err
			}
			vf.Materials = append(vf.Materials, mat)
		}
	}

	if len(vf.Models) == 0 {
		return nil, fmt.Errorf("%w: no models", ErrInvalidVox)
	}
	return vf, nil
}

func parseVoxels(data []byte, m *VoxModel) ([]Voxel, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: XYZI chunk too small", ErrInvalidVox)
	}
	n := int(binary.LittleEndian.Uint32(data[:4]))
	if n < 0 || 4+n*4 > len(data) {
		return nil, fmt.Errorf("%w: XYZI chunk declares %d voxels in %d bytes", ErrInvalidVox, n, len(data))
	}
	voxels := make([]Voxel, n)
	for i := range voxels {
		o := 4 + i*4
		v := Voxel{X: data[o], Y: data[o+1], Z: data[o+2], ColorIndex: data[o+3]}
		if uint32(v.X) >= m.SizeX || uint32(v.Y) >= m.SizeY || uint32(v.Z) >= m.SizeZ {
			return nil, fmt.Errorf("%w: voxel (%d,%d,%d) outside model %dx%dx%d",
				ErrInvalidVox, v.X, v.Y, v.Z, m.SizeX, m.SizeY, m.SizeZ)
		}
		voxels[i] = v
	}
	return voxels, nil
}

// voxReader walks the little-endian STRING and DICT encodings used by MATL.
type voxReader struct {
	data []byte
	err  error
}

func (r *voxReader) int32() int {
	if r.err != nil {
		return 0
	}
	if len(r.data) < 4 {
		r.err = fmt.Errorf("%w: truncated MATL chunk", ErrInvalidVox)
		return 0
	}
	v := int(int32(binary.LittleEndian.Uint32(r.data[:4])))
	r.data = r.data[4:]
	return v
}

func (r *voxReader) string() string {
	n := r.int32()
	if r.err != nil {
		return ""
	}
	if n < 0 || n > len(r.data) {
		r.err = fmt.Errorf("%w: MATL string of length %d", ErrInvalidVox, n)
		return ""
	}
	s := string(r.data[:n])
	r.data = r.data[n:]
	return s
}

func parseMaterial(data []byte) (VoxMaterial, error) {
	r := &voxReader{data: data}
	mat := VoxMaterial{
		ID:       r.int32(),
		Property: palette.VoxMaterial{},
	}
	pairs := r.int32()
	for i := 0; i < pairs && r.err == nil; i++ {
		key := r.string()
		value := r.string()
		if r.err == nil {
			mat.Property[key] = value
		}
	}
	return mat, r.err
}

func defaultPalette() VoxPalette {
	var p VoxPalette
	for i := range p {
		p[i] = [4]uint8{255, 255, 255, 255} // white as fallback
	}
	return p
}

// MaterialsByIndex keys the MATL dictionaries by the palette index they describe.
func (vf *VoxFile) MaterialsByIndex() map[int]palette.VoxMaterial {
	out := make(map[int]palette.VoxMaterial, len(vf.Materials))
	for _, m := range vf.Materials {
		if m.ID >= 0 && m.ID < palette.Size {
			out[m.ID] = m.Property
		}
	}
	return out
}

// Palette builds the render palette from the file's colors and materials.
func (vf *VoxFile) Palette(opts palette.VoxOptions) *palette.Palette {
	return palette.FromVox(vf.Colors, vf.MaterialsByIndex(), opts)
}

// Extent is the model size after conversion to Y-up.
func (m VoxModel) Extent() [3]int {
	return [3]int{int(m.SizeX), int(m.SizeZ), int(m.SizeY)}
}

// ToGridCoord converts a Z-up left-handed MagicaVoxel coordinate to the
// Y-up right-handed voxel space of a Grid.
func (m VoxModel) ToGridCoord(v Voxel) [3]int {
	return [3]int{int(m.SizeX) - 1 - int(v.X), int(v.Z), int(v.Y)}
}

// Grid converts the model into a dense grid.
func (m VoxModel) Grid(opts volume.GridOptions) *volume.Grid {
	g := volume.NewGrid(m.Extent(), opts)
	for _, v := range m.Voxels {
		// Coordinates were bounds-checked while parsing.
		_ = g.Set(v.ColorIndex, m.ToGridCoord(v))
	}
	return g
}
