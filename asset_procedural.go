package voxscene

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/voxscene/voxelrt/rt/model"
	"github.com/gekko3d/voxscene/voxelrt/rt/palette"
	"github.com/gekko3d/voxscene/voxelrt/rt/sdf"
	"github.com/gekko3d/voxscene/voxelrt/rt/volume"
)

const (
	PresetSphere     = "sphere"
	PresetCube       = "cube"
	PresetCone       = "cone"
	PresetHollowCube = "hollow-cube"
	PresetCloud      = "cloud"
	PresetTerrain    = "terrain"
)

func Presets() []string {
	return []string{PresetSphere, PresetCube, PresetCone, PresetHollowCube, PresetCloud, PresetTerrain}
}

// Palette slots used by the generated models.
const (
	IndexStone uint8 = 1
	IndexGlass uint8 = 2
	IndexLamp  uint8 = 3
	IndexGrass uint8 = 4
	IndexDirt  uint8 = 5

	IndexCloudFirst uint8 = 16
	IndexCloudLast  uint8 = 31
)

// PresetPalette holds the materials the generated models draw from.
func PresetPalette() *palette.Palette {
	elements := make([]palette.Element, IndexCloudLast+1)
	for i := range elements {
		elements[i] = palette.WithColor([4]float32{0.5, 0.5, 0.5, 1})
	}

	elements[IndexStone] = palette.WithColor([4]float32{0.55, 0.52, 0.48, 1})
	elements[IndexStone].Roughness = 0.9

	glass := palette.WithColor([4]float32{0.7, 0.85, 1.0, 0.3})
	glass.Roughness = 0.05
	glass.Translucency = 0.9
	glass.RefractionIndex = 1.5
	elements[IndexGlass] = glass

	lamp := palette.WithColor([4]float32{1.0, 0.8, 0.4, 1})
	lamp.Emission = 4
	elements[IndexLamp] = lamp

	elements[IndexGrass] = palette.WithColor([4]float32{0.3, 0.6, 0.2, 1})
	elements[IndexGrass].Roughness = 0.8
	elements[IndexDirt] = palette.WithColor([4]float32{0.4, 0.27, 0.15, 1})
	elements[IndexDirt].Roughness = 0.95

	thin := palette.Medium([4]float32{0.9, 0.9, 0.95, 1}, 0.05)
	thick := palette.Medium([4]float32{0.6, 0.6, 0.7, 1}, 0.6)
	span := float32(IndexCloudLast - IndexCloudFirst)
	for i := IndexCloudFirst; i <= IndexCloudLast; i++ {
		elements[i] = thin.Lerp(thick, float32(i-IndexCloudFirst)/span)
	}
	return palette.New(elements)
}

// GeneratePreset builds one of the named models in a grid of edge length size.
// noise scales the Perlin displacement of the sphere and terrain presets.
func GeneratePreset(name string, size int, seed int64, noise float32, opts volume.GridOptions) (*volume.Grid, error) {
	if size <= 0 {
		return nil, fmt.Errorf("preset %q: size must be positive, got %d", name, size)
	}
	vs := opts.VoxelSize
	if vs <= 0 {
		vs = 1
	}
	n := float32(size) * vs
	cube := [3]int{size, size, size}
	// Roughly four noise features across the model.
	freq := 4 / n

	switch name {
	case PresetSphere:
		s := sdf.Sphere(0.45 * n)
		if noise > 0 {
			s = s.Distort(sdf.PerlinDistort(noise*0.45*n, freq, seed))
		}
		return sdf.Voxelize(s, cube, opts, IndexStone), nil

	case PresetCube:
		return sdf.Voxelize(sdf.Cuboid(mgl32.Vec3{0.4 * n, 0.4 * n, 0.4 * n}), cube, opts, IndexStone), nil

	case PresetCone:
		return sdf.Voxelize(sdf.Cone(0.45*n, 0.9*n), cube, opts, IndexStone), nil

	case PresetHollowCube:
		walls := sdf.Cuboid(mgl32.Vec3{0.45 * n, 0.45 * n, 0.45 * n})
		inner := sdf.Sphere(0.25 * n)
		wall := 1.5 * vs
		return sdf.MapToVoxels(walls, cube, opts, func(d float32, p mgl32.Vec3) uint8 {
			switch {
			case d < 0 && d > -wall:
				return IndexStone
			case inner(p) < 0:
				return IndexGlass
			default:
				return volume.Empty
			}
		}), nil

	case PresetCloud:
		classify := sdf.DensityClassifier(IndexCloudFirst, IndexCloudLast, 0.45, freq, seed)
		return sdf.MapToVoxels(sdf.Sphere(0.45*n), cube, opts, classify), nil

	case PresetTerrain:
		amplitude := math32.Max(noise, 0) * 0.5 * n
		ground := sdf.PerlinHeight(0, amplitude, freq, seed)
		ext := [3]int{size, max(size/2, 1), size}
		return sdf.MapToVoxels(ground, ext, opts, func(d float32, p mgl32.Vec3) uint8 {
			switch {
			case d >= 0:
				return volume.Empty
			case d > -vs:
				return IndexGrass
			default:
				return IndexDirt
			}
		}), nil
	}
	return nil, fmt.Errorf("unknown preset %q", name)
}

// CreatePresetModel generates a preset and registers it.
func (server *AssetServer) CreatePresetModel(ctx *model.Context, name string, size int, seed int64, noise float32, opts volume.GridOptions) (AssetId, error) {
	g, err := GeneratePreset(name, size, seed, noise, opts)
	if err != nil {
		return "", err
	}
	return server.addGrid(ctx, name, g)
}

func (server *AssetServer) addGrid(ctx *model.Context, name string, g *volume.Grid) (AssetId, error) {
	m, err := model.New(name, g, ctx)
	if err != nil {
		return "", err
	}
	return server.AddModel(m), nil
}

func resolutionOptions(resolution float32) volume.GridOptions {
	opts := volume.DefaultGridOptions()
	if resolution > 0 {
		opts.VoxelSize = 1 / resolution
	}
	return opts
}

// CreateSphereModel voxelizes a sphere of the given radius in local units.
// resolution is voxels per unit.
func (server *AssetServer) CreateSphereModel(ctx *model.Context, radius, resolution float32) (AssetId, error) {
	opts := resolutionOptions(resolution)
	n := int(math32.Ceil(2 * radius / opts.VoxelSize))
	g := sdf.Voxelize(sdf.Sphere(radius), [3]int{n, n, n}, opts, IndexStone)
	return server.addGrid(ctx, PresetSphere, g)
}

func (server *AssetServer) CreateCubeModel(ctx *model.Context, sizeX, sizeY, sizeZ, resolution float32) (AssetId, error) {
	opts := resolutionOptions(resolution)
	ext := [3]int{
		int(math32.Round(sizeX / opts.VoxelSize)),
		int(math32.Round(sizeY / opts.VoxelSize)),
		int(math32.Round(sizeZ / opts.VoxelSize)),
	}
	// The box fills every cell; the half extent sits on the outer cell boundaries.
	half := mgl32.Vec3{float32(ext[0]), float32(ext[1]), float32(ext[2])}.Mul(0.5 * opts.VoxelSize)
	g := sdf.Voxelize(sdf.Cuboid(half), ext, opts, IndexStone)
	return server.addGrid(ctx, PresetCube, g)
}

func (server *AssetServer) CreateConeModel(ctx *model.Context, radius, height, resolution float32) (AssetId, error) {
	opts := resolutionOptions(resolution)
	w := int(math32.Ceil(2 * radius / opts.VoxelSize))
	h := int(math32.Ceil(height / opts.VoxelSize))
	g := sdf.Voxelize(sdf.Cone(radius, height), [3]int{w, h, w}, opts, IndexStone)
	return server.addGrid(ctx, PresetCone, g)
}
