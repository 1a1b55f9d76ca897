package voxscene

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gekko3d/voxscene/voxelrt/rt/core"
	"github.com/gekko3d/voxscene/voxelrt/rt/editor"
	"github.com/gekko3d/voxscene/voxelrt/rt/model"
	"github.com/gekko3d/voxscene/voxelrt/rt/volume"
)

type AssetId string

// ErrUnknownAsset is returned when an id does not name a registered asset.
var ErrUnknownAsset = errors.New("unknown asset")

type MeshAsset struct {
	version uint
	Mesh    *core.Mesh
}

func (a MeshAsset) Version() uint { return a.version }

type MaterialAsset struct {
	version  uint
	Material *core.Material
	Textures []AssetId
}

type TextureAsset struct {
	version uint
	Texture *core.Texture
}

func (a TextureAsset) Version() uint { return a.version }

// ModelAsset records which assets currently render a model. Mesh and Density
// are empty when the model has no surface or no density volume.
type ModelAsset struct {
	Model    *model.Model
	Mesh     AssetId
	Material AssetId
	Density  AssetId
}

// AssetServer owns the meshes, materials and textures derived from models.
// It is not safe for concurrent use.
type AssetServer struct {
	meshes    map[AssetId]MeshAsset
	materials map[AssetId]MaterialAsset
	textures  map[AssetId]TextureAsset
	models    map[AssetId]*ModelAsset
	order     []AssetId

	// materialIds dedupes materials shared between models of one context.
	materialIds map[*core.Material]AssetId
	textureIds  map[*core.Texture]AssetId

	log Logger
}

func NewAssetServer(log Logger) *AssetServer {
	if log == nil {
		log = NewNopLogger()
	}
	return &AssetServer{
		meshes:      make(map[AssetId]MeshAsset),
		materials:   make(map[AssetId]MaterialAsset),
		textures:    make(map[AssetId]TextureAsset),
		models:      make(map[AssetId]*ModelAsset),
		materialIds: make(map[*core.Material]AssetId),
		textureIds:  make(map[*core.Texture]AssetId),
		log:         log,
	}
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

func (server *AssetServer) LoadMesh(m *core.Mesh) AssetId {
	id := makeAssetId()
	server.meshes[id] = MeshAsset{Mesh: m}
	return id
}

// CreateTexture registers t once; registering the same texture again returns its id.
func (server *AssetServer) CreateTexture(t *core.Texture) AssetId {
	if id, ok := server.textureIds[t]; ok {
		return id
	}
	id := makeAssetId()
	server.textures[id] = TextureAsset{Texture: t}
	server.textureIds[t] = id
	return id
}

// CreateMaterial registers m and its textures once.
func (server *AssetServer) CreateMaterial(m *core.Material) AssetId {
	if id, ok := server.materialIds[m]; ok {
		return id
	}
	id := makeAssetId()
	asset := MaterialAsset{Material: m}
	for _, t := range m.Textures() {
		asset.Textures = append(asset.Textures, server.CreateTexture(t))
	}
	server.materials[id] = asset
	server.materialIds[m] = id
	return id
}

// AddModel registers a model together with its mesh, material and density volume.
func (server *AssetServer) AddModel(m *model.Model) AssetId {
	id := makeAssetId()
	asset := &ModelAsset{Model: m}
	if m.Mesh != nil {
		asset.Mesh = server.LoadMesh(m.Mesh)
	}
	if m.Material != nil {
		asset.Material = server.CreateMaterial(m.Material)
	}
	if m.Density != nil {
		asset.Density = server.CreateTexture(m.Density)
	}
	server.models[id] = asset
	server.order = append(server.order, id)
	server.log.Debugf("asset: model %q registered as %s (%d quads)", m.Name, id, quadCount(m.Mesh))
	return id
}

func quadCount(m *core.Mesh) int {
	if m == nil {
		return 0
	}
	return m.QuadCount()
}

// Models lists model ids in registration order.
func (server *AssetServer) Models() []AssetId {
	return append([]AssetId(nil), server.order...)
}

func (server *AssetServer) Model(id AssetId) (*model.Model, error) {
	asset, err := server.ModelAsset(id)
	if err != nil {
		return nil, err
	}
	return asset.Model, nil
}

func (server *AssetServer) ModelAsset(id AssetId) (ModelAsset, error) {
	asset, ok := server.models[id]
	if !ok {
		return ModelAsset{}, fmt.Errorf("model %s: %w", id, ErrUnknownAsset)
	}
	return *asset, nil
}

func (server *AssetServer) Mesh(id AssetId) (MeshAsset, error) {
	a, ok := server.meshes[id]
	if !ok {
		return MeshAsset{}, fmt.Errorf("mesh %s: %w", id, ErrUnknownAsset)
	}
	return a, nil
}

func (server *AssetServer) Material(id AssetId) (MaterialAsset, error) {
	a, ok := server.materials[id]
	if !ok {
		return MaterialAsset{}, fmt.Errorf("material %s: %w", id, ErrUnknownAsset)
	}
	return a, nil
}

func (server *AssetServer) Texture(id AssetId) (TextureAsset, error) {
	a, ok := server.textures[id]
	if !ok {
		return TextureAsset{}, fmt.Errorf("texture %s: %w", id, ErrUnknownAsset)
	}
	return a, nil
}

// ModifyModel edits a registered model, then refreshes its mesh and density
// assets in place. The material asset is only replaced when the model swapped
// between opaque and translucent. It reports whether that happened.
func (server *AssetServer) ModifyModel(id AssetId, mode volume.RegionMode, fn func([3]int, uint8, *volume.Grid) uint8) (bool, error) {
	asset, ok := server.models[id]
	if !ok {
		return false, fmt.Errorf("model %s: %w", id, ErrUnknownAsset)
	}
	swapped := editor.ModifyModel(asset.Model, mode, fn)
	server.Refresh(id, swapped)
	return swapped, nil
}

// Refresh re-registers a model's mesh and density after its grid changed
// outside ModifyModel. swapped replaces the material asset as well.
func (server *AssetServer) Refresh(id AssetId, swapped bool) {
	asset, ok := server.models[id]
	if !ok {
		return
	}
	m := asset.Model

	switch {
	case m.Mesh == nil:
		delete(server.meshes, asset.Mesh)
		asset.Mesh = ""
	case asset.Mesh == "":
		asset.Mesh = server.LoadMesh(m.Mesh)
	default:
		prev := server.meshes[asset.Mesh]
		server.meshes[asset.Mesh] = MeshAsset{version: prev.version + 1, Mesh: m.Mesh}
	}

	switch {
	case m.Density == nil:
		if asset.Density != "" {
			server.dropTexture(asset.Density)
			asset.Density = ""
		}
	case asset.Density == "":
		asset.Density = server.CreateTexture(m.Density)
	default:
		prev := server.textures[asset.Density]
		delete(server.textureIds, prev.Texture)
		server.textures[asset.Density] = TextureAsset{version: prev.version + 1, Texture: m.Density}
		server.textureIds[m.Density] = asset.Density
	}

	if swapped && m.Material != nil {
		asset.Material = server.CreateMaterial(m.Material)
		server.log.Debugf("asset: model %q swapped material (translucent=%v, ior=%.3f)",
			m.Name, m.HasTranslucency, m.AverageIOR)
	}
}

func (server *AssetServer) dropTexture(id AssetId) {
	if t, ok := server.textures[id]; ok {
		delete(server.textureIds, t.Texture)
		delete(server.textures, id)
	}
}
