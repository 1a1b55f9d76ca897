package voxscene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/gekko3d/voxscene/voxelrt/rt/palette"
	"github.com/gekko3d/voxscene/voxelrt/rt/volume"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every setting of a mesh build.
type Config struct {
	Mesh     MeshConfig     `yaml:"mesh"`
	Generate GenerateConfig `yaml:"generate"`
	Edit     EditConfig     `yaml:"edit"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type MeshConfig struct {
	MeshOuterFaces bool    `yaml:"mesh_outer_faces"`
	VoxelSize      float32 `yaml:"voxel_size"`
}

// GenerateConfig picks the model source: a .vox file when Input is set, otherwise a preset.
type GenerateConfig struct {
	Input  string  `yaml:"input"`
	Preset string  `yaml:"preset"`
	Size   int     `yaml:"size"`
	Seed   int64   `yaml:"seed"`
	Noise  float32 `yaml:"noise"`

	DiffuseRoughness float32 `yaml:"diffuse_roughness"`
	EmissionStrength float32 `yaml:"emission_strength"`
}

// EditStep is one scripted region edit. Op is "fill", "erase" or "replace".
type EditStep struct {
	Op     string `yaml:"op"`
	Center [3]int `yaml:"center"`
	Radius int    `yaml:"radius"`
	Value  uint8  `yaml:"value"`
	From   uint8  `yaml:"from"`
}

type EditConfig struct {
	MaxEditsPerTick int        `yaml:"max_edits_per_tick"`
	Steps           []EditStep `yaml:"steps"`
}

type OutputConfig struct {
	Dir          string `yaml:"dir"`
	Name         string `yaml:"name"`
	PreviewScale int    `yaml:"preview_scale"`
}

type LoggingConfig struct {
	Level string        `yaml:"level"`
	File  LogFileConfig `yaml:"file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	grid := volume.DefaultGridOptions()
	vox := palette.DefaultVoxOptions()
	return &Config{
		Mesh: MeshConfig{
			MeshOuterFaces: grid.MeshOuterFaces,
			VoxelSize:      grid.VoxelSize,
		},
		Generate: GenerateConfig{
			Preset:           PresetSphere,
			Size:             32,
			Seed:             1,
			Noise:            0.15,
			DiffuseRoughness: vox.DiffuseRoughness,
			EmissionStrength: vox.EmissionStrength,
		},
		Edit: EditConfig{
			MaxEditsPerTick: 4,
		},
		Output: OutputConfig{
			Dir:          "out",
			Name:         "model",
			PreviewScale: 8,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  DefaultLogFileConfig(""),
		},
	}
}

// GridOptions converts the mesh section into grid options.
func (c *Config) GridOptions() volume.GridOptions {
	return volume.GridOptions{
		MeshOuterFaces: c.Mesh.MeshOuterFaces,
		VoxelSize:      c.Mesh.VoxelSize,
	}
}

func (c *Config) VoxOptions() palette.VoxOptions {
	return palette.VoxOptions{
		DiffuseRoughness: c.Generate.DiffuseRoughness,
		EmissionStrength: c.Generate.EmissionStrength,
	}
}

func (c *Config) Validate() error {
	if c.Mesh.VoxelSize <= 0 {
		return fmt.Errorf("%w: mesh.voxel_size must be positive, got %v", ErrInvalidConfig, c.Mesh.VoxelSize)
	}
	if c.Generate.Input == "" {
		if !slices.Contains(Presets(), c.Generate.Preset) {
			return fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, c.Generate.Preset)
		}
		if c.Generate.Size <= 0 {
			return fmt.Errorf("%w: generate.size must be positive, got %d", ErrInvalidConfig, c.Generate.Size)
		}
	}
	if c.Edit.MaxEditsPerTick <= 0 {
		return fmt.Errorf("%w: edit.max_edits_per_tick must be positive", ErrInvalidConfig)
	}
	for i, s := range c.Edit.Steps {
		switch s.Op {
		case "fill", "erase", "replace":
		default:
			return fmt.Errorf("%w: edit step %d has unknown op %q", ErrInvalidConfig, i, s.Op)
		}
		if s.Radius < 0 {
			return fmt.Errorf("%w: edit step %d has negative radius", ErrInvalidConfig, i)
		}
	}
	if c.Output.PreviewScale < 1 {
		return fmt.Errorf("%w: output.preview_scale must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// Load loads configuration with priority: defaults < file < flags.
// An empty path searches the standard locations; flags may be nil.
func Load(path string, flags *Flags) (*Config, error) {
	cfg := Default()

	if flags != nil && flags.Config != "" {
		path = flags.Config
	}
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	if flags != nil {
		flags.apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	candidates := []string{"./voxscene.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "voxscene", "config.yaml"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadFromFile merges a YAML file over the values already in cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// SaveTo writes the config to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
