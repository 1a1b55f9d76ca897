package voxscene

import "flag"

// Flags are the command-line overrides applied on top of the config file.
// Zero values leave the loaded setting untouched.
type Flags struct {
	Config    string
	Input     string
	Preset    string
	Size      int
	Seed      int64
	VoxelSize float64
	NoPadding bool
	OutDir    string
	Name      string
	Debug     bool
	LogFile   string
}

// BindFlags registers the overrides on fs. Call fs.Parse before Load.
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.StringVar(&f.Input, "input", "", "MagicaVoxel .vox file to mesh instead of a preset")
	fs.StringVar(&f.Preset, "preset", "", "Generated model: sphere, cube, cone, hollow-cube, cloud or terrain")
	fs.IntVar(&f.Size, "size", 0, "Edge length of generated models in voxels")
	fs.Int64Var(&f.Seed, "seed", 0, "Noise seed for generated models")
	fs.Float64Var(&f.VoxelSize, "voxel-size", 0, "Voxel edge length in local units")
	fs.BoolVar(&f.NoPadding, "no-padding", false, "Do not mesh the model's outer faces")
	fs.StringVar(&f.OutDir, "out", "", "Output directory")
	fs.StringVar(&f.Name, "name", "", "Base name of the written files")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Also log to this rotating file")
	return f
}

func (f *Flags) apply(cfg *Config) {
	if f.Input != "" {
		cfg.Generate.Input = f.Input
	}
	if f.Preset != "" {
		cfg.Generate.Preset = f.Preset
	}
	if f.Size > 0 {
		cfg.Generate.Size = f.Size
	}
	if f.Seed != 0 {
		cfg.Generate.Seed = f.Seed
	}
	if f.VoxelSize > 0 {
		cfg.Mesh.VoxelSize = float32(f.VoxelSize)
	}
	if f.NoPadding {
		cfg.Mesh.MeshOuterFaces = false
	}
	if f.OutDir != "" {
		cfg.Output.Dir = f.OutDir
	}
	if f.Name != "" {
		cfg.Output.Name = f.Name
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.File.Path = f.LogFile
	}
}
