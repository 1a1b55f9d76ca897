// voxmesh loads or generates a voxel model, applies scripted edits and
// exports the greedy mesh, material and texture atlases.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gekko3d/voxscene"
	"github.com/gekko3d/voxscene/voxelrt/rt/app"
	"github.com/gekko3d/voxscene/voxelrt/rt/model"
)

func main() {
	fs := flag.NewFlagSet("voxmesh", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: voxmesh [options]\n\n")
		fs.PrintDefaults()
	}
	flags := voxscene.BindFlags(fs)
	fs.Parse(os.Args[1:])

	cfg, err := voxscene.Load("", flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := voxscene.NewDefaultLogger("voxmesh", false, cfg.Logging.File)
	log.SetLevel(voxscene.ParseLogLevel(cfg.Logging.Level))
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Errorf("%v", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg *voxscene.Config, log *voxscene.DefaultLogger) error {
	server := voxscene.NewAssetServer(log)

	var (
		id  voxscene.AssetId
		err error
	)
	if cfg.Generate.Input != "" {
		id, err = loadVox(server, cfg, log)
	} else {
		ctx := model.NewContext(voxscene.PresetPalette())
		id, err = server.CreatePresetModel(ctx, cfg.Generate.Preset, cfg.Generate.Size,
			cfg.Generate.Seed, cfg.Generate.Noise, cfg.GridOptions())
		log.Infof("generated %s preset, size %d, seed %d", cfg.Generate.Preset, cfg.Generate.Size, cfg.Generate.Seed)
	}
	if err != nil {
		return err
	}

	m, err := server.Model(id)
	if err != nil {
		return err
	}
	logModel(log, "loaded", m)

	if len(cfg.Edit.Steps) > 0 {
		a := app.NewApp()
		a.Log = log
		a.MaxEditsPerTick = cfg.Edit.MaxEditsPerTick
		a.AddModel(m)
		a.OnMaterialSwap = func(m *model.Model) {
			log.Infof("%s is now %s", m.Name, translucency(m))
		}
		ticks, err := server.Run(a, id, cfg.Edit.Steps)
		if err != nil {
			return err
		}
		log.Infof("applied %d edits in %d ticks", len(cfg.Edit.Steps), ticks)
		logModel(log, "edited", m)
	}

	files, err := voxscene.ExportModel(cfg.Output.Dir, cfg.Output.Name, m, cfg.Output.PreviewScale)
	if err != nil {
		return err
	}
	for _, f := range files {
		log.Infof("wrote %s", f)
	}
	return nil
}

func loadVox(server *voxscene.AssetServer, cfg *voxscene.Config, log *voxscene.DefaultLogger) (voxscene.AssetId, error) {
	vf, err := voxscene.LoadVoxFile(cfg.Generate.Input)
	if err != nil {
		return "", err
	}
	if len(vf.Models) > 1 {
		log.Warnf("%s holds %d models; meshing the first", cfg.Generate.Input, len(vf.Models))
	}
	ctx := model.NewContext(vf.Palette(cfg.VoxOptions()))
	m, err := model.New(cfg.Output.Name, vf.Models[0].Grid(cfg.GridOptions()), ctx)
	if err != nil {
		return "", err
	}
	log.Infof("loaded %s (version %d, %d materials)", cfg.Generate.Input, vf.Version, len(vf.Materials))
	return server.AddModel(m), nil
}

func translucency(m *model.Model) string {
	if m.HasTranslucency {
		return fmt.Sprintf("translucent (ior %.3f)", m.AverageIOR)
	}
	return "opaque"
}

func logModel(log voxscene.Logger, what string, m *model.Model) {
	ext := m.Grid.Extent()
	quads := 0
	if m.Mesh != nil {
		quads = m.Mesh.QuadCount()
	}
	log.Infof("%s %s: %dx%dx%d, %d voxels, %d quads, %s, density=%v",
		what, m.Name, ext[0], ext[1], ext[2], m.Grid.Count(), quads, translucency(m), m.Density != nil)
}
