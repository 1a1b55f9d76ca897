// Package app drives queued voxel edits from a caller-owned frame loop.
package app

import (
	"fmt"

	"github.com/gekko3d/voxscene/voxelrt/rt/editor"
	"github.com/gekko3d/voxscene/voxelrt/rt/model"
	"github.com/gekko3d/voxscene/voxelrt/rt/volume"
)

// Logger is the subset of voxscene.Logger the app uses.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}

// Edit is one queued region modification.
type Edit struct {
	Label  string
	Model  *model.Model
	Region volume.RegionMode
	Modify func(p [3]int, v uint8, g *volume.Grid) uint8
}

const DefaultMaxEditsPerTick = 4

type App struct {
	Models   []*model.Model
	Editor   *editor.Editor
	Profiler *Profiler
	Log      Logger

	// MaxEditsPerTick bounds how many remeshes one Update may run.
	MaxEditsPerTick int
	// OnMaterialSwap is called when an edit moves a model between opaque and translucent.
	OnMaterialSwap func(m *model.Model)
	// OnEdit is called after every applied edit, once the model is remeshed.
	OnEdit func(m *model.Model, swapped bool)

	queue []Edit

	LastTime   float64
	TickCount  int
	TPS        float64
	frameCount int
	tpsTime    float64
}

func NewApp() *App {
	return &App{
		Editor:          editor.NewEditor(),
		Profiler:        NewProfiler(),
		Log:             nopLogger{},
		MaxEditsPerTick: DefaultMaxEditsPerTick,
	}
}

func (a *App) AddModel(m *model.Model) {
	a.Models = append(a.Models, m)
}

func (a *App) QueueEdit(e Edit) {
	a.queue = append(a.queue, e)
}

// Pending is the number of queued edits not yet applied.
func (a *App) Pending() int {
	return len(a.queue)
}

// Update applies up to MaxEditsPerTick queued edits in order and returns how many ran.
func (a *App) Update(now float64) int {
	a.Profiler.Reset()
	a.Profiler.BeginScope("Tick")

	limit := a.MaxEditsPerTick
	if limit <= 0 || limit > len(a.queue) {
		limit = len(a.queue)
	}
	applied := 0
	for _, e := range a.queue[:limit] {
		if e.Model == nil || e.Modify == nil {
			a.Log.Warnf("skipping edit %q: no model or modifier", e.Label)
			continue
		}
		a.Profiler.BeginScope("Remesh")
		swapped := editor.ModifyModel(e.Model, e.Region, e.Modify)
		a.Profiler.EndScope("Remesh")
		applied++

		quads := 0
		if e.Model.Mesh != nil {
			quads = e.Model.Mesh.QuadCount()
		}
		a.Profiler.AddCount("Quads", quads)
		a.Log.Debugf("edit %q on %s: %d quads, swapped=%v", e.Label, e.Model.Name, quads, swapped)
		if swapped && a.OnMaterialSwap != nil {
			a.OnMaterialSwap(e.Model)
		}
		if a.OnEdit != nil {
			a.OnEdit(e.Model, swapped)
		}
	}
	a.queue = a.queue[limit:]

	a.Editor.Update(now)
	a.Profiler.SetCount("Edits", applied)
	a.Profiler.SetCount("Pending", len(a.queue))
	a.Profiler.EndScope("Tick")

	if a.LastTime > 0 {
		a.frameCount++
		a.tpsTime += now - a.LastTime
		if a.tpsTime >= 1.0 {
			a.TPS = float64(a.frameCount) / a.tpsTime
			a.frameCount = 0
			a.tpsTime = 0
		}
	}
	a.LastTime = now
	a.TickCount++
	return applied
}

// HandleClick picks along ray and queues a brush stroke at the hit. Erasing
// uses the empty value instead of the editor's brush value. A grid shared by
// several models is copied first so only the clicked model changes.
func (a *App) HandleClick(ray editor.Ray, erase bool) *editor.HitResult {
	hit := a.Editor.Pick(a.Models, ray)
	if hit == nil {
		return nil
	}

	sharing := 0
	for _, m := range a.Models {
		if m.Grid == hit.Model.Grid {
			sharing++
		}
	}
	if sharing > 1 {
		hit.Model.Grid = hit.Model.Grid.Clone()
	}

	brush := *a.Editor
	if erase {
		brush.BrushValue = volume.Empty
	}
	region, fn := brush.Stroke(hit.Coord, hit.Normal)
	a.QueueEdit(Edit{
		Label:  fmt.Sprintf("brush %d at %v", brush.BrushValue, hit.Coord),
		Model:  hit.Model,
		Region: region,
		Modify: fn,
	})
	return hit
}
