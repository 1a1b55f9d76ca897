package voxscene

import (
	"fmt"

	"github.com/gekko3d/voxscene/voxelrt/rt/app"
	"github.com/gekko3d/voxscene/voxelrt/rt/editor"
	"github.com/gekko3d/voxscene/voxelrt/rt/model"
	"github.com/gekko3d/voxscene/voxelrt/rt/volume"
)

// Edit turns a scripted step into a queued edit on m.
func (s EditStep) Edit(m *model.Model) (app.Edit, error) {
	e := app.Edit{
		Label:  fmt.Sprintf("%s r=%d at %v", s.Op, s.Radius, s.Center),
		Model:  m,
		Region: volume.BoxAround(s.Center, s.Radius),
	}
	switch s.Op {
	case "fill":
		e.Modify = editor.Fill(s.Value)
	case "erase":
		e.Modify = editor.Fill(volume.Empty)
	case "replace":
		// Replace acts on the whole model unless a radius is given.
		if s.Radius == 0 {
			e.Region = volume.All()
		}
		e.Modify = editor.Replace(s.From, s.Value)
	default:
		return app.Edit{}, fmt.Errorf("%w: unknown edit op %q", ErrInvalidConfig, s.Op)
	}
	return e, nil
}

// Run queues every step on the model registered as id and ticks a until the
// queue drains, keeping the server's assets in sync. It returns the number of ticks.
func (server *AssetServer) Run(a *app.App, id AssetId, steps []EditStep) (int, error) {
	m, err := server.Model(id)
	if err != nil {
		return 0, err
	}
	for _, s := range steps {
		e, err := s.Edit(m)
		if err != nil {
			return 0, err
		}
		a.QueueEdit(e)
	}

	prev := a.OnEdit
	a.OnEdit = func(edited *model.Model, swapped bool) {
		if edited == m {
			server.Refresh(id, swapped)
		}
		if prev != nil {
			prev(edited, swapped)
		}
	}
	defer func() { a.OnEdit = prev }()

	ticks := 0
	for a.Pending() > 0 {
		ticks++
		a.Update(a.LastTime + 1.0/60)
		server.log.Debugf("tick %d: %s", ticks, a.Profiler.GetStatsString())
	}
	return ticks, nil
}
