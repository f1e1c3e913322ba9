package system

import (
	"github.com/milk9111/shelter/common"
	"github.com/milk9111/shelter/ecs"
	"github.com/milk9111/shelter/ecs/component"
)

// Picker finds the entity under a world position.
type Picker interface {
	EntityAt(p common.Vec) (ecs.Entity, bool)
}

// ControlSystem applies the Input singleton: clock keys, debug toggles, and
// mouse selection. Clicking a resident selects it; clicking anywhere else
// sends the selected resident there.
type ControlSystem struct {
	picker Picker
	debug  *DebugFlags
}

func NewControlSystem(picker Picker, debug *DebugFlags) *ControlSystem {
	return &ControlSystem{picker: picker, debug: debug}
}

func (cs *ControlSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	_, in, ok := ecs.First(w, component.InputComponent.Kind())
	if !ok {
		return
	}

	if _, c, ok := ecs.First(w, component.ClockComponent.Kind()); ok {
		if in.TogglePause {
			c.Paused = !c.Paused
		}
		if in.HourBack {
			StepHour(c, -1)
		}
		if in.HourForward {
			StepHour(c, 1)
		}
	}

	if cs.debug != nil {
		cs.debug.Owners = cs.debug.Owners != in.ToggleOwners
		cs.debug.Graph = cs.debug.Graph != in.ToggleGraph
		cs.debug.Bodies = cs.debug.Bodies != in.ToggleBodies
	}

	if in.Click {
		view := ViewOf(w, in.ScreenW, in.ScreenH)
		cs.click(w, view.ToWorld(in.CursorX, in.CursorY))
	}
}

func (cs *ControlSystem) click(w *ecs.World, p common.Vec) {
	if cs.picker != nil {
		if e, ok := cs.picker.EntityAt(p); ok && ecs.Has(w, e, component.PersonTagComponent.Kind()) {
			Select(w, e)
			return
		}
	}
	if e, ok := w.First(component.SelectedTagComponent.Kind()); ok {
		_ = ecs.Add(w, e, component.MoveToComponent.Kind(), &component.MoveTo{Target: common.TileOf(p)})
	}
}

// Select makes e the only selected entity.
func Select(w *ecs.World, e ecs.Entity) {
	for _, other := range w.Query(component.SelectedTagComponent.Kind()) {
		ecs.Remove(w, other, component.SelectedTagComponent.Kind())
	}
	_ = ecs.Add(w, e, component.SelectedTagComponent.Kind(), &component.SelectedTag{})
}
