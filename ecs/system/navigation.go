package system

import (
	"log"

	"github.com/milk9111/shelter/ecs"
	"github.com/milk9111/shelter/ecs/component"
	"github.com/milk9111/shelter/navigation"
)

// NavigationSystem turns MoveTo goals into movement intents every tick.
type NavigationSystem struct {
	finder *navigation.PathFinder
}

func NewNavigationSystem(finder *navigation.PathFinder) *NavigationSystem {
	return &NavigationSystem{finder: finder}
}

// Finder returns the path finder goals are resolved against.
func (ns *NavigationSystem) Finder() *navigation.PathFinder {
	if ns == nil {
		return nil
	}
	return ns.finder
}

func (ns *NavigationSystem) Update(w *ecs.World) {
	if ns == nil || ns.finder == nil || w == nil {
		return
	}

	ecs.ForEach3(w, component.MoveToComponent.Kind(), component.TransformComponent.Kind(), component.MoveableComponent.Kind(),
		func(e ecs.Entity, goal *component.MoveTo, t *component.Transform, mv *component.Moveable) {
			// The movement system owns the entity until it leaves the stair.
			if mv.Mode == component.MoveModeInStair {
				return
			}

			at := t.Tile()
			intent, status := ns.finder.Resolve(at, goal.Target)
			mv.Intent = intent
			if !status.Done() {
				return
			}

			evt := ecs.Event{
				Type: ecs.EventGoalArrived,
				Data: ecs.GoalEvent{Entity: e, Target: goal.Target, At: at},
			}
			if status == navigation.Unreachable {
				evt.Type = ecs.EventGoalUnreachable
				log.Printf("navigation: entity %v cannot reach %v from %v", e, goal.Target, at)
			}
			ecs.Remove(w, e, component.MoveToComponent.Kind())
			w.Events().Push(evt)
		})
}
