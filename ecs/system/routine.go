package system

import (
	"log"

	"github.com/milk9111/shelter/ecs"
	"github.com/milk9111/shelter/ecs/component"
	"github.com/milk9111/shelter/navigation"
)

// ScriptLoader returns the source of a named routine script.
type ScriptLoader func(name string) ([]byte, error)

// RoutineSystem asks each idle resident's routine script for its next goal.
// A resident is idle when it has no MoveTo and its Wait has run out.
type RoutineSystem struct {
	dt      float64
	finder  *navigation.PathFinder
	load    ScriptLoader
	scripts map[string]*routineScript
	broken  map[string]bool
}

func NewRoutineSystem(dt float64, finder *navigation.PathFinder, load ScriptLoader) *RoutineSystem {
	return &RoutineSystem{
		dt:      dt,
		finder:  finder,
		load:    load,
		scripts: make(map[string]*routineScript),
		broken:  make(map[string]bool),
	}
}

// Invalidate drops a cached script so the next pick recompiles it.
func (rs *RoutineSystem) Invalidate(name string) {
	if rs == nil {
		return
	}
	delete(rs.scripts, name)
	delete(rs.broken, name)
}

func (rs *RoutineSystem) Update(w *ecs.World) {
	if rs == nil || w == nil {
		return
	}

	for _, evt := range w.Events().Peek() {
		goal, ok := evt.Data.(ecs.GoalEvent)
		if !ok {
			continue
		}
		if r, ok := ecs.Get(w, goal.Entity, component.RoutineComponent.Kind()); ok {
			r.Wait = r.Rest
		}
	}

	ecs.ForEach2(w, component.RoutineComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, r *component.Routine, t *component.Transform) {
			if ecs.Has(w, e, component.MoveToComponent.Kind()) {
				return
			}
			if r.Wait > 0 {
				r.Wait -= rs.dt
				return
			}
			r.Wait = r.Rest

			script, err := rs.script(r.Script)
			if err != nil {
				if !rs.broken[r.Script] {
					log.Printf("routine: entity %v: %v", e, err)
					rs.broken[r.Script] = true
				}
				return
			}

			ctx := &routineContext{finder: rs.finder, at: t.Tile(), picks: r.Picks}
			if err := script.pick(ctx); err != nil {
				log.Printf("routine: entity %v: %v", e, err)
				return
			}
			if !ctx.hasGoal {
				return
			}
			if err := ecs.Add(w, e, component.MoveToComponent.Kind(), &component.MoveTo{Target: ctx.goal}); err != nil {
				log.Printf("routine: entity %v: %v", e, err)
				return
			}
			r.Picks++
		})
}

func (rs *RoutineSystem) script(name string) (*routineScript, error) {
	if s, ok := rs.scripts[name]; ok {
		return s, nil
	}
	if rs.load == nil {
		return nil, errNoScriptLoader
	}
	src, err := rs.load(name)
	if err != nil {
		return nil, err
	}
	s, err := compileRoutine(name, src)
	if err != nil {
		return nil, err
	}
	rs.scripts[name] = s
	return s, nil
}
