package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/shelter/common"
	"github.com/milk9111/shelter/ecs"
	"github.com/milk9111/shelter/ecs/component"
	"github.com/milk9111/shelter/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"person_tag":   addPersonTag,
	"person":       addPerson,
	"transform":    addTransform,
	"moveable":     addMoveable,
	"physics_body": addPhysicsBody,
	"routine":      addRoutine,
	"camera":       addCamera,
	"input":        addInput,
	"clock":        addClock,
}

var componentBuildOrder = []string{
	"person_tag",
	"person",
	"transform",
	"moveable",
	"physics_body",
	"routine",
	"camera",
	"input",
	"clock",
}

// BuildEntity creates an entity from a prefab's component map. Components
// in componentBuildOrder are added first, any others after in name order.
// The entity is destroyed again if any component fails.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
			delete(remaining, name)
		}
	}
	rest := make([]string, 0, len(remaining))
	for name := range remaining {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	names = append(names, rest...)

	for _, name := range names {
		builder, ok := componentRegistry[name]
		if !ok {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

// SetEntityPosition moves e, adding a Transform if it has none.
func SetEntityPosition(w *ecs.World, e ecs.Entity, p common.Vec) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.SetPos(p)
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPersonTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PersonTagComponent.Kind(), &component.PersonTag{})
}

func addPerson(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PersonComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode person spec: %w", err)
	}
	return ecs.Add(w, e, component.PersonComponent.Kind(), &component.Person{
		Name:   spec.Name,
		Prefab: ctx.PrefabPath,
	})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y})
}

func addMoveable(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MoveableComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode moveable spec: %w", err)
	}
	if spec.Speed <= 0 {
		return fmt.Errorf("moveable speed must be positive, got %v", spec.Speed)
	}
	return ecs.Add(w, e, component.MoveableComponent.Kind(), &component.Moveable{Speed: spec.Speed})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics_body spec: %w", err)
	}
	width, height := spec.Width, spec.Height
	if width <= 0 {
		width = common.TileSize / 2
	}
	if height <= 0 {
		height = common.TileSize
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: width, Height: height})
}

func addRoutine(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RoutineComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode routine spec: %w", err)
	}
	return ecs.Add(w, e, component.RoutineComponent.Kind(), &component.Routine{
		Script: spec.Script,
		Rest:   spec.Rest,
		Wait:   spec.Rest,
	})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{Zoom: zoom})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addClock(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ClockComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode clock spec: %w", err)
	}
	ratio := spec.Ratio
	if ratio <= 0 {
		ratio = 1
	}
	return ecs.Add(w, e, component.ClockComponent.Kind(), &component.Clock{
		Days:  spec.Days,
		Time:  spec.Time,
		Ratio: ratio,
	})
}
