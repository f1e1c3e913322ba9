package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/shelter/ecs"
	"github.com/milk9111/shelter/ecs/entity"
	"github.com/milk9111/shelter/ecs/system"
	"github.com/milk9111/shelter/levels"
	"github.com/milk9111/shelter/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	tps        = 60
	dt         = 1.0 / tps
)

type Game struct {
	levelName string
	debug     bool

	world   *ecs.World
	input   *system.InputSystem
	routine *system.RoutineSystem
	watcher *prefabs.Watcher
}

func NewGame(levelName string, debug, watch bool) (*Game, error) {
	g := &Game{levelName: levelName, debug: debug}
	if err := g.load(); err != nil {
		return nil, err
	}
	if watch {
		w, err := prefabs.NewWatcher(levels.Dir, prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("game: watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// load builds a fresh world for the current layout. The previous world is
// only replaced once the new one is complete.
func (g *Game) load() error {
	shelter, err := levels.LoadShelter(g.levelName)
	if err != nil {
		return err
	}
	finder := shelter.PathFinder()
	_, _, platforms, _ := shelter.Navigation()

	world := ecs.NewWorld()
	physics := system.NewPhysicsSystem(dt)
	physics.SetPlatforms(platforms)
	render := system.NewRenderSystem(finder, physics)
	if g.debug {
		render.Debug = system.DebugFlags{Owners: true, Graph: true, Bodies: true}
	}
	input := system.NewInputSystem()
	input.SetScreen(baseWidth, baseHeight)
	routine := system.NewRoutineSystem(dt, finder, prefabs.LoadScript)

	world.AddSystem(input)
	world.AddSystem(system.NewControlSystem(physics, &render.Debug))
	world.AddSystem(system.NewClockSystem(dt))
	world.AddSystem(system.NewNavigationSystem(finder))
	world.AddSystem(routine)
	world.AddSystem(system.NewMovementSystem(dt, finder.Stairs()))
	world.AddSystem(physics)
	world.AddSystem(system.NewCameraSystem(dt))
	world.AddSystem(render)

	if err := entity.LoadShelterToWorld(world, shelter); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	g.world, g.input, g.routine = world, input, routine
	return nil
}

func (g *Game) Update() error {
	g.reload()
	g.world.Update()
	return nil
}

// reload applies file changes reported by the watcher. Script edits only
// drop the cached script. Edits to the running layout or to a prefab rebuild
// the world.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("game: watch: %v", err)
		}
	default:
	}

	rebuild := false
	for _, name := range g.watcher.Drain() {
		if prefabs.IsScriptFile(name) {
			log.Printf("game: reloading script %s", filepath.Base(name))
			g.routine.Invalidate(filepath.Base(name))
			continue
		}
		if affectsWorld(g.levelName, name) {
			rebuild = true
		}
	}
	if !rebuild {
		return
	}
	if err := g.load(); err != nil {
		log.Printf("game: reload %s failed, keeping the current world: %v", g.levelName, err)
		return
	}
	log.Printf("game: reloaded %s", g.levelName)
}

// affectsWorld reports whether a change to path should rebuild the world of
// the layout called levelName.
func affectsWorld(levelName, path string) bool {
	if levels.IsLevelFile(path) {
		return levels.Name(path) == levels.Name(levelName)
	}
	return prefabs.IsSpecFile(path) && filepath.Base(filepath.Dir(path)) == prefabs.Dir
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.input.SetScreen(baseWidth, baseHeight)
	return baseWidth, baseHeight
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
