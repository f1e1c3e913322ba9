package system

import (
	"github.com/milk9111/shelter/common"
	"github.com/milk9111/shelter/ecs"
	"github.com/milk9111/shelter/ecs/component"
	"github.com/milk9111/shelter/navigation"
)

const testDT = 1.0 / 60.0

func tile(x, y int) common.Tile { return common.Tile{X: x, Y: y} }

// twoFloors is a 10 wide shelter with floors at y=0 and y=10 joined by a
// vertical stair at x=5.
func twoFloors() *navigation.PathFinder {
	return navigation.New(tile(0, 0), tile(10, 11),
		[]common.Rect{
			{X: 0, Y: 0, W: 10, H: 1},
			{X: 0, Y: 10, W: 10, H: 1},
		},
		[]navigation.Stair{{From: tile(5, 0), To: tile(5, 10)}},
	)
}

// walker adds an entity standing on the centre of at.
func walker(w *ecs.World, at common.Tile, speed float64) ecs.Entity {
	e := ecs.CreateEntity(w)
	tr := &component.Transform{}
	tr.SetPos(common.TileCenter(at))
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), tr)
	_ = ecs.Add(w, e, component.MoveableComponent.Kind(), &component.Moveable{Speed: speed})
	return e
}

func goalEvents(w *ecs.World) []ecs.Event {
	var out []ecs.Event
	for _, evt := range w.Events().Peek() {
		if _, ok := evt.Data.(ecs.GoalEvent); ok {
			out = append(out, evt)
		}
	}
	return out
}
