package system

import (
	"math"

	"github.com/milk9111/shelter/common"
	"github.com/milk9111/shelter/ecs"
	"github.com/milk9111/shelter/ecs/component"
	"github.com/milk9111/shelter/navigation"
)

// stairEntrance is one end of a stair. Dir points from this end to the other.
type stairEntrance struct {
	Pos common.Vec
	Dir common.Vec
}

// MovementSystem applies Moveable intents. Walking is horizontal at Speed; a
// matching vertical intent near a stair entrance pulls the entity onto the
// stair, which it then follows until it runs off either end.
type MovementSystem struct {
	dt        float64
	entrances []stairEntrance
}

func NewMovementSystem(dt float64, stairs []navigation.Stair) *MovementSystem {
	ms := &MovementSystem{dt: dt}
	ms.SetStairs(stairs)
	return ms
}

// SetStairs replaces the stairs the system knows about. Both ends of every
// stair become entrances.
func (ms *MovementSystem) SetStairs(stairs []navigation.Stair) {
	ms.entrances = ms.entrances[:0]
	for _, s := range stairs {
		a, b := common.TileCenter(s.From), common.TileCenter(s.To)
		ms.entrances = append(ms.entrances,
			stairEntrance{Pos: a, Dir: b.Sub(a)},
			stairEntrance{Pos: b, Dir: a.Sub(b)},
		)
	}
}

func (ms *MovementSystem) Update(w *ecs.World) {
	if ms == nil || w == nil || ms.dt <= 0 {
		return
	}
	ecs.ForEach2(w, component.MoveableComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, mv *component.Moveable, t *component.Transform) {
			mv.Velocity = ms.step(t.Pos(), mv)
			// Entities with a body are integrated by the physics system.
			if !ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
				t.SetPos(t.Pos().Add(mv.Velocity.Scale(ms.dt)))
			}
		})
}

// step returns the velocity that carries pos through one tick and updates the
// movement mode. Snapping onto or off a stair is expressed as the velocity
// that lands exactly on the snap point.
func (ms *MovementSystem) step(pos common.Vec, mv *component.Moveable) common.Vec {
	if mv.Mode == component.MoveModeInStair {
		return ms.stepStair(pos, mv)
	}

	hx := float64(mv.Intent.Horizontal)
	entrance, ok := ms.entranceFor(pos, mv.Intent.Vertical)
	if !ok {
		return common.Vec{X: hx * mv.Speed}
	}

	if math.Abs(pos.X-entrance.Pos.X) <= snapEpsilon {
		return ms.enterStair(pos, mv, entrance)
	}

	toward := 1.0
	if pos.X > entrance.Pos.X {
		toward = -1
	}
	dirX := math.Max(-1, math.Min(1, hx+toward))
	nextX := pos.X + dirX*mv.Speed*ms.dt
	crossed := (pos.X < entrance.Pos.X && nextX >= entrance.Pos.X) ||
		(pos.X > entrance.Pos.X && nextX <= entrance.Pos.X)
	if crossed {
		return ms.enterStair(pos, mv, entrance)
	}
	return common.Vec{X: dirX * mv.Speed}
}

func (ms *MovementSystem) enterStair(pos common.Vec, mv *component.Moveable, entrance stairEntrance) common.Vec {
	mv.Mode = component.MoveModeInStair
	mv.StairStart = entrance.Pos
	mv.StairDir = entrance.Dir
	return entrance.Pos.Sub(pos).Scale(1 / ms.dt)
}

func (ms *MovementSystem) stepStair(pos common.Vec, mv *component.Moveable) common.Vec {
	dir := mv.StairDir
	follow := float64(mv.Intent.Horizontal) * float64(common.SignF(dir.X, 0))
	follow += verticalSign(mv.Intent.Vertical) * float64(common.SignF(dir.Y, 0))
	follow = math.Max(-1, math.Min(1, follow))

	move := dir.Normalize().Scale(follow * mv.Speed * ms.dt)
	next := pos.Add(move)

	lenSq := dir.LengthSquared()
	if lenSq == 0 {
		mv.Mode = component.MoveModeNormal
		return common.Vec{}
	}
	progress := next.Sub(mv.StairStart).Dot(dir) / lenSq
	switch {
	case progress < 0:
		mv.Mode = component.MoveModeNormal
		return mv.StairStart.Sub(pos).Scale(1 / ms.dt)
	case progress > 1:
		mv.Mode = component.MoveModeNormal
		return mv.StairStart.Add(dir).Sub(pos).Scale(1 / ms.dt)
	}
	return move.Scale(1 / ms.dt)
}

// entranceFor finds an entrance the entity overlaps whose direction agrees
// with the vertical intent.
func (ms *MovementSystem) entranceFor(pos common.Vec, v navigation.Vertical) (stairEntrance, bool) {
	want := int(verticalSign(v))
	if want == 0 {
		return stairEntrance{}, false
	}
	for _, en := range ms.entrances {
		if common.SignF(en.Dir.Y, 0) != want {
			continue
		}
		if math.Abs(pos.X-en.Pos.X) <= common.TileSize && math.Abs(pos.Y-en.Pos.Y) < common.TileSize/2 {
			return en, true
		}
	}
	return stairEntrance{}, false
}

const snapEpsilon = 1e-6

func verticalSign(v navigation.Vertical) float64 {
	switch v {
	case navigation.Up:
		return 1
	case navigation.Down:
		return -1
	}
	return 0
}
