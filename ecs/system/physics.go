package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/shelter/common"
	"github.com/milk9111/shelter/ecs"
	"github.com/milk9111/shelter/ecs/component"
)

const (
	categoryPlatform uint = 1 << iota
	categoryResident

	allCategories = ^uint(0)
)

var (
	platformFilter = cp.ShapeFilter{Categories: categoryPlatform, Mask: allCategories}
	residentFilter = cp.ShapeFilter{Categories: categoryResident, Mask: allCategories}
	pickFilter     = cp.ShapeFilter{Categories: allCategories, Mask: categoryResident}
)

// PhysicsSystem keeps a kinematic Chipmunk body per entity with a
// PhysicsBody. Bodies are driven by Moveable.Velocity, stepped, and copied
// back into the Transform. Platforms are added as static boxes so the space
// can be inspected and drawn; kinematic bodies never collide with them.
type PhysicsSystem struct {
	space *cp.Space
	dt    float64

	entities  map[ecs.Entity]*bodyInfo
	shapes    map[*cp.Shape]ecs.Entity
	platforms []*cp.Shape
}

type bodyInfo struct {
	body       *cp.Body
	shape      *cp.Shape
	halfHeight float64
}

func NewPhysicsSystem(dt float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		space:    space,
		dt:       dt,
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// SetPlatforms replaces the static platform boxes. Rects are in tiles.
func (ps *PhysicsSystem) SetPlatforms(rects []common.Rect) {
	if ps == nil || ps.space == nil {
		return
	}
	for _, shape := range ps.platforms {
		ps.space.RemoveShape(shape)
	}
	ps.platforms = ps.platforms[:0]
	for _, r := range rects {
		lo := common.TileOrigin(r.Min())
		hi := common.TileOrigin(r.Max())
		shape := cp.NewBox2(ps.space.StaticBody, cp.BB{L: lo.X, B: lo.Y, R: hi.X, T: hi.Y}, 0)
		shape.SetFilter(platformFilter)
		ps.space.AddShape(shape)
		ps.platforms = append(ps.platforms, shape)
	}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.space == nil || w == nil {
		return
	}
	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.space.Step(ps.dt)
	ps.syncTransforms(w)
}

// EntityAt returns the entity whose body covers p, if any.
func (ps *PhysicsSystem) EntityAt(p common.Vec) (ecs.Entity, bool) {
	if ps == nil || ps.space == nil {
		return 0, false
	}
	info := ps.space.PointQueryNearest(cp.Vector{X: p.X, Y: p.Y}, common.TileSize/4, pickFilter)
	if info == nil || info.Shape == nil {
		return 0, false
	}
	e, ok := ps.shapes[info.Shape]
	return e, ok
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
			info := ps.entities[e]
			if info == nil {
				info = ps.createBody(t, pb)
				ps.entities[e] = info
				ps.shapes[info.shape] = e
				pb.Body = info.body
				pb.Shape = info.shape
			}

			var v common.Vec
			if mv, ok := ecs.Get(w, e, component.MoveableComponent.Kind()); ok {
				v = mv.Velocity
			}
			info.body.SetVelocity(v.X, v.Y)
		})
}

func (ps *PhysicsSystem) createBody(t *component.Transform, pb *component.PhysicsBody) *bodyInfo {
	width, height := pb.Width, pb.Height
	if width <= 0 {
		width = common.TileSize
	}
	if height <= 0 {
		height = common.TileSize
	}
	body := cp.NewKinematicBody()
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y + height/2})
	shape := cp.NewBox(body, width, height, 0)
	shape.SetFilter(residentFilter)
	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape, halfHeight: height / 2}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
			info := ps.entities[e]
			if info == nil {
				return
			}
			pos := info.body.Position()
			t.X = pos.X
			t.Y = pos.Y - info.halfHeight
		})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.space.RemoveShape(info.shape)
		ps.space.RemoveBody(info.body)
		delete(ps.shapes, info.shape)
		delete(ps.entities, e)
	}
}

func vecOf(v cp.Vector) common.Vec {
	return common.Vec{X: v.X, Y: v.Y}
}
