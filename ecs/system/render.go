package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/shelter/common"
	"github.com/milk9111/shelter/ecs"
	"github.com/milk9111/shelter/ecs/component"
	"github.com/milk9111/shelter/navigation"
	"golang.org/x/image/colornames"
)

// DebugFlags selects the debug layers drawn over the shelter.
type DebugFlags struct {
	Owners bool
	Graph  bool
	Bodies bool
}

// RenderSystem draws platforms, residents and the debug layers. It has no
// per-tick work.
type RenderSystem struct {
	finder  *navigation.PathFinder
	physics *PhysicsSystem
	Debug   DebugFlags
}

func NewRenderSystem(finder *navigation.PathFinder, physics *PhysicsSystem) *RenderSystem {
	return &RenderSystem{finder: finder, physics: physics}
}

func (r *RenderSystem) Update(w *ecs.World) {}

var ownerPalette = []color.Color{
	colornames.Steelblue,
	colornames.Seagreen,
	colornames.Darkorange,
	colornames.Mediumpurple,
	colornames.Indianred,
	colornames.Goldenrod,
	colornames.Teal,
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	b := screen.Bounds()
	view := ViewOf(w, b.Dx(), b.Dy())
	screen.Fill(colornames.Black)

	if r.finder != nil {
		r.drawPlatforms(screen, view)
	}
	if r.Debug.Graph && r.finder != nil {
		r.drawGraph(w, screen, view)
	}
	r.drawResidents(w, screen, view)
	if r.Debug.Bodies && r.physics != nil {
		DrawPhysicsDebug(r.physics.Space(), view, screen)
	}
	r.drawHUD(w, screen)
}

func (r *RenderSystem) drawPlatforms(screen *ebiten.Image, view View) {
	origin := r.finder.Partition().Origin()
	for _, pl := range r.finder.Partition().Platforms() {
		if !pl.Walkable {
			continue
		}
		rect := common.Rect{X: pl.Left + origin.X, Y: pl.Bottom + origin.Y, W: pl.Width(), H: pl.Top - pl.Bottom}
		clr := color.Color(colornames.Dimgray)
		if r.Debug.Owners {
			clr = ownerPalette[pl.ID%len(ownerPalette)]
		}
		x, y, wd, ht := tileRectToScreen(view, rect)
		vector.FillRect(screen, x, y, wd, ht, clr, false)
		if r.Debug.Owners {
			vector.StrokeRect(screen, x, y, wd, ht, 1, colornames.White, false)
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", pl.ID), int(x)+2, int(y)+2)
		}
	}
}

func (r *RenderSystem) drawGraph(w *ecs.World, screen *ebiten.Image, view View) {
	for _, e := range r.finder.Edges() {
		ax, ay := view.ToScreen(common.TileCenter(r.finder.Node(e.From)))
		bx, by := view.ToScreen(common.TileCenter(r.finder.Node(e.To)))
		clr := colornames.Skyblue
		if e.Kind == navigation.EdgeStair {
			clr = colornames.Orange
		}
		vector.StrokeLine(screen, ax, ay, bx, by, 2, clr, true)
	}
	for id := range r.finder.NodeCount() {
		x, y := view.ToScreen(common.TileCenter(r.finder.Node(id)))
		vector.FillRect(screen, x-3, y-3, 6, 6, colornames.Yellow, false)
	}

	ecs.ForEach3(w, component.SelectedTagComponent.Kind(), component.MoveToComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, _ *component.SelectedTag, goal *component.MoveTo, t *component.Transform) {
			prev := t.Pos()
			points := append(r.finder.Route(t.Tile(), goal.Target), goal.Target)
			for _, tile := range points {
				next := common.TileCenter(tile)
				ax, ay := view.ToScreen(prev)
				bx, by := view.ToScreen(next)
				vector.StrokeLine(screen, ax, ay, bx, by, 1, colornames.Lime, true)
				prev = next
			}
		})
}

func (r *RenderSystem) drawResidents(w *ecs.World, screen *ebiten.Image, view View) {
	ecs.ForEach2(w, component.PersonTagComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, _ *component.PersonTag, t *component.Transform) {
			width, height := common.TileSize, common.TileSize
			if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Width > 0 && pb.Height > 0 {
				width, height = pb.Width, pb.Height
			}
			x, y := view.ToScreen(common.Vec{X: t.X - width/2, Y: t.Y + height})
			sw, sh := view.Scale(width), view.Scale(height)
			vector.FillRect(screen, x, y, sw, sh, colornames.Wheat, false)
			if ecs.Has(w, e, component.SelectedTagComponent.Kind()) {
				vector.StrokeRect(screen, x-1, y-1, sw+2, sh+2, 2, colornames.White, false)
			}

			if goal, ok := ecs.Get(w, e, component.MoveToComponent.Kind()); ok {
				gx, gy := view.ToScreen(common.TileCenter(goal.Target))
				s := view.Scale(common.TileSize / 3)
				vector.StrokeLine(screen, gx-s, gy-s, gx+s, gy+s, 2, colornames.Crimson, true)
				vector.StrokeLine(screen, gx-s, gy+s, gx+s, gy-s, 2, colornames.Crimson, true)
			}
		})
}

func (r *RenderSystem) drawHUD(w *ecs.World, screen *ebiten.Image) {
	text := ""
	if _, c, ok := ecs.First(w, component.ClockComponent.Kind()); ok {
		text = FormatClock(*c)
	}
	if e, ok := w.First(component.SelectedTagComponent.Kind()); ok {
		name := e.String()
		if p, ok := ecs.Get(w, e, component.PersonComponent.Kind()); ok && p.Name != "" {
			name = p.Name
		}
		text += "\nSelected: " + name
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			text += " at " + t.Tile().String()
		}
		if mv, ok := ecs.Get(w, e, component.MoveableComponent.Kind()); ok {
			text += fmt.Sprintf("\nIntent: %v Mode: %v", mv.Intent, mv.Mode)
		}
	}
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

// tileRectToScreen returns the screen-space top-left corner and size of a
// tile rectangle.
func tileRectToScreen(view View, r common.Rect) (x, y, w, h float32) {
	top := common.TileOrigin(common.Tile{X: r.X, Y: r.Y + r.H})
	x, y = view.ToScreen(top)
	return x, y, view.Scale(float64(r.W) * common.TileSize), view.Scale(float64(r.H) * common.TileSize)
}
