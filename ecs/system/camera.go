package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/shelter/common"
	"github.com/milk9111/shelter/ecs"
	"github.com/milk9111/shelter/ecs/component"
)

// panSpeed is how far the camera moves per second, in screen pixels.
const panSpeed = 300.0

// View maps world space (y up) to screen space (y down).
type View struct {
	CenterX float64
	CenterY float64
	Zoom    float64
	Width   float64
	Height  float64
}

// ViewOf builds the view of the first camera entity for a screen of the
// given size. Without a camera the world origin sits at the screen centre.
func ViewOf(w *ecs.World, screenW, screenH int) View {
	v := View{Zoom: 1, Width: float64(screenW), Height: float64(screenH)}
	e, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return v
	}
	if cam, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok && cam.Zoom > 0 {
		v.Zoom = cam.Zoom
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		v.CenterX, v.CenterY = t.X, t.Y
	}
	return v
}

func (v View) ToScreen(p common.Vec) (float32, float32) {
	x := (p.X-v.CenterX)*v.Zoom + v.Width/2
	y := v.Height/2 - (p.Y-v.CenterY)*v.Zoom
	return float32(x), float32(y)
}

func (v View) ToWorld(sx, sy int) common.Vec {
	return common.Vec{
		X: (float64(sx)-v.Width/2)/v.Zoom + v.CenterX,
		Y: (v.Height/2-float64(sy))/v.Zoom + v.CenterY,
	}
}

// Scale converts a world length to screen pixels.
func (v View) Scale(l float64) float32 { return float32(l * v.Zoom) }

// CameraSystem pans the camera with the arrow keys.
type CameraSystem struct {
	dt float64
}

func NewCameraSystem(dt float64) *CameraSystem {
	return &CameraSystem{dt: dt}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy++
	}
	if dx == 0 && dy == 0 {
		return
	}
	ecs.ForEach2(w, component.CameraComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, cam *component.Camera, t *component.Transform) {
			zoom := cam.Zoom
			if zoom <= 0 {
				zoom = 1
			}
			t.X += dx * panSpeed * cs.dt / zoom
			t.Y += dy * panSpeed * cs.dt / zoom
		})
}
