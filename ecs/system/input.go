package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/shelter/ecs"
	"github.com/milk9111/shelter/ecs/component"
)

// InputSystem copies keyboard and mouse state into every Input component.
type InputSystem struct {
	screenW int
	screenH int
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// SetScreen records the logical screen size used to map the cursor.
func (i *InputSystem) SetScreen(w, h int) {
	i.screenW, i.screenH = w, h
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil {
		return
	}
	cx, cy := ebiten.CursorPosition()
	in := component.Input{
		CursorX:      cx,
		CursorY:      cy,
		ScreenW:      i.screenW,
		ScreenH:      i.screenH,
		Click:        inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		TogglePause:  inpututil.IsKeyJustPressed(ebiten.KeySpace),
		HourBack:     inpututil.IsKeyJustPressed(ebiten.KeyQ),
		HourForward:  inpututil.IsKeyJustPressed(ebiten.KeyE),
		ToggleOwners: inpututil.IsKeyJustPressed(ebiten.Key1),
		ToggleGraph:  inpututil.IsKeyJustPressed(ebiten.Key2),
		ToggleBodies: inpututil.IsKeyJustPressed(ebiten.Key3),
	}
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		*input = in
	})
}
