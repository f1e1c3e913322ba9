package ecs

import "github.com/hajimehoshi/ebiten/v2"

// RenderSystem is a system that also draws.
type RenderSystem interface {
	Draw(w *World, screen *ebiten.Image)
}

// Draw calls every render-capable system in update order.
func (w *World) Draw(screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	for _, s := range w.scheduler.systems {
		if rs, ok := s.(RenderSystem); ok {
			rs.Draw(w, screen)
		}
	}
}
