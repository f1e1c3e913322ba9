package component

import "github.com/milk9111/shelter/common"

// Transform is the world-space position of an entity's feet.
type Transform struct {
	X float64
	Y float64
}

func (t Transform) Pos() common.Vec { return common.Vec{X: t.X, Y: t.Y} }

func (t *Transform) SetPos(v common.Vec) {
	t.X = v.X
	t.Y = v.Y
}

// Tile is the tile the entity is standing in.
func (t Transform) Tile() common.Tile { return common.TileOf(t.Pos()) }

var TransformComponent = NewComponent[Transform]()
