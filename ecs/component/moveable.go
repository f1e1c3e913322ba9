package component

import (
	"github.com/milk9111/shelter/common"
	"github.com/milk9111/shelter/navigation"
)

// MoveMode is the movement state of a Moveable.
type MoveMode uint8

const (
	MoveModeNormal MoveMode = iota
	MoveModeInStair
)

func (m MoveMode) String() string {
	if m == MoveModeInStair {
		return "in_stair"
	}
	return "normal"
}

// Moveable is anything that walks floors and climbs stairs. Intent is written
// by whoever steers the entity; the movement system turns it into Velocity.
type Moveable struct {
	Speed  float64
	Intent navigation.Intent
	Mode   MoveMode

	// StairStart and StairDir describe the stair being travelled while Mode
	// is MoveModeInStair. StairStart+StairDir is the far end.
	StairStart common.Vec
	StairDir   common.Vec

	Velocity common.Vec
}

var MoveableComponent = NewComponent[Moveable]()
