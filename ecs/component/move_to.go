package component

import "github.com/milk9111/shelter/common"

// MoveTo is a navigation goal. It is removed once the goal is reached or
// found to be unreachable.
type MoveTo struct {
	Target common.Tile
}

var MoveToComponent = NewComponent[MoveTo]()
