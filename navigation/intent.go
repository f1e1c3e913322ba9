package navigation

import "github.com/milk9111/shelter/common"

// Horizontal is the left/right half of a movement intent.
type Horizontal int8

const (
	HorizontalNone Horizontal = 0
	Left           Horizontal = -1
	Right          Horizontal = 1
)

func (h Horizontal) String() string {
	switch h {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}

// Vertical is the up/down half of a movement intent.
type Vertical int8

const (
	VerticalNone Vertical = iota
	Up
	Down
)

func (v Vertical) String() string {
	switch v {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "none"
}

// Intent is the one-step direction a mover should take this tick.
type Intent struct {
	Horizontal Horizontal
	Vertical   Vertical
}

// IsNone reports whether the intent asks for no movement at all.
func (i Intent) IsNone() bool {
	return i.Horizontal == HorizontalNone && i.Vertical == VerticalNone
}

func (i Intent) String() string {
	return i.Horizontal.String() + "/" + i.Vertical.String()
}

// Status tells the caller what to do with the goal that produced an intent.
type Status uint8

const (
	Navigating Status = iota
	Arrived
	Unreachable
)

func (s Status) String() string {
	switch s {
	case Arrived:
		return "arrived"
	case Unreachable:
		return "unreachable"
	}
	return "navigating"
}

// Done reports whether the goal should be dropped.
func (s Status) Done() bool { return s != Navigating }

func horizontalToward(from, to int) Horizontal {
	return Horizontal(common.Sign(to - from))
}

func verticalToward(from, to int) Vertical {
	switch {
	case from < to:
		return Up
	case from > to:
		return Down
	}
	return VerticalNone
}
