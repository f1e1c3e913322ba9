package system

import (
	"fmt"
	"math"

	"github.com/milk9111/shelter/ecs"
	"github.com/milk9111/shelter/ecs/component"
)

// dayRate converts Clock.Ratio into fractions of a day per second.
const dayRate = 0.1

// ClockSystem advances the singleton Clock.
type ClockSystem struct {
	dt float64
}

func NewClockSystem(dt float64) *ClockSystem {
	return &ClockSystem{dt: dt}
}

func (cs *ClockSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	if _, c, ok := ecs.First(w, component.ClockComponent.Kind()); ok {
		AdvanceClock(c, cs.dt)
	}
}

// AdvanceClock moves c forward by dt seconds unless it is paused, rolling
// whole days into Days.
func AdvanceClock(c *component.Clock, dt float64) {
	if c == nil || c.Paused {
		return
	}
	c.Time += c.Ratio * dayRate * dt
	if c.Time >= 1 {
		days, frac := math.Modf(c.Time)
		c.Days += int(days)
		c.Time = frac
	}
}

// StepHour snaps c to the start of the next (delta > 0) or previous
// (delta < 0) hour. The day counter is left alone.
func StepHour(c *component.Clock, delta int) {
	if c == nil || delta == 0 {
		return
	}
	h := (wholeHour(*c) + delta) % 24
	if h < 0 {
		h += 24
	}
	c.Time = float64(h) / 24
}

// wholeHour tolerates Time values a rounding error short of an hour mark.
func wholeHour(c component.Clock) int {
	return int(math.Floor(c.Hour() + hourEpsilon))
}

const hourEpsilon = 1e-9

// FormatClock renders c the way the overlay shows it.
func FormatClock(c component.Clock) string {
	s := fmt.Sprintf("Day %d Hour %02d", c.Days, wholeHour(c))
	if c.Paused {
		s += " paused"
	}
	return s
}
