package component

// Clock is the in-game date. Time is the fraction of the current day in
// [0, 1); Ratio scales how fast it advances.
type Clock struct {
	Days   int
	Time   float64
	Ratio  float64
	Paused bool
}

// Hour is the current hour of the day in [0, 24).
func (c Clock) Hour() float64 { return c.Time * 24 }

var ClockComponent = NewComponent[Clock]()
