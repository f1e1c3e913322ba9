package component

// Routine lets a script choose goals for an idle entity. Wait counts down in
// seconds before the next pick; Picks counts successful picks and is handed
// to the script.
type Routine struct {
	Script string
	Rest   float64
	Wait   float64
	Picks  int
}

var RoutineComponent = NewComponent[Routine]()
