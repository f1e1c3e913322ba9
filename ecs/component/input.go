package component

// Input is this tick's player input, written by the input system into a
// singleton entity.
type Input struct {
	CursorX int
	CursorY int
	ScreenW int
	ScreenH int
	Click   bool

	TogglePause  bool
	HourBack     bool
	HourForward  bool
	ToggleOwners bool
	ToggleGraph  bool
	ToggleBodies bool
}

var InputComponent = NewComponent[Input]()
