package component

// Camera marks the entity whose Transform is the world point drawn at the
// centre of the screen.
type Camera struct {
	Zoom float64
}

var CameraComponent = NewComponent[Camera]()
