package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and the collider size. Body and
// Shape are filled in by the physics system.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Width  float64
	Height float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
