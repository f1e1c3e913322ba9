package component

// Person identifies a resident.
type Person struct {
	Name   string
	Prefab string
}

var PersonComponent = NewComponent[Person]()
