package component

type PersonTag struct{}

var PersonTagComponent = NewComponent[PersonTag]()

type SelectedTag struct{}

var SelectedTagComponent = NewComponent[SelectedTag]()
