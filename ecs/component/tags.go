package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// PlatformTag marks scripted bodies other movers can ride.
type PlatformTag struct{}

var PlatformTagComponent = NewComponent[PlatformTag]()
