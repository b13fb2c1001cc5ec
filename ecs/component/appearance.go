package component

import "image/color"

type Appearance struct {
	Color color.Color
}

var AppearanceComponent = NewComponent[Appearance]()
