package bitgraphics

import "image"

// Displayable is something that can be shown on a display: a *BitGraphic or
// a *Group. Flatten resolves it once into the graphic to draw and the
// position of that graphic's top-left corner in the displayable's own
// coordinate space.
type Displayable interface {
	Flatten() (*BitGraphic, image.Point)
	Bounds() image.Rectangle
}

var (
	_ Displayable = (*BitGraphic)(nil)
	_ Displayable = (*Group)(nil)
)
