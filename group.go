package bitgraphics

import "image"

// Placement is a graphic positioned at an offset inside a Group.
type Placement struct {
	Graphic *BitGraphic
	X, Y    int
}

// Group composes graphics at independent offsets. Offsets may be negative and
// placements may overlap.
//
// A Group references the graphics it places without copying them: callers
// must not mutate a placed graphic while the group is in use.
type Group struct {
	placements []Placement
}

// NewGroup returns an empty group.
func NewGroup() *Group {
	return &Group{}
}

// Add places g with its top-left corner at (x, y). It panics if g is nil.
func (gr *Group) Add(g *BitGraphic, x, y int) {
	if g == nil {
		panic("bitgraphics: Group.Add of nil graphic")
	}
	gr.placements = append(gr.placements, Placement{Graphic: g, X: x, Y: y})
}

// Len returns the number of placements.
func (gr *Group) Len() int { return len(gr.placements) }

// Placements returns a copy of the placement list in insertion order.
func (gr *Group) Placements() []Placement {
	return append([]Placement(nil), gr.placements...)
}

// Bounds returns the rectangle covering every placement, in group
// coordinates. An empty group has empty bounds at the origin.
func (gr *Group) Bounds() image.Rectangle {
	if len(gr.placements) == 0 {
		return image.Rectangle{}
	}
	p := gr.placements[0]
	r := image.Rect(p.X, p.Y, p.X+p.Graphic.width, p.Y+p.Graphic.height)
	for _, p := range gr.placements[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X+p.Graphic.width)
		r.Max.Y = max(r.Max.Y, p.Y+p.Graphic.height)
	}
	return r
}

// Left returns the smallest x offset.
func (gr *Group) Left() int { return gr.Bounds().Min.X }

// Right returns the largest x offset plus width.
func (gr *Group) Right() int { return gr.Bounds().Max.X }

// Top returns the smallest y offset.
func (gr *Group) Top() int { return gr.Bounds().Min.Y }

// Bottom returns the largest y offset plus height.
func (gr *Group) Bottom() int { return gr.Bounds().Max.Y }

// Width returns Right - Left.
func (gr *Group) Width() int { return gr.Bounds().Dx() }

// Height returns Bottom - Top.
func (gr *Group) Height() int { return gr.Bounds().Dy() }

// Fuse flattens the group into a new graphic covering Bounds, with the
// group's (Left, Top) mapped to (0, 0). A pixel is on iff at least one
// placement has an on pixel there. The group is left unchanged.
func (gr *Group) Fuse() *BitGraphic {
	r := gr.Bounds()
	w := r.Dx()
	out := &BitGraphic{
		bits:   make([]bool, w*r.Dy()),
		width:  w,
		height: r.Dy(),
	}
	// OR-ing every placement's set pixels into the output is the same union
	// as testing each output pixel against every placement.
	for _, p := range gr.placements {
		g := p.Graphic
		ox, oy := p.X-r.Min.X, p.Y-r.Min.Y
		for y := 0; y < g.height; y++ {
			row := g.bits[y*g.width : (y+1)*g.width]
			base := (oy+y)*w + ox
			for x, on := range row {
				if on {
					out.bits[base+x] = true
				}
			}
		}
	}
	return out
}

// Flatten implements Displayable. The fused graphic's top-left corner sits
// at (Left, Top) in group coordinates.
func (gr *Group) Flatten() (*BitGraphic, image.Point) {
	return gr.Fuse(), gr.Bounds().Min
}
