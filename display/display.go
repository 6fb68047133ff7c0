// Package display shows monochrome graphics on a display adapter.
//
// An Adapter is a frame buffer with three operations: clear it, set one
// pixel, and flush it to the device. The helpers in this package translate a
// bitgraphics.Displayable to device coordinates, clip it to the adapter
// bounds and drive an adapter through clear, set and flush.
//
// # Centering
//
// ShowCentered places the middle of a graphic at a device pixel:
//
//	x = cx - roundHalfEven(width/2)
//	y = cy - roundHalfEven(height/2)
//
// so a 5 pixel wide graphic centered at x=10 starts at x=8 (2.5 rounds to 2).
// ShowCenteredFraction takes the center as a fraction of the device width and
// height in [0, 1], scaled and rounded half to even to a pixel first.
package display

import (
	"fmt"
	"image"
	"math"

	"github.com/flavioheleno/bitgraphics"
)

// Adapter is a monochrome display frame buffer.
type Adapter interface {
	// Clear turns every pixel of the frame buffer off.
	Clear() error
	// SetPixel sets one pixel of the frame buffer.
	SetPixel(x, y int, on bool) error
	// Flush sends the frame buffer to the device.
	Flush() error
	// Bounds returns the device size, anchored at (0, 0).
	Bounds() image.Rectangle
}

// Draw sets the pixels of d with its origin at (x, y), without clearing or
// flushing. Pixels falling outside the adapter bounds are skipped. Off pixels
// of d are left untouched, so several Draw calls compose by union.
func Draw(a Adapter, d bitgraphics.Displayable, x, y int) error {
	g, origin := d.Flatten()
	return drawGraphic(a, g, x+origin.X, y+origin.Y)
}

func drawGraphic(a Adapter, g *bitgraphics.BitGraphic, x, y int) error {
	r := a.Bounds()
	w := g.Width()
	for i, on := range g.Bits() {
		if !on {
			continue
		}
		p := image.Pt(x+i%w, y+i/w)
		if !p.In(r) {
			continue
		}
		if err := a.SetPixel(p.X, p.Y, true); err != nil {
			return err
		}
	}
	return nil
}

// ShowAt clears the adapter, draws d with its origin at (x, y) and flushes.
func ShowAt(a Adapter, d bitgraphics.Displayable, x, y int) error {
	if err := a.Clear(); err != nil {
		return err
	}
	if err := Draw(a, d, x, y); err != nil {
		return err
	}
	return a.Flush()
}

// Show is ShowAt at the origin.
func Show(a Adapter, d bitgraphics.Displayable) error {
	return ShowAt(a, d, 0, 0)
}

// CenterOffset returns the top-left corner that centers a w x h graphic on
// (cx, cy).
func CenterOffset(cx, cy, w, h int) image.Point {
	return image.Pt(cx-halfEven(w), cy-halfEven(h))
}

func halfEven(n int) int {
	return int(math.RoundToEven(float64(n) / 2))
}

// ShowCentered clears the adapter, draws d centered on the device pixel
// (cx, cy) and flushes.
func ShowCentered(a Adapter, d bitgraphics.Displayable, cx, cy int) error {
	g, _ := d.Flatten()
	p := CenterOffset(cx, cy, g.Width(), g.Height())
	if err := a.Clear(); err != nil {
		return err
	}
	if err := drawGraphic(a, g, p.X, p.Y); err != nil {
		return err
	}
	return a.Flush()
}

// FractionToPixel scales a center given as fractions of the device size to a
// device pixel, rounding half to even.
func FractionToPixel(r image.Rectangle, fx, fy float64) (image.Point, error) {
	if !inUnit(fx) || !inUnit(fy) {
		return image.Point{}, fmt.Errorf("display: center (%v, %v) is not within [0, 1]", fx, fy)
	}
	return image.Pt(
		r.Min.X+int(math.RoundToEven(fx*float64(r.Dx()))),
		r.Min.Y+int(math.RoundToEven(fy*float64(r.Dy()))),
	), nil
}

func inUnit(f float64) bool {
	return f >= 0 && f <= 1
}

// ShowCenteredFraction is ShowCentered with the center given as fractions of
// the device width and height.
func ShowCenteredFraction(a Adapter, d bitgraphics.Displayable, fx, fy float64) error {
	c, err := FractionToPixel(a.Bounds(), fx, fy)
	if err != nil {
		return err
	}
	return ShowCentered(a, d, c.X, c.Y)
}
