package ssd1322

import (
	"image"
	"image/color"
)

// Level is a 4-bit pixel intensity: 0 is off, 15 the brightest.
type Level uint8

// RGBA implements color.Color. Only the low nibble is used.
func (l Level) RGBA() (r, g, b, a uint32) {
	y := uint32(l&0x0F) * 0x1111
	return y, y, y, 0xFFFF
}

// LevelModel converts colors to Level by luma.
var LevelModel = color.ModelFunc(func(c color.Color) color.Color {
	if l, ok := c.(Level); ok {
		return l & 0x0F
	}
	r, g, b, _ := c.RGBA()
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Level(y >> 12)
})

// Frame is an image laid out like the controller RAM: two pixels per byte,
// the left pixel in the high nibble.
type Frame struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

// NewFrame returns a blank w x h frame. w must be even.
func NewFrame(w, h int) *Frame {
	if w%2 != 0 {
		panic("ssd1322: frame width must be even")
	}
	return &Frame{
		Pix:    make([]byte, w/2*h),
		Stride: w / 2,
		Rect:   image.Rect(0, 0, w, h),
	}
}

// ColorModel implements image.Image.
func (f *Frame) ColorModel() color.Model { return LevelModel }

// Bounds implements image.Image.
func (f *Frame) Bounds() image.Rectangle { return f.Rect }

// At implements image.Image.
func (f *Frame) At(x, y int) color.Color { return f.LevelAt(x, y) }

// LevelAt returns the intensity at (x, y), 0 outside the frame.
func (f *Frame) LevelAt(x, y int) Level {
	if !image.Pt(x, y).In(f.Rect) {
		return 0
	}
	i, shift := f.pixOffset(x, y)
	return Level(f.Pix[i]>>shift) & 0x0F
}

// Set implements draw.Image.
func (f *Frame) Set(x, y int, c color.Color) {
	f.SetLevel(x, y, LevelModel.Convert(c).(Level))
}

// SetLevel sets the intensity at (x, y). Points outside the frame are
// ignored.
func (f *Frame) SetLevel(x, y int, l Level) {
	if !image.Pt(x, y).In(f.Rect) {
		return
	}
	i, shift := f.pixOffset(x, y)
	f.Pix[i] = f.Pix[i]&^(0x0F<<shift) | byte(l&0x0F)<<shift
}

// Clear sets every pixel to 0.
func (f *Frame) Clear() {
	clear(f.Pix)
}

// Clone returns a deep copy of f.
func (f *Frame) Clone() *Frame {
	c := *f
	c.Pix = append([]byte(nil), f.Pix...)
	return &c
}

// row returns the bytes of row y.
func (f *Frame) row(y int) []byte {
	i := (y - f.Rect.Min.Y) * f.Stride
	return f.Pix[i : i+f.Stride]
}

// region copies a byte aligned rectangle: columns minCol..maxCol (minCol
// even, maxCol odd) of rows minRow..maxRow.
func (f *Frame) region(minCol, maxCol, minRow, maxRow int) []byte {
	width := (maxCol - minCol + 1) / 2
	out := make([]byte, 0, width*(maxRow-minRow+1))
	for y := minRow; y <= maxRow; y++ {
		start := minCol / 2
		out = append(out, f.row(y)[start:start+width]...)
	}
	return out
}

func (f *Frame) pixOffset(x, y int) (int, uint) {
	i := (y-f.Rect.Min.Y)*f.Stride + (x-f.Rect.Min.X)/2
	return i, uint(4 * (1 - (x-f.Rect.Min.X)&1))
}
