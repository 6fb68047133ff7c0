package framebuf

import (
	"image"
	"image/color"
	"image/draw"
)

// Bit is a monochrome color. On is a lit (dark, filled in) pixel.
type Bit bool

const (
	// Off is an unlit pixel.
	Off Bit = false
	// On is a lit pixel.
	On Bit = true
)

// RGBA implements color.Color. On renders as black ink, Off as white paper.
func (b Bit) RGBA() (r, g, bl, a uint32) {
	if b {
		return 0, 0, 0, 0xFFFF
	}
	return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
}

func (b Bit) String() string {
	if b {
		return "On"
	}
	return "Off"
}

// toBit converts any color.Color to Bit. Transparent colors are Off; opaque
// colors are On when their luminance is in the darker half.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Off
	}
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Bit(y < 0x8000)
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// MonoHLSB is a 1-bit image with horizontally packed rows, MSB first.
type MonoHLSB struct {
	Pix    []byte          // Pixel data (8 pixels per byte)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewMonoHLSB creates a new, all Off, MonoHLSB image with the specified bounds.
func NewMonoHLSB(r image.Rectangle) *MonoHLSB {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &MonoHLSB{Rect: r}
	}
	stride := (w + 7) / 8
	return &MonoHLSB{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// FromImage packs src into a new MonoHLSB anchored at (0, 0). Colors are
// converted with BitModel.
func FromImage(src image.Image) *MonoHLSB {
	b := src.Bounds()
	dst := NewMonoHLSB(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, src, b.Min, draw.Src)
	return dst
}

// ColorModel returns the color model of the image.
func (p *MonoHLSB) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *MonoHLSB) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
func (p *MonoHLSB) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the Bit at (x, y). Pixels outside the bounds are Off.
func (p *MonoHLSB) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Off
	}
	offset, mask := p.pixOffset(x, y)
	return Bit(p.Pix[offset]&mask != 0)
}

// Set sets the color of the pixel at (x, y).
func (p *MonoHLSB) Set(x, y int, c color.Color) {
	p.SetBit(x, y, BitModel.Convert(c).(Bit))
}

// SetBit sets the Bit at (x, y). Pixels outside the bounds are ignored.
func (p *MonoHLSB) SetBit(x, y int, b Bit) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, mask := p.pixOffset(x, y)
	if b {
		p.Pix[offset] |= mask
	} else {
		p.Pix[offset] &^= mask
	}
}

// pixOffset returns the byte offset and bit mask for the pixel at (x, y).
// Column 0 of each byte is bit 7.
func (p *MonoHLSB) pixOffset(x, y int) (offset int, mask byte) {
	dx := x - p.Rect.Min.X
	offset = (y-p.Rect.Min.Y)*p.Stride + dx/8
	mask = 0x80 >> uint(dx&7)
	return
}
