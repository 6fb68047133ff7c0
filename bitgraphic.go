package bitgraphics

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"strconv"

	"github.com/flavioheleno/bitgraphics/framebuf"
)

// BitGraphic is a monochrome raster: width*height boolean pixels stored in
// row-major order. Pixel (x, y) lives at index y*width + x.
//
// The zero value is a valid 0x0 graphic.
type BitGraphic struct {
	bits   []bool
	width  int
	height int
}

// New returns a blank (all off) graphic of the given size.
func New(width, height int) (*BitGraphic, error) {
	n, ok := area(width, height)
	if !ok {
		return nil, &SizeError{Width: width, Height: height}
	}
	return &BitGraphic{
		bits:   make([]bool, n),
		width:  width,
		height: height,
	}, nil
}

// area returns width*height, or false when a dimension is negative or the
// product does not fit in an int.
func area(width, height int) (int, bool) {
	if width < 0 || height < 0 {
		return 0, false
	}
	if width != 0 && height > math.MaxInt/width {
		return 0, false
	}
	return width * height, true
}

// MustNew is like New but panics on invalid dimensions.
func MustNew(width, height int) *BitGraphic {
	g, err := New(width, height)
	if err != nil {
		panic(err)
	}
	return g
}

// FromBits returns a graphic over a copy of bits.
func FromBits(width, height int, bits []bool) (*BitGraphic, error) {
	if width < 0 || height < 0 {
		return nil, &SizeError{Width: width, Height: height}
	}
	if n, ok := area(width, height); !ok || len(bits) != n {
		return nil, &ConsistencyError{Len: len(bits), Width: width, Height: height}
	}
	return &BitGraphic{
		bits:   append([]bool(nil), bits...),
		width:  width,
		height: height,
	}, nil
}

// Parse decodes a serialized graphic.
func Parse(data []byte) (*BitGraphic, error) {
	g := &BitGraphic{}
	if err := g.Deserialize(data); err != nil {
		return nil, err
	}
	return g, nil
}

// ParseString is Parse for a string.
func ParseString(s string) (*BitGraphic, error) {
	return Parse([]byte(s))
}

// Load reads and decodes a serialized graphic from a file.
func Load(path string) (*BitGraphic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Width returns the width in pixels.
func (g *BitGraphic) Width() int { return g.width }

// Height returns the height in pixels.
func (g *BitGraphic) Height() int { return g.height }

// Bits returns a copy of the row-major pixel sequence.
func (g *BitGraphic) Bits() []bool {
	return append([]bool(nil), g.bits...)
}

// Count returns the number of set pixels.
func (g *BitGraphic) Count() int {
	n := 0
	for _, b := range g.bits {
		if b {
			n++
		}
	}
	return n
}

// Bit returns the pixel at (x, y).
func (g *BitGraphic) Bit(x, y int) (bool, error) {
	if !g.in(x, y) {
		return false, &RangeError{X: x, Y: y, Width: g.width, Height: g.height}
	}
	return g.bits[y*g.width+x], nil
}

// SetBit sets the pixel at (x, y).
func (g *BitGraphic) SetBit(x, y int, on bool) error {
	if !g.in(x, y) {
		return &RangeError{X: x, Y: y, Width: g.width, Height: g.height}
	}
	g.bits[y*g.width+x] = on
	return nil
}

func (g *BitGraphic) in(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Clone returns a deep copy.
func (g *BitGraphic) Clone() *BitGraphic {
	return &BitGraphic{bits: g.Bits(), width: g.width, height: g.height}
}

// Equal reports whether both graphics have the same size and pixels.
func (g *BitGraphic) Equal(o *BitGraphic) bool {
	if g.width != o.width || g.height != o.height || len(g.bits) != len(o.bits) {
		return false
	}
	for i := range g.bits {
		if g.bits[i] != o.bits[i] {
			return false
		}
	}
	return true
}

// String returns a short description of the graphic.
func (g *BitGraphic) String() string {
	return "bitgraphics.BitGraphic{" + SizeString(g.width, g.height) + "}"
}

// Flatten implements Displayable. A graphic is drawn with its top-left
// corner at its own origin.
func (g *BitGraphic) Flatten() (*BitGraphic, image.Point) {
	return g, image.Point{}
}

// ColorModel returns framebuf.BitModel.
func (g *BitGraphic) ColorModel() color.Model {
	return framebuf.BitModel
}

// Bounds returns the graphic bounds anchored at (0, 0).
func (g *BitGraphic) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.width, g.height)
}

// At returns framebuf.On or framebuf.Off. It implements image.Image, so
// pixels outside the bounds are Off rather than an error.
func (g *BitGraphic) At(x, y int) color.Color {
	if !g.in(x, y) {
		return framebuf.Off
	}
	return framebuf.Bit(g.bits[y*g.width+x])
}

// Set implements draw.Image. Pixels outside the bounds are ignored.
func (g *BitGraphic) Set(x, y int, c color.Color) {
	if !g.in(x, y) {
		return
	}
	g.bits[y*g.width+x] = bool(framebuf.BitModel.Convert(c).(framebuf.Bit))
}

// Serialize returns the canonical text form:
//
//	{"bits": "0110", "width": 2, "height": 2}
//
// Key order and separators are fixed so that glyph atlases and converted
// image caches written by different tools are byte-identical.
func (g *BitGraphic) Serialize() string {
	var b bytes.Buffer
	b.Grow(len(g.bits) + 48)
	b.WriteString(`{"bits": "`)
	for _, on := range g.bits {
		if on {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	b.WriteString(`", "width": `)
	b.WriteString(strconv.Itoa(g.width))
	b.WriteString(`, "height": `)
	b.WriteString(strconv.Itoa(g.height))
	b.WriteByte('}')
	return b.String()
}

// Save writes the canonical text form to a file.
func (g *BitGraphic) Save(path string) error {
	return os.WriteFile(path, []byte(g.Serialize()), 0o644)
}

// wire is the decoded serialized form. Pointers detect missing fields.
type wire struct {
	Bits   *string `json:"bits"`
	Width  *int    `json:"width"`
	Height *int    `json:"height"`
}

var errNegative = errors.New("must not be negative")

// Deserialize replaces the graphic contents with the decoded text. On error
// the graphic is left untouched.
func (g *BitGraphic) Deserialize(data []byte) error {
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) {
			return &FormatError{Field: te.Field, Err: err}
		}
		return &FormatError{Err: err}
	}

	switch {
	case w.Bits == nil:
		return &FormatError{Field: "bits"}
	case w.Width == nil:
		return &FormatError{Field: "width"}
	case w.Height == nil:
		return &FormatError{Field: "height"}
	case *w.Width < 0:
		return &FormatError{Field: "width", Err: errNegative}
	case *w.Height < 0:
		return &FormatError{Field: "height", Err: errNegative}
	}

	bits := make([]bool, 0, len(*w.Bits))
	offset := 0
	for _, c := range *w.Bits {
		switch c {
		case '0':
			bits = append(bits, false)
		case '1':
			bits = append(bits, true)
		default:
			return &FormatError{Field: "bits", Char: c, Offset: offset}
		}
		offset++
	}

	width, height := *w.Width, *w.Height
	if n, ok := area(width, height); !ok || len(bits) != n {
		return &ConsistencyError{Len: len(bits), Width: width, Height: height}
	}

	g.bits, g.width, g.height = bits, width, height
	return nil
}

// MarshalJSON implements json.Marshaler.
func (g *BitGraphic) MarshalJSON() ([]byte, error) {
	return []byte(g.Serialize()), nil
}

// UnmarshalJSON implements json.Unmarshaler with the same validation as
// Deserialize.
func (g *BitGraphic) UnmarshalJSON(data []byte) error {
	return g.Deserialize(data)
}
