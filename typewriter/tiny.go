package typewriter

import "github.com/flavioheleno/bitgraphics"

// Tiny glyph cell: a 3x5 glyph plus one blank column on the right, so that
// zero-gap layout still separates characters.
const (
	TinyWidth  = 4
	TinyHeight = 5
)

var tinyRows = map[rune][TinyHeight]uint8{
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b111, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b001, 0b001, 0b001},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},

	'a': {0b010, 0b101, 0b111, 0b101, 0b101},
	'b': {0b110, 0b101, 0b110, 0b101, 0b110},
	'c': {0b011, 0b100, 0b100, 0b100, 0b011},
	'd': {0b110, 0b101, 0b101, 0b101, 0b110},
	'e': {0b111, 0b100, 0b110, 0b100, 0b111},
	'f': {0b111, 0b100, 0b110, 0b100, 0b100},
	'g': {0b011, 0b100, 0b101, 0b101, 0b011},
	'h': {0b101, 0b101, 0b111, 0b101, 0b101},
	'i': {0b111, 0b010, 0b010, 0b010, 0b111},
	'j': {0b011, 0b001, 0b001, 0b101, 0b010},
	'k': {0b101, 0b110, 0b100, 0b110, 0b101},
	'l': {0b100, 0b100, 0b100, 0b100, 0b111},
	'm': {0b101, 0b111, 0b101, 0b101, 0b101},
	'n': {0b101, 0b111, 0b111, 0b101, 0b101},
	'o': {0b010, 0b101, 0b101, 0b101, 0b010},
	'p': {0b110, 0b101, 0b110, 0b100, 0b100},
	'q': {0b010, 0b101, 0b101, 0b111, 0b011},
	'r': {0b110, 0b101, 0b110, 0b101, 0b101},
	's': {0b011, 0b100, 0b010, 0b001, 0b110},
	't': {0b111, 0b010, 0b010, 0b010, 0b010},
	'u': {0b101, 0b101, 0b101, 0b101, 0b111},
	'v': {0b101, 0b101, 0b101, 0b101, 0b010},
	'w': {0b101, 0b101, 0b101, 0b111, 0b101},
	'x': {0b101, 0b101, 0b010, 0b101, 0b101},
	'y': {0b101, 0b101, 0b010, 0b010, 0b010},
	'z': {0b111, 0b001, 0b010, 0b100, 0b111},

	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
	'/': {0b001, 0b001, 0b010, 0b100, 0b100},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	':': {0b000, 0b010, 0b000, 0b010, 0b000},
	'.': {0b000, 0b000, 0b000, 0b000, 0b010},
	'%': {0b101, 0b001, 0b010, 0b100, 0b101},
	'°': {0b010, 0b101, 0b010, 0b000, 0b000},
}

// TinyGlyph returns the 4x5 glyph for ch and whether one exists.
func TinyGlyph(ch rune) (*bitgraphics.BitGraphic, bool) {
	rows, ok := tinyRows[ch]
	if !ok {
		return nil, false
	}
	g := bitgraphics.MustNew(TinyWidth, TinyHeight)
	for y, row := range rows {
		for x := 0; x < 3; x++ {
			if row&(1<<(2-x)) != 0 {
				_ = g.SetBit(x, y, true)
			}
		}
	}
	return g, true
}

// Tiny returns a Typewriter holding the built-in 4x5 glyphs: digits, letters
// and a few symbols.
func Tiny() *Typewriter {
	t := New()
	for ch := range tinyRows {
		g, _ := TinyGlyph(ch)
		t.MustRegister(ch, g)
	}
	return t
}
