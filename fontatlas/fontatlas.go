// Package fontatlas generates glyph atlases by rasterizing a font face.
//
// Each character is drawn black on white into a cell as wide as the glyph
// advance and as tall as the face, optionally scaled to the requested glyph
// size, and thresholded into a monochrome graphic.
package fontatlas

import (
	"fmt"
	"image"
	"image/draw"
	"unicode"

	"github.com/flavioheleno/bitgraphics"
	"github.com/flavioheleno/bitgraphics/convert"
	"github.com/flavioheleno/bitgraphics/typewriter"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Character sets.
const (
	Digits       = "0123456789"
	Letters      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Symbols      = " -.:%/"
	Alphanumeric = Digits + Letters
	Default      = Alphanumeric + Symbols
)

// DefaultFace is the 7x13 fixed-width face from golang.org/x/image.
var DefaultFace font.Face = basicfont.Face7x13

// CellSize returns the native cell size of ch in face.
func CellSize(face font.Face, ch rune) (bitgraphics.Size, error) {
	adv, ok := face.GlyphAdvance(ch)
	if !ok {
		return bitgraphics.Size{}, fmt.Errorf("fontatlas: face has no glyph for %q", ch)
	}
	m := face.Metrics()
	return bitgraphics.Size{W: adv.Ceil(), H: (m.Ascent + m.Descent).Ceil()}, nil
}

// Rasterize draws ch into a white image of its native cell size.
func Rasterize(face font.Face, ch rune) (*image.Gray, error) {
	cell, err := CellSize(face, ch)
	if err != nil {
		return nil, err
	}
	img := image.NewGray(image.Rect(0, 0, cell.W, cell.H))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(string(ch))
	return img, nil
}

// Render rasterizes every character of chars. A zero size keeps each glyph's
// native cell size; otherwise glyphs are scaled to size. opts.Resize is
// ignored. Threshold defaults to convert.DefaultThreshold when opts is nil.
//
// Glyphs are keyed by lower-cased character, the way a typewriter looks them
// up; characters differing only in case are rendered once, from the first
// one in chars.
func Render(face font.Face, chars string, size bitgraphics.Size, opts *convert.Options) (map[rune]*bitgraphics.BitGraphic, error) {
	o := convert.Options{Threshold: convert.DefaultThreshold}
	if opts != nil {
		o.Threshold = opts.Threshold
	}
	o.Resize = image.Pt(size.W, size.H)

	glyphs := make(map[rune]*bitgraphics.BitGraphic)
	for _, ch := range chars {
		key := unicode.ToLower(ch)
		if _, ok := glyphs[key]; ok {
			continue
		}
		img, err := Rasterize(face, ch)
		if err != nil {
			return nil, err
		}
		g, err := convert.FromImage(img, &o)
		if err != nil {
			return nil, fmt.Errorf("fontatlas: %q: %w", ch, err)
		}
		glyphs[key] = g
	}
	return glyphs, nil
}

// Populate renders chars at size and registers them in tw.
func Populate(tw *typewriter.Typewriter, face font.Face, chars string, size bitgraphics.Size, opts *convert.Options) error {
	glyphs, err := Render(face, chars, size, opts)
	if err != nil {
		return err
	}
	for ch, g := range glyphs {
		if err := tw.Register(ch, g); err != nil {
			return err
		}
	}
	return nil
}
