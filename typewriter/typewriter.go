// Package typewriter lays out text as monochrome graphics from a table of
// fixed-size glyphs.
//
// Glyphs are keyed by character and size, so a single table can hold the same
// character at several sizes. Character matching is case-insensitive.
package typewriter

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"unicode"

	"github.com/flavioheleno/bitgraphics"
)

// LookupError reports a character with no glyph at the requested size.
type LookupError struct {
	Char          rune
	Width, Height int
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("typewriter: no glyph for %s at %s", strconv.Quote(string(e.Char)), bitgraphics.SizeString(e.Width, e.Height))
}

// DuplicateError reports a glyph registered twice at the same size.
type DuplicateError struct {
	Char          rune
	Width, Height int
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("typewriter: glyph %s already registered at %s", strconv.Quote(string(e.Char)), bitgraphics.SizeString(e.Width, e.Height))
}

type key struct {
	ch   rune
	w, h int
}

func keyOf(ch rune, w, h int) key {
	return key{ch: unicode.ToLower(ch), w: w, h: h}
}

// Typewriter holds a glyph table. It is populated once and read-only
// afterwards; concurrent Layout calls are safe as long as nothing registers.
type Typewriter struct {
	glyphs map[key]*bitgraphics.BitGraphic
}

// New returns an empty Typewriter.
func New() *Typewriter {
	return &Typewriter{glyphs: make(map[key]*bitgraphics.BitGraphic)}
}

// Register adds the glyph for ch at the glyph's own size. A nil glyph is an
// error; MustRegister panics instead.
func (t *Typewriter) Register(ch rune, g *bitgraphics.BitGraphic) error {
	if g == nil {
		return errors.New("typewriter: nil glyph")
	}
	k := keyOf(ch, g.Width(), g.Height())
	if _, ok := t.glyphs[k]; ok {
		return &DuplicateError{Char: ch, Width: k.w, Height: k.h}
	}
	t.glyphs[k] = g
	return nil
}

// MustRegister is like Register but panics on error.
func (t *Typewriter) MustRegister(ch rune, g *bitgraphics.BitGraphic) {
	if err := t.Register(ch, g); err != nil {
		panic(err)
	}
}

// Lookup returns the glyph for ch at w x h.
func (t *Typewriter) Lookup(ch rune, w, h int) (*bitgraphics.BitGraphic, error) {
	g, ok := t.glyphs[keyOf(ch, w, h)]
	if !ok {
		return nil, &LookupError{Char: ch, Width: w, Height: h}
	}
	return g, nil
}

// Has reports whether ch has a glyph at w x h.
func (t *Typewriter) Has(ch rune, w, h int) bool {
	_, ok := t.glyphs[keyOf(ch, w, h)]
	return ok
}

// Len returns the number of registered glyphs across all sizes.
func (t *Typewriter) Len() int { return len(t.glyphs) }

// Sizes returns the distinct glyph sizes, smallest area first.
func (t *Typewriter) Sizes() []bitgraphics.Size {
	seen := make(map[bitgraphics.Size]bool)
	var sizes []bitgraphics.Size
	for k := range t.glyphs {
		s := bitgraphics.Size{W: k.w, H: k.h}
		if !seen[s] {
			seen[s] = true
			sizes = append(sizes, s)
		}
	}
	sort.Slice(sizes, func(i, j int) bool {
		ai, aj := sizes[i].W*sizes[i].H, sizes[j].W*sizes[j].H
		if ai != aj {
			return ai < aj
		}
		return sizes[i].W < sizes[j].W
	})
	return sizes
}

// Glyphs returns the glyphs registered at w x h, keyed by lower-cased
// character.
func (t *Typewriter) Glyphs(w, h int) map[rune]*bitgraphics.BitGraphic {
	out := make(map[rune]*bitgraphics.BitGraphic)
	for k, g := range t.glyphs {
		if k.w == w && k.h == h {
			out[k.ch] = g
		}
	}
	return out
}

// LayoutGroup places the glyph of every character of text left to right with
// no gap, all at y = 0.
func (t *Typewriter) LayoutGroup(text string, w, h int) (*bitgraphics.Group, error) {
	gr := bitgraphics.NewGroup()
	x := 0
	for _, ch := range text {
		g, err := t.Lookup(ch, w, h)
		if err != nil {
			return nil, err
		}
		gr.Add(g, x, 0)
		x += g.Width()
	}
	return gr, nil
}

// Layout is LayoutGroup followed by Fuse.
func (t *Typewriter) Layout(text string, w, h int) (*bitgraphics.BitGraphic, error) {
	gr, err := t.LayoutGroup(text, w, h)
	if err != nil {
		return nil, err
	}
	return gr.Fuse(), nil
}
