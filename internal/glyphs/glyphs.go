// Package glyphs builds the typewriter used by the command line tools.
package glyphs

import (
	"fmt"

	"github.com/flavioheleno/bitgraphics"
	"github.com/flavioheleno/bitgraphics/fontatlas"
	"github.com/flavioheleno/bitgraphics/typewriter"
)

// Tiny is the size of the built-in glyphs.
var Tiny = bitgraphics.Size{W: typewriter.TinyWidth, H: typewriter.TinyHeight}

// Load returns a typewriter holding the built-in tiny glyphs plus glyphs at
// each of sizes. Sizes are read from the atlas directory when atlas is set
// and rendered from fontatlas.DefaultFace otherwise.
func Load(atlas string, sizes ...bitgraphics.Size) (*typewriter.Typewriter, error) {
	tw := typewriter.Tiny()
	seen := map[bitgraphics.Size]bool{Tiny: true}
	for _, s := range sizes {
		if seen[s] {
			continue
		}
		seen[s] = true
		if s.W <= 0 || s.H <= 0 {
			return nil, fmt.Errorf("invalid glyph size %v", s)
		}
		var err error
		if atlas != "" {
			err = tw.LoadAtlasDir(atlas, s.W, s.H)
		} else {
			err = fontatlas.Populate(tw, fontatlas.DefaultFace, fontatlas.Default, s, nil)
		}
		if err != nil {
			return nil, err
		}
	}
	return tw, nil
}
