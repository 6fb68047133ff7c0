// Package bitgraphics renders monochrome raster graphics and serializes them
// to a compact JSON interchange format.
//
// A BitGraphic is a grid of on/off pixels. A Group places several graphics at
// independent offsets and fuses them into one graphic by union: a fused pixel
// is on when any placed graphic has an on pixel there.
//
// # Serialized form
//
// Graphics are exchanged as a JSON object with the pixels as a string of '0'
// and '1' characters in row-major order:
//
//	{"bits": "100101", "width": 3, "height": 2}
//
// Serialize always produces exactly this spacing and key order. Glyph atlases
// and converted image caches rely on it being stable.
//
// # Basic usage
//
//	a := bitgraphics.MustNew(2, 2)
//	a.SetBit(0, 0, true)
//
//	g := bitgraphics.NewGroup()
//	g.Add(a, 0, 0)
//	g.Add(a, 1, 1)
//	fused := g.Fuse() // 3x3
//
//	fmt.Println(fused.Serialize())
//
// # Related packages
//
// The typewriter package lays out text from a glyph table, the convert package
// turns bitmap images into graphics, and the display package shows graphics
// on a display adapter (SSD1306, SSD1322, serial LCD panels or a terminal).
// This package depends on none of them.
package bitgraphics
