package typewriter

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/flavioheleno/bitgraphics"
)

// Atlas layout on disk:
//
//	16x16/0.json
//	16x16/a.json
//	16x16/u002D.json   (-)
//
// One directory per glyph size, one serialized graphic per character.

const atlasExt = ".json"

// GlyphName returns the atlas file name (without extension) for ch. ASCII
// letters and digits use the lower-cased character itself; anything else is
// spelled "u" followed by the upper-case hex code point, at least 4 digits.
func GlyphName(ch rune) string {
	ch = unicode.ToLower(ch)
	if ch < unicode.MaxASCII && (unicode.IsLetter(ch) || unicode.IsDigit(ch)) {
		return string(ch)
	}
	return fmt.Sprintf("u%04X", ch)
}

// ParseGlyphName is the inverse of GlyphName.
func ParseGlyphName(name string) (rune, error) {
	r := []rune(name)
	if len(r) == 1 {
		return unicode.ToLower(r[0]), nil
	}
	if len(r) >= 5 && r[0] == 'u' {
		n, err := strconv.ParseUint(name[1:], 16, 32)
		if err == nil {
			return unicode.ToLower(rune(n)), nil
		}
	}
	return 0, fmt.Errorf("typewriter: invalid glyph name %q", name)
}

// LoadAtlas registers every glyph of size w x h found in fsys under the
// "WxH" directory. Each glyph must match the directory size.
func (t *Typewriter) LoadAtlas(fsys fs.FS, w, h int) error {
	dir := bitgraphics.SizeString(w, h)
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("typewriter: reading atlas: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), atlasExt) {
			continue
		}
		ch, err := ParseGlyphName(strings.TrimSuffix(e.Name(), atlasExt))
		if err != nil {
			return err
		}
		p := path.Join(dir, e.Name())
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("typewriter: reading atlas: %w", err)
		}
		g, err := bitgraphics.Parse(data)
		if err != nil {
			return fmt.Errorf("typewriter: %s: %w", p, err)
		}
		if g.Width() != w || g.Height() != h {
			return fmt.Errorf("typewriter: %s is %s, want %s", p, bitgraphics.SizeString(g.Width(), g.Height()), dir)
		}
		if err := t.Register(ch, g); err != nil {
			return err
		}
	}
	return nil
}

// LoadAtlasDir is LoadAtlas on a directory of the local file system.
func (t *Typewriter) LoadAtlasDir(dir string, w, h int) error {
	return t.LoadAtlas(os.DirFS(dir), w, h)
}

// WriteAtlas stores glyphs under dir, one "WxH" directory per glyph size.
func WriteAtlas(dir string, glyphs map[rune]*bitgraphics.BitGraphic) error {
	for ch, g := range glyphs {
		sub := filepath.Join(dir, bitgraphics.SizeString(g.Width(), g.Height()))
		if err := os.MkdirAll(sub, 0o755); err != nil {
			return fmt.Errorf("typewriter: %w", err)
		}
		if err := g.Save(filepath.Join(sub, GlyphName(ch)+atlasExt)); err != nil {
			return fmt.Errorf("typewriter: %w", err)
		}
	}
	return nil
}
