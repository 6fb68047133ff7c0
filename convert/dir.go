package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Format selects the output written by Dir.
type Format int

const (
	// JSON writes serialized graphics ("<name>.json").
	JSON Format = iota
	// Buffer writes raw MONO_HLSB frame buffers ("<name>"), loadable by a
	// MicroPython framebuf.FrameBuffer.
	Buffer
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case Buffer:
		return "buffer"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses "json" or "buffer".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return JSON, nil
	case "buffer", "buf", "bin":
		return Buffer, nil
	}
	return 0, fmt.Errorf("convert: unknown format %q", s)
}

// Dir converts every regular file in src and writes the result to dst under
// the source base name without its extension. It returns the written paths
// in lexical order of the source names. Conversion stops at the first error.
func Dir(src, dst string, opts *Options, f Format) ([]string, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}

	var written []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		base := strings.TrimSuffix(name, filepath.Ext(name))
		img, err := Decode(filepath.Join(src, name))
		if err != nil {
			return written, err
		}

		var out string
		var data []byte
		switch f {
		case JSON:
			g, err := FromImage(img, opts)
			if err != nil {
				return written, fmt.Errorf("convert: %s: %w", name, err)
			}
			out = filepath.Join(dst, base+".json")
			data = []byte(g.Serialize())
		case Buffer:
			buf, err := ToBuffer(img, opts)
			if err != nil {
				return written, fmt.Errorf("convert: %s: %w", name, err)
			}
			out = filepath.Join(dst, base)
			data = buf.Pix
		default:
			return written, fmt.Errorf("convert: unknown format %v", f)
		}

		if err := os.WriteFile(out, data, 0o644); err != nil {
			return written, fmt.Errorf("convert: %w", err)
		}
		written = append(written, out)
	}
	return written, nil
}
