package bitgraphics

import (
	"fmt"
	"strconv"
	"strings"
)

// Size is a width and height in pixels.
type Size struct {
	W, H int
}

// String formats the size as "WxH".
func (s Size) String() string {
	return SizeString(s.W, s.H)
}

// Set parses "WxH" (or a single number for a square size). It makes *Size
// usable as a flag.Value.
func (s *Size) Set(v string) error {
	p, err := ParseSize(v)
	if err != nil {
		return err
	}
	*s = p
	return nil
}

// ParseSize parses "WxH", or "N" meaning "NxN".
func ParseSize(v string) (Size, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(v)), "x")
	if !ok {
		hs = ws
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return Size{}, fmt.Errorf("bitgraphics: invalid size %q", v)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return Size{}, fmt.Errorf("bitgraphics: invalid size %q", v)
	}
	if w < 0 || h < 0 {
		return Size{}, &SizeError{Width: w, Height: h}
	}
	return Size{W: w, H: h}, nil
}

// SizeString formats dimensions as "WxH".
func SizeString(w, h int) string {
	return strconv.Itoa(w) + "x" + strconv.Itoa(h)
}
