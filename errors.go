package bitgraphics

import "fmt"

// FormatError reports malformed serialized text: an invalid bit character,
// a missing field or a field of the wrong type.
type FormatError struct {
	Field  string // JSON field at fault, empty when the document itself is malformed
	Char   rune   // offending character in "bits", zero otherwise
	Offset int    // position of Char within "bits"
	Err    error  // underlying decoding error, if any
}

func (e *FormatError) Error() string {
	switch {
	case e.Char != 0:
		return fmt.Sprintf("bitgraphics: character %q at offset %d of \"bits\" is not a valid 0 or 1", string(e.Char), e.Offset)
	case e.Err != nil && e.Field != "":
		return fmt.Sprintf("bitgraphics: invalid %q field: %v", e.Field, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("bitgraphics: malformed graphic: %v", e.Err)
	default:
		return fmt.Sprintf("bitgraphics: missing %q field", e.Field)
	}
}

func (e *FormatError) Unwrap() error { return e.Err }

// ConsistencyError reports a bit string whose length does not match the
// declared dimensions.
type ConsistencyError struct {
	Len           int
	Width, Height int
}

func (e *ConsistencyError) Error() string {
	n, ok := area(e.Width, e.Height)
	if !ok {
		return fmt.Sprintf("bitgraphics: a %dx%d graphic is too large", e.Width, e.Height)
	}
	return fmt.Sprintf("bitgraphics: %d bits do not fill a %dx%d graphic (want %d)", e.Len, e.Width, e.Height, n)
}

// RangeError reports a coordinate outside the graphic bounds.
type RangeError struct {
	X, Y          int
	Width, Height int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("bitgraphics: (%d,%d) is outside a %dx%d graphic", e.X, e.Y, e.Width, e.Height)
}

// SizeError reports negative dimensions.
type SizeError struct {
	Width, Height int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("bitgraphics: invalid size %dx%d", e.Width, e.Height)
}
