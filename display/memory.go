package display

import (
	"image"

	"github.com/flavioheleno/bitgraphics"
)

// Memory is an Adapter backed by a graphic in memory. Flush snapshots the
// frame buffer, which makes it useful for tests and for rendering frames to
// files instead of hardware.
type Memory struct {
	buf     *bitgraphics.BitGraphic
	frame   *bitgraphics.BitGraphic
	flushes int
}

// NewMemory returns a w x h memory adapter.
func NewMemory(w, h int) (*Memory, error) {
	buf, err := bitgraphics.New(w, h)
	if err != nil {
		return nil, err
	}
	return &Memory{buf: buf, frame: buf.Clone()}, nil
}

// Clear implements Adapter.
func (m *Memory) Clear() error {
	m.buf = bitgraphics.MustNew(m.buf.Width(), m.buf.Height())
	return nil
}

// SetPixel implements Adapter.
func (m *Memory) SetPixel(x, y int, on bool) error {
	return m.buf.SetBit(x, y, on)
}

// Flush implements Adapter.
func (m *Memory) Flush() error {
	m.frame = m.buf.Clone()
	m.flushes++
	return nil
}

// Bounds implements Adapter.
func (m *Memory) Bounds() image.Rectangle {
	return m.buf.Bounds()
}

// Frame returns a copy of the last flushed frame.
func (m *Memory) Frame() *bitgraphics.BitGraphic {
	return m.frame.Clone()
}

// Flushes returns the number of Flush calls.
func (m *Memory) Flushes() int {
	return m.flushes
}
