// Package term shows monochrome frames in a terminal as a display.Adapter.
//
// Every terminal cell holds two vertically stacked pixels drawn with the
// Unicode half block characters, so a 128x64 frame takes 128x32 cells.
package term

import (
	"errors"
	"fmt"
	"image"

	"github.com/gdamore/tcell/v2"

	"github.com/flavioheleno/bitgraphics"
)

const (
	blockEmpty = ' '
	blockUpper = '▀'
	blockLower = '▄'
	blockFull  = '█'
)

// Dev is a terminal screen emulating a w x h pixel display.
type Dev struct {
	screen tcell.Screen
	buf    *bitgraphics.BitGraphic
	style  tcell.Style
	owned  bool
	closed bool
}

// Open initializes the controlling terminal and returns a w x h display
// drawn on it. Close restores the terminal.
func Open(w, h int) (*Dev, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("term: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("term: %w", err)
	}
	d, err := New(screen, w, h)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	d.owned = true
	return d, nil
}

// New returns a w x h display drawn on an initialized screen.
func New(screen tcell.Screen, w, h int) (*Dev, error) {
	buf, err := bitgraphics.New(w, h)
	if err != nil {
		return nil, fmt.Errorf("term: %w", err)
	}
	return &Dev{
		screen: screen,
		buf:    buf,
		style:  tcell.StyleDefault.Foreground(tcell.ColorReset).Background(tcell.ColorReset),
	}, nil
}

// Clear implements display.Adapter.
func (d *Dev) Clear() error {
	if d.closed {
		return errors.New("term: closed")
	}
	d.buf = bitgraphics.MustNew(d.buf.Width(), d.buf.Height())
	return nil
}

// SetPixel implements display.Adapter.
func (d *Dev) SetPixel(x, y int, on bool) error {
	if d.closed {
		return errors.New("term: closed")
	}
	return d.buf.SetBit(x, y, on)
}

// Flush implements display.Adapter.
func (d *Dev) Flush() error {
	if d.closed {
		return errors.New("term: closed")
	}
	w, h := d.buf.Width(), d.buf.Height()
	for row := 0; row*2 < h; row++ {
		for x := 0; x < w; x++ {
			top, _ := d.buf.Bit(x, row*2)
			bottom := false
			if row*2+1 < h {
				bottom, _ = d.buf.Bit(x, row*2+1)
			}
			d.screen.SetContent(x, row, cell(top, bottom), nil, d.style)
		}
	}
	d.screen.Show()
	return nil
}

func cell(top, bottom bool) rune {
	switch {
	case top && bottom:
		return blockFull
	case top:
		return blockUpper
	case bottom:
		return blockLower
	default:
		return blockEmpty
	}
}

// Bounds implements display.Adapter.
func (d *Dev) Bounds() image.Rectangle {
	return d.buf.Bounds()
}

// Screen returns the underlying screen, e.g. to poll key events.
func (d *Dev) Screen() tcell.Screen {
	return d.screen
}

// PollQuit waits for Escape, Ctrl-C or q and then calls quit. It returns
// without calling quit when the screen is finalized first.
func (d *Dev) PollQuit(quit func()) {
	for {
		switch ev := d.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				quit()
				return
			}
		}
	}
}

// Close finalizes the screen if Open created it.
func (d *Dev) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if d.owned {
		d.screen.Fini()
	}
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("term.Dev{%dx%d}", d.buf.Width(), d.buf.Height())
}
