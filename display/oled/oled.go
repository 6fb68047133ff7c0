// Package oled adapts any periph.io display.Drawer, such as the SSD1306,
// SH1106 and SH1107 OLED controllers, to display.Adapter.
//
// Pixels are staged in a 1-bit vertical LSB frame (the SSD1306 RAM layout) and
// handed to the driver on Flush. The driver then sends only the rectangle
// that changed since the previous frame.
package oled

import (
	"errors"
	"fmt"
	"image"
	"io"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Dev is a display.Adapter over a periph.io drawer.
type Dev struct {
	d      display.Drawer
	frame  *image1bit.VerticalLSB
	closer io.Closer
	halted bool
}

// New wraps d. The frame buffer covers d.Bounds().
func New(d display.Drawer) *Dev {
	return &Dev{
		d:     d,
		frame: image1bit.NewVerticalLSB(d.Bounds()),
	}
}

// Opts configures OpenI2C.
type Opts struct {
	// Bus is the I²C bus name; empty selects the first available bus.
	Bus string
	// SSD1306 holds the controller options; nil uses ssd1306.DefaultOpts
	// (128x64).
	SSD1306 *ssd1306.Opts
}

// OpenI2C opens an SSD1306 family controller on an I²C bus. host.Init must
// have been called. Close halts the display and releases the bus.
func OpenI2C(opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	devOpts := opts.SSD1306
	if devOpts == nil {
		o := ssd1306.DefaultOpts
		devOpts = &o
	}

	bus, err := i2creg.Open(opts.Bus)
	if err != nil {
		return nil, fmt.Errorf("oled: opening I2C bus %q: %w", opts.Bus, err)
	}
	dev, err := newI2C(bus, devOpts)
	if err != nil {
		bus.Close()
		return nil, err
	}
	d := New(dev)
	d.closer = bus
	return d, nil
}

func newI2C(bus i2c.Bus, opts *ssd1306.Opts) (*ssd1306.Dev, error) {
	dev, err := ssd1306.NewI2C(bus, opts)
	if err != nil {
		return nil, fmt.Errorf("oled: %w", err)
	}
	return dev, nil
}

// Clear implements display.Adapter.
func (d *Dev) Clear() error {
	if d.halted {
		return errors.New("oled: halted")
	}
	clear(d.frame.Pix)
	return nil
}

// SetPixel implements display.Adapter.
func (d *Dev) SetPixel(x, y int, on bool) error {
	if d.halted {
		return errors.New("oled: halted")
	}
	if !image.Pt(x, y).In(d.frame.Rect) {
		return fmt.Errorf("oled: pixel (%d,%d) outside %v", x, y, d.frame.Rect)
	}
	d.frame.SetBit(x, y, image1bit.Bit(on))
	return nil
}

// Flush implements display.Adapter.
func (d *Dev) Flush() error {
	if d.halted {
		return errors.New("oled: halted")
	}
	return d.d.Draw(d.frame.Rect, d.frame, d.frame.Rect.Min)
}

// Bounds implements display.Adapter.
func (d *Dev) Bounds() image.Rectangle {
	return d.frame.Rect
}

// Frame returns the staged frame buffer.
func (d *Dev) Frame() *image1bit.VerticalLSB {
	return d.frame
}

// Close halts the display and releases the bus, if OpenI2C opened it.
func (d *Dev) Close() error {
	if d.halted {
		return nil
	}
	d.halted = true
	err := d.d.Halt()
	if d.closer != nil {
		if cerr := d.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (d *Dev) String() string {
	return fmt.Sprintf("oled.Dev{%s}", d.d)
}
