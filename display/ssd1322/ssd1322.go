package ssd1322

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Opts is the configuration for the SSD1322 display.
type Opts struct {
	// Display dimensions in pixels
	W int // Width (default: 256, must be even and ≤480)
	H int // Height (default: 64, must be ≤128)

	// Level is the 4-bit intensity of lit pixels (default: 15, the brightest)
	Level byte

	// Rotation and mirroring
	Rotated       bool // 180° rotation
	Sequential    bool // Sequential COM pin configuration
	SwapTopBottom bool // Swap top/bottom display halves

	// Optional hardware reset pin
	RST gpio.PinIO // Reset pin (optional, nil if not used)
}

func (o *Opts) validate() error {
	if o.W <= 0 || o.W%2 != 0 || o.W > 480 {
		return errors.New("ssd1322: width must be even and between 2 and 480")
	}
	if o.H <= 0 || o.H > 128 {
		return errors.New("ssd1322: height must be between 1 and 128")
	}
	if o.Level > 15 {
		return errors.New("ssd1322: level must be between 0 and 15")
	}
	return nil
}

// Dev drives an SSD1322 as a monochrome display.Adapter. Each pixel occupies
// a nibble of display RAM; lit pixels are written at Opts.Level.
type Dev struct {
	// Communication
	c   conn.Conn   // SPI connection
	dc  gpio.PinOut // Data/Command pin
	rst gpio.PinIO  // Reset pin (optional)

	rect         image.Rectangle
	columnOffset int // For centering on 480-column RAM
	level        byte

	next *Frame // staged by Clear/SetPixel
	last *Frame // last frame sent to the display

	halted bool
}

// NewSPI creates a new SSD1322 device connected via SPI.
//
// The SPI port is configured for 10MHz, Mode0 (CPOL=0, CPHA=0), 8-bit transfers.
// The dc (Data/Command) GPIO pin must be provided and configured as an output.
//
// opts can be nil to use defaults (256x64 display).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	o, err := withDefaults(opts)
	if err != nil {
		return nil, err
	}

	// SSD1322 supports Mode0 or Mode3, up to 20MHz
	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("ssd1322: %w", err)
	}

	d := newDev(c, dc, o)
	if err := d.init(o); err != nil {
		return nil, err
	}
	return d, nil
}

func withDefaults(opts *Opts) (*Opts, error) {
	o := Opts{W: 256, H: 64, Level: 15}
	if opts != nil {
		o = *opts
		if o.Level == 0 {
			o.Level = 15
		}
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

func newDev(c conn.Conn, dc gpio.PinOut, o *Opts) *Dev {
	return &Dev{
		c:            c,
		dc:           dc,
		rst:          o.RST,
		rect:         image.Rect(0, 0, o.W, o.H),
		columnOffset: (480 - o.W) / 2,
		level:        o.Level,
		next:         NewFrame(o.W, o.H),
		last:         NewFrame(o.W, o.H),
	}
}

// init sends the initialization sequence to the display.
func (d *Dev) init(opts *Opts) error {
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("ssd1322: failed to pull RST low: %w", err)
		}
		time.Sleep(200 * time.Millisecond)

		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("ssd1322: failed to pull RST high: %w", err)
		}
		time.Sleep(200 * time.Millisecond)
	}

	if err := d.sendCommands(initSequence(opts)); err != nil {
		return err
	}

	// Start from blank RAM so the first differential flush is correct.
	if err := d.writeRect(0, 0, d.rect.Dx(), d.rect.Dy(), d.last.Pix); err != nil {
		return err
	}

	return d.sendCommand(0xAF) // Display ON
}

func initSequence(opts *Opts) []byte {
	cmds := []byte{
		0xFD, 0x12, // Unlock command codes
		0xAE,       // Display OFF
		0xB3, 0xF2, // Clock divider and oscillator frequency
		0xCA, byte(opts.H - 1), // MUX ratio
		0xA2, 0x00, // Display offset
		0xA1, 0x00, // Start line
	}

	remap1, remap2 := byte(0x14), byte(0x11)
	if opts.Rotated {
		remap1 = 0x06
	}
	if opts.Sequential {
		remap2 |= 0x01
	}
	if opts.SwapTopBottom {
		remap2 |= 0x02
	}

	return append(cmds,
		0xA0, remap1, remap2, // Remap and dual COM mode
		0xAB, 0x01, // Enable internal VDD
		0xB4, 0xA0, 0xFD, // Display enhancement A
		0xC1, 0xFF, // Contrast
		0xC7, 0x0F, // Master contrast
		0xB9,       // Default grayscale table
		0xB1, 0xE2, // Phase length
		0xD1, 0x82, 0x20, // Display enhancement B
		0xBB, 0x1F, // Pre-charge voltage
		0xB6, 0x08, // Second pre-charge period
		0xBE, 0x07, // VCOMH voltage
		0xA6, // Normal display mode
		0xA9, // Exit partial display mode
	)
}

func (d *Dev) sendCommand(cmd byte) error {
	return d.sendCommands([]byte{cmd})
}

func (d *Dev) sendCommands(cmds []byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	return d.c.Tx(cmds, nil)
}

func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.c.Tx(data, nil)
}

// writeRect writes nibble packed pixels to a region. x and width must be even.
func (d *Dev) writeRect(x, y, width, height int, pixels []byte) error {
	// Column addresses count groups of 2 bytes (4 pixels) in the RAM
	colStart := byte((x + d.columnOffset) / 2)
	colEnd := byte((x + width - 1 + d.columnOffset) / 2)

	commands := []byte{
		0x15, colStart, colEnd, // Column address
		0x75, byte(y), byte(y + height - 1), // Row address
		0x5C, // Enable write to RAM
	}
	if err := d.sendCommands(commands); err != nil {
		return err
	}
	return d.sendData(pixels)
}

// Bounds implements display.Adapter.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Clear implements display.Adapter.
func (d *Dev) Clear() error {
	if d.halted {
		return errors.New("ssd1322: halted")
	}
	d.next.Clear()
	return nil
}

// SetPixel implements display.Adapter.
func (d *Dev) SetPixel(x, y int, on bool) error {
	if d.halted {
		return errors.New("ssd1322: halted")
	}
	if !image.Pt(x, y).In(d.rect) {
		return fmt.Errorf("ssd1322: pixel (%d,%d) outside %v", x, y, d.rect)
	}
	var l Level
	if on {
		l = Level(d.level)
	}
	d.next.SetLevel(x, y, l)
	return nil
}

// Flush implements display.Adapter. Only the smallest rectangle containing
// every changed pixel is sent.
func (d *Dev) Flush() error {
	if d.halted {
		return errors.New("ssd1322: halted")
	}
	minCol, maxCol, minRow, maxRow := d.calculateDiff()
	if minCol > maxCol {
		return nil
	}
	region := d.next.region(minCol, maxCol, minRow, maxRow)
	if err := d.writeRect(minCol, minRow, maxCol-minCol+1, maxRow-minRow+1, region); err != nil {
		return err
	}
	copy(d.last.Pix, d.next.Pix)
	return nil
}

// calculateDiff returns the changed region between the staged and the last
// sent frame, in pixels, widened to whole bytes. It returns minCol > maxCol
// when nothing changed.
func (d *Dev) calculateDiff() (minCol, maxCol, minRow, maxRow int) {
	minCol, maxCol = d.rect.Dx(), -1
	minRow, maxRow = d.rect.Dy(), -1

	for y := 0; y < d.rect.Dy(); y++ {
		last, next := d.last.row(y), d.next.row(y)
		if bytes.Equal(last, next) {
			continue
		}
		minRow = min(minRow, y)
		maxRow = max(maxRow, y)
		for x := range next {
			if last[x] != next[x] {
				minCol = min(minCol, x*2)
				maxCol = max(maxCol, x*2+1)
			}
		}
	}
	return
}

// Frame returns a copy of the staged frame.
func (d *Dev) Frame() *Frame {
	return d.next.Clone()
}

// SetContrast sets the display contrast (0-255).
func (d *Dev) SetContrast(contrast byte) error {
	if d.halted {
		return errors.New("ssd1322: halted")
	}
	return d.sendCommands([]byte{0xC1, contrast})
}

// Invert swaps lit and unlit pixels in hardware.
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return errors.New("ssd1322: halted")
	}
	mode := byte(0xA6)
	if invert {
		mode = 0xA7
	}
	return d.sendCommand(mode)
}

// Halt powers off the display. Further calls fail until a new Dev is created.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	d.halted = true
	return d.sendCommand(0xAE) // Display OFF
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ssd1322.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}
