// Package serial drives monochrome LCD front panels attached to a serial port,
// as found on some NAS and appliance cases, as a display.Adapter.
//
// The panel takes an initialization sequence once (ESC @, VT, FF) and then
// full frames introduced by ESC G. A frame is the display RAM in pages of 8
// rows, one byte per column with the top row in the least significant bit,
// sent as 64 byte blocks: every even block first, then every odd block.
package serial

import (
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"go.bug.st/serial"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// DefaultDevice is the serial device used when Opts.Device is empty.
const DefaultDevice = "/dev/ttyS1"

const blockSize = 64

var (
	cmdReset      = []byte{0x1B, 0x40}
	cmdHome       = []byte{0x0B}
	cmdClear      = []byte{0x0C}
	cmdFrameStart = []byte{0x1B, 0x47}
)

// Opts configures the panel.
type Opts struct {
	Device   string        // Serial device (default: DefaultDevice)
	BaudRate int           // Baud rate (default: 115200)
	W, H     int           // Panel size in pixels (default: 128x64, multiples of 8)
	Delay    time.Duration // Pause after each initialization command (default: 5ms)
}

func (o *Opts) withDefaults() (*Opts, error) {
	out := Opts{Device: DefaultDevice, BaudRate: 115200, W: 128, H: 64, Delay: 5 * time.Millisecond}
	if o != nil {
		if o.Device != "" {
			out.Device = o.Device
		}
		if o.BaudRate != 0 {
			out.BaudRate = o.BaudRate
		}
		if o.W != 0 || o.H != 0 {
			out.W, out.H = o.W, o.H
		}
		if o.Delay != 0 {
			out.Delay = o.Delay
		}
	}
	if out.W <= 0 || out.H <= 0 || out.W%8 != 0 || out.H%8 != 0 {
		return nil, fmt.Errorf("serial: panel size %dx%d must be positive multiples of 8", out.W, out.H)
	}
	if out.BaudRate < 0 {
		return nil, errors.New("serial: invalid baud rate")
	}
	return &out, nil
}

// Dev is a serial LCD panel.
type Dev struct {
	w           io.Writer
	closer      io.Closer
	frame       *image1bit.VerticalLSB
	delay       time.Duration
	sleep       func(time.Duration)
	initialized bool
	closed      bool
}

// Open opens the serial port described by opts (nil for defaults).
func Open(opts *Opts) (*Dev, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	port, err := serial.Open(o.Device, &serial.Mode{
		BaudRate: o.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("serial: cannot open %s: %w", o.Device, err)
	}
	d := newDev(port, o)
	d.closer = port
	return d, nil
}

// New returns a panel writing frames to w. opts.Device and opts.BaudRate are
// ignored.
func New(w io.Writer, opts *Opts) (*Dev, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	return newDev(w, o), nil
}

func newDev(w io.Writer, o *Opts) *Dev {
	return &Dev{
		w:     w,
		frame: image1bit.NewVerticalLSB(image.Rect(0, 0, o.W, o.H)),
		delay: o.Delay,
		sleep: time.Sleep,
	}
}

func (d *Dev) write(data []byte) error {
	n, err := d.w.Write(data)
	if err != nil {
		return fmt.Errorf("serial: write: %w", err)
	}
	if n < len(data) {
		return fmt.Errorf("serial: wrote only %d of %d bytes", n, len(data))
	}
	return nil
}

func (d *Dev) init() error {
	for _, cmd := range [][]byte{cmdReset, cmdHome, cmdClear} {
		if err := d.write(cmd); err != nil {
			return err
		}
		d.sleep(d.delay)
	}
	d.initialized = true
	return nil
}

// Clear implements display.Adapter.
func (d *Dev) Clear() error {
	if d.closed {
		return errors.New("serial: closed")
	}
	clear(d.frame.Pix)
	return nil
}

// SetPixel implements display.Adapter.
func (d *Dev) SetPixel(x, y int, on bool) error {
	if d.closed {
		return errors.New("serial: closed")
	}
	if !image.Pt(x, y).In(d.frame.Rect) {
		return fmt.Errorf("serial: pixel (%d,%d) outside %v", x, y, d.frame.Rect)
	}
	d.frame.SetBit(x, y, image1bit.Bit(on))
	return nil
}

// Flush implements display.Adapter. The first flush also initializes the
// panel.
func (d *Dev) Flush() error {
	if d.closed {
		return errors.New("serial: closed")
	}
	if !d.initialized {
		if err := d.init(); err != nil {
			return err
		}
	}
	if err := d.write(cmdFrameStart); err != nil {
		return err
	}
	for _, block := range Blocks(d.frame.Pix) {
		if err := d.write(block); err != nil {
			return err
		}
	}
	return nil
}

// Blocks splits a page packed frame into 64 byte blocks in panel order: even
// blocks first, then odd blocks.
func Blocks(pix []byte) [][]byte {
	var out [][]byte
	for pass := 0; pass < 2; pass++ {
		for i := pass * blockSize; i < len(pix); i += 2 * blockSize {
			out = append(out, pix[i:min(i+blockSize, len(pix))])
		}
	}
	return out
}

// Bounds implements display.Adapter.
func (d *Dev) Bounds() image.Rectangle {
	return d.frame.Rect
}

// Close releases the serial port, if Open opened it.
func (d *Dev) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if d.closer != nil {
		return d.closer.Close()
	}
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("serial.Dev{%dx%d}", d.frame.Rect.Dx(), d.frame.Rect.Dy())
}
