// Package device opens the display adapter selected on the command line.
package device

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"

	"github.com/flavioheleno/bitgraphics/display"
	"github.com/flavioheleno/bitgraphics/display/oled"
	"github.com/flavioheleno/bitgraphics/display/serial"
	"github.com/flavioheleno/bitgraphics/display/ssd1322"
	"github.com/flavioheleno/bitgraphics/display/term"
)

// Kinds lists the supported adapters.
var Kinds = []string{"oled", "ssd1322", "serial", "term", "memory"}

// Flags selects and configures an adapter.
type Flags struct {
	Kind   string
	Width  int
	Height int
	I2C    string
	SPI    string
	DC     string
	RST    string
	Serial string
}

// Register adds the adapter flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Kind, "device", "term", "Display adapter: "+strings.Join(Kinds, ", "))
	fs.IntVar(&f.Width, "width", 128, "Display width in pixels")
	fs.IntVar(&f.Height, "height", 64, "Display height in pixels")
	fs.StringVar(&f.I2C, "i2c", "", "I2C bus name for oled (empty for default)")
	fs.StringVar(&f.SPI, "spi", "", "SPI bus name for ssd1322 (empty for default)")
	fs.StringVar(&f.DC, "dc", "GPIO25", "Data/Command pin name for ssd1322")
	fs.StringVar(&f.RST, "rst", "", "Reset pin name for ssd1322 (optional)")
	fs.StringVar(&f.Serial, "serial", serial.DefaultDevice, "Serial device for serial")
}

// Device is an open adapter.
type Device struct {
	display.Adapter
	closers []io.Closer
}

// Close releases the adapter and the buses it uses.
func (d *Device) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i].Close())
	}
	return errors.Join(errs...)
}

// OnQuitKey calls quit from a background goroutine when the terminal adapter
// sees a quit key. Other adapters have no keyboard and ignore it.
func (d *Device) OnQuitKey(quit func()) {
	if t, ok := d.Adapter.(*term.Dev); ok {
		go t.PollQuit(quit)
	}
}

type closeFunc func() error

func (f closeFunc) Close() error { return f() }

// Open initializes the host when the adapter needs hardware and opens it.
func (f *Flags) Open() (*Device, error) {
	switch f.Kind {
	case "memory":
		m, err := display.NewMemory(f.Width, f.Height)
		if err != nil {
			return nil, err
		}
		return &Device{Adapter: m}, nil
	case "term":
		t, err := term.Open(f.Width, f.Height)
		if err != nil {
			return nil, err
		}
		return &Device{Adapter: t, closers: []io.Closer{t}}, nil
	case "serial":
		s, err := serial.Open(&serial.Opts{Device: f.Serial, W: f.Width, H: f.Height})
		if err != nil {
			return nil, err
		}
		return &Device{Adapter: s, closers: []io.Closer{s}}, nil
	case "oled", "ssd1322":
		if _, err := host.Init(); err != nil {
			return nil, fmt.Errorf("failed to initialize periph.io: %w", err)
		}
		if f.Kind == "oled" {
			return f.openOLED()
		}
		return f.openSSD1322()
	default:
		return nil, fmt.Errorf("unknown device %q, want one of %s", f.Kind, strings.Join(Kinds, ", "))
	}
}

func (f *Flags) openOLED() (*Device, error) {
	opts := ssd1306.DefaultOpts
	opts.W, opts.H = f.Width, f.Height
	d, err := oled.OpenI2C(&oled.Opts{Bus: f.I2C, SSD1306: &opts})
	if err != nil {
		return nil, err
	}
	return &Device{Adapter: d, closers: []io.Closer{d}}, nil
}

func (f *Flags) openSSD1322() (*Device, error) {
	b, err := spireg.Open(f.SPI)
	if err != nil {
		return nil, fmt.Errorf("failed to open SPI bus: %w", err)
	}
	dc := gpioreg.ByName(f.DC)
	if dc == nil {
		b.Close()
		return nil, fmt.Errorf("GPIO pin %s not found", f.DC)
	}
	var rst gpio.PinIO
	if f.RST != "" {
		if rst = gpioreg.ByName(f.RST); rst == nil {
			b.Close()
			return nil, fmt.Errorf("GPIO pin %s not found", f.RST)
		}
	}
	d, err := ssd1322.NewSPI(b, dc, &ssd1322.Opts{W: f.Width, H: f.Height, RST: rst})
	if err != nil {
		b.Close()
		return nil, err
	}
	return &Device{Adapter: d, closers: []io.Closer{b, closeFunc(d.Halt)}}, nil
}
