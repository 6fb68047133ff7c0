// Package ssd1322 drives an SSD1322 OLED controller over SPI as a monochrome
// display adapter.
//
// The SSD1322 is a 4-bit grayscale controller with up to 480x128 pixels of
// RAM. This package uses it as an on/off display: lit pixels are written at a
// fixed intensity (Opts.Level, 15 by default) and unlit pixels at 0.
//
// # Hardware Connection
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V (or 5V depending on display)
//	SCL/CLK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	DC          → GPIO (any available pin)
//	CS          → SPI Chip Select (or GND if always selected)
//	RES         → Optional: GPIO for hardware reset
//
// # Basic Usage
//
//	host.Init()
//	port, _ := spireg.Open("")
//	dev, _ := ssd1322.NewSPI(port, gpioreg.ByName("GPIO25"), &ssd1322.Opts{W: 256, H: 64})
//	defer dev.Halt()
//
//	display.ShowCenteredFraction(dev, graphic, 0.5, 0.5)
//
// # Differential Updates
//
// Flush compares the staged frame with the last frame sent and only writes
// the smallest byte aligned rectangle that changed. A flush with no changes
// sends nothing.
//
// Width must be even and ≤480. Height must be ≤128. Displays narrower than
// 480 columns are centered in the controller RAM.
//
// # Datasheet
//
// https://www.displayfuture.com/Display/datasheet/controller/SSD1322.pdf
package ssd1322
