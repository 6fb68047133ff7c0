// Package framebuf provides a 1-bit monochrome image in the horizontally packed
// layout used by MicroPython's framebuf.MONO_HLSB format.
//
// Each byte holds 8 horizontally adjacent pixels. The most significant bit is
// the leftmost pixel. Rows are padded to a whole number of bytes, so a 12 pixel
// wide image uses 2 bytes per row and the last 4 bits of each row are unused.
//
// Memory layout example for a 10-pixel row:
//
//	Pixels: 0 1 2 3 4 5 6 7 | 8 9
//	Values: 1 0 1 1 0 0 0 1 | 1 1
//	Bytes:  0xB1            | 0xC0
//
// This package provides:
//
// - Bit: a color type with two values, On and Off
// - BitModel: a color model converting standard Go colors to Bit
// - MonoHLSB: an image.Image / draw.Image implementation over the packed bytes
//
// Example usage:
//
//	img := framebuf.NewMonoHLSB(image.Rect(0, 0, 32, 32))
//	img.SetBit(3, 4, framebuf.On)
//	buf := img.Pix // ready to be copied into a device frame buffer
package framebuf
