// Package convert turns bitmap images (PNG, JPEG, GIF, BMP, WebP) into
// monochrome graphics and MONO_HLSB frame buffers.
//
// A pixel is on when it is dark enough: the rounded mean of its 8-bit red,
// green and blue channels must be at most 255 - round(threshold*255).
// Fully transparent pixels are always off.
package convert

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"math"
	"os"

	"github.com/flavioheleno/bitgraphics"
	"github.com/flavioheleno/bitgraphics/framebuf"
	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// DefaultThreshold is used when Options is nil.
const DefaultThreshold = 0.5

// Options controls a conversion.
type Options struct {
	// Threshold in [0, 1]. Higher values need darker pixels to turn on.
	Threshold float64
	// Resize scales the image to this size before thresholding. The zero
	// value keeps the original size.
	Resize image.Point
}

func (o *Options) validate() (*Options, error) {
	if o == nil {
		return &Options{Threshold: DefaultThreshold}, nil
	}
	if math.IsNaN(o.Threshold) || o.Threshold < 0 || o.Threshold > 1 {
		return nil, fmt.Errorf("convert: threshold %v is not within [0, 1]", o.Threshold)
	}
	if o.Resize.X < 0 || o.Resize.Y < 0 || (o.Resize.X == 0) != (o.Resize.Y == 0) {
		return nil, fmt.Errorf("convert: invalid resize target %dx%d", o.Resize.X, o.Resize.Y)
	}
	return o, nil
}

// Cutoff returns the largest channel mean that still counts as dark for the
// given threshold. Rounding is half-to-even.
func Cutoff(threshold float64) int {
	return 255 - int(math.RoundToEven(threshold*255))
}

// Dark reports whether c is on for the given cutoff.
func Dark(c color.Color, cutoff int) bool {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0 {
		return false
	}
	// The mean of three integers never ends in .5, so (sum+1)/3 rounds it.
	mean := (int(n.R) + int(n.G) + int(n.B) + 1) / 3
	return mean <= cutoff
}

// FromImage converts img into a graphic anchored at (0, 0). opts may be nil.
func FromImage(img image.Image, opts *Options) (*bitgraphics.BitGraphic, error) {
	opts, err := opts.validate()
	if err != nil {
		return nil, err
	}
	img = resize(img, opts.Resize)

	b := img.Bounds()
	g, err := bitgraphics.New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	cutoff := Cutoff(opts.Threshold)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if Dark(img.At(x, y), cutoff) {
				if err := g.SetBit(x-b.Min.X, y-b.Min.Y, true); err != nil {
					return nil, err
				}
			}
		}
	}
	return g, nil
}

// FromFile decodes the image at path and converts it.
func FromFile(path string, opts *Options) (*bitgraphics.BitGraphic, error) {
	img, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return FromImage(img, opts)
}

// ToBuffer converts img into a MONO_HLSB frame buffer. Each row is padded to a
// whole number of bytes.
func ToBuffer(img image.Image, opts *Options) (*framebuf.MonoHLSB, error) {
	g, err := FromImage(img, opts)
	if err != nil {
		return nil, err
	}
	return framebuf.FromImage(g), nil
}

// Decode opens and decodes an image file in any registered format.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("convert: %s: unsupported image format", path)
		}
		return nil, fmt.Errorf("convert: %s: %w", path, err)
	}
	return img, nil
}

func resize(img image.Image, to image.Point) image.Image {
	if to == (image.Point{}) || to == img.Bounds().Size() {
		return img
	}
	dst := image.NewNRGBA(image.Rectangle{Max: to})
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
