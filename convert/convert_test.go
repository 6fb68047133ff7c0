package convert

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCutoff(t *testing.T) {
	tests := []struct {
		threshold float64
		want      int
	}{
		{0, 255},
		{0.5, 127}, // 127.5 rounds half to even: 128
		{0.1, 229}, // 25.5 rounds half to even: 26
		{1, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Cutoff(tt.threshold), "threshold %v", tt.threshold)
	}
}

func TestDark(t *testing.T) {
	tests := []struct {
		name   string
		c      color.Color
		cutoff int
		want   bool
	}{
		{"black", color.Black, 127, true},
		{"white", color.White, 127, false},
		{"at cutoff", color.NRGBA{127, 127, 127, 255}, 127, true},
		{"just above cutoff", color.NRGBA{128, 128, 128, 255}, 127, false},
		{"mean rounds up", color.NRGBA{127, 127, 128, 255}, 127, true},
		{"mean rounds up past cutoff", color.NRGBA{127, 128, 128, 255}, 127, false},
		{"transparent black", color.NRGBA{0, 0, 0, 0}, 255, false},
		{"translucent black", color.NRGBA{0, 0, 0, 1}, 127, true},
		{"gray model", color.Gray{Y: 10}, 127, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dark(tt.c, tt.cutoff))
		})
	}
}

func testImage() *image.NRGBA {
	// 4x2: black, white, transparent black, dark gray / white row
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{255, 255, 255, 255})
	img.SetNRGBA(2, 0, color.NRGBA{0, 0, 0, 0})
	img.SetNRGBA(3, 0, color.NRGBA{40, 40, 40, 255})
	for x := 0; x < 4; x++ {
		img.SetNRGBA(x, 1, color.NRGBA{255, 255, 255, 255})
	}
	return img
}

func TestFromImage(t *testing.T) {
	g, err := FromImage(testImage(), nil)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, []bool{true, false, false, true, false, false, false, false}, g.Bits())
}

func TestFromImageThreshold(t *testing.T) {
	// threshold 0.9: cutoff 255-230 = 25, dark gray (40) is no longer on
	g, err := FromImage(testImage(), &Options{Threshold: 0.9})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false, false, false, false, false, false}, g.Bits())
}

func TestFromImageOffsetBounds(t *testing.T) {
	img := image.NewGray(image.Rect(10, 10, 12, 11))
	img.SetGray(10, 10, color.Gray{Y: 255})
	img.SetGray(11, 10, color.Gray{Y: 0})

	g, err := FromImage(img, nil)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, g.Bits())
}

func TestFromImageResize(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	g, err := FromImage(img, &Options{Threshold: 0.5, Resize: image.Pt(4, 2)})
	require.NoError(t, err)
	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, 8, g.Count(), "an all black image stays black when scaled")
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts *Options
	}{
		{"negative threshold", &Options{Threshold: -0.1}},
		{"threshold above one", &Options{Threshold: 1.5}},
		{"half resize", &Options{Threshold: 0.5, Resize: image.Pt(4, 0)}},
		{"negative resize", &Options{Threshold: 0.5, Resize: image.Pt(-4, -4)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromImage(testImage(), tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestToBuffer(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 1))
	for x := 0; x < 10; x++ {
		img.SetGray(x, 0, color.Gray{Y: 255})
	}
	img.SetGray(0, 0, color.Gray{})
	img.SetGray(9, 0, color.Gray{})

	buf, err := ToBuffer(img, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x80, 0x40}, buf.Pix)
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glyph.png")
	writePNG(t, path, testImage())

	g, err := FromFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false, true, false, false, false, false}, g.Bits())

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.png"), nil)
	assert.Error(t, err)
}

func TestDecodeUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := Decode(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image format")
}

func TestDir(t *testing.T) {
	src := t.TempDir()
	writePNG(t, filepath.Join(src, "1.png"), testImage())
	writePNG(t, filepath.Join(src, "0.png"), testImage())
	require.NoError(t, os.Mkdir(filepath.Join(src, "nested"), 0o755))

	t.Run("json", func(t *testing.T) {
		dst := filepath.Join(t.TempDir(), "out")
		written, err := Dir(src, dst, nil, JSON)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dst, "0.json"), filepath.Join(dst, "1.json")}, written)

		data, err := os.ReadFile(written[0])
		require.NoError(t, err)
		assert.Equal(t, `{"bits": "10010000", "width": 4, "height": 2}`, string(data))
	})

	t.Run("buffer", func(t *testing.T) {
		dst := t.TempDir()
		written, err := Dir(src, dst, nil, Buffer)
		require.NoError(t, err)
		require.Len(t, written, 2)

		data, err := os.ReadFile(filepath.Join(dst, "0"))
		require.NoError(t, err)
		assert.Equal(t, []byte{0x90, 0x00}, data)
	})
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, JSON, f)

	f, err = ParseFormat("bin")
	require.NoError(t, err)
	assert.Equal(t, Buffer, f)
	assert.Equal(t, "buffer", f.String())

	_, err = ParseFormat("gif")
	assert.Error(t, err)
}
