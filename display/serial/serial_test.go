package serial

import (
	"bytes"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/flavioheleno/bitgraphics"
	"github.com/flavioheleno/bitgraphics/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDev(t *testing.T, buf *bytes.Buffer, opts *Opts) (*Dev, *[]time.Duration) {
	t.Helper()
	d, err := New(buf, opts)
	require.NoError(t, err)
	var slept []time.Duration
	d.sleep = func(d time.Duration) { slept = append(slept, d) }
	return d, &slept
}

func TestOptsDefaults(t *testing.T) {
	o, err := (*Opts)(nil).withDefaults()
	require.NoError(t, err)
	assert.Equal(t, Opts{Device: DefaultDevice, BaudRate: 115200, W: 128, H: 64, Delay: 5 * time.Millisecond}, *o)

	o, err = (&Opts{Device: "/dev/ttyUSB0", W: 64, H: 32}).withDefaults()
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB0", o.Device)
	assert.Equal(t, 64, o.W)
}

func TestOptsValidation(t *testing.T) {
	for _, o := range []*Opts{{W: 100, H: 64}, {W: 128, H: 60}, {W: -8, H: 8}, {BaudRate: -1}} {
		_, err := o.withDefaults()
		assert.Error(t, err, "%+v", *o)
	}
}

func TestFlushInitializesOnce(t *testing.T) {
	var buf bytes.Buffer
	d, slept := newTestDev(t, &buf, nil)

	require.NoError(t, d.Flush())
	out := buf.Bytes()
	assert.Equal(t, []byte{0x1B, 0x40, 0x0B, 0x0C, 0x1B, 0x47}, out[:6])
	assert.Len(t, out, 6+128*64/8)
	assert.Equal(t, []time.Duration{5 * time.Millisecond, 5 * time.Millisecond, 5 * time.Millisecond}, *slept)

	buf.Reset()
	require.NoError(t, d.Flush())
	assert.Equal(t, []byte{0x1B, 0x47}, buf.Bytes()[:2])
	assert.Len(t, buf.Bytes(), 2+1024)
}

func TestFramePacking(t *testing.T) {
	var buf bytes.Buffer
	d, _ := newTestDev(t, &buf, &Opts{W: 128, H: 16})

	g := bitgraphics.MustNew(1, 1)
	require.NoError(t, g.SetBit(0, 0, true))
	require.NoError(t, display.ShowAt(d, g, 65, 9))

	frame := buf.Bytes()[6:]
	require.Len(t, frame, 256)

	// (65, 9) is page 1, column 65: RAM byte 128+65 = 193, bit 1. Blocks
	// go out as 0, 2, 1, 3 so block 3 keeps its position.
	want := make([]byte, 256)
	want[193] = 0x02
	assert.Equal(t, want, frame)
}

func TestBlocksOrder(t *testing.T) {
	pix := make([]byte, 4*blockSize+10)
	for i := range pix {
		pix[i] = byte(i / blockSize)
	}

	var order []byte
	for _, b := range Blocks(pix) {
		order = append(order, b[0])
	}
	assert.Equal(t, []byte{0, 2, 4, 1, 3}, order)
	assert.Len(t, Blocks(pix)[2], 10)
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) - 1, nil }

type errWriter struct{ err error }

func (w errWriter) Write(p []byte) (int, error) { return 0, w.err }

func TestWriteErrors(t *testing.T) {
	d, err := New(shortWriter{}, nil)
	require.NoError(t, err)
	d.sleep = func(time.Duration) {}
	assert.ErrorContains(t, d.Flush(), "wrote only")

	boom := errors.New("boom")
	d, err = New(errWriter{err: boom}, nil)
	require.NoError(t, err)
	d.sleep = func(time.Duration) {}
	assert.ErrorIs(t, d.Flush(), boom)
}

func TestSetPixelBounds(t *testing.T) {
	var buf bytes.Buffer
	d, _ := newTestDev(t, &buf, nil)
	assert.Equal(t, image.Rect(0, 0, 128, 64), d.Bounds())
	assert.Error(t, d.SetPixel(128, 0, true))
	assert.NoError(t, d.SetPixel(127, 63, true))
}

func TestClose(t *testing.T) {
	var buf bytes.Buffer
	d, _ := newTestDev(t, &buf, nil)
	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
	assert.Error(t, d.Flush())
	assert.Error(t, d.Clear())
	assert.Equal(t, "serial.Dev{128x64}", d.String())
}
