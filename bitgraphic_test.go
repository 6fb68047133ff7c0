package bitgraphics

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/flavioheleno/bitgraphics/framebuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"2x3", 2, 3, false},
		{"empty", 0, 0, false},
		{"zero height", 5, 0, false},
		{"negative width", -1, 3, true},
		{"negative height", 3, -1, true},
		{"area overflows", math.MaxInt/2 + 1, 2, true},
		{"area wraps to zero", 1 << (strconv.IntSize / 2), 1 << (strconv.IntSize / 2), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.w, tt.h)
			if tt.wantErr {
				var se *SizeError
				require.ErrorAs(t, err, &se)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.w, g.Width())
			assert.Equal(t, tt.h, g.Height())
			assert.Len(t, g.Bits(), tt.w*tt.h)
			assert.Zero(t, g.Count())
		})
	}
}

func TestMustNewPanics(t *testing.T) {
	assert.Panics(t, func() { MustNew(-1, 1) })
}

func TestBitIndexing(t *testing.T) {
	bits := []bool{
		true, false, false,
		false, true, true,
	}
	g, err := FromBits(3, 2, bits)
	require.NoError(t, err)

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			got, err := g.Bit(x, y)
			require.NoError(t, err)
			assert.Equal(t, bits[y*3+x], got, "(%d,%d)", x, y)
		}
	}
}

func TestBitOutOfRange(t *testing.T) {
	g := MustNew(3, 2)
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {3, 0}, {0, 2}, {3, 2}} {
		_, err := g.Bit(p.X, p.Y)
		var re *RangeError
		require.ErrorAs(t, err, &re, "%v", p)
		assert.Equal(t, p.X, re.X)
		assert.Equal(t, p.Y, re.Y)

		require.ErrorAs(t, g.SetBit(p.X, p.Y, true), &re)
	}
	assert.Zero(t, g.Count())
}

func TestSetBit(t *testing.T) {
	g := MustNew(4, 2)
	require.NoError(t, g.SetBit(3, 1, true))

	assert.Equal(t, []bool{false, false, false, false, false, false, false, true}, g.Bits())
	require.NoError(t, g.SetBit(3, 1, false))
	assert.Zero(t, g.Count())
}

func TestFromBitsInconsistent(t *testing.T) {
	_, err := FromBits(2, 2, []bool{true})
	var ce *ConsistencyError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, ce.Len)
}

func TestFromBitsOverflow(t *testing.T) {
	side := 1 << (strconv.IntSize / 2)
	_, err := FromBits(side, side, nil)
	var ce *ConsistencyError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Error(), "too large")
}

func TestBitsIsCopy(t *testing.T) {
	g := MustNew(1, 1)
	b := g.Bits()
	b[0] = true
	assert.Zero(t, g.Count())
}

func TestCloneEqual(t *testing.T) {
	g := MustNew(2, 2)
	require.NoError(t, g.SetBit(1, 0, true))
	c := g.Clone()
	assert.True(t, g.Equal(c))

	require.NoError(t, c.SetBit(0, 0, true))
	assert.False(t, g.Equal(c))
	assert.False(t, g.Equal(MustNew(4, 1)))
}

func TestString(t *testing.T) {
	assert.Equal(t, "bitgraphics.BitGraphic{16x8}", MustNew(16, 8).String())
}

func TestImageInterface(t *testing.T) {
	g := MustNew(4, 2)
	require.NoError(t, g.SetBit(1, 1, true))

	assert.Equal(t, image.Rect(0, 0, 4, 2), g.Bounds())
	assert.Equal(t, framebuf.BitModel, g.ColorModel())
	assert.Equal(t, framebuf.On, g.At(1, 1))
	assert.Equal(t, framebuf.Off, g.At(0, 0))
	assert.Equal(t, framebuf.Off, g.At(10, 10))

	draw.Draw(g, image.Rect(0, 0, 2, 1), image.NewUniform(color.Black), image.Point{}, draw.Src)
	assert.Equal(t, []bool{true, true, false, false, false, true, false, false}, g.Bits())

	g.Set(-1, 0, color.Black)
	assert.Equal(t, 3, g.Count())
}

func TestSerialize(t *testing.T) {
	g, err := FromBits(3, 2, []bool{true, false, false, true, false, true})
	require.NoError(t, err)

	assert.Equal(t, `{"bits": "100101", "width": 3, "height": 2}`, g.Serialize())
	assert.Equal(t, `{"bits": "", "width": 0, "height": 0}`, (&BitGraphic{}).Serialize())
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		on   []int
	}{
		{"empty", 0, 0, nil},
		{"single on", 1, 1, []int{0}},
		{"checker", 4, 4, []int{0, 2, 5, 7, 8, 10, 13, 15}},
		{"wide", 17, 1, []int{0, 16}},
		{"zero width", 0, 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := MustNew(tt.w, tt.h)
			for _, i := range tt.on {
				require.NoError(t, g.SetBit(i%tt.w, i/tt.w, true))
			}

			back, err := ParseString(g.Serialize())
			require.NoError(t, err)
			assert.True(t, g.Equal(back))
			assert.Equal(t, g.Bits(), back.Bits())
		})
	}
}

func TestDeserializeErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantField string
		wantChar  rune
	}{
		{"invalid character", `{"bits":"012","width":3,"height":1}`, "bits", '2'},
		{"letter", `{"bits":"0a","width":2,"height":1}`, "bits", 'a'},
		{"missing bits", `{"width":3,"height":1}`, "bits", 0},
		{"missing width", `{"bits":"0","height":1}`, "width", 0},
		{"missing height", `{"bits":"0","width":1}`, "height", 0},
		{"bits not a string", `{"bits":[true],"width":1,"height":1}`, "bits", 0},
		{"fractional width", `{"bits":"0","width":1.5,"height":1}`, "width", 0},
		{"negative height", `{"bits":"","width":0,"height":-1}`, "height", 0},
		{"not json", `bits=0101`, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.wantField, fe.Field)
			assert.Equal(t, tt.wantChar, fe.Char)
		})
	}
}

func TestDeserializeInvalidCharMessage(t *testing.T) {
	_, err := ParseString(`{"bits":"012","width":3,"height":1}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"2"`)
	assert.Contains(t, err.Error(), "offset 2")
}

func TestDeserializeConsistency(t *testing.T) {
	_, err := ParseString(`{"bits":"0101","width":3,"height":1}`)
	var ce *ConsistencyError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 4, ce.Len)
	assert.Equal(t, 3, ce.Width)
	assert.Equal(t, 1, ce.Height)
}

func TestDeserializeAreaOverflow(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"wraps to zero", `{"bits": "", "width": 4294967296, "height": 4294967296}`},
		{"wraps to bit count", `{"bits": "0000", "width": 4611686018427387905, "height": 4}`},
		{"max int", `{"bits": "", "width": 9223372036854775807, "height": 2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := MustNew(1, 1)
			err := g.Deserialize([]byte(tt.input))
			require.Error(t, err)
			var ce *ConsistencyError
			var fe *FormatError
			// 32-bit builds cannot hold the dimensions at all.
			assert.True(t, errors.As(err, &ce) || errors.As(err, &fe), "%v", err)
			assert.Equal(t, 1, g.Width())
			assert.Len(t, g.Bits(), 1)
		})
	}
}

func TestDeserializeReplacesAtomically(t *testing.T) {
	g := MustNew(2, 1)
	require.NoError(t, g.SetBit(0, 0, true))

	require.Error(t, g.Deserialize([]byte(`{"bits":"0x","width":2,"height":1}`)))
	assert.Equal(t, []bool{true, false}, g.Bits(), "failed parse must not touch the graphic")

	require.NoError(t, g.Deserialize([]byte(`{"bits":"011","width":3,"height":1}`)))
	assert.Equal(t, []bool{false, true, true}, g.Bits())
	assert.Equal(t, 3, g.Width())
}

func TestJSONEmbedding(t *testing.T) {
	type doc struct {
		Name    string      `json:"name"`
		Graphic *BitGraphic `json:"graphic"`
	}
	g, err := FromBits(2, 1, []bool{false, true})
	require.NoError(t, err)

	data, err := json.Marshal(doc{Name: "x", Graphic: g})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x","graphic":{"bits":"01","width":2,"height":1}}`, string(data))

	var back doc
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, g.Equal(back.Graphic))

	err = json.Unmarshal([]byte(`{"graphic":{"bits":"2","width":1,"height":1}}`), &back)
	var fe *FormatError
	assert.ErrorAs(t, err, &fe)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.json")
	g, err := FromBits(2, 2, []bool{true, false, false, true})
	require.NoError(t, err)

	require.NoError(t, g.Save(path))
	back, err := Load(path)
	require.NoError(t, err)
	assert.True(t, g.Equal(back))

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
