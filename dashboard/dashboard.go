// Package dashboard composes status screens from typewriter glyphs and keeps
// them refreshed on a display.
package dashboard

import (
	"context"
	"errors"
	"image"
	"strconv"
	"time"

	"github.com/flavioheleno/bitgraphics"
	"github.com/flavioheleno/bitgraphics/display"
	"github.com/flavioheleno/bitgraphics/typewriter"
)

// Layout of the temperature screen, relative to the top of the bounds.
const (
	currentTop = 8
	rangeTop   = 44
	labelGap   = 4
)

// Reading is a temperature sample with the running extremes, in whole
// degrees.
type Reading struct {
	Current int
	Low     int
	High    int
}

// Temperature builds the temperature screen for r within bounds: the current
// value in big glyphs centered horizontally near the top, the low and high
// values in small glyphs centered on the first and last quarter of the width,
// labeled L and H.
func Temperature(tw *typewriter.Typewriter, r Reading, bounds image.Rectangle, big, small bitgraphics.Size) (*bitgraphics.Group, error) {
	gr := bitgraphics.NewGroup()
	w := bounds.Dx()

	cur, err := tw.Layout(strconv.Itoa(r.Current), big.W, big.H)
	if err != nil {
		return nil, err
	}
	gr.Add(cur, bounds.Min.X+centerLeft(w/2, cur.Width()), bounds.Min.Y+currentTop)

	for _, v := range []struct {
		label rune
		value int
		cx    int
	}{
		{'L', r.Low, w / 4},
		{'H', r.High, 3 * w / 4},
	} {
		label, err := tw.Lookup(v.label, small.W, small.H)
		if err != nil {
			return nil, err
		}
		value, err := tw.Layout(strconv.Itoa(v.value), small.W, small.H)
		if err != nil {
			return nil, err
		}
		x := bounds.Min.X + centerLeft(v.cx, label.Width()+labelGap+value.Width())
		gr.Add(label, x, bounds.Min.Y+rangeTop)
		gr.Add(value, x+label.Width()+labelGap, bounds.Min.Y+rangeTop)
	}
	return gr, nil
}

func centerLeft(cx, w int) int {
	return display.CenterOffset(cx, 0, w, 0).X
}

// Frame renders one screen.
type Frame func(ctx context.Context) (bitgraphics.Displayable, error)

// Loop shows a frame right away and then every interval, until ctx is done.
// No frame is rendered once ctx is done.
// It returns nil on cancellation and the first rendering or display error
// otherwise.
func Loop(ctx context.Context, a display.Adapter, interval time.Duration, frame Frame) error {
	if interval <= 0 {
		return errors.New("dashboard: interval must be positive")
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if ctx.Err() != nil {
			return nil
		}
		d, err := frame(ctx)
		if err != nil {
			return err
		}
		if err := display.Show(a, d); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
