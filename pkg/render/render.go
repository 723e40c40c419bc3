// Package render turns the display state into drawing commands on a Surface.
package render

import (
	"fmt"
	"image/color"

	"github.com/itohio/goiegm/pkg/layout"
	"github.com/itohio/goiegm/pkg/signal"
)

// Point is a canvas position in pixels.
type Point struct {
	X, Y float64
}

// Surface is a 2D drawing target. Text is anchored at its left baseline.
type Surface interface {
	Clear(width, height float64)
	Line(x1, y1, x2, y2 float64, c color.Color, width float64)
	Polyline(points []Point, c color.Color, width float64)
	FillTriangle(a, b, c Point, col color.Color)
	Text(s string, x, y float64, c color.Color, size float64)
}

// Palette used by Draw.
var (
	AxisColor      = color.RGBA{A: 255}
	TraceColor     = color.RGBA{G: 255, A: 255}
	HighlightColor = color.RGBA{R: 240, G: 240, A: 255}
	CursorColor    = color.RGBA{R: 255, A: 255}
	ArrowColor     = color.RGBA{B: 255, A: 255}
)

const (
	axisWidth   = 1
	traceWidth  = 2
	cursorWidth = 1
	arrowWidth  = 2
	arrowHead   = 10
	fontSize    = 10
	tickLength  = 5
)

// Overlay is the two-cursor delta annotation drawn at a channel's center line.
type Overlay struct {
	X1, X2 float64
	Y      float64
	Delta  float64
}

// Frame is everything Draw needs. Draw only reads it.
type Frame struct {
	Layout       *layout.Model
	Store        *signal.Store
	TickInterval int
	Cursors      []float64
	Highlight    int // Dragged channel, -1 for none
	Overlay      *Overlay
}

// Draw clears the surface and redraws the whole frame.
func Draw(s Surface, f Frame) {
	s.Clear(f.Layout.Width(), f.Layout.Height())

	drawTimeAxis(s, f)
	drawChannelAxis(s, f)
	drawChannels(s, f)
	drawCursors(s, f)
	if f.Overlay != nil && len(f.Cursors) == 2 {
		drawOverlay(s, *f.Overlay)
	}
}

func drawTimeAxis(s Surface, f Frame) {
	geo := f.Layout.Geometry()
	y := f.Layout.Height() - geo.Padding
	s.Line(geo.Padding, y, geo.Width-geo.Padding, y, AxisColor, axisWidth)

	if f.TickInterval <= 0 {
		return
	}
	for t := 0; t <= geo.TotalTime; t += f.TickInterval {
		x := f.Layout.TimeToX(float64(t))
		s.Line(x, y, x, y+tickLength, AxisColor, axisWidth)
		s.Text(fmt.Sprintf("%dms", t), x-10, y+20, AxisColor, fontSize)
	}
}

func drawChannelAxis(s Surface, f Frame) {
	geo := f.Layout.Geometry()
	s.Line(geo.Padding, geo.Padding, geo.Padding, f.Layout.Height()-geo.Padding, AxisColor, axisWidth)

	for i := range f.Store.Channels() {
		s.Text(f.Store.Name(i), 2, f.Layout.BandCenter(i), AxisColor, fontSize)
	}
}

func drawChannels(s Surface, f Frame) {
	geo := f.Layout.Geometry()
	for i := range f.Store.Channels() {
		samples := f.Store.Samples(i)
		center := f.Layout.BandCenter(i)

		points := make([]Point, 0, len(samples)+1)
		points = append(points, Point{X: geo.Padding, Y: center})
		for t, v := range samples {
			points = append(points, Point{X: f.Layout.TimeToX(float64(t)), Y: center + v})
		}

		c := TraceColor
		if i == f.Highlight {
			c = HighlightColor
		}
		s.Polyline(points, c, traceWidth)
	}
}

func drawCursors(s Surface, f Frame) {
	geo := f.Layout.Geometry()
	for _, x := range f.Cursors {
		s.Line(x, geo.Padding, x, f.Layout.Height()-geo.Padding, CursorColor, cursorWidth)
	}
}

func drawOverlay(s Surface, o Overlay) {
	s.Line(o.X1, o.Y, o.X2, o.Y, ArrowColor, arrowWidth)
	s.FillTriangle(
		Point{X: o.X1, Y: o.Y},
		Point{X: o.X1 + arrowHead, Y: o.Y - arrowHead/2},
		Point{X: o.X1 + arrowHead, Y: o.Y + arrowHead/2},
		ArrowColor,
	)
	s.FillTriangle(
		Point{X: o.X2, Y: o.Y},
		Point{X: o.X2 - arrowHead, Y: o.Y - arrowHead/2},
		Point{X: o.X2 - arrowHead, Y: o.Y + arrowHead/2},
		ArrowColor,
	)
	mid := (o.X1 + o.X2) / 2
	s.Text(fmt.Sprintf("Δ: %.2f", o.Delta), mid-20, o.Y-10, ArrowColor, fontSize)
}
