// Package raster draws frames into PNG images without a display.
package raster

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/itohio/goiegm/pkg/render"
)

// Surface is a render.Surface backed by a go-chart raster renderer.
// The first error encountered is kept and reported by Save.
type Surface struct {
	r   chart.Renderer
	err error
}

var _ render.Surface = (*Surface)(nil)

// Clear allocates a fresh white canvas of the given size.
func (s *Surface) Clear(width, height float64) {
	s.r, s.err = nil, nil

	w, h := int(math.Ceil(width)), int(math.Ceil(height))
	r, err := chart.PNG(w, h)
	if err != nil {
		s.err = fmt.Errorf("failed to create %dx%d canvas: %w", w, h, err)
		return
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		s.err = fmt.Errorf("failed to load font: %w", err)
		return
	}
	r.SetFont(font)

	r.SetFillColor(drawing.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(w, 0)
	r.LineTo(w, h)
	r.LineTo(0, h)
	r.Close()
	r.Fill()

	s.r = r
}

func (s *Surface) Line(x1, y1, x2, y2 float64, c color.Color, width float64) {
	if s.r == nil {
		return
	}
	s.r.SetStrokeColor(toDrawing(c))
	s.r.SetStrokeWidth(width)
	s.r.MoveTo(px(x1), px(y1))
	s.r.LineTo(px(x2), px(y2))
	s.r.Stroke()
}

func (s *Surface) Polyline(points []render.Point, c color.Color, width float64) {
	if s.r == nil || len(points) < 2 {
		return
	}
	s.r.SetStrokeColor(toDrawing(c))
	s.r.SetStrokeWidth(width)
	s.r.MoveTo(px(points[0].X), px(points[0].Y))
	for _, p := range points[1:] {
		s.r.LineTo(px(p.X), px(p.Y))
	}
	s.r.Stroke()
}

func (s *Surface) FillTriangle(a, b, c render.Point, col color.Color) {
	if s.r == nil {
		return
	}
	s.r.SetFillColor(toDrawing(col))
	s.r.MoveTo(px(a.X), px(a.Y))
	s.r.LineTo(px(b.X), px(b.Y))
	s.r.LineTo(px(c.X), px(c.Y))
	s.r.Close()
	s.r.Fill()
}

func (s *Surface) Text(str string, x, y float64, c color.Color, size float64) {
	if s.r == nil {
		return
	}
	s.r.SetFontColor(toDrawing(c))
	s.r.SetFontSize(size)
	s.r.Text(str, px(x), px(y))
}

// Save encodes the canvas as PNG.
func (s *Surface) Save(w io.Writer) error {
	if s.err != nil {
		return s.err
	}
	if s.r == nil {
		return errors.New("nothing drawn")
	}
	return s.r.Save(w)
}

// Snapshot draws f and writes it to w as PNG.
func Snapshot(w io.Writer, f render.Frame) error {
	var s Surface
	render.Draw(&s, f)
	return s.Save(w)
}

// SnapshotFile draws f into a PNG file.
func SnapshotFile(filename string, f render.Frame) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}

	if err := Snapshot(file, f); err != nil {
		file.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return file.Close()
}

func px(v float64) int {
	return int(math.Round(v))
}

func toDrawing(c color.Color) drawing.Color {
	r, g, b, a := c.RGBA()
	return drawing.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
