package scope

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/chewxy/math32"

	"github.com/itohio/goiegm/pkg/render"
)

var backgroundColor = color.White

// scopeRenderer renders the scope widget. It is also the render.Surface the
// frame is drawn on; canvas objects are pooled between frames.
type scopeRenderer struct {
	scope *Widget

	background *canvas.Rectangle

	lines     []*canvas.Line
	usedLines int
	texts     []*canvas.Text
	usedTexts int

	objects []fyne.CanvasObject
}

var _ render.Surface = (*scopeRenderer)(nil)

// MinSize returns the canvas size the layout currently requires.
func (r *scopeRenderer) MinSize() fyne.Size {
	lay := r.scope.ctrl.Layout()
	return fyne.NewSize(float32(lay.Width()), float32(lay.Height()))
}

// Layout keeps the background covering the widget.
func (r *scopeRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

// Refresh redraws the whole frame.
func (r *scopeRenderer) Refresh() {
	render.Draw(r, r.scope.ctrl.Frame())

	r.objects = r.objects[:0]
	r.objects = append(r.objects, r.background)
	for _, l := range r.lines[:r.usedLines] {
		r.objects = append(r.objects, l)
	}
	for _, t := range r.texts[:r.usedTexts] {
		r.objects = append(r.objects, t)
	}
	canvas.Refresh(r.scope)
}

// Objects returns all canvas objects for rendering.
func (r *scopeRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *scopeRenderer) Destroy() {}

// Clear releases pooled objects back for reuse by the next frame.
func (r *scopeRenderer) Clear(width, height float64) {
	r.usedLines, r.usedTexts = 0, 0
	r.background.Resize(fyne.NewSize(float32(width), float32(height)))
}

func (r *scopeRenderer) Line(x1, y1, x2, y2 float64, c color.Color, width float64) {
	r.line(float32(x1), float32(y1), float32(x2), float32(y2), c, float32(width))
}

func (r *scopeRenderer) Polyline(points []render.Point, c color.Color, width float64) {
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		r.line(float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), c, float32(width))
	}
}

// FillTriangle fills the triangle with a fan of lines from a to the edge bc.
func (r *scopeRenderer) FillTriangle(a, b, c render.Point, col color.Color) {
	ax, ay := float32(a.X), float32(a.Y)
	bx, by := float32(b.X), float32(b.Y)
	cx, cy := float32(c.X), float32(c.Y)

	steps := int(math32.Ceil(math32.Hypot(cx-bx, cy-by)))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		k := float32(i) / float32(steps)
		r.line(ax, ay, bx+(cx-bx)*k, by+(cy-by)*k, col, 1)
	}
}

// Text draws s with its baseline at y.
func (r *scopeRenderer) Text(s string, x, y float64, c color.Color, size float64) {
	var t *canvas.Text
	if r.usedTexts < len(r.texts) {
		t = r.texts[r.usedTexts]
		t.Text = s
		t.Color = c
	} else {
		t = canvas.NewText(s, c)
		r.texts = append(r.texts, t)
	}
	r.usedTexts++

	t.TextSize = float32(size)
	t.Alignment = fyne.TextAlignLeading
	t.Move(fyne.NewPos(math32.Round(float32(x)), math32.Round(float32(y-size))))
	t.Resize(t.MinSize())
}

func (r *scopeRenderer) line(x1, y1, x2, y2 float32, c color.Color, width float32) {
	var l *canvas.Line
	if r.usedLines < len(r.lines) {
		l = r.lines[r.usedLines]
		l.StrokeColor = c
	} else {
		l = canvas.NewLine(c)
		r.lines = append(r.lines, l)
	}
	r.usedLines++

	l.Position1 = fyne.NewPos(x1, y1)
	l.Position2 = fyne.NewPos(x2, y2)
	l.StrokeWidth = width
}
