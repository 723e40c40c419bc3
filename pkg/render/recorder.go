package render

import "image/color"

// Op identifies a recorded drawing command.
type Op int

const (
	OpClear Op = iota
	OpLine
	OpPolyline
	OpTriangle
	OpText
)

// Command is one recorded drawing call.
type Command struct {
	Op     Op
	Points []Point
	Color  color.Color
	Width  float64
	Text   string
}

// Recorder is a Surface that keeps the commands of the last frame.
type Recorder struct {
	Width, Height float64
	Commands      []Command
}

var _ Surface = (*Recorder)(nil)

// Clear drops previously recorded commands.
func (r *Recorder) Clear(width, height float64) {
	r.Width, r.Height = width, height
	r.Commands = r.Commands[:0]
	r.Commands = append(r.Commands, Command{Op: OpClear})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64, c color.Color, width float64) {
	r.Commands = append(r.Commands, Command{
		Op:     OpLine,
		Points: []Point{{X: x1, Y: y1}, {X: x2, Y: y2}},
		Color:  c,
		Width:  width,
	})
}

func (r *Recorder) Polyline(points []Point, c color.Color, width float64) {
	cp := make([]Point, len(points))
	copy(cp, points)
	r.Commands = append(r.Commands, Command{Op: OpPolyline, Points: cp, Color: c, Width: width})
}

func (r *Recorder) FillTriangle(a, b, c Point, col color.Color) {
	r.Commands = append(r.Commands, Command{Op: OpTriangle, Points: []Point{a, b, c}, Color: col})
}

func (r *Recorder) Text(s string, x, y float64, c color.Color, _ float64) {
	r.Commands = append(r.Commands, Command{Op: OpText, Points: []Point{{X: x, Y: y}}, Color: c, Text: s})
}

// Filter returns the recorded commands with the given op.
func (r *Recorder) Filter(op Op) []Command {
	var result []Command
	for _, c := range r.Commands {
		if c.Op == op {
			result = append(result, c)
		}
	}
	return result
}
