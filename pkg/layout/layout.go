// Package layout maps between time/channel space and canvas pixels.
//
// Two coordinate conventions coexist. Trace plotting, axes and cursor
// positions use the padding-based plot rectangle (TimeToX, XToTime,
// BandTop). Hit-testing of raw clicks into a channel name and a fractional
// time uses a fixed inset convention (YToChannelIndex, ClickTime) that
// ignores per-channel spacing and differs slightly from the plot rectangle.
package layout

import (
	"math"

	"github.com/itohio/goiegm/pkg/config"
)

// Geometry contains the fixed canvas parameters.
type Geometry struct {
	Width           float64
	InitialHeight   float64
	Padding         float64
	BandInset       float64
	UnitSpacing     float64
	ClickInsetY     float64
	ClickInsetX     float64
	ClickWidthInset float64
	TotalTime       int
}

// GeometryFromConfig extracts the geometry from display settings.
func GeometryFromConfig(cfg *config.DisplayConfig) Geometry {
	return Geometry{
		Width:           cfg.Width,
		InitialHeight:   cfg.InitialHeight,
		Padding:         cfg.Padding,
		BandInset:       cfg.BandInset,
		UnitSpacing:     cfg.UnitSpacing,
		ClickInsetY:     cfg.ClickInsetY,
		ClickInsetX:     cfg.ClickInsetX,
		ClickWidthInset: cfg.ClickWidthInset,
		TotalTime:       cfg.TotalTime,
	}
}

// Model is the layout of n channel bands on a canvas whose height grows
// with the spacing multipliers.
type Model struct {
	geo     Geometry
	n       int
	pitch   float64 // Nominal per-channel share of the initial drawing span
	height  float64
	spacing *Spacing
}

// New creates a layout for n channels at the initial canvas height.
func New(geo Geometry, n int) *Model {
	m := &Model{
		geo:     geo,
		spacing: NewSpacing(n),
	}
	m.Reset(n)
	return m
}

// Reset switches to n channels, restores all multipliers and the initial height.
func (m *Model) Reset(n int) {
	if n < 1 {
		n = 1
	}
	m.n = n
	m.height = m.geo.InitialHeight
	m.pitch = (m.geo.InitialHeight - 2*m.geo.Padding) / float64(n)
	m.spacing.Reset(n)
}

// Geometry returns the fixed canvas parameters.
func (m *Model) Geometry() Geometry { return m.geo }

// Channels returns the channel count.
func (m *Model) Channels() int { return m.n }

// Spacing returns the spacing multipliers.
func (m *Model) Spacing() *Spacing { return m.spacing }

// Width returns the canvas width.
func (m *Model) Width() float64 { return m.geo.Width }

// Height returns the current canvas height.
func (m *Model) Height() float64 { return m.height }

// Pitch returns the nominal vertical share of one channel.
func (m *Model) Pitch() float64 { return m.pitch }

// ResetHeight restores the initial canvas height.
func (m *Model) ResetHeight() {
	m.height = m.geo.InitialHeight
}

// BandHeight returns the height of every channel band. Only the gaps
// between bands vary per channel.
func (m *Model) BandHeight() float64 {
	return math.Max(0, m.pitch-m.geo.BandInset)
}

// BandTop returns the top Y of channel i's band. Each preceding channel's
// multiplier shifts all subsequent bands.
func (m *Model) BandTop(i int) float64 {
	h := m.BandHeight()
	y := m.geo.Padding
	for j := 0; j < i && j < m.n; j++ {
		y += h + m.spacing.Get(j)*m.geo.UnitSpacing
	}
	return y
}

// BandCenter returns the vertical center of channel i's band, which is the
// zero line of its trace.
func (m *Model) BandCenter(i int) float64 {
	return m.BandTop(i) + m.BandHeight()/2
}

// BandAt returns the channel whose band contains y, edges inclusive.
func (m *Model) BandAt(y float64) (int, bool) {
	h := m.BandHeight()
	for i := range m.n {
		top := m.BandTop(i)
		if y >= top && y <= top+h {
			return i, true
		}
	}
	return -1, false
}

// TimeScale returns pixels per time step.
func (m *Model) TimeScale() float64 {
	return (m.geo.Width - 2*m.geo.Padding) / float64(m.geo.TotalTime)
}

// TimeToX maps a time value to a canvas X.
func (m *Model) TimeToX(t float64) float64 {
	return m.geo.Padding + t*m.TimeScale()
}

// XToTime maps a canvas X to the nearest integer time step. It does not
// clamp; check InBounds first or use ClampTime.
func (m *Model) XToTime(x float64) int {
	return int(math.Round((x - m.geo.Padding) / m.TimeScale()))
}

// InBounds reports whether x lies within the drawable horizontal span.
func (m *Model) InBounds(x float64) bool {
	return x >= m.geo.Padding && x <= m.geo.Width-m.geo.Padding
}

// ClampTime limits t to a valid sample index.
func (m *Model) ClampTime(t int) int {
	return max(0, min(t, m.geo.TotalTime-1))
}

// YToChannelIndex converts a raw click Y into a channel index using the
// nominal pitch and the fixed click inset. It ignores spacing multipliers.
func (m *Model) YToChannelIndex(y float64) (int, bool) {
	i := int(math.Floor((y - m.geo.ClickInsetY) / m.pitch))
	if i < 0 || i >= m.n {
		return -1, false
	}
	return i, true
}

// ClickTime converts a raw click X into a fractional time value using the
// fixed click inset and width.
func (m *Model) ClickTime(x float64) float64 {
	return (x - m.geo.ClickInsetX) / (m.geo.Width - m.geo.ClickWidthInset) * float64(m.geo.TotalTime)
}

// RequiredHeight returns the canvas height needed to show all bands with
// the current multipliers. It never falls below the initial height.
func (m *Model) RequiredHeight() float64 {
	need := 2*m.geo.Padding + m.BandHeight()*float64(m.n) + m.spacing.Sum()*m.geo.UnitSpacing
	return math.Max(m.geo.InitialHeight, need)
}

// Fit grows or shrinks the canvas to RequiredHeight and returns it.
func (m *Model) Fit() float64 {
	m.height = m.RequiredHeight()
	return m.height
}
