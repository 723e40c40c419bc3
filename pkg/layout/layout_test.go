package layout

import (
	"testing"

	"github.com/itohio/goiegm/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(n int) *Model {
	cfg := config.Default()
	return New(GeometryFromConfig(&cfg.Display), n)
}

func TestSpacing_SetResetsOthers(t *testing.T) {
	s := NewSpacing(4)
	require.True(t, s.Set(1, 3.5))
	assert.Equal(t, []float64{1, 3.5, 1, 1}, s.Values())

	require.True(t, s.Set(3, 2))
	assert.Equal(t, []float64{1, 1, 1, 2}, s.Values())

	assert.False(t, s.Set(4, 2))
	assert.False(t, s.Set(-1, 2))
	assert.False(t, s.Set(0, -0.5))
	assert.Equal(t, []float64{1, 1, 1, 2}, s.Values())

	s.Clear()
	assert.Equal(t, []float64{1, 1, 1, 1}, s.Values())
	assert.Equal(t, float64(4), s.Sum())
}

func TestSpacing_ValuesIsCopy(t *testing.T) {
	s := NewSpacing(2)
	v := s.Values()
	v[0] = 9
	assert.Equal(t, DefaultMultiplier, s.Get(0))
	assert.Equal(t, DefaultMultiplier, s.Get(7))
}

func TestModel_BandGeometry(t *testing.T) {
	m := newTestModel(5)

	// (602 - 100) / 5 = 100.4 nominal pitch, 20 px inset
	assert.InDelta(t, 100.4, m.Pitch(), 1e-9)
	assert.InDelta(t, 80.4, m.BandHeight(), 1e-9)
	assert.InDelta(t, 50.0, m.BandTop(0), 1e-9)
	assert.InDelta(t, 50+80.4+20, m.BandTop(1), 1e-9)
	assert.InDelta(t, 50+2*(80.4+20), m.BandTop(2), 1e-9)
	assert.InDelta(t, 50+40.2, m.BandCenter(0), 1e-9)

	require.True(t, m.Spacing().Set(0, 3))
	assert.InDelta(t, 50+80.4+60, m.BandTop(1), 1e-9)
	assert.InDelta(t, 50+80.4+60+80.4+20, m.BandTop(2), 1e-9)
}

func TestModel_BandTopStrictlyIncreasing(t *testing.T) {
	for _, n := range []int{1, 3, 5, 10} {
		m := newTestModel(n)
		for k := range n {
			m.Spacing().Set(k, 0.01+float64(k))
			for i := 1; i < n; i++ {
				assert.Greater(t, m.BandTop(i), m.BandTop(i-1), "n=%d i=%d dragged=%d", n, i, k)
			}
		}
	}
}

func TestModel_TimeRoundTrip(t *testing.T) {
	m := newTestModel(5)
	for ts := 0; ts < 1000; ts++ {
		assert.Equal(t, ts, m.XToTime(m.TimeToX(float64(ts))))
	}
	assert.InDelta(t, 50.0, m.TimeToX(0), 1e-9)
	assert.InDelta(t, 1150.0, m.TimeToX(1000), 1e-9)
}

func TestModel_InBounds(t *testing.T) {
	m := newTestModel(5)

	tests := []struct {
		x    float64
		want bool
	}{
		{x: 0, want: false},
		{x: 49.9, want: false},
		{x: 50, want: true},
		{x: 600, want: true},
		{x: 1150, want: true},
		{x: 1150.1, want: false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.InBounds(tt.x), "x=%f", tt.x)
	}
}

func TestModel_ClampTime(t *testing.T) {
	m := newTestModel(1)
	assert.Equal(t, 0, m.ClampTime(-3))
	assert.Equal(t, 999, m.ClampTime(1000))
	assert.Equal(t, 420, m.ClampTime(420))
}

func TestModel_ClickConvention(t *testing.T) {
	m := newTestModel(5)

	// Nominal pitch with a 20 px inset, regardless of spacing multipliers
	i, ok := m.YToChannelIndex(20)
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	i, ok = m.YToChannelIndex(20 + 100.4*2 + 1)
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	m.Spacing().Set(0, 10)
	i, ok = m.YToChannelIndex(20 + 100.4*2 + 1)
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = m.YToChannelIndex(5)
	assert.False(t, ok)
	_, ok = m.YToChannelIndex(20 + 100.4*5 + 1)
	assert.False(t, ok)

	// (x - 50) / (1200 - 100) * 1000
	assert.InDelta(t, 0.0, m.ClickTime(50), 1e-9)
	assert.InDelta(t, 500.0, m.ClickTime(600), 1e-9)
	// The plot rectangle maps the same X to a different time
	assert.Equal(t, 500, m.XToTime(600))
	assert.NotEqual(t, m.ClickTime(1000), float64(m.XToTime(1000)))
}

func TestModel_BandAt(t *testing.T) {
	m := newTestModel(5)

	i, ok := m.BandAt(50)
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	i, ok = m.BandAt(m.BandTop(3) + 1)
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	// The gap between bands belongs to no channel
	_, ok = m.BandAt(m.BandTop(1) - 5)
	assert.False(t, ok)
	_, ok = m.BandAt(10)
	assert.False(t, ok)
}

func TestModel_RequiredHeight(t *testing.T) {
	m := newTestModel(5)
	assert.InDelta(t, 602.0, m.RequiredHeight(), 1e-9)

	prev := m.RequiredHeight()
	for v := 1.0; v < 30; v += 0.5 {
		m.Spacing().Set(2, v)
		h := m.RequiredHeight()
		assert.GreaterOrEqual(t, h, prev)
		assert.GreaterOrEqual(t, h, float64(602))
		prev = h
	}

	m.Spacing().Set(2, 10)
	// 100 + 80.4*5 + (4 + 10)*20
	assert.InDelta(t, 782.0, m.Fit(), 1e-9)
	assert.InDelta(t, 782.0, m.Height(), 1e-9)

	m.ResetHeight()
	assert.Equal(t, float64(602), m.Height())
}

func TestModel_Reset(t *testing.T) {
	m := newTestModel(5)
	m.Spacing().Set(1, 4)
	m.Fit()

	m.Reset(2)
	assert.Equal(t, 2, m.Channels())
	assert.Equal(t, []float64{1, 1}, m.Spacing().Values())
	assert.Equal(t, float64(602), m.Height())
	assert.InDelta(t, 251.0, m.Pitch(), 1e-9)
}
