package signal

import (
	"math"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/itohio/goiegm/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rampGenerator returns channel*1000 + t + offset, no noise.
type rampGenerator struct{}

func (rampGenerator) Value(channel, t int, offset float64) float64 {
	return float64(channel*1000+t) + offset
}

func TestStore_Regenerate(t *testing.T) {
	for _, n := range []int{1, 2, 5, 10} {
		s := NewStore(rampGenerator{}, 1000, 2, "CH")
		require.NoError(t, s.Regenerate(n))

		assert.Equal(t, n, s.Channels())
		for i := range n {
			assert.Len(t, s.Samples(i), 1000, "channel %d", i)
		}
		assert.Equal(t, "CH1", s.Name(0))
		assert.Equal(t, "CH"+strconv.Itoa(n), s.Name(n-1))
	}
}

func TestStore_RegenerateRejectsZero(t *testing.T) {
	s := NewStore(rampGenerator{}, 10, 0, "CH")
	assert.Error(t, s.Regenerate(0))
	assert.Equal(t, 0, s.Channels())
}

func TestStore_OffsetAdvances(t *testing.T) {
	s := NewStore(rampGenerator{}, 4, 2, "CH")
	require.NoError(t, s.Regenerate(2))
	assert.Equal(t, []float64{0, 1, 2, 3}, s.Samples(0))
	assert.Equal(t, []float64{1000, 1001, 1002, 1003}, s.Samples(1))

	s.Advance()
	assert.Equal(t, 2, s.Channels())
	assert.Equal(t, []float64{2, 3, 4, 5}, s.Samples(0))

	// Resample uses the offset the next regeneration would use
	assert.Equal(t, float64(4), s.Resample(0, 0))
}

func TestStore_ChannelCountChange(t *testing.T) {
	s := NewStore(rampGenerator{}, 8, 0, "X")
	require.NoError(t, s.Regenerate(5))
	require.NoError(t, s.Regenerate(2))

	assert.Equal(t, 2, s.Channels())
	assert.Equal(t, []string{"X1", "X2"}, s.Names())
	assert.Nil(t, s.Samples(4))
	assert.Equal(t, "", s.Name(4))
	for i := range 2 {
		assert.Len(t, s.Samples(i), 8)
	}
}

func TestStore_Index(t *testing.T) {
	s := NewStore(rampGenerator{}, 2, 0, "CH")
	require.NoError(t, s.Regenerate(3))

	idx, ok := s.Index("CH3")
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = s.Index("CH9")
	assert.False(t, ok)
}

func TestSine_Value(t *testing.T) {
	g := &Sine{Amplitude: 20, Period: 40}

	assert.InDelta(t, 0.0, g.Value(0, 0, 0), 1e-9)
	assert.InDelta(t, 20.0, g.Value(0, 20, 0), 1e-9)
	assert.InDelta(t, 20.0, g.Value(3, 18, 2), 1e-9)
	assert.InDelta(t, -20.0, g.Value(0, 60, 0), 1e-9)
}

func TestSine_NoiseBounded(t *testing.T) {
	g := &Sine{Amplitude: 0, Period: 40, Noise: 5, Rand: rand.New(rand.NewPCG(1, 2))}

	differ := false
	prev := g.Value(0, 0, 0)
	for i := range 1000 {
		v := g.Value(0, i, 0)
		assert.True(t, v >= -5 && v < 5, "noise %f out of range", v)
		if v != prev {
			differ = true
		}
		prev = v
	}
	assert.True(t, differ)
}

func TestECG_PeakPerBeat(t *testing.T) {
	g := &ECG{Amplitude: 40, Beat: 800}

	// R wave sits at 0.32 of the beat and points up (negative Y)
	peak := g.Value(0, 256, 0)
	assert.Less(t, peak, -30.0)
	assert.InDelta(t, peak, g.Value(0, 256+800, 0), 1e-9)

	// Channels lag each other
	lagged := &ECG{Amplitude: 40, Beat: 800, Lag: 10}
	assert.InDelta(t, peak, lagged.Value(1, 266, 0), 1e-9)
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()

	g, err := FromConfig(&cfg.Signal, nil)
	require.NoError(t, err)
	assert.IsType(t, &Sine{}, g)

	cfg.Signal.Generator = "ecg"
	g, err = FromConfig(&cfg.Signal, rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)
	assert.IsType(t, &ECG{}, g)
	assert.False(t, math.IsNaN(g.Value(0, 0, 0)))

	cfg.Signal.Generator = "triangle"
	_, err = FromConfig(&cfg.Signal, nil)
	assert.Error(t, err)
}

type constGenerator float64

func (g constGenerator) Value(int, int, float64) float64 { return float64(g) }

func TestStore_SetGenerator(t *testing.T) {
	s := NewStore(rampGenerator{}, 3, 0, "CH")
	require.NoError(t, s.Regenerate(1))

	s.SetGenerator(constGenerator(7))
	assert.Equal(t, []float64{0, 1, 2}, s.Samples(0))
	assert.Equal(t, float64(7), s.Resample(0, 1))

	s.Advance()
	assert.Equal(t, []float64{7, 7, 7}, s.Samples(0))
}
