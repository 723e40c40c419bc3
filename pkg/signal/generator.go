package signal

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/itohio/goiegm/pkg/config"
)

// Generator produces one sample value for a channel at a time step.
// Implementations may be stochastic; callers must not assume that two
// calls with the same arguments return the same value.
type Generator interface {
	Value(channel, t int, offset float64) float64
}

// Ensure generators implement Generator.
var (
	_ Generator = (*Sine)(nil)
	_ Generator = (*ECG)(nil)
)

// Sine is a sine wave with uniform noise added on every call.
type Sine struct {
	Amplitude float64
	Period    float64 // Samples per half cycle
	Noise     float64
	Rand      *rand.Rand
}

// Value returns sin((t+offset)*pi/Period)*Amplitude plus noise in [-Noise, Noise).
func (s *Sine) Value(_ int, t int, offset float64) float64 {
	base := math.Sin((float64(t)+offset)*math.Pi/s.Period) * s.Amplitude
	return base + noise(s.Rand, s.Noise)
}

// ECG is an electrogram-like waveform: gaussian P, QRS and T waves on a
// slowly wandering baseline. Each channel lags the previous one by Lag samples.
type ECG struct {
	Amplitude float64
	Beat      float64 // Samples per beat
	Lag       float64
	Noise     float64
	Rand      *rand.Rand
}

// Value returns the waveform at the phase of t+offset within the beat.
func (e *ECG) Value(channel int, t int, offset float64) float64 {
	pos := float64(t) + offset - float64(channel)*e.Lag
	phase := pos / e.Beat
	phase -= math.Floor(phase)

	baseline := 0.05 * math.Sin(2*math.Pi*0.33*phase)
	p := 0.08 * gauss(phase, 0.18, 0.03)
	q := -0.12 * gauss(phase, 0.30, 0.01)
	r := 1.00 * gauss(phase, 0.32, 0.008)
	s := -0.25 * gauss(phase, 0.35, 0.012)
	tw := 0.25 * gauss(phase, 0.60, 0.06)

	// Traces grow downwards on screen, so the R peak points up.
	return -e.Amplitude*(baseline+p+q+r+s+tw) + noise(e.Rand, e.Noise)
}

// FromConfig builds the generator selected in cfg. A nil rnd gets a
// randomly seeded source.
func FromConfig(cfg *config.SignalConfig, rnd *rand.Rand) (Generator, error) {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	switch cfg.Generator {
	case "sine", "":
		return &Sine{
			Amplitude: cfg.Amplitude,
			Period:    cfg.Period,
			Noise:     cfg.Noise,
			Rand:      rnd,
		}, nil
	case "ecg":
		return &ECG{
			Amplitude: cfg.Amplitude * 2,
			Beat:      cfg.Period * 20,
			Lag:       cfg.Period / 4,
			Noise:     cfg.Noise / 5,
			Rand:      rnd,
		}, nil
	default:
		return nil, fmt.Errorf("unknown generator %q", cfg.Generator)
	}
}

// noise returns a uniform value in [-scale, scale).
func noise(rnd *rand.Rand, scale float64) float64 {
	if scale == 0 || rnd == nil {
		return 0
	}
	return (rnd.Float64()*2 - 1) * scale
}

func gauss(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return math.Exp(-0.5 * z * z)
}
