package signal

import (
	"fmt"
	"strconv"
)

// Store holds a fixed-length sample sequence for every channel.
// Sequences are replaced wholesale by Regenerate and Advance and are
// otherwise read-only.
type Store struct {
	gen       Generator
	totalTime int
	speed     float64
	prefix    string

	offset float64 // Offset that the next regeneration will use
	names  []string
	data   [][]float64
}

// NewStore creates an empty store. Call Regenerate to populate it.
func NewStore(gen Generator, totalTime int, speed float64, prefix string) *Store {
	return &Store{
		gen:       gen,
		totalTime: totalTime,
		speed:     speed,
		prefix:    prefix,
	}
}

// SetGenerator replaces the data source. Stored sequences keep their values
// until the next regeneration.
func (s *Store) SetGenerator(gen Generator) {
	s.gen = gen
}

// Regenerate replaces all channels with n freshly generated sequences and
// advances the accumulated offset by speed.
func (s *Store) Regenerate(n int) error {
	if n < 1 {
		return fmt.Errorf("channel count must be at least 1, got %d", n)
	}

	// Reuse buffers when the channel count did not change
	if len(s.data) != n {
		s.data = make([][]float64, n)
		s.names = make([]string, n)
		for i := range n {
			s.data[i] = make([]float64, s.totalTime)
			s.names[i] = s.prefix + strconv.Itoa(i+1)
		}
	}

	for i := range n {
		row := s.data[i]
		for t := range s.totalTime {
			row[t] = s.gen.Value(i, t, s.offset)
		}
	}
	s.offset += s.speed

	return nil
}

// Advance regenerates every channel at the next offset, keeping the count.
func (s *Store) Advance() {
	if len(s.data) == 0 {
		return
	}
	_ = s.Regenerate(len(s.data))
}

// Channels returns the number of channels.
func (s *Store) Channels() int {
	return len(s.data)
}

// TotalTime returns the number of samples per channel.
func (s *Store) TotalTime() int {
	return s.totalTime
}

// Samples returns the sequence of channel i. The slice is owned by the
// store and must not be modified; it is invalidated by the next regeneration.
func (s *Store) Samples(i int) []float64 {
	if i < 0 || i >= len(s.data) {
		return nil
	}
	return s.data[i]
}

// Name returns the display name of channel i, or "" if i is out of range.
func (s *Store) Name(i int) string {
	if i < 0 || i >= len(s.names) {
		return ""
	}
	return s.names[i]
}

// Names returns a copy of all channel names.
func (s *Store) Names() []string {
	result := make([]string, len(s.names))
	copy(result, s.names)
	return result
}

// Index returns the channel index for name.
func (s *Store) Index(name string) (int, bool) {
	for i, n := range s.names {
		if n == name {
			return i, true
		}
	}
	return -1, false
}

// Resample evaluates the generator afresh at time t for channel i, using
// the current accumulated offset. The result is not read from the stored
// sequence and carries new noise on every call.
func (s *Store) Resample(i, t int) float64 {
	return s.gen.Value(i, t, s.offset)
}
