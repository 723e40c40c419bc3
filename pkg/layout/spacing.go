package layout

// DefaultMultiplier is the spacing multiplier every channel starts with.
const DefaultMultiplier = 1.0

// Spacing holds the per-channel spacing multipliers. At most one channel
// differs from DefaultMultiplier: Set overwrites its target and resets all
// other entries in one step.
type Spacing struct {
	values []float64
}

// NewSpacing creates a spacing set for n channels, all at DefaultMultiplier.
func NewSpacing(n int) *Spacing {
	s := &Spacing{}
	s.Reset(n)
	return s
}

// Reset resizes the set to n channels and restores every multiplier.
func (s *Spacing) Reset(n int) {
	if n < 0 {
		n = 0
	}
	if cap(s.values) >= n {
		s.values = s.values[:n]
	} else {
		s.values = make([]float64, n)
	}
	for i := range s.values {
		s.values[i] = DefaultMultiplier
	}
}

// Clear restores every multiplier without changing the channel count.
func (s *Spacing) Clear() {
	s.Reset(len(s.values))
}

// Set assigns v to channel i and resets every other channel. It returns
// false and leaves the set untouched when i is out of range or v is negative.
func (s *Spacing) Set(i int, v float64) bool {
	if i < 0 || i >= len(s.values) || v < 0 {
		return false
	}
	for j := range s.values {
		s.values[j] = DefaultMultiplier
	}
	s.values[i] = v
	return true
}

// Get returns the multiplier of channel i, or DefaultMultiplier when out of range.
func (s *Spacing) Get(i int) float64 {
	if i < 0 || i >= len(s.values) {
		return DefaultMultiplier
	}
	return s.values[i]
}

// Len returns the number of channels.
func (s *Spacing) Len() int {
	return len(s.values)
}

// Sum returns the sum of all multipliers.
func (s *Spacing) Sum() float64 {
	var sum float64
	for _, v := range s.values {
		sum += v
	}
	return sum
}

// Values returns a copy of all multipliers.
func (s *Spacing) Values() []float64 {
	result := make([]float64, len(s.values))
	copy(result, s.values)
	return result
}
