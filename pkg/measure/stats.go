package measure

import (
	"errors"
)

var (
	// ErrEmptyRange is returned when a range selects no samples.
	ErrEmptyRange = errors.New("empty sample range")
	// ErrNoChannel is returned when a measurement names an absent channel.
	ErrNoChannel = errors.New("no such channel")
)

// span orders from/to and clamps both to valid indices of samples.
func span(samples []float64, from, to int) (int, int, error) {
	if len(samples) == 0 {
		return 0, 0, ErrEmptyRange
	}
	lo, hi := min(from, to), max(from, to)
	lo = max(lo, 0)
	hi = min(hi, len(samples)-1)
	if lo > hi {
		return 0, 0, ErrEmptyRange
	}
	return lo, hi, nil
}

// Mean returns the arithmetic mean of samples[from..to], both ends
// inclusive and in either order. Indices are clamped to the sequence.
func Mean(samples []float64, from, to int) (float64, error) {
	lo, hi, err := span(samples, from, to)
	if err != nil {
		return 0, err
	}

	var sum float64
	for _, v := range samples[lo : hi+1] {
		sum += v
	}
	return sum / float64(hi-lo+1), nil
}

// MinMax returns the smallest and largest of samples[from..to], both ends
// inclusive and in either order. Indices are clamped to the sequence.
func MinMax(samples []float64, from, to int) (lo, hi float64, err error) {
	first, last, err := span(samples, from, to)
	if err != nil {
		return 0, 0, err
	}

	lo, hi = samples[first], samples[first]
	for _, v := range samples[first+1 : last+1] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, nil
}
