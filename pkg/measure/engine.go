// Package measure derives the displayed statistics from cursor placement.
package measure

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/itohio/goiegm/pkg/layout"
	"github.com/itohio/goiegm/pkg/signal"
)

// Reading is one channel's value at a cursor, or its mean between two cursors.
type Reading struct {
	Channel string
	Value   float64
}

// Result is the cursor measurement shown in the info panel and popup.
type Result struct {
	Cursors  int // 0, 1 or 2
	From, To int // Time steps; To is only meaningful with two cursors
	Readings []Reading
}

// Empty reports whether there is nothing to display.
func (r Result) Empty() bool {
	return r.Cursors == 0
}

// Summary renders the result as multi-line text.
func (r Result) Summary() string {
	var b strings.Builder
	switch r.Cursors {
	case 1:
		fmt.Fprintf(&b, "Time: %dms\n", r.From)
		for _, rd := range r.Readings {
			fmt.Fprintf(&b, "%s: %.2f\n", rd.Channel, rd.Value)
		}
	case 2:
		fmt.Fprintf(&b, "Time range: %dms to %dms\n", r.From, r.To)
		for _, rd := range r.Readings {
			fmt.Fprintf(&b, "%s: mean = %.2f\n", rd.Channel, rd.Value)
		}
	}
	return b.String()
}

// RangeResult holds min/max over the span between two clicks on one channel.
type RangeResult struct {
	Channel  string
	From, To float64 // Click times, From <= To
	Min, Max float64
}

// Summary renders the range statistics as multi-line text.
func (r RangeResult) Summary() string {
	return fmt.Sprintf("Channel: %s, time range: %.2fms - %.2fms\nMax: %s, Min: %s\n",
		r.Channel, r.From, r.To, formatValue(r.Max), formatValue(r.Min))
}

// Engine computes measurements over a signal store using a layout for
// pixel to time conversion. It only reads from both.
type Engine struct {
	store  *signal.Store
	layout *layout.Model
}

// New creates a measurement engine.
func New(store *signal.Store, lay *layout.Model) *Engine {
	return &Engine{
		store:  store,
		layout: lay,
	}
}

// timeAt maps a cursor X to a clamped sample index.
func (e *Engine) timeAt(x float64) int {
	return e.layout.ClampTime(e.layout.XToTime(x))
}

// Measure computes per-channel readings for zero, one or two cursor X positions.
// With one cursor every channel reports its sample at the cursor time; with
// two it reports the mean over the inclusive range between them.
func (e *Engine) Measure(cursors []float64) Result {
	switch len(cursors) {
	case 1:
		t := e.timeAt(cursors[0])
		res := Result{Cursors: 1, From: t}
		for i := range e.store.Channels() {
			res.Readings = append(res.Readings, Reading{
				Channel: e.store.Name(i),
				Value:   e.store.Samples(i)[t],
			})
		}
		return res
	case 2:
		t1, t2 := e.timeAt(cursors[0]), e.timeAt(cursors[1])
		res := Result{Cursors: 2, From: t1, To: t2}
		for i := range e.store.Channels() {
			avg, err := Mean(e.store.Samples(i), t1, t2)
			if err != nil {
				continue
			}
			res.Readings = append(res.Readings, Reading{
				Channel: e.store.Name(i),
				Value:   avg,
			})
		}
		return res
	default:
		return Result{}
	}
}

// RangeStats returns min and max of one channel between two click times.
// Times are floored to sample indices and may be given in either order.
func (e *Engine) RangeStats(channel int, t1, t2 float64) (RangeResult, error) {
	samples := e.store.Samples(channel)
	if samples == nil {
		return RangeResult{}, ErrNoChannel
	}

	from, to := math.Min(t1, t2), math.Max(t1, t2)
	lo, hi, err := MinMax(samples, int(math.Floor(from)), int(math.Floor(to)))
	if err != nil {
		return RangeResult{}, fmt.Errorf("range %.2f-%.2f on %s: %w", from, to, e.store.Name(channel), err)
	}

	return RangeResult{
		Channel: e.store.Name(channel),
		From:    from,
		To:      to,
		Min:     lo,
		Max:     hi,
	}, nil
}

// Delta returns the signed difference between fresh resamples of channel
// at the times of x2 and x1. The stored sequence is not consulted, so two
// calls with the same arguments generally differ by the generator noise.
func (e *Engine) Delta(channel int, x1, x2 float64) float64 {
	t1, t2 := e.layout.XToTime(x1), e.layout.XToTime(x2)
	return e.store.Resample(channel, t2) - e.store.Resample(channel, t1)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
