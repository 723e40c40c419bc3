// Package interact owns the mutable display state and turns pointer and
// button events into cursor placements and spacing drags.
package interact

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/itohio/goiegm/pkg/config"
	"github.com/itohio/goiegm/pkg/layout"
	"github.com/itohio/goiegm/pkg/measure"
	"github.com/itohio/goiegm/pkg/render"
	"github.com/itohio/goiegm/pkg/signal"
)

// Options contains gesture timing and scaling.
type Options struct {
	HoldDelay    time.Duration
	SettleDelay  time.Duration
	DragScale    float64 // Pixels of pointer travel per spacing unit
	TickInterval int
}

// OptionsFromConfig extracts controller options from the configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		HoldDelay:    cfg.Interaction.HoldDelay,
		SettleDelay:  cfg.Interaction.SettleDelay,
		DragScale:    cfg.Interaction.DragScale,
		TickInterval: cfg.Display.TickInterval,
	}
}

// Controller is the single writer of spacing, cursors, click memory and
// canvas height. All methods must be called from one goroutine; timer
// callbacks are expected to be dispatched onto that same goroutine.
type Controller struct {
	opts   Options
	store  *signal.Store
	layout *layout.Model
	engine *measure.Engine
	sched  Scheduler

	state   State
	drag    dragState
	cursors Cursors
	last    ClickMemory

	holdTimer   Timer
	settleTimer Timer
	generation  uint64 // Bumped on every cancel so late callbacks are ignored

	result    measure.Result
	rangeRes  measure.RangeResult
	haveRange bool

	onRedraw  []func()
	onMeasure []func(res measure.Result, x, y float64)
	onResult  []func(res measure.Result)
	onRange   []func(res measure.RangeResult)
}

// New creates a controller over an already populated store and a layout
// sized for the same channel count.
func New(store *signal.Store, lay *layout.Model, sched Scheduler, opts Options) *Controller {
	return &Controller{
		opts:   opts,
		store:  store,
		layout: lay,
		engine: measure.New(store, lay),
		sched:  sched,
		last:   ClickMemory{Index: -1},
	}
}

// SetOptions replaces gesture timing and scaling. A gesture in progress
// keeps the timers it already scheduled.
func (c *Controller) SetOptions(opts Options) {
	c.opts = opts
	c.redraw()
}

// OnRedraw registers a callback invoked whenever the frame must be redrawn.
func (c *Controller) OnRedraw(cb func()) {
	c.onRedraw = append(c.onRedraw, cb)
}

// OnMeasure registers a callback receiving the cursor measurement and the
// click position it was triggered from. An empty result means the
// measurement was cleared.
func (c *Controller) OnMeasure(cb func(res measure.Result, x, y float64)) {
	c.onMeasure = append(c.onMeasure, cb)
}

// OnResult registers a callback receiving the cursor measurement whenever
// it changes, including recomputation after the samples scroll.
func (c *Controller) OnResult(cb func(res measure.Result)) {
	c.onResult = append(c.onResult, cb)
}

// OnRange registers a callback receiving same-channel double click statistics.
func (c *Controller) OnRange(cb func(res measure.RangeResult)) {
	c.onRange = append(c.onRange, cb)
}

// State returns the current gesture state.
func (c *Controller) State() State { return c.state }

// Layout returns the layout model. Callers must treat it as read-only.
func (c *Controller) Layout() *layout.Model { return c.layout }

// Store returns the signal store. Callers must treat it as read-only.
func (c *Controller) Store() *signal.Store { return c.store }

// Cursors returns the placed cursor X positions in slot order.
func (c *Controller) Cursors() []float64 { return c.cursors.Positions() }

// LastClick returns the remembered click.
func (c *Controller) LastClick() ClickMemory { return c.last }

// Result returns the current cursor measurement.
func (c *Controller) Result() measure.Result { return c.result }

// Range returns the last same-channel range statistics, if any.
func (c *Controller) Range() (measure.RangeResult, bool) { return c.rangeRes, c.haveRange }

// DraggedChannel returns the channel being resized, or -1.
func (c *Controller) DraggedChannel() int {
	if c.state == Idle {
		return -1
	}
	return c.drag.index
}

// PointerDown arms a spacing drag when y falls inside a channel band.
// The pressed channel keeps its multiplier while all others reset.
func (c *Controller) PointerDown(x, y float64) {
	if c.state != Idle {
		return
	}

	idx, ok := c.layout.BandAt(y)
	if !ok {
		return
	}

	current := c.layout.Spacing().Get(idx)
	c.layout.Spacing().Set(idx, current)
	c.layout.Fit()

	c.drag = dragState{index: idx, startY: y, startSpacing: current}
	c.state = ArmedForDrag

	gen := c.generation
	c.holdTimer = c.sched.AfterFunc(c.opts.HoldDelay, func() {
		c.holdElapsed(gen)
	})

	c.redraw()
}

func (c *Controller) holdElapsed(gen uint64) {
	if gen != c.generation || c.state != ArmedForDrag {
		return
	}
	c.holdTimer = nil
	c.state = Dragging
	log.Printf("Resizing channel %s", c.store.Name(c.drag.index))
	c.redraw()
}

// PointerMove rescales the dragged channel while Dragging.
func (c *Controller) PointerMove(x, y float64) {
	if c.state != Dragging {
		return
	}

	v := c.drag.startSpacing + math.Abs(y-c.drag.startY)/c.opts.DragScale
	c.layout.Spacing().Set(c.drag.index, v)
	c.layout.Fit()
	c.redraw()
}

// PointerUp ends a gesture. A release before the hold delay is a click;
// a release after a drag enters Settling until the settle delay passes.
func (c *Controller) PointerUp(x, y float64) {
	switch c.state {
	case Idle:
		c.Click(x, y)
	case ArmedForDrag:
		c.cancelTimers()
		c.state = Idle
		c.Click(x, y)
	case Dragging:
		c.cancelTimers()
		c.state = Settling
		gen := c.generation
		c.settleTimer = c.sched.AfterFunc(c.opts.SettleDelay, func() {
			c.settled(gen)
		})
	case Settling:
	}
}

// PointerCancel ends a gesture whose release will not be delivered, such as
// the pointer leaving the display. An armed press is dropped without a
// click; a drag settles as if released.
func (c *Controller) PointerCancel() {
	switch c.state {
	case ArmedForDrag:
		c.cancelTimers()
		c.state = Idle
		c.drag = dragState{}
		c.redraw()
	case Dragging:
		c.PointerUp(0, 0)
	}
}

func (c *Controller) settled(gen uint64) {
	if gen != c.generation || c.state != Settling {
		return
	}
	c.settleTimer = nil
	log.Printf("Channel %s spacing set to %.2f", c.store.Name(c.drag.index), c.layout.Spacing().Get(c.drag.index))
	c.state = Idle
	c.drag = dragState{}
	c.redraw()
}

// Click places a cursor at x and updates the measurements. Clicks outside
// the drawable span, and clicks while a drag is active or settling, are
// ignored.
func (c *Controller) Click(x, y float64) {
	if c.state != Idle || !c.layout.InBounds(x) {
		return
	}

	hit := ClickMemory{Valid: true, Index: -1, Time: c.layout.ClickTime(x)}
	if idx, ok := c.layout.YToChannelIndex(y); ok {
		hit.Index = idx
		hit.Channel = c.store.Name(idx)
	}

	if hit.SameChannel(c.last) {
		res, err := c.engine.RangeStats(hit.Index, c.last.Time, hit.Time)
		if err != nil {
			log.Printf("Range statistics unavailable: %v", err)
		} else {
			c.rangeRes, c.haveRange = res, true
			for _, cb := range c.onRange {
				cb(res)
			}
		}
	}
	c.last = hit

	c.cursors.Place(x)
	c.result = c.engine.Measure(c.cursors.Positions())

	c.redraw()
	for _, cb := range c.onMeasure {
		cb(c.result, x, y)
	}
	c.publishResult()
}

// Clear restores all spacing multipliers and the initial canvas height.
// Cursors and click memory are kept.
func (c *Controller) Clear() {
	c.layout.Spacing().Clear()
	c.layout.ResetHeight()
	c.redraw()
}

// SetChannelCount regenerates n channels and resets spacing, height,
// cursors, click memory and any gesture in progress.
func (c *Controller) SetChannelCount(n int) error {
	if err := c.store.Regenerate(n); err != nil {
		return fmt.Errorf("failed to set channel count: %w", err)
	}

	c.cancelTimers()
	c.state = Idle
	c.drag = dragState{}
	c.layout.Reset(n)
	c.cursors.Clear()
	c.last = ClickMemory{Index: -1}
	c.result = measure.Result{}
	c.rangeRes, c.haveRange = measure.RangeResult{}, false

	log.Printf("Displaying %d channels", n)
	c.redraw()
	for _, cb := range c.onMeasure {
		cb(c.result, 0, 0)
	}
	c.publishResult()
	return nil
}

// Advance scrolls the waveform by regenerating samples at the next offset.
// Cursors and spacing stay in place; the cursor measurement is recomputed
// and published to result listeners.
func (c *Controller) Advance() {
	c.store.Advance()
	c.redraw()
	if c.cursors.Len() > 0 {
		c.result = c.engine.Measure(c.cursors.Positions())
		c.publishResult()
	}
}

// Frame builds the render input for the current state. With two cursors
// and a remembered channel it resamples the delta annotation afresh, so
// successive frames show different deltas.
func (c *Controller) Frame() render.Frame {
	f := render.Frame{
		Layout:       c.layout,
		Store:        c.store,
		TickInterval: c.opts.TickInterval,
		Cursors:      c.cursors.Positions(),
		Highlight:    -1,
	}

	if c.state == Dragging || c.state == Settling {
		f.Highlight = c.drag.index
	}

	if len(f.Cursors) == 2 && c.last.Index >= 0 {
		if idx, ok := c.store.Index(c.last.Channel); ok {
			f.Overlay = &render.Overlay{
				X1:    f.Cursors[0],
				X2:    f.Cursors[1],
				Y:     c.layout.BandCenter(idx),
				Delta: c.engine.Delta(idx, f.Cursors[0], f.Cursors[1]),
			}
		}
	}

	return f
}

func (c *Controller) cancelTimers() {
	c.generation++
	if c.holdTimer != nil {
		c.holdTimer.Stop()
		c.holdTimer = nil
	}
	if c.settleTimer != nil {
		c.settleTimer.Stop()
		c.settleTimer = nil
	}
}

func (c *Controller) publishResult() {
	for _, cb := range c.onResult {
		cb(c.result)
	}
}

func (c *Controller) redraw() {
	for _, cb := range c.onRedraw {
		cb()
	}
}
