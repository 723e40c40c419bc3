package interact

// State is the pointer gesture state.
type State int

const (
	// Idle waits for a pointer press.
	Idle State = iota
	// ArmedForDrag is a press inside a channel band with the hold timer running.
	ArmedForDrag
	// Dragging rescales the pressed channel's spacing on every pointer move.
	Dragging
	// Settling follows a drag release; clicks are suppressed until the
	// settle timer returns to Idle.
	Settling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ArmedForDrag:
		return "armed"
	case Dragging:
		return "dragging"
	case Settling:
		return "settling"
	default:
		return "unknown"
	}
}

// Cursors holds at most two cursor X positions. Placements alternate
// between slot 0 and slot 1, so a third placement replaces slot 0.
type Cursors struct {
	xs   [2]float64
	n    int
	next int
}

// Place stores x in the next slot.
func (c *Cursors) Place(x float64) {
	c.xs[c.next] = x
	if c.n < len(c.xs) {
		c.n++
	}
	c.next = 1 - c.next
}

// Positions returns the placed cursors in slot order.
func (c *Cursors) Positions() []float64 {
	result := make([]float64, c.n)
	copy(result, c.xs[:c.n])
	return result
}

// Len returns the number of placed cursors.
func (c *Cursors) Len() int {
	return c.n
}

// Clear removes all cursors and rewinds placement to slot 0.
func (c *Cursors) Clear() {
	*c = Cursors{}
}

// ClickMemory is the last plot click, used to detect a second click on
// the same channel.
type ClickMemory struct {
	Valid   bool    // A click has been recorded
	Channel string  // Empty when the click hit no channel
	Index   int     // Channel index, -1 when the click hit no channel
	Time    float64 // Fractional click time
}

// SameChannel reports whether both clicks hit the same existing channel.
func (m ClickMemory) SameChannel(other ClickMemory) bool {
	return m.Valid && other.Valid && m.Index >= 0 && other.Index >= 0 && m.Channel == other.Channel
}

// dragState tracks a press that may become a spacing drag.
type dragState struct {
	index        int
	startY       float64
	startSpacing float64
}
