package interact

import (
	"sort"
	"time"
)

// Timer is a cancelable fire-once task.
type Timer interface {
	// Stop prevents the task from running. It returns false if the task
	// already ran or was stopped.
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Ensure schedulers implement Scheduler.
var (
	_ Scheduler = TimeScheduler{}
	_ Scheduler = (*ManualScheduler)(nil)
)

// TimeScheduler schedules with time.AfterFunc. Dispatch, when set, is used
// to hand the callback back to the event loop goroutine (fyne.Do in the
// desktop app) so that all state mutation stays on one goroutine.
type TimeScheduler struct {
	Dispatch func(func())
}

// AfterFunc implements Scheduler.
func (s TimeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, func() {
		if s.Dispatch != nil {
			s.Dispatch(f)
			return
		}
		f()
	})
}

// ManualScheduler is a Scheduler driven by explicit Advance calls, for
// deterministic tests and headless rendering.
type ManualScheduler struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// AfterFunc implements Scheduler.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.seq++
	t := &manualTimer{at: s.now + d, seq: s.seq, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Now returns the elapsed virtual time.
func (s *ManualScheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves virtual time forward by d, running due timers in order.
func (s *ManualScheduler) Advance(d time.Duration) {
	deadline := s.now + d
	for {
		due := s.due(deadline)
		if due == nil {
			break
		}
		s.now = due.at
		due.fired = true
		due.f()
	}
	s.now = deadline

	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	s.timers = live
}

// due returns the earliest live timer at or before deadline.
func (s *ManualScheduler) due(deadline time.Duration) *manualTimer {
	var live []*manualTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= deadline {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].at != live[j].at {
			return live[i].at < live[j].at
		}
		return live[i].seq < live[j].seq
	})
	return live[0]
}
