// Package softtimer implements a periodic countdown timer in software.
//
// It is meant for hosts that have no spare hardware timer to hand to
// ws2812timer. The timer keeps a deadline for every tick and spins until it
// passes; it never sleeps on the scheduler, so a Wait costs CPU time for its
// whole duration.
//
// Ticks are never coalesced: a caller that is late by less than one period
// returns immediately and the next deadline stays on the original grid.
// A caller that arrives a whole period late or more has missed a tick; Wait
// then re-arms the grid and returns ErrOverrun. The first Wait after Start
// behaves like a hardware timer whose flag is already pending: however late
// it comes, it returns at once and the grid restarts from there.
package softtimer

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3/cpu"
)

var (
	// ErrStopped is returned by Wait when the timer is not running.
	ErrStopped = errors.New("softtimer: not started")
	// ErrOverrun is returned by Wait when at least one whole tick went by
	// since the previous deadline.
	ErrOverrun = errors.New("softtimer: tick overrun")
)

// Timer is a periodic countdown timer.
//
// A Timer is not safe for concurrent use.
type Timer struct {
	freq   physic.Frequency
	period time.Duration
	next   time.Time
	on     bool
	primed bool

	now  func() time.Time
	spin func(time.Duration)
}

// New returns a stopped Timer firing at f.
//
// The period is f.Period() truncated to the nanosecond; at 3MHz that is
// 333ns instead of 333.33ns, well inside the WS2812 tolerance per bit.
func New(f physic.Frequency) (*Timer, error) {
	if f <= 0 {
		return nil, fmt.Errorf("softtimer: invalid frequency %s", f)
	}
	p := f.Period()
	if p <= 0 {
		return nil, fmt.Errorf("softtimer: frequency %s too high", f)
	}
	return &Timer{
		freq:   f,
		period: p,
		now:    time.Now,
		spin:   cpu.Nanospin,
	}, nil
}

// Start arms the timer. The first tick fires one period from now.
func (t *Timer) Start() {
	t.next = t.now().Add(t.period)
	t.on = true
	t.primed = false
}

// Stop disarms the timer.
func (t *Timer) Stop() {
	t.on = false
}

// Frequency returns the tick frequency.
func (t *Timer) Frequency() physic.Frequency {
	return t.freq
}

// Period returns the tick period.
func (t *Timer) Period() time.Duration {
	return t.period
}

// Wait blocks until the next tick.
func (t *Timer) Wait() error {
	if !t.on {
		return ErrStopped
	}
	now := t.now()
	if late := now.Sub(t.next); late >= t.period {
		t.next = now.Add(t.period)
		if !t.primed {
			t.primed = true
			return nil
		}
		return ErrOverrun
	}
	t.primed = true
	if d := t.next.Sub(now); d > 0 {
		t.spin(d)
		for t.now().Before(t.next) {
		}
	}
	t.next = t.next.Add(t.period)
	return nil
}

func (t *Timer) String() string {
	return fmt.Sprintf("softtimer.Timer{%s}", t.freq)
}
