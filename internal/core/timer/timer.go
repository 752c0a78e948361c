// Package timer provides countdown timers advanced by per-tick elapsed time.
package timer

import "time"

type Mode int

const (
	Once Mode = iota
	Repeating
)

// Timer counts elapsed time toward Duration. A Once timer finishes a single
// time and stays finished; a Repeating timer wraps and may finish several
// times in one Tick when dt spans more than one period.
type Timer struct {
	Duration time.Duration
	Mode     Mode

	elapsed  time.Duration
	finished bool
	times    int
}

func New(d time.Duration, mode Mode) Timer {
	return Timer{Duration: d, Mode: mode}
}

// Tick advances the timer by dt.
func (t *Timer) Tick(dt time.Duration) {
	t.times = 0
	if dt < 0 {
		dt = 0
	}
	switch t.Mode {
	case Once:
		if t.finished {
			return
		}
		t.elapsed += dt
		if t.elapsed >= t.Duration {
			t.elapsed = t.Duration
			t.finished = true
			t.times = 1
		}
	case Repeating:
		if t.Duration <= 0 {
			t.times = 1
			t.finished = true
			return
		}
		t.elapsed += dt
		if t.elapsed >= t.Duration {
			t.times = int(t.elapsed / t.Duration)
			t.elapsed %= t.Duration
		}
		t.finished = t.times > 0
	}
}

// JustFinished reports whether the last Tick completed at least one period.
func (t *Timer) JustFinished() bool { return t.times > 0 }

// TimesFinished returns how many periods the last Tick completed.
func (t *Timer) TimesFinished() int { return t.times }

// Finished reports whether a Once timer has run out.
func (t *Timer) Finished() bool { return t.finished }

func (t *Timer) Elapsed() time.Duration { return t.elapsed }

// Fraction returns elapsed/Duration clamped to [0,1].
func (t *Timer) Fraction() float64 {
	if t.Duration <= 0 {
		return 1
	}
	f := float64(t.elapsed) / float64(t.Duration)
	if f > 1 {
		return 1
	}
	return f
}

// Reset rewinds the timer to zero.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.times = 0
}
