package core

import "time"

// FixedStep paces periodic work, such as progress reports, to a steady rate
// regardless of how often the caller polls it.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewInterval constructs a FixedStep that fires once per interval.
func NewInterval(every time.Duration) *FixedStep {
	if every <= 0 {
		every = time.Second
	}
	return &FixedStep{step: every, accumulator: every}
}

// ShouldStep reports whether a step is due.
func (f *FixedStep) ShouldStep() bool {
	now := time.Now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		if f.accumulator > f.step {
			f.accumulator = 0
		}
		return true
	}
	return false
}
