package scheduler

import (
	"time"
)

// Pacer is the restartable countdown that paces fetch cycles. It ticks
// at a fixed interval and counts elapsed ticks toward a period. The
// elapsed count resets to zero on every Start and Stop; it never
// silently carries over between cycles.
//
// The Pacer is owned by the scheduler loop and is not safe for
// concurrent use.
type Pacer struct {
	interval time.Duration
	period   int
	elapsed  int
	ticker   *time.Ticker
	c        <-chan time.Time
}

// NewPacer creates a stopped pacer with the given tick interval and
// period in ticks.
func NewPacer(interval time.Duration, period int) *Pacer {
	return &Pacer{
		interval: interval,
		period:   period,
	}
}

// C returns the tick channel. It is nil while the pacer is stopped, so
// it can sit in a select without ever firing.
func (p *Pacer) C() <-chan time.Time {
	return p.c
}

// Running reports whether the pacer is counting.
func (p *Pacer) Running() bool {
	return p.ticker != nil
}

// Start begins a fresh countdown. A running pacer is restarted from
// zero with a fresh ticker, so tick alignment never drifts across
// cycles.
func (p *Pacer) Start() {
	p.Stop()
	p.ticker = time.NewTicker(p.interval)
	p.c = p.ticker.C
}

// Stop halts the pacer and resets the elapsed count to zero.
func (p *Pacer) Stop() {
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
	}
	p.c = nil
	p.elapsed = 0
}

// Advance records one elapsed tick and returns the ticks remaining in
// the period (zero at the pacing boundary).
func (p *Pacer) Advance() int {
	p.elapsed++
	return p.period - p.elapsed
}

// Expired reports whether the full period has elapsed.
func (p *Pacer) Expired() bool {
	return p.elapsed >= p.period
}

// Period returns the configured period in ticks.
func (p *Pacer) Period() int {
	return p.period
}
