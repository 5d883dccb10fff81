package exam

import (
	"context"
	"time"
)

// defaultPollInterval is the cadence at which a running countdown re-reads
// the clock.
const defaultPollInterval = 250 * time.Millisecond

// SecondsLeft reports the whole seconds remaining before deadline, never
// negative, rounding partial seconds up. A stopped countdown reports 0.
// It is a pure function of its arguments: "now" is passed in, never read
// here, so the same instants always yield the same value.
func SecondsLeft(running bool, deadline, now time.Time) int {
	if !running {
		return 0
	}
	diff := deadline.Sub(now)
	if diff <= 0 {
		return 0
	}
	return int((diff + time.Second - 1) / time.Second)
}

// Countdown polls the clock on a fixed cadence while running and fires
// onExpire exactly once when the remaining time first reaches zero.
type Countdown struct {
	deadline time.Time
	now      func() time.Time
	interval time.Duration
	onExpire func()
}

func NewCountdown(deadline time.Time, now func() time.Time, onExpire func()) *Countdown {
	if now == nil {
		now = time.Now
	}
	return &Countdown{
		deadline: deadline,
		now:      now,
		interval: defaultPollInterval,
		onExpire: onExpire,
	}
}

// Run blocks until the countdown expires or ctx is cancelled. The clock is
// only read inside the tick. Cancelling ctx stops polling without firing.
func (c *Countdown) Run(ctx context.Context) {
	t := time.NewTicker(c.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if SecondsLeft(true, c.deadline, c.now()) == 0 {
				if c.onExpire != nil {
					c.onExpire()
				}
				return
			}
		}
	}
}
