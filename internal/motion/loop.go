package motion

import (
	"context"
	"time"
)

// Loop calls Tick on a fixed cadence until its context ends.
type Loop struct {
	Interval time.Duration
	// Tick receives seconds elapsed since Run started.
	Tick func(elapsed float64)

	now func() time.Time
}

// NewLoop returns a loop ticking fps times per second.
func NewLoop(fps int, tick func(elapsed float64)) *Loop {
	if fps <= 0 {
		fps = 60
	}
	return &Loop{Interval: time.Second / time.Duration(fps), Tick: tick}
}

// Run blocks until ctx is done and returns ctx.Err(). No Tick starts after
// cancellation is observed.
func (l *Loop) Run(ctx context.Context) error {
	now := l.now
	if now == nil {
		now = time.Now
	}
	ticker := time.NewTicker(l.Interval)
	defer ticker.Stop()

	start := now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.Tick(now().Sub(start).Seconds())
		}
	}
}
