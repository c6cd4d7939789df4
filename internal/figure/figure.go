// Package figure decides whether the decorative mascot runs, loads it after a
// delay, and keeps its failures away from the rest of the page.
package figure

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
)

var (
	// ErrUnsupported means the device is too small or too slow for the figure.
	ErrUnsupported = errors.New("figure: device below capability threshold")
	// ErrCancelled means the load was abandoned before it fired.
	ErrCancelled = errors.New("figure: load cancelled")
)

// Capability is what the host reports about itself.
type Capability struct {
	ViewportWidth int `json:"viewportWidth"`
	LogicalCPUs   int `json:"logicalCPUs"`
}

// Policy holds the minimums for running the figure.
type Policy struct {
	MinViewportWidth int
	MinCPUs          int
}

var DefaultPolicy = Policy{MinViewportWidth: 768, MinCPUs: 4}

// Allows reports whether c meets the policy.
func (p Policy) Allows(c Capability) bool {
	return c.ViewportWidth >= p.MinViewportWidth && c.LogicalCPUs >= p.MinCPUs
}

// DetectCapability probes the logical processor count. A failed probe reports
// zero processors, which turns the figure off.
func DetectCapability(viewportWidth int) Capability {
	n, err := cpu.Counts(true)
	if err != nil {
		log.Printf("figure: cpu probe failed, disabling figure: %v", err)
		n = 0
	}
	return Capability{ViewportWidth: viewportWidth, LogicalCPUs: n}
}

// Loader defers the figure until Delay has passed.
type Loader struct {
	Delay  time.Duration
	Policy Policy
}

// Handle tracks one pending load.
type Handle struct {
	mu        sync.Mutex
	cancelled bool
	fired     bool
	err       error
	stop      context.CancelFunc
	done      chan struct{}
}

// Start schedules onReady to run once after the delay. It never runs when the
// capability check fails, when ctx ends first, or after Cancel. onReady must not
// call Cancel on its own handle.
func (l Loader) Start(ctx context.Context, caps Capability, onReady func()) *Handle {
	ctx, stop := context.WithCancel(ctx)
	h := &Handle{stop: stop, done: make(chan struct{})}

	if !l.Policy.Allows(caps) {
		h.finish(ErrUnsupported)
		return h
	}

	go func() {
		timer := time.NewTimer(l.Delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			h.finish(ErrCancelled)
		case <-timer.C:
			h.fire(onReady)
		}
	}()
	return h
}

func (h *Handle) fire(onReady func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancelled {
		h.finishLocked(ErrCancelled)
		return
	}
	h.fired = true
	onReady()
	h.finishLocked(nil)
}

func (h *Handle) finish(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.finishLocked(err)
}

func (h *Handle) finishLocked(err error) {
	select {
	case <-h.done:
		return
	default:
	}
	h.err = err
	h.stop()
	close(h.done)
}

// Cancel abandons the load. It reports false when onReady already ran.
func (h *Handle) Cancel() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.fired {
		return false
	}
	h.cancelled = true
	h.stop()
	return true
}

// Done is closed once the load resolved either way.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Wait blocks until the load resolves and returns nil, ErrCancelled or
// ErrUnsupported.
func (h *Handle) Wait() error {
	<-h.done
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}
