package figure

import (
	"fmt"
	"log"
	"runtime/debug"
	"sync/atomic"
)

// Boundary isolates the figure. The first error or panic inside Run latches the
// boundary; from then on the figure renders nothing and Run is a no-op.
type Boundary struct {
	// Verbose prints diagnostics; leave it off in production.
	Verbose bool

	failed atomic.Bool
}

// Run calls fn unless the boundary already tripped, and reports whether fn
// completed cleanly.
func (b *Boundary) Run(fn func() error) (ok bool) {
	if b.failed.Load() {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			b.trip(fmt.Errorf("panic: %v", r), debug.Stack())
			ok = false
		}
	}()

	if err := fn(); err != nil {
		b.trip(err, nil)
		return false
	}
	return true
}

// Failed reports whether the figure has been dropped.
func (b *Boundary) Failed() bool { return b.failed.Load() }

// Reset re-arms the boundary, e.g. after the host reloads the figure.
func (b *Boundary) Reset() { b.failed.Store(false) }

func (b *Boundary) trip(err error, stack []byte) {
	b.failed.Store(true)
	if !b.Verbose {
		return
	}
	log.Printf("figure error: %v", err)
	if stack != nil {
		log.Printf("%s", stack)
	}
}
