// Package frame is the page's animation-frame loop. Callbacks are requested
// for the next frame and run when the owner ticks the scheduler with a
// monotonic timestamp.
package frame

import (
	"sync"
	"time"
)

// Callback receives the frame timestamp.
type Callback func(now time.Time)

// Requester is what animated components need from the loop.
type Requester interface {
	Request(cb Callback) (cancel func())
}

type request struct {
	id        uint64
	cb        Callback
	cancelled bool
}

type Scheduler struct {
	mu      sync.Mutex
	pending []*request
	running []*request // batch of the Tick in progress
	nextID  uint64
	last    time.Time
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Request schedules cb for the next Tick. Cancel is idempotent and safe to
// call from inside a callback.
func (s *Scheduler) Request(cb Callback) (cancel func()) {
	s.mu.Lock()
	s.nextID++
	r := &request{id: s.nextID, cb: cb}
	s.pending = append(s.pending, r)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		r.cancelled = true
		s.mu.Unlock()
	}
}

// Tick runs every callback requested before this call, in request order,
// and returns how many ran. Callbacks requested while ticking wait for the
// next Tick.
func (s *Scheduler) Tick(now time.Time) int {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.running = batch
	s.last = now
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = nil
		s.mu.Unlock()
	}()

	ran := 0
	for _, r := range batch {
		s.mu.Lock()
		cancelled := r.cancelled
		s.mu.Unlock()
		if cancelled {
			continue
		}
		r.cb(now)
		ran++
	}
	return ran
}

// Pending returns the number of live requests waiting for a frame.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.pending {
		if !r.cancelled {
			n++
		}
	}
	return n
}

// LastTick returns the timestamp of the most recent Tick.
func (s *Scheduler) LastTick() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Reset cancels every pending request, including the rest of a batch
// being ticked when a callback calls it. Used on teardown.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	for _, r := range s.pending {
		r.cancelled = true
	}
	for _, r := range s.running {
		r.cancelled = true
	}
	s.pending = nil
	s.mu.Unlock()
}

// Run ticks the scheduler every interval until stop is closed. tick is
// called under the caller's ownership model; Run itself only provides the
// timing.
func Run(interval time.Duration, stop <-chan struct{}, tick func(now time.Time)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			tick(now)
		}
	}
}
