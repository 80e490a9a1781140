package observe

import "sync"

// Scope collects disposers acquired by one owner (a page section) and
// releases them together on teardown.
type Scope struct {
	mu        sync.Mutex
	disposers []func()
	closed    bool
}

// Add registers a disposer. Adding to a closed scope disposes immediately.
func (s *Scope) Add(dispose func()) {
	if dispose == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		dispose()
		return
	}
	s.disposers = append(s.disposers, dispose)
	s.mu.Unlock()
}

// Close runs every disposer in reverse acquisition order. Later calls are
// no-ops.
func (s *Scope) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	disposers := s.disposers
	s.disposers = nil
	s.mu.Unlock()

	for i := len(disposers) - 1; i >= 0; i-- {
		disposers[i]()
	}
}

func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Len returns the number of disposers still held.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.disposers)
}
