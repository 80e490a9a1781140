// Package observe holds the page-wide signals (scroll offset, viewport size,
// modal state) and the scoped disposers that tie subscriptions to a
// section's lifetime.
package observe

import (
	"sync"
	"sync/atomic"
)

type subscription[T comparable] struct {
	id    uint64
	fn    func(T)
	alive atomic.Bool
}

func (s *subscription[T]) call(x T) {
	if s.alive.Load() {
		s.fn(x)
	}
}

// Value is a single observable value. Subscribers are called in the order
// they subscribed, outside the lock.
type Value[T comparable] struct {
	mu     sync.Mutex
	v      T
	subs   []*subscription[T]
	nextID uint64
}

func NewValue[T comparable](initial T) *Value[T] {
	return &Value[T]{v: initial}
}

func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.v
}

// Set stores x and notifies subscribers. It reports whether the value
// changed; an unchanged value notifies nobody.
func (v *Value[T]) Set(x T) bool {
	v.mu.Lock()
	if v.v == x {
		v.mu.Unlock()
		return false
	}
	v.v = x
	subs := v.snapshotLocked()
	v.mu.Unlock()

	for _, s := range subs {
		s.call(x)
	}
	return true
}

// Touch re-notifies every subscriber with the current value. Used when the
// value is unchanged but what subscribers derive from it is not (layout
// changes on resize or mount).
func (v *Value[T]) Touch() {
	v.mu.Lock()
	x := v.v
	subs := v.snapshotLocked()
	v.mu.Unlock()

	for _, s := range subs {
		s.call(x)
	}
}

// Subscribe registers fn and returns its disposer. fn is not called with the
// current value; callers that need it read Get.
func (v *Value[T]) Subscribe(fn func(T)) (dispose func()) {
	v.mu.Lock()
	v.nextID++
	id := v.nextID
	sub := &subscription[T]{id: id, fn: fn}
	sub.alive.Store(true)
	v.subs = append(v.subs, sub)
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { v.remove(id) })
	}
}

// Subscribers returns the number of live subscriptions.
func (v *Value[T]) Subscribers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}

func (v *Value[T]) remove(id uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, s := range v.subs {
		if s.id == id {
			s.alive.Store(false)
			v.subs = append(v.subs[:i:i], v.subs[i+1:]...)
			return
		}
	}
}

func (v *Value[T]) snapshotLocked() []*subscription[T] {
	subs := make([]*subscription[T], len(v.subs))
	copy(subs, v.subs)
	return subs
}
