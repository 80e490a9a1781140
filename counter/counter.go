// Package counter animates a number from zero up to a target once its
// element scrolls into view.
package counter

import (
	"iter"
	"math"
	"time"

	"github.com/Zachkp/storyfolio/frame"
	"github.com/Zachkp/storyfolio/visibility"
)

// DefaultDuration matches the impact section's count-up.
const DefaultDuration = 2 * time.Second

// ValueAt is floor(min(elapsed/duration, 1) * target). At or past the
// duration it is exactly target.
func ValueAt(target int, duration, elapsed time.Duration) int {
	if target <= 0 {
		return 0
	}
	if duration <= 0 || elapsed >= duration {
		return target
	}
	if elapsed <= 0 {
		return 0
	}
	v := int(math.Floor(float64(elapsed) / float64(duration) * float64(target)))
	if v > target {
		return target
	}
	return v
}

// Drive yields one value per frame timestamp, measured from the first
// frame. It stops after yielding target, or when frames run out. Values
// never decrease.
func Drive(target int, duration time.Duration, frames iter.Seq[time.Time]) iter.Seq[int] {
	if target < 0 {
		target = 0
	}
	return func(yield func(int) bool) {
		var start time.Time
		current := 0
		for now := range frames {
			if start.IsZero() {
				start = now
			}
			v := ValueAt(target, duration, now.Sub(start))
			if v < current {
				v = current
			}
			current = v
			if !yield(v) || v == target {
				return
			}
		}
	}
}

// State is the counter's observable state.
type State struct {
	Target   int
	Current  int
	Start    time.Time
	Duration time.Duration
}

// Counter drives a value on the frame loop. It starts at zero, starts
// counting on the first Trigger, finishes at target and cannot be
// restarted.
type Counter struct {
	state   State
	frames  frame.Requester
	sink    func(int)
	started bool
	closed  bool
	cancel  func()
	watch   *visibility.Watch
}

func New(target int, duration time.Duration, frames frame.Requester, sink func(int)) *Counter {
	if target < 0 {
		target = 0
	}
	return &Counter{
		state:  State{Target: target, Duration: duration},
		frames: frames,
		sink:   sink,
	}
}

func (c *Counter) State() State { return c.state }

func (c *Counter) Value() int { return c.state.Current }

func (c *Counter) Done() bool {
	return c.started && c.state.Current == c.state.Target
}

// Trigger starts the count. Later calls are no-ops.
func (c *Counter) Trigger() {
	if c.started || c.closed {
		return
	}
	c.started = true
	c.cancel = c.frames.Request(c.step)
}

// Bind starts the counter the first time the element enters the viewport.
func (c *Counter) Bind(obs *visibility.Observer, element string) {
	c.watch = obs.Observe(element, visibility.Options{Once: true}, func(entered bool) {
		if entered {
			c.Trigger()
		}
	})
}

func (c *Counter) step(now time.Time) {
	if c.closed {
		return
	}
	if c.state.Start.IsZero() {
		c.state.Start = now
	}
	v := ValueAt(c.state.Target, c.state.Duration, now.Sub(c.state.Start))
	if v < c.state.Current {
		v = c.state.Current
	}
	c.state.Current = v
	c.sink(v)

	if v == c.state.Target {
		c.cancel = nil
		return
	}
	c.cancel = c.frames.Request(c.step)
}

// Close stops sampling and visibility observation. The sink is never called
// after Close.
func (c *Counter) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.watch != nil {
		c.watch.Dispose()
	}
}
