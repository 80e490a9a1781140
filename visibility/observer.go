// Package visibility reports when registered elements enter and leave the
// viewport.
package visibility

import (
	"math"

	"github.com/Zachkp/storyfolio/observe"
	"github.com/Zachkp/storyfolio/scroll"
)

type Options struct {
	// Once stops observing after the first entry.
	Once bool
	// Threshold is the visible fraction of the element that counts as
	// entered. Zero means any visible pixel.
	Threshold float64
}

// State is the latest known visibility of one observed element.
type State struct {
	Element string
	Entered bool
	Latched bool
}

type Observer struct {
	layout   *scroll.Layout
	viewport *observe.Value[scroll.Viewport]
}

func NewObserver(layout *scroll.Layout, viewport *observe.Value[scroll.Viewport]) *Observer {
	return &Observer{layout: layout, viewport: viewport}
}

// VisibleFraction is the share of the element's height inside the viewport.
func VisibleFraction(b scroll.Bounds, vp scroll.Viewport) float64 {
	top := math.Max(b.Top, vp.ScrollY)
	bottom := math.Min(b.Bottom(), vp.ScrollY+vp.Height)
	overlap := bottom - top
	if overlap <= 0 {
		return 0
	}
	if b.Height <= 0 {
		// A zero-height element inside the viewport counts as fully visible.
		return 1
	}
	return math.Min(overlap/b.Height, 1)
}

func inside(fraction, threshold float64) bool {
	if threshold <= 0 {
		return fraction > 0
	}
	return fraction >= threshold
}

// Watch is a live observation. Dispose stops it.
type Watch struct {
	state   State
	opts    Options
	fn      func(bool)
	dispose func()
	done    bool
}

func (w *Watch) State() State { return w.state }

func (w *Watch) Dispose() {
	if w.done {
		return
	}
	w.done = true
	if w.dispose != nil {
		w.dispose()
	}
}

// Observe calls fn with true when the element crosses into the viewport and
// false when it crosses back out. Nothing is emitted before the element is
// mounted, and never twice in the same direction. With Once, fn sees a
// single true and the watch disposes itself.
func (o *Observer) Observe(id string, opts Options, fn func(entered bool)) *Watch {
	w := &Watch{state: State{Element: id}, opts: opts, fn: fn}

	update := func(vp scroll.Viewport) {
		if w.done {
			return
		}
		b, ok := o.layout.Bounds(id)
		if !ok {
			return
		}
		in := inside(VisibleFraction(b, vp), opts.Threshold)
		if in == w.state.Entered {
			return
		}
		w.state.Entered = in
		if opts.Once && in {
			w.state.Latched = true
			w.Dispose()
		}
		w.fn(in)
	}

	w.dispose = o.viewport.Subscribe(update)
	update(o.viewport.Get())
	return w
}
