package scroll

import (
	"github.com/Zachkp/storyfolio/observe"
)

type Mode int

const (
	// ModeScrub maps progress straight to style with no timer of its own.
	ModeScrub Mode = iota
	// ModePlayOnce starts a timed animation the first time progress crosses
	// the trigger threshold.
	ModePlayOnce
)

func (m Mode) String() string {
	if m == ModePlayOnce {
		return "play-once"
	}
	return "scrub"
}

// Trigger describes the scroll range over which an element animates.
type Trigger struct {
	Element string
	Start   Anchor
	End     Anchor
	Mode    Mode
}

// Offsets returns the scroll positions where the trigger starts and ends.
func (t Trigger) Offsets(b Bounds, vp Viewport) (start, end float64) {
	return t.Start.Offset(b, vp.Height), t.End.Offset(b, vp.Height)
}

// ComputeProgress returns how far through the trigger range the viewport
// is, clamped to [0,1]. A range with end <= start is a step at start.
func ComputeProgress(b Bounds, vp Viewport, t Trigger) float64 {
	start, end := t.Offsets(b, vp)
	if end <= start {
		if vp.ScrollY < start {
			return 0
		}
		return 1
	}
	return clamp01((vp.ScrollY - start) / (end - start))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Tracker recomputes trigger progress whenever the viewport signal fires.
type Tracker struct {
	layout   *Layout
	viewport *observe.Value[Viewport]
}

func NewTracker(layout *Layout, viewport *observe.Value[Viewport]) *Tracker {
	return &Tracker{layout: layout, viewport: viewport}
}

// Track calls fn with the trigger's progress on every scroll or resize that
// changes it. The current geometry is evaluated immediately. Unmounted
// elements are skipped until they are registered.
func (t *Tracker) Track(trigger Trigger, fn func(progress float64)) (dispose func()) {
	last := -1.0
	update := func(vp Viewport) {
		b, ok := t.layout.Bounds(trigger.Element)
		if !ok {
			return
		}
		p := ComputeProgress(b, vp, trigger)
		if p == last {
			return
		}
		last = p
		fn(p)
	}

	dispose = t.viewport.Subscribe(update)
	update(t.viewport.Get())
	return dispose
}

// Progress evaluates a trigger once against the current viewport.
func (t *Tracker) Progress(trigger Trigger) (float64, bool) {
	b, ok := t.layout.Bounds(trigger.Element)
	if !ok {
		return 0, false
	}
	return ComputeProgress(b, t.viewport.Get(), trigger), true
}
