// Package navspy drives the navbar: it turns solid once the page scrolls
// past a threshold and smooth-scrolls to the named section anchors.
package navspy

import (
	"errors"
	"fmt"
	"time"

	"github.com/Zachkp/storyfolio/frame"
	"github.com/Zachkp/storyfolio/observe"
	"github.com/Zachkp/storyfolio/scroll"
)

var ErrUnknownAnchor = errors.New("unknown anchor")

const (
	DefaultThreshold = 50
	DefaultDuration  = 500 * time.Millisecond
)

// Anchors are the page sections the navbar can scroll to, in page order.
var Anchors = []string{"hero", "journey", "skills", "projects", "impact", "contact"}

type NavState struct {
	Solid    bool `json:"solid"`
	MenuOpen bool `json:"menuOpen"`
}

// Scroller moves the viewport.
type Scroller interface {
	ScrollTo(y float64)
}

type ScrollerFunc func(y float64)

func (f ScrollerFunc) ScrollTo(y float64) { f(y) }

type Config struct {
	Threshold float64
	Anchors   []string
}

type Spy struct {
	threshold float64
	anchors   map[string]bool
	layout    *scroll.Layout
	viewport  *observe.Value[scroll.Viewport]
	frames    frame.Requester
	scroller  Scroller
	state     *observe.Value[NavState]

	target string
	cancel func()
}

func New(cfg Config, layout *scroll.Layout, viewport *observe.Value[scroll.Viewport], frames frame.Requester, scroller Scroller) *Spy {
	if cfg.Anchors == nil {
		cfg.Anchors = Anchors
	}
	anchors := make(map[string]bool, len(cfg.Anchors))
	for _, a := range cfg.Anchors {
		anchors[a] = true
	}
	return &Spy{
		threshold: cfg.Threshold,
		anchors:   anchors,
		layout:    layout,
		viewport:  viewport,
		frames:    frames,
		scroller:  scroller,
		state:     observe.NewValue(NavState{}),
	}
}

func (s *Spy) State() NavState { return s.state.Get() }

func (s *Spy) Subscribe(fn func(NavState)) (dispose func()) {
	return s.state.Subscribe(fn)
}

// OnScroll updates the background state. The navbar is solid strictly past
// the threshold.
func (s *Spy) OnScroll(y float64) NavState {
	next := s.state.Get()
	next.Solid = y > s.threshold
	s.state.Set(next)
	return next
}

// Attach follows the viewport signal until the disposer is called.
func (s *Spy) Attach() (dispose func()) {
	s.OnScroll(s.viewport.Get().ScrollY)
	return s.viewport.Subscribe(func(vp scroll.Viewport) {
		s.OnScroll(vp.ScrollY)
	})
}

// ScrollTo smooth-scrolls to the anchor's top edge over d. Calling it again
// mid-animation restarts from the current position; nothing is queued.
func (s *Spy) ScrollTo(anchor string, d time.Duration) error {
	if !s.anchors[anchor] {
		return fmt.Errorf("%w: %s", ErrUnknownAnchor, anchor)
	}
	b, ok := s.layout.Bounds(anchor)
	if !ok {
		return fmt.Errorf("%w: %s is not mounted", ErrUnknownAnchor, anchor)
	}

	s.stop()
	from := s.viewport.Get().ScrollY
	to := b.Top
	if d <= 0 || from == to {
		s.scroller.ScrollTo(to)
		return nil
	}

	s.target = anchor
	var start time.Time
	var step frame.Callback
	step = func(now time.Time) {
		if start.IsZero() {
			start = now
		}
		t := float64(now.Sub(start)) / float64(d)
		if t >= 1 {
			s.scroller.ScrollTo(to)
			s.target = ""
			s.cancel = nil
			return
		}
		s.scroller.ScrollTo(from + (to-from)*scroll.EaseInOutQuad(t))
		s.cancel = s.frames.Request(step)
	}
	s.cancel = s.frames.Request(step)
	return nil
}

// Scrolling reports the anchor of the smooth scroll in flight, if any.
func (s *Spy) Scrolling() (string, bool) {
	return s.target, s.target != ""
}

// ToggleMenu opens or closes the mobile menu.
func (s *Spy) ToggleMenu() NavState {
	next := s.state.Get()
	next.MenuOpen = !next.MenuOpen
	s.state.Set(next)
	return next
}

// Navigate closes the mobile menu and scrolls to the anchor.
func (s *Spy) Navigate(anchor string, d time.Duration) error {
	next := s.state.Get()
	next.MenuOpen = false
	s.state.Set(next)
	return s.ScrollTo(anchor, d)
}

func (s *Spy) stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.target = ""
}

// Close cancels any smooth scroll in flight.
func (s *Spy) Close() {
	s.stop()
}
