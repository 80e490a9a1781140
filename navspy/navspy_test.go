package navspy

import (
	"errors"
	"testing"
	"time"

	"github.com/Zachkp/storyfolio/frame"
	"github.com/Zachkp/storyfolio/observe"
	"github.com/Zachkp/storyfolio/scroll"
)

type harness struct {
	layout   *scroll.Layout
	viewport *observe.Value[scroll.Viewport]
	frames   *frame.Scheduler
	spy      *Spy
	scrolls  []float64
}

func newHarness() *harness {
	h := &harness{
		layout:   scroll.NewLayout(),
		viewport: observe.NewValue(scroll.Viewport{Height: 800}),
		frames:   frame.NewScheduler(),
	}
	h.spy = New(Config{Threshold: 50}, h.layout, h.viewport, h.frames, ScrollerFunc(func(y float64) {
		h.scrolls = append(h.scrolls, y)
		vp := h.viewport.Get()
		vp.ScrollY = y
		h.viewport.Set(vp)
	}))
	for i, a := range Anchors {
		h.layout.Register(a, scroll.Bounds{Top: float64(i) * 1000, Height: 1000})
	}
	return h
}

func TestOnScrollTogglesAtThreshold(t *testing.T) {
	h := newHarness()

	var changes []bool
	h.spy.Subscribe(func(s NavState) { changes = append(changes, s.Solid) })

	if h.spy.OnScroll(49).Solid {
		t.Errorf("Expected transparent at 49")
	}
	if h.spy.OnScroll(50).Solid {
		t.Errorf("Expected transparent exactly at the threshold")
	}
	if !h.spy.OnScroll(51).Solid {
		t.Errorf("Expected solid at 51")
	}
	h.spy.OnScroll(400)

	if len(changes) != 1 || !changes[0] {
		t.Errorf("Expected a single false->true change, got %v", changes)
	}
}

func TestAttachFollowsViewport(t *testing.T) {
	h := newHarness()
	dispose := h.spy.Attach()

	h.viewport.Set(scroll.Viewport{ScrollY: 120, Height: 800})
	if !h.spy.State().Solid {
		t.Errorf("Expected solid after scrolling past the threshold")
	}

	dispose()
	h.viewport.Set(scroll.Viewport{ScrollY: 0, Height: 800})
	if !h.spy.State().Solid {
		t.Errorf("Expected detached spy to ignore scrolling")
	}
}

func TestScrollToAnimates(t *testing.T) {
	h := newHarness()

	if err := h.spy.ScrollTo("skills", 500*time.Millisecond); err != nil {
		t.Fatalf("ScrollTo failed: %v", err)
	}
	if anchor, ok := h.spy.Scrolling(); !ok || anchor != "skills" {
		t.Errorf("Expected scroll in flight to skills, got %q", anchor)
	}

	base := time.Unix(0, 0)
	h.frames.Tick(base)
	h.frames.Tick(base.Add(250 * time.Millisecond))
	h.frames.Tick(base.Add(500 * time.Millisecond))

	want := []float64{0, 1000, 2000}
	if len(h.scrolls) != len(want) {
		t.Fatalf("Expected %v, got %v", want, h.scrolls)
	}
	for i := range want {
		if h.scrolls[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, h.scrolls)
			break
		}
	}
	if _, ok := h.spy.Scrolling(); ok || h.frames.Pending() != 0 {
		t.Errorf("Expected the animation to be done")
	}
}

func TestScrollToRestartsInsteadOfQueuing(t *testing.T) {
	h := newHarness()

	h.spy.ScrollTo("impact", time.Second)
	base := time.Unix(0, 0)
	h.frames.Tick(base)
	h.frames.Tick(base.Add(500 * time.Millisecond))
	mid := h.viewport.Get().ScrollY

	h.spy.ScrollTo("impact", time.Second)
	if h.frames.Pending() != 1 {
		t.Fatalf("Expected one frame request after restart, got %d", h.frames.Pending())
	}
	h.frames.Tick(base.Add(600 * time.Millisecond))
	if got := h.scrolls[len(h.scrolls)-1]; got != mid {
		t.Errorf("Expected restart from %v, got %v", mid, got)
	}
	h.frames.Tick(base.Add(1600 * time.Millisecond))
	if got := h.viewport.Get().ScrollY; got != 4000 {
		t.Errorf("Expected to land on impact at 4000, got %v", got)
	}
}

func TestScrollToUnknownAnchor(t *testing.T) {
	h := newHarness()
	if err := h.spy.ScrollTo("blog", time.Second); !errors.Is(err, ErrUnknownAnchor) {
		t.Errorf("Expected ErrUnknownAnchor, got %v", err)
	}

	h.layout.Unregister("contact")
	if err := h.spy.ScrollTo("contact", time.Second); !errors.Is(err, ErrUnknownAnchor) {
		t.Errorf("Expected ErrUnknownAnchor for unmounted anchor, got %v", err)
	}
}

func TestScrollToWithoutDurationJumps(t *testing.T) {
	h := newHarness()
	h.spy.ScrollTo("journey", 0)
	if len(h.scrolls) != 1 || h.scrolls[0] != 1000 {
		t.Errorf("Expected a single jump to 1000, got %v", h.scrolls)
	}
}

func TestNavigateClosesMenu(t *testing.T) {
	h := newHarness()

	if !h.spy.ToggleMenu().MenuOpen {
		t.Fatalf("Expected menu open after toggle")
	}
	if err := h.spy.Navigate("contact", DefaultDuration); err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if h.spy.State().MenuOpen {
		t.Errorf("Expected menu closed after navigating")
	}
	h.spy.Close()
	if h.frames.Pending() != 0 {
		t.Errorf("Expected Close to cancel the scroll")
	}
}
