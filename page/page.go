// Package page composes the section animations, the project modal, the
// navbar and the contact form into one live page session. A Page is driven
// by a single goroutine: it consumes browser events, advances on frame
// ticks and reports what the browser should render as patches.
package page

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/Zachkp/storyfolio/contact"
	"github.com/Zachkp/storyfolio/content"
	"github.com/Zachkp/storyfolio/counter"
	"github.com/Zachkp/storyfolio/frame"
	"github.com/Zachkp/storyfolio/modal"
	"github.com/Zachkp/storyfolio/navspy"
	"github.com/Zachkp/storyfolio/observe"
	"github.com/Zachkp/storyfolio/scroll"
	"github.com/Zachkp/storyfolio/visibility"
)

var (
	ErrUnknownEvent  = errors.New("unknown event")
	ErrUnknownTarget = errors.New("unknown click target")
	ErrClosed        = errors.New("page closed")
)

// Event types sent by the browser.
const (
	EventMount   = "mount"
	EventUnmount = "unmount"
	EventScroll  = "scroll"
	EventResize  = "resize"
	EventClick   = "click"
	EventInput   = "input"
	EventSubmit  = "submit"
)

// Click targets.
const (
	TargetProject       = "project"
	TargetModalBackdrop = "modal-backdrop"
	TargetModalContent  = "modal-content"
	TargetModalClose    = "modal-close"
	TargetNavLink       = "nav-link"
	TargetMenuToggle    = "menu-toggle"
)

// Element is one measured element in document coordinates.
type Element struct {
	ID     string  `json:"id"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

type Event struct {
	Type     string    `json:"type"`
	Elements []Element `json:"elements,omitempty"`
	IDs      []string  `json:"ids,omitempty"`
	ScrollY  float64   `json:"scrollY,omitempty"`
	Height   float64   `json:"height,omitempty"`
	Target   string    `json:"target,omitempty"`
	Index    int       `json:"index,omitempty"`
	Anchor   string    `json:"anchor,omitempty"`
	Field    string    `json:"field,omitempty"`
	Value    string    `json:"value,omitempty"`
}

// Patch types sent to the browser.
const (
	PatchStyle       = "style"
	PatchCounter     = "counter"
	PatchNav         = "nav"
	PatchModal       = "modal"
	PatchScrollLock  = "scrollLock"
	PatchScrollTo    = "scrollTo"
	PatchForm        = "form"
	PatchFormInvalid = "formInvalid"
)

type Patch struct {
	Type    string             `json:"type"`
	ID      string             `json:"id,omitempty"`
	Style   map[string]float64 `json:"style,omitempty"`
	CSS     string             `json:"css,omitempty"`
	Value   int                `json:"value,omitempty"`
	Nav     *navspy.NavState   `json:"nav,omitempty"`
	Modal   *modal.State       `json:"modal,omitempty"`
	Locked  bool               `json:"locked,omitempty"`
	Y       float64            `json:"y,omitempty"`
	Form    *contact.State     `json:"form,omitempty"`
	Missing []string           `json:"missing,omitempty"`
}

// Sink receives patches. Form patches arrive from the relay goroutine, so a
// Sink must be safe for concurrent use.
type Sink interface {
	Send(Patch)
}

type SinkFunc func(Patch)

func (f SinkFunc) Send(p Patch) { f(p) }

type Config struct {
	NavThreshold    float64
	ScrollDuration  time.Duration
	CounterDuration time.Duration
	ResetDelay      time.Duration
	AccessKey       string
	Logger          *slog.Logger
	// OnContact sees the outcome of every relay call.
	OnContact func(contact.Fields, contact.Result, error)
	// AfterFunc replaces time.AfterFunc for the form's auto-reset.
	AfterFunc contact.AfterFunc
}

func (c *Config) defaults() {
	if c.NavThreshold <= 0 {
		c.NavThreshold = navspy.DefaultThreshold
	}
	if c.ScrollDuration <= 0 {
		c.ScrollDuration = navspy.DefaultDuration
	}
	if c.CounterDuration <= 0 {
		c.CounterDuration = counter.DefaultDuration
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

type Page struct {
	cfg  Config
	sink Sink

	layout   *scroll.Layout
	viewport *observe.Value[scroll.Viewport]
	frames   *frame.Scheduler
	tracker  *scroll.Tracker
	observer *visibility.Observer
	modal    *modal.Controller
	nav      *navspy.Spy
	form     *contact.Submitter
	sections []*Section
	scope    observe.Scope

	pending     *scroll.Viewport
	layoutDirty bool
	closed      bool
}

func New(cfg Config, relay contact.Relay, sink Sink) *Page {
	cfg.defaults()
	p := &Page{
		cfg:      cfg,
		sink:     sink,
		layout:   scroll.NewLayout(),
		viewport: observe.NewValue(scroll.Viewport{}),
		frames:   frame.NewScheduler(),
	}
	p.tracker = scroll.NewTracker(p.layout, p.viewport)
	p.observer = visibility.NewObserver(p.layout, p.viewport)

	p.modal = modal.New(len(content.Projects()), modal.LockerFunc(func(locked bool) {
		p.sink.Send(Patch{Type: PatchScrollLock, Locked: locked})
	}))
	p.scope.Add(p.modal.Subscribe(func(st modal.State) {
		p.sink.Send(Patch{Type: PatchModal, Modal: &st})
	}))

	p.nav = navspy.New(navspy.Config{Threshold: cfg.NavThreshold}, p.layout, p.viewport, p.frames,
		navspy.ScrollerFunc(p.scrollTo))
	p.scope.Add(p.nav.Subscribe(func(st navspy.NavState) {
		p.sink.Send(Patch{Type: PatchNav, Nav: &st})
	}))
	p.scope.Add(p.nav.Attach())
	p.scope.Add(p.nav.Close)

	p.form = contact.NewSubmitter(relay, contact.Options{
		AccessKey:  cfg.AccessKey,
		ResetDelay: cfg.ResetDelay,
		AfterFunc:  cfg.AfterFunc,
		Logger:     cfg.Logger,
		OnResult:   cfg.OnContact,
		OnChange: func(st contact.State) {
			p.sink.Send(Patch{Type: PatchForm, Form: &st})
		},
	})
	p.scope.Add(p.form.Close)

	p.mountSections()
	return p
}

// Handle applies one browser event. Scroll and resize events are buffered
// and reach the animations on the next Tick.
func (p *Page) Handle(ctx context.Context, ev Event) error {
	if p.closed {
		return ErrClosed
	}
	switch ev.Type {
	case EventMount:
		for _, el := range ev.Elements {
			p.layout.Register(el.ID, scroll.Bounds{Top: el.Top, Height: el.Height})
		}
		p.layoutDirty = true
	case EventUnmount:
		for _, id := range ev.IDs {
			p.layout.Unregister(id)
			if sec := p.Section(id); sec != nil {
				sec.Close()
			}
		}
	case EventScroll:
		vp := p.latestViewport()
		vp.ScrollY = ev.ScrollY
		p.pending = &vp
	case EventResize:
		vp := p.latestViewport()
		vp.Height = ev.Height
		p.pending = &vp
		p.layoutDirty = true
	case EventClick:
		return p.click(ev)
	case EventInput:
		return p.form.SetField(ev.Field, ev.Value)
	case EventSubmit:
		err := p.form.Submit(ctx)
		var invalid *contact.ValidationError
		if errors.As(err, &invalid) {
			p.sink.Send(Patch{Type: PatchFormInvalid, Missing: invalid.Fields})
		}
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
	return nil
}

func (p *Page) click(ev Event) error {
	switch ev.Target {
	case TargetProject:
		return p.modal.Open(ev.Index)
	case TargetModalBackdrop:
		p.modal.Click(modal.Backdrop)
	case TargetModalContent:
		p.modal.Click(modal.Content)
	case TargetModalClose:
		p.modal.Click(modal.CloseButton)
	case TargetNavLink:
		return p.nav.Navigate(ev.Anchor, p.cfg.ScrollDuration)
	case TargetMenuToggle:
		p.nav.ToggleMenu()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTarget, ev.Target)
	}
	return nil
}

// Tick publishes the latest buffered viewport, then runs the frame
// callbacks. Intermediate scroll samples between ticks are dropped.
func (p *Page) Tick(now time.Time) {
	if p.closed {
		return
	}
	switch {
	case p.pending != nil:
		vp := *p.pending
		p.pending = nil
		if !p.viewport.Set(vp) && p.layoutDirty {
			p.viewport.Touch()
		}
	case p.layoutDirty:
		p.viewport.Touch()
	}
	p.layoutDirty = false
	p.frames.Tick(now)
}

// Close tears down every section and drops pending frames. The sink is not
// called by the animations afterwards.
func (p *Page) Close() {
	if p.closed {
		return
	}
	p.closed = true
	for _, sec := range slices.Backward(p.sections) {
		sec.Close()
	}
	p.scope.Close()
	p.frames.Reset()
}

// Section returns the named section, or nil.
func (p *Page) Section(name string) *Section {
	for _, sec := range p.sections {
		if sec.Name == name {
			return sec
		}
	}
	return nil
}

func (p *Page) Viewport() scroll.Viewport { return p.viewport.Get() }
func (p *Page) Modal() modal.State        { return p.modal.State() }
func (p *Page) Nav() navspy.NavState      { return p.nav.State() }
func (p *Page) Form() contact.State       { return p.form.State() }

// Wait blocks until in-flight contact submissions finish.
func (p *Page) Wait() { p.form.Wait() }

func (p *Page) latestViewport() scroll.Viewport {
	if p.pending != nil {
		return *p.pending
	}
	return p.viewport.Get()
}

// scrollTo moves the session's viewport and tells the browser to follow.
func (p *Page) scrollTo(y float64) {
	vp := p.latestViewport()
	vp.ScrollY = y
	p.pending = nil
	p.viewport.Set(vp)
	p.sink.Send(Patch{Type: PatchScrollTo, Y: y})
}

func (p *Page) styleSink(id string) func(scroll.Style) {
	return func(s scroll.Style) {
		style := make(map[string]float64, len(s))
		for k, v := range s {
			style[string(k)] = v
		}
		p.sink.Send(Patch{Type: PatchStyle, ID: id, Style: style, CSS: s.CSS()})
	}
}

func (p *Page) counterSink(id string) func(int) {
	return func(v int) {
		p.sink.Send(Patch{Type: PatchCounter, ID: id, Value: v})
	}
}
