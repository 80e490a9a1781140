package scroll

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Zachkp/storyfolio/frame"
)

type Property string

const (
	Opacity    Property = "opacity"
	TranslateX Property = "x"
	TranslateY Property = "y"
	RotateX    Property = "rotateX"
	RotateY    Property = "rotateY"
	Scale      Property = "scale"
	ScaleY     Property = "scaleY"
)

// AnimationSpec interpolates one property. Specs for the same element are
// applied together, not one after another. Duration only matters for
// play-once animations; zero means the animation's own duration.
type AnimationSpec struct {
	Property Property
	From     float64
	To       float64
	Ease     Easing
	Duration time.Duration
}

// At returns the property's value at progress p.
func (s AnimationSpec) At(p float64) float64 {
	ease := s.Ease
	if ease == nil {
		ease = Linear
	}
	e := ease(clamp01(p))
	switch e {
	case 0:
		return s.From
	case 1:
		return s.To
	}
	return s.From + (s.To-s.From)*e
}

// Style holds interpolated property values for one element.
type Style map[Property]float64

// Apply interpolates every spec at progress p.
func Apply(p float64, specs []AnimationSpec) Style {
	style := make(Style, len(specs))
	for _, s := range specs {
		style[s.Property] = s.At(p)
	}
	return style
}

var transformOrder = []Property{TranslateX, TranslateY, RotateX, RotateY, Scale, ScaleY}

// CSS renders the style as an inline declaration list.
func (s Style) CSS() string {
	var b strings.Builder
	if v, ok := s[Opacity]; ok {
		b.WriteString("opacity: ")
		b.WriteString(formatNumber(v))
		b.WriteString(";")
	}

	var transforms []string
	for _, p := range transformOrder {
		v, ok := s[p]
		if !ok {
			continue
		}
		switch p {
		case TranslateX:
			transforms = append(transforms, "translateX("+formatNumber(v)+"px)")
		case TranslateY:
			transforms = append(transforms, "translateY("+formatNumber(v)+"px)")
		case RotateX, RotateY:
			transforms = append(transforms, string(p)+"("+formatNumber(v)+"deg)")
		case Scale, ScaleY:
			transforms = append(transforms, string(p)+"("+formatNumber(v)+")")
		}
	}
	if len(transforms) > 0 {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("transform: ")
		b.WriteString(strings.Join(transforms, " "))
		b.WriteString(";")
	}
	return b.String()
}

// Properties returns the style's property names in a stable order.
func (s Style) Properties() []Property {
	props := make([]Property, 0, len(s))
	for p := range s {
		props = append(props, p)
	}
	sort.Slice(props, func(i, j int) bool { return props[i] < props[j] })
	return props
}

func formatNumber(v float64) string {
	v = math.Round(v*1e4) / 1e4
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ScrubAnimation drives specs straight from the trigger's progress. There is
// no timer, so the style never lags or leads the scroll position.
func ScrubAnimation(t *Tracker, trigger Trigger, specs []AnimationSpec, sink func(Style)) (dispose func()) {
	return t.Track(trigger, func(p float64) {
		sink(Apply(p, specs))
	})
}

type PlayState int

const (
	Idle PlayState = iota
	Running
	Finished
	Stopped
)

func (s PlayState) String() string {
	switch s {
	case Running:
		return "running"
	case Finished:
		return "finished"
	case Stopped:
		return "stopped"
	default:
		return "idle"
	}
}

type PlayOnceConfig struct {
	Specs     []AnimationSpec
	Duration  time.Duration
	Delay     time.Duration
	Threshold float64
}

// PlayOnce runs its specs on their own timeline once triggered. Further
// scroll input is ignored until Reset.
type PlayOnce struct {
	cfg    PlayOnceConfig
	frames frame.Requester
	sink   func(Style)

	state  PlayState
	start  time.Time
	cancel func()
}

func NewPlayOnce(frames frame.Requester, cfg PlayOnceConfig, sink func(Style)) *PlayOnce {
	return &PlayOnce{cfg: cfg, frames: frames, sink: sink}
}

func (p *PlayOnce) State() PlayState { return p.state }

// Progress feeds scroll progress. The animation starts the first time
// progress reaches the threshold (or leaves zero when the threshold is 0).
func (p *PlayOnce) Progress(progress float64) {
	if p.state != Idle {
		return
	}
	crossed := progress > 0
	if p.cfg.Threshold > 0 {
		crossed = progress >= p.cfg.Threshold
	}
	if crossed {
		p.Start()
	}
}

// Start begins the animation. It reports false when the animation already
// ran or was stopped.
func (p *PlayOnce) Start() bool {
	if p.state != Idle {
		return false
	}
	p.state = Running
	p.start = time.Time{}
	p.cancel = p.frames.Request(p.step)
	return true
}

func (p *PlayOnce) step(now time.Time) {
	if p.state != Running {
		return
	}
	if p.start.IsZero() {
		p.start = now
	}
	elapsed := now.Sub(p.start) - p.cfg.Delay

	style := make(Style, len(p.cfg.Specs))
	done := true
	for _, s := range p.cfg.Specs {
		d := s.Duration
		if d <= 0 {
			d = p.cfg.Duration
		}
		t := 1.0
		if d > 0 {
			t = clamp01(float64(elapsed) / float64(d))
		}
		if t < 1 {
			done = false
		}
		style[s.Property] = s.At(t)
	}

	p.sink(style)
	if done {
		p.state = Finished
		p.cancel = nil
		return
	}
	p.cancel = p.frames.Request(p.step)
}

// Reset stops a running animation, restores the initial style and allows
// the animation to be triggered again.
func (p *PlayOnce) Reset() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.state = Idle
	p.sink(Apply(0, p.cfg.Specs))
}

// Stop cancels pending frames for good. No style reaches the sink
// afterwards.
func (p *PlayOnce) Stop() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.state = Stopped
}

// PlayOnceAnimation starts anim when trigger's progress crosses its
// threshold. The returned disposer stops both the tracking and the
// animation.
func PlayOnceAnimation(t *Tracker, trigger Trigger, anim *PlayOnce) (dispose func()) {
	untrack := t.Track(trigger, anim.Progress)
	return func() {
		untrack()
		anim.Stop()
	}
}
