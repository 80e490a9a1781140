// Package scroll ties page scroll position to element styles. Tracker turns
// geometry into a normalized progress per trigger; Apply, Scrub and PlayOnce
// turn progress into interpolated styles.
package scroll

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

var ErrInvalidAnchor = errors.New("invalid anchor")

// Bounds is an element's box in document coordinates.
type Bounds struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

func (b Bounds) Bottom() float64 { return b.Top + b.Height }

// Viewport is the visible window: its scroll offset and height.
type Viewport struct {
	ScrollY float64 `json:"scrollY"`
	Height  float64 `json:"height"`
}

// Layout maps element ids to their last reported bounds. Elements are
// mounted and unmounted explicitly by their owners.
type Layout struct {
	mu       sync.RWMutex
	elements map[string]Bounds
}

func NewLayout() *Layout {
	return &Layout{elements: make(map[string]Bounds)}
}

func (l *Layout) Register(id string, b Bounds) {
	l.mu.Lock()
	l.elements[id] = b
	l.mu.Unlock()
}

func (l *Layout) Unregister(id string) {
	l.mu.Lock()
	delete(l.elements, id)
	l.mu.Unlock()
}

// Bounds reports the element's geometry and whether it is mounted.
func (l *Layout) Bounds(id string) (Bounds, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	b, ok := l.elements[id]
	return b, ok
}

func (l *Layout) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.elements)
}

// Anchor pins a point on the element to a point on the viewport, e.g.
// "top 85%" is satisfied when the element's top edge sits 85% of the way
// down the viewport.
type Anchor struct {
	ElementFrac  float64
	ElementPx    float64
	ViewportFrac float64
	ViewportPx   float64
}

// Offset is the scroll position at which the anchor is satisfied.
func (a Anchor) Offset(b Bounds, viewportHeight float64) float64 {
	elementPoint := b.Top + a.ElementFrac*b.Height + a.ElementPx
	viewportPoint := a.ViewportFrac*viewportHeight + a.ViewportPx
	return elementPoint - viewportPoint
}

// ParseAnchor reads "<element> <viewport>" where each side is top, center,
// bottom, a percentage or a pixel value. A single word applies to both
// sides.
func ParseAnchor(s string) (Anchor, error) {
	fields := strings.Fields(s)
	if len(fields) == 1 {
		fields = append(fields, fields[0])
	}
	if len(fields) != 2 {
		return Anchor{}, fmt.Errorf("%w: %q", ErrInvalidAnchor, s)
	}

	ef, epx, err := parsePosition(fields[0])
	if err != nil {
		return Anchor{}, fmt.Errorf("%w: %q", err, s)
	}
	vf, vpx, err := parsePosition(fields[1])
	if err != nil {
		return Anchor{}, fmt.Errorf("%w: %q", err, s)
	}
	return Anchor{ElementFrac: ef, ElementPx: epx, ViewportFrac: vf, ViewportPx: vpx}, nil
}

// MustAnchor is ParseAnchor for positions known at compile time.
func MustAnchor(s string) Anchor {
	a, err := ParseAnchor(s)
	if err != nil {
		panic(err)
	}
	return a
}

func parsePosition(p string) (frac, px float64, err error) {
	switch p {
	case "top":
		return 0, 0, nil
	case "center":
		return 0.5, 0, nil
	case "bottom":
		return 1, 0, nil
	}

	switch {
	case strings.HasSuffix(p, "%"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return 0, 0, ErrInvalidAnchor
		}
		return v / 100, 0, nil
	case strings.HasSuffix(p, "px"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(p, "px"), 64)
		if err != nil {
			return 0, 0, ErrInvalidAnchor
		}
		return 0, v, nil
	}
	return 0, 0, ErrInvalidAnchor
}
