// Package modal controls the project detail overlay: at most one project is
// open, and background scrolling is locked while one is.
package modal

import (
	"errors"
	"fmt"

	"github.com/Zachkp/storyfolio/observe"
)

var ErrInvalidIndex = errors.New("invalid project index")

// State is Closed when Open is false; Index is meaningful only when Open.
type State struct {
	Index int  `json:"index"`
	Open  bool `json:"open"`
}

var Closed = State{}

// ScrollLocker suppresses and restores background page scrolling.
type ScrollLocker interface {
	SetScrollLock(locked bool)
}

// LockerFunc adapts a function to ScrollLocker.
type LockerFunc func(locked bool)

func (f LockerFunc) SetScrollLock(locked bool) { f(locked) }

// Region is where a click landed relative to the overlay.
type Region int

const (
	Backdrop Region = iota
	Content
	CloseButton
)

type Controller struct {
	count  int
	locker ScrollLocker
	locked bool
	state  *observe.Value[State]
}

// New creates a controller for count projects, addressed 0..count-1.
func New(count int, locker ScrollLocker) *Controller {
	return &Controller{
		count:  count,
		locker: locker,
		state:  observe.NewValue(Closed),
	}
}

func (c *Controller) State() State { return c.state.Get() }

// Subscribe is notified on every state change.
func (c *Controller) Subscribe(fn func(State)) (dispose func()) {
	return c.state.Subscribe(fn)
}

// Open shows project i, replacing whichever project was open.
func (c *Controller) Open(i int) error {
	if i < 0 || i >= c.count {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, i)
	}
	c.transition(State{Index: i, Open: true})
	return nil
}

// Close hides the overlay. Closing a closed overlay is a no-op.
func (c *Controller) Close() {
	c.transition(Closed)
}

// Click handles a click on the overlay. Clicks inside the content stay
// there; anywhere else closes.
func (c *Controller) Click(r Region) {
	if r == Content {
		return
	}
	c.Close()
}

func (c *Controller) transition(next State) {
	// The lock follows the current state, so it is applied before
	// subscribers observe the change.
	if next.Open != c.locked {
		c.locked = next.Open
		if c.locker != nil {
			c.locker.SetScrollLock(next.Open)
		}
	}
	c.state.Set(next)
}

// Locked reports whether background scrolling is currently suppressed.
func (c *Controller) Locked() bool { return c.locked }
