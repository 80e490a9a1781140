// Package contact owns the contact form: field state, client-side
// validation, and the submission status machine. The network call itself
// is delegated to a Relay.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const (
	DefaultResetDelay = 5 * time.Second

	FallbackRelayMessage     = "Something went wrong. Please try again."
	FallbackTransportMessage = "Failed to send message. Please try again later."
)

var (
	// ErrBusy is returned while a submission is in flight; inputs are
	// disabled and a second submit is not queued.
	ErrBusy         = errors.New("submission in progress")
	ErrUnknownField = errors.New("unknown field")
)

// ValidationError names the required fields that were empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

type Status int

const (
	Idle Status = iota
	Loading
	Success
	Error
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "idle"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Missing lists the required fields that are empty or whitespace.
func (f Fields) Missing() []string {
	var missing []string
	if strings.TrimSpace(f.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(f.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(f.Message) == "" {
		missing = append(missing, "message")
	}
	return missing
}

func (f Fields) Validate() error {
	if missing := f.Missing(); len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

type State struct {
	Fields
	Status       Status `json:"status"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Timer is the part of *time.Timer the submitter uses.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. Tests substitute a manual clock.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type Options struct {
	AccessKey  string
	ResetDelay time.Duration
	AfterFunc  AfterFunc
	Logger     *slog.Logger
	// OnChange sees every state transition, in order. It runs with the
	// submitter locked and must not call back into it.
	OnChange func(State)
	// OnResult sees the outcome of each relay call.
	OnResult func(Fields, Result, error)
}

// Submitter runs one submission at a time. The relay call happens off the
// caller's goroutine; Submit only validates and moves to Loading.
type Submitter struct {
	mu    sync.Mutex
	state State
	relay Relay
	opts  Options

	gen   uint64
	reset Timer
	wg    sync.WaitGroup
}

func NewSubmitter(relay Relay, opts Options) *Submitter {
	if opts.ResetDelay <= 0 {
		opts.ResetDelay = DefaultResetDelay
	}
	if opts.AfterFunc == nil {
		opts.AfterFunc = realAfterFunc
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Submitter{relay: relay, opts: opts}
}

func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetField updates one input. Inputs are disabled while Loading.
func (s *Submitter) SetField(name, value string) error {
	s.mu.Lock()
	if s.state.Status == Loading {
		s.mu.Unlock()
		return ErrBusy
	}
	switch name {
	case "name":
		s.state.Name = value
	case "email":
		s.state.Email = value
	case "message":
		s.state.Message = value
	default:
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	s.notify(s.state)
	s.mu.Unlock()
	return nil
}

// Submit validates the fields and, if they are complete, moves to Loading
// and sends them through the relay in the background. A rejected submit
// leaves the state untouched and never reaches the relay.
func (s *Submitter) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.state.Status == Loading {
		s.mu.Unlock()
		return ErrBusy
	}
	if err := s.state.Validate(); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.reset != nil {
		s.reset.Stop()
		s.reset = nil
	}
	s.gen++
	gen := s.gen
	s.state.Status = Loading
	s.state.ErrorMessage = ""
	fields := s.state.Fields
	s.wg.Add(1)
	s.notify(s.state)
	s.mu.Unlock()

	go s.send(context.WithoutCancel(ctx), gen, fields)
	return nil
}

// Wait blocks until every relay call started by Submit has finished.
func (s *Submitter) Wait() {
	s.wg.Wait()
}

func (s *Submitter) send(ctx context.Context, gen uint64, fields Fields) {
	defer s.wg.Done()

	res, err := s.relay.Submit(ctx, NewPayload(s.opts.AccessKey, fields))
	if s.opts.OnResult != nil {
		s.opts.OnResult(fields, res, err)
	}

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	status, msg := Describe(res, err)
	switch {
	case err != nil:
		s.opts.Logger.Error("contact relay failed", "error", err)
	case !res.Success:
		s.opts.Logger.Warn("contact relay rejected submission", "message", res.Message)
	default:
		s.opts.Logger.Info("contact message sent", "name", fields.Name)
	}
	if status == Success {
		s.state = State{Status: Success}
		s.reset = s.opts.AfterFunc(s.opts.ResetDelay, func() { s.expire(gen) })
	} else {
		s.state.Status = status
		s.state.ErrorMessage = msg
	}
	s.notify(s.state)
	s.mu.Unlock()
}

// Describe maps a relay outcome to the form status and the message shown
// to the visitor. The relay's own failure message is passed through.
func Describe(res Result, err error) (Status, string) {
	switch {
	case err != nil:
		return Error, FallbackTransportMessage
	case !res.Success:
		if res.Message != "" {
			return Error, res.Message
		}
		return Error, FallbackRelayMessage
	default:
		return Success, res.Message
	}
}

// expire returns a Success state to Idle, unless another submission has
// started since.
func (s *Submitter) expire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.state.Status != Success {
		s.mu.Unlock()
		return
	}
	s.state.Status = Idle
	s.reset = nil
	s.notify(s.state)
	s.mu.Unlock()
}

// Close cancels a pending auto-reset.
func (s *Submitter) Close() {
	s.mu.Lock()
	if s.reset != nil {
		s.reset.Stop()
		s.reset = nil
	}
	s.gen++
	s.mu.Unlock()
}

func (s *Submitter) notify(st State) {
	if s.opts.OnChange != nil {
		s.opts.OnChange(st)
	}
}
