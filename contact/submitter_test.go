package contact

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// manualTimer fires only when the test says so.
type manualTimer struct {
	mu      sync.Mutex
	f       func()
	d       time.Duration
	stopped bool
}

func (m *manualTimer) Stop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	was := !m.stopped
	m.stopped = true
	return was
}

func (m *manualTimer) fire() {
	m.mu.Lock()
	stopped := m.stopped
	m.mu.Unlock()
	if !stopped {
		m.f()
	}
}

type clock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (c *clock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{f: f, d: d}
	c.timers = append(c.timers, t)
	return t
}

func (c *clock) last() *manualTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.timers) == 0 {
		return nil
	}
	return c.timers[len(c.timers)-1]
}

type harness struct {
	sub      *Submitter
	clock    *clock
	mu       sync.Mutex
	statuses []Status
	calls    int
}

func newHarness(t *testing.T, relay RelayFunc) *harness {
	t.Helper()
	h := &harness{clock: &clock{}}
	counted := RelayFunc(func(ctx context.Context, p Payload) (Result, error) {
		h.mu.Lock()
		h.calls++
		h.mu.Unlock()
		return relay(ctx, p)
	})
	h.sub = NewSubmitter(counted, Options{
		AccessKey:  "test-key",
		ResetDelay: 5 * time.Second,
		AfterFunc:  h.clock.AfterFunc,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		OnChange: func(s State) {
			h.mu.Lock()
			h.statuses = append(h.statuses, s.Status)
			h.mu.Unlock()
		},
	})
	return h
}

func (h *harness) fill(t *testing.T) {
	t.Helper()
	for name, value := range map[string]string{"name": "Ada", "email": "ada@example.com", "message": "Hello"} {
		if err := h.sub.SetField(name, value); err != nil {
			t.Fatalf("SetField(%s) failed: %v", name, err)
		}
	}
}

func (h *harness) transitions() []Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []Status
	for i, s := range h.statuses {
		if i == 0 || s != h.statuses[i-1] {
			out = append(out, s)
		}
	}
	return out
}

func TestSubmitWithMissingFieldStaysIdle(t *testing.T) {
	h := newHarness(t, func(context.Context, Payload) (Result, error) {
		return Result{Success: true}, nil
	})
	h.sub.SetField("email", "ada@example.com")
	h.sub.SetField("message", "Hi")
	h.sub.SetField("name", "   ")

	err := h.sub.Submit(context.Background())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 1 || verr.Fields[0] != "name" {
		t.Errorf("Expected missing name, got %v", verr.Fields)
	}
	h.sub.Wait()
	if h.calls != 0 {
		t.Errorf("Expected no relay call, got %d", h.calls)
	}
	if h.sub.State().Status != Idle {
		t.Errorf("Expected Idle, got %s", h.sub.State().Status)
	}
}

func TestSubmitSuccessClearsAndResets(t *testing.T) {
	var got Payload
	h := newHarness(t, func(_ context.Context, p Payload) (Result, error) {
		got = p
		return Result{Success: true}, nil
	})
	h.fill(t)

	if err := h.sub.Submit(context.Background()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	h.sub.Wait()

	st := h.sub.State()
	if st.Status != Success {
		t.Fatalf("Expected Success, got %s", st.Status)
	}
	if st.Name != "" || st.Email != "" || st.Message != "" {
		t.Errorf("Expected fields cleared, got %+v", st.Fields)
	}
	if got.AccessKey != "test-key" || got.Subject != "New Portfolio Contact from Ada" || got.Email != "ada@example.com" {
		t.Errorf("Unexpected payload %+v", got)
	}

	timer := h.clock.last()
	if timer == nil || timer.d != 5*time.Second {
		t.Fatalf("Expected a 5s reset timer")
	}
	timer.fire()
	if h.sub.State().Status != Idle {
		t.Errorf("Expected Idle after reset delay, got %s", h.sub.State().Status)
	}

	want := []Status{Idle, Loading, Success, Idle}
	assertTransitions(t, h.transitions(), want)
}

func TestSubmitTransportErrorKeepsFields(t *testing.T) {
	h := newHarness(t, func(context.Context, Payload) (Result, error) {
		return Result{}, errors.New("connection refused")
	})
	h.fill(t)

	h.sub.Submit(context.Background())
	h.sub.Wait()

	st := h.sub.State()
	if st.Status != Error || st.ErrorMessage != FallbackTransportMessage {
		t.Fatalf("Expected Error with fallback message, got %s %q", st.Status, st.ErrorMessage)
	}
	if st.Name != "Ada" || st.Message != "Hello" {
		t.Errorf("Expected fields retained, got %+v", st.Fields)
	}
	if h.clock.last() != nil {
		t.Errorf("Expected no reset timer on error")
	}
}

func TestSubmitRelayRejection(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{"verbatim message", Result{Success: false, Message: "Invalid access key"}, "Invalid access key"},
		{"fallback message", Result{Success: false}, FallbackRelayMessage},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, func(context.Context, Payload) (Result, error) { return tc.res, nil })
			h.fill(t)
			h.sub.Submit(context.Background())
			h.sub.Wait()

			st := h.sub.State()
			if st.Status != Error || st.ErrorMessage != tc.want {
				t.Errorf("Expected Error %q, got %s %q", tc.want, st.Status, st.ErrorMessage)
			}
		})
	}
}

func TestRetryAfterError(t *testing.T) {
	fail := true
	h := newHarness(t, func(context.Context, Payload) (Result, error) {
		if fail {
			return Result{}, errors.New("boom")
		}
		return Result{Success: true}, nil
	})
	h.fill(t)

	h.sub.Submit(context.Background())
	h.sub.Wait()
	fail = false
	if err := h.sub.Submit(context.Background()); err != nil {
		t.Fatalf("Expected retry to be accepted, got %v", err)
	}
	h.sub.Wait()

	if h.sub.State().Status != Success || h.calls != 2 {
		t.Errorf("Expected Success after retry with 2 calls, got %s / %d", h.sub.State().Status, h.calls)
	}
}

func TestBusyWhileLoading(t *testing.T) {
	release := make(chan struct{})
	h := newHarness(t, func(context.Context, Payload) (Result, error) {
		<-release
		return Result{Success: true}, nil
	})
	h.fill(t)

	if err := h.sub.Submit(context.Background()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if err := h.sub.Submit(context.Background()); !errors.Is(err, ErrBusy) {
		t.Errorf("Expected ErrBusy for a second submit, got %v", err)
	}
	if err := h.sub.SetField("name", "Grace"); !errors.Is(err, ErrBusy) {
		t.Errorf("Expected inputs disabled while loading, got %v", err)
	}
	close(release)
	h.sub.Wait()

	if h.calls != 1 {
		t.Errorf("Expected exactly one relay call, got %d", h.calls)
	}
}

func TestStaleResetIgnored(t *testing.T) {
	h := newHarness(t, func(context.Context, Payload) (Result, error) {
		return Result{Success: true}, nil
	})
	h.fill(t)
	h.sub.Submit(context.Background())
	h.sub.Wait()
	first := h.clock.last()

	h.fill(t)
	h.sub.Submit(context.Background())
	h.sub.Wait()

	first.fire()
	if h.sub.State().Status != Success {
		t.Errorf("Expected the first reset timer to be stale, got %s", h.sub.State().Status)
	}
}

func TestSetFieldUnknown(t *testing.T) {
	h := newHarness(t, func(context.Context, Payload) (Result, error) { return Result{}, nil })
	if err := h.sub.SetField("phone", "123"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Expected ErrUnknownField, got %v", err)
	}
}

func TestCloseDropsInFlightResult(t *testing.T) {
	release := make(chan struct{})
	h := newHarness(t, func(context.Context, Payload) (Result, error) {
		<-release
		return Result{Success: true}, nil
	})
	h.fill(t)
	h.sub.Submit(context.Background())
	h.sub.Close()
	close(release)
	h.sub.Wait()

	if h.sub.State().Status != Loading {
		t.Errorf("Expected no transition after Close, got %s", h.sub.State().Status)
	}
}

func assertTransitions(t *testing.T, got, want []Status) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected transitions %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected transitions %v, got %v", want, got)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name   string
		res    Result
		err    error
		status Status
		msg    string
	}{
		{"sent", Result{Success: true}, nil, Success, ""},
		{"rejected with message", Result{Message: "Invalid access key"}, nil, Error, "Invalid access key"},
		{"rejected without message", Result{}, nil, Error, FallbackRelayMessage},
		{"transport error", Result{}, errors.New("dial tcp: timeout"), Error, FallbackTransportMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := Describe(tt.res, tt.err)
			if status != tt.status || msg != tt.msg {
				t.Errorf("Expected (%v, %q), got (%v, %q)", tt.status, tt.msg, status, msg)
			}
		})
	}
}

func TestStalledSMTPServerEndsInError(t *testing.T) {
	host, port := silentSMTP(t)
	relay := NewSMTPRelay(SMTPConfig{Host: host, Port: port, User: "u", Pass: "p", Timeout: 200 * time.Millisecond})
	h := newHarness(t, relay.Submit)
	h.fill(t)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if err := h.sub.Submit(ctx); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	h.sub.Wait()

	st := h.sub.State()
	if st.Status != Error {
		t.Fatalf("Expected Error, got %s", st.Status)
	}
	if st.ErrorMessage != FallbackTransportMessage {
		t.Errorf("Expected %q, got %q", FallbackTransportMessage, st.ErrorMessage)
	}
	if st.Name != "Ada" {
		t.Errorf("Expected fields kept after a transport error, got %+v", st.Fields)
	}
	if err := h.sub.SetField("message", "Hello again"); err != nil {
		t.Errorf("Expected inputs enabled after the error, got %v", err)
	}
	if err := h.sub.Submit(context.Background()); err != nil {
		t.Errorf("Expected retry to start, got %v", err)
	}
	h.sub.Wait()
}
