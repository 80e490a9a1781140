package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestWeb3FormsPostsPayload(t *testing.T) {
	var got Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode body: %v", err)
		}
		w.Write([]byte(`{"success":true,"message":"Email sent successfully!"}`))
	}))
	defer srv.Close()

	relay := NewWeb3Forms(Web3FormsOptions{URL: srv.URL})
	p := NewPayload("key-123", Fields{Name: "Ada", Email: "ada@example.com", Message: "Hi"})
	res, err := relay.Submit(context.Background(), p)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if !res.Success {
		t.Errorf("Expected success, got %+v", res)
	}
	if got != p {
		t.Errorf("Expected payload %+v, got %+v", p, got)
	}
}

func TestWeb3FormsFailureVerdict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"Invalid access key"}`))
	}))
	defer srv.Close()

	res, err := NewWeb3Forms(Web3FormsOptions{URL: srv.URL}).Submit(context.Background(), Payload{})
	if err != nil {
		t.Fatalf("Expected a verdict, not an error: %v", err)
	}
	if res.Success || res.Message != "Invalid access key" {
		t.Errorf("Unexpected result %+v", res)
	}
}

func TestWeb3FormsTransportErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway timeout</html>`))
	}))
	defer srv.Close()

	if _, err := NewWeb3Forms(Web3FormsOptions{URL: srv.URL}).Submit(context.Background(), Payload{}); err == nil {
		t.Errorf("Expected an error for a non-JSON response")
	}

	srv.Close()
	if _, err := NewWeb3Forms(Web3FormsOptions{URL: srv.URL}).Submit(context.Background(), Payload{}); err == nil {
		t.Errorf("Expected an error for a closed server")
	}
}

func TestSMTPRelay(t *testing.T) {
	relay := NewSMTPRelay(SMTPConfig{User: "me@example.com", Pass: "secret", To: "inbox@example.com"})

	var addr string
	var msg string
	relay.send = func(_ context.Context, a string, _ smtp.Auth, from string, to []string, m []byte) error {
		addr = a
		msg = string(m)
		if from != "me@example.com" || len(to) != 1 || to[0] != "inbox@example.com" {
			t.Errorf("Unexpected envelope from=%s to=%v", from, to)
		}
		return nil
	}

	p := NewPayload("", Fields{Name: "Ada", Email: "ada@example.com\r\nBcc: x@example.com", Message: "Hello there"})
	res, err := relay.Submit(context.Background(), p)
	if err != nil || !res.Success {
		t.Fatalf("Expected success, got %+v %v", res, err)
	}
	if addr != "smtp.gmail.com:587" {
		t.Errorf("Expected default host and port, got %s", addr)
	}
	if !strings.Contains(msg, "Subject: New Portfolio Contact from Ada\r\n") {
		t.Errorf("Missing subject in %q", msg)
	}
	if strings.Contains(msg, "\r\nBcc:") {
		t.Errorf("Expected header injection to be neutralized: %q", msg)
	}
	if !strings.Contains(msg, "Hello there") {
		t.Errorf("Missing message body")
	}
}

func TestSMTPRelayErrors(t *testing.T) {
	if _, err := NewSMTPRelay(SMTPConfig{}).Submit(context.Background(), Payload{}); !errors.Is(err, ErrSMTPCredentials) {
		t.Errorf("Expected ErrSMTPCredentials, got %v", err)
	}

	relay := NewSMTPRelay(SMTPConfig{User: "u", Pass: "p"})
	relay.send = func(context.Context, string, smtp.Auth, string, []string, []byte) error { return errors.New("dial tcp: refused") }
	if _, err := relay.Submit(context.Background(), Payload{}); err == nil {
		t.Errorf("Expected send failure to surface")
	}
}

// silentSMTP accepts connections and never sends a greeting.
func silentSMTP(t *testing.T) (host, port string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	var mu sync.Mutex
	var conns []net.Conn
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, c)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		ln.Close()
		mu.Lock()
		for _, c := range conns {
			c.Close()
		}
		mu.Unlock()
	})
	host, port, _ = net.SplitHostPort(ln.Addr().String())
	return host, port
}

func TestSMTPRelayTimesOutOnSilentServer(t *testing.T) {
	host, port := silentSMTP(t)
	relay := NewSMTPRelay(SMTPConfig{Host: host, Port: port, User: "u", Pass: "p", Timeout: 200 * time.Millisecond})

	start := time.Now()
	_, err := relay.Submit(context.Background(), NewPayload("", Fields{Name: "Ada", Email: "ada@example.com", Message: "Hi"}))
	if err == nil {
		t.Fatal("Expected an error from a server that never greets")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Expected the relay to give up near its timeout, took %v", elapsed)
	}
}
