package contact

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/smtp"
	"strings"
	"time"
)

const DefaultWeb3FormsURL = "https://api.web3forms.com/submit"

// Payload is the JSON body the form relay expects.
type Payload struct {
	AccessKey string `json:"access_key"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Subject   string `json:"subject"`
}

func NewPayload(accessKey string, f Fields) Payload {
	return Payload{
		AccessKey: accessKey,
		Name:      f.Name,
		Email:     f.Email,
		Message:   f.Message,
		Subject:   "New Portfolio Contact from " + f.Name,
	}
}

// Result is the relay's verdict. Message is optional.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Relay delivers a contact submission. An error means the submission never
// got a verdict (transport failure); a verdict of Success=false is not an
// error.
type Relay interface {
	Submit(ctx context.Context, p Payload) (Result, error)
}

// RelayFunc adapts a function to Relay.
type RelayFunc func(ctx context.Context, p Payload) (Result, error)

func (f RelayFunc) Submit(ctx context.Context, p Payload) (Result, error) { return f(ctx, p) }

// Web3Forms posts submissions to the Web3Forms relay.
type Web3Forms struct {
	url string
	do  func(*http.Request) (*http.Response, error)
}

type Web3FormsOptions struct {
	URL     string
	Timeout time.Duration
	Client  *http.Client
}

func NewWeb3Forms(opts Web3FormsOptions) *Web3Forms {
	if opts.URL == "" {
		opts.URL = DefaultWeb3FormsURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	hc := opts.Client
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Web3Forms{url: opts.URL, do: hc.Do}
}

func (w *Web3Forms) Submit(ctx context.Context, p Payload) (Result, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return Result{}, fmt.Errorf("web3forms: encode: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("web3forms: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := w.do(req)
	if err != nil {
		return Result{}, fmt.Errorf("web3forms: send: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{}, fmt.Errorf("web3forms: read: %w", err)
	}
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return Result{}, fmt.Errorf("web3forms: decode status %d: %w", resp.StatusCode, err)
	}
	return res, nil
}

// SMTPConfig configures mail delivery of contact submissions.
type SMTPConfig struct {
	Host    string
	Port    string
	User    string
	Pass    string
	To      string
	Timeout time.Duration
}

var ErrSMTPCredentials = errors.New("SMTP credentials not configured")

// SMTPRelay mails submissions instead of posting them to a form relay.
// Every exchange with the server shares one deadline of cfg.Timeout.
type SMTPRelay struct {
	cfg  SMTPConfig
	send func(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPRelay(cfg SMTPConfig) *SMTPRelay {
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	r := &SMTPRelay{cfg: cfg}
	r.send = r.sendMail
	return r
}

func (r *SMTPRelay) Submit(ctx context.Context, p Payload) (Result, error) {
	if r.cfg.User == "" || r.cfg.Pass == "" {
		return Result{}, ErrSMTPCredentials
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	to := r.cfg.To
	if to == "" {
		to = r.cfg.User
	}

	auth := smtp.PlainAuth("", r.cfg.User, r.cfg.Pass, r.cfg.Host)
	err := r.send(ctx, net.JoinHostPort(r.cfg.Host, r.cfg.Port), auth, r.cfg.User, []string{to}, composeMail(r.cfg.User, to, p))
	if err != nil {
		return Result{}, fmt.Errorf("smtp: %w", err)
	}
	return Result{Success: true}, nil
}

// sendMail is smtp.SendMail on a connection bounded by ctx: a server that
// accepts but never answers fails at the deadline instead of hanging.
func (r *SMTPRelay) sendMail(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	c, err := smtp.NewClient(conn, r.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: r.cfg.Host}); err != nil {
			return err
		}
	}
	if ok, _ := c.Extension("AUTH"); ok && a != nil {
		if err := c.Auth(a); err != nil {
			return err
		}
	}
	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

func composeMail(from, to string, p Payload) []byte {
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, headerSafe(p.Name), headerSafe(p.Email), p.Message)

	var b strings.Builder
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + headerSafe(p.Subject) + "\r\n")
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("Reply-To: " + headerSafe(p.Email) + "\r\n")
	b.WriteString("\r\n")
	b.WriteString(body + "\r\n")
	return []byte(b.String())
}

// headerSafe strips line breaks so form input cannot inject headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
