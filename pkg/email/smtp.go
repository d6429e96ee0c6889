package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/smtp"
	"strconv"
	"time"
)

// SMTPSender delivers mail over a single SMTP session per call.
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender creates a sender. No connection is opened until Verify or Send.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &SMTPSender{cfg: cfg}
}

// Verify opens a session, negotiates TLS when offered, authenticates and quits.
func (s *SMTPSender) Verify(ctx context.Context) error {
	c, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := s.authenticate(c); err != nil {
		return err
	}
	if err := c.Quit(); err != nil {
		return classify(nil, fmt.Errorf("quit: %w", err))
	}
	return nil
}

// Send delivers msg and returns the generated Message-ID.
func (s *SMTPSender) Send(ctx context.Context, msg Message) (string, error) {
	messageID := newMessageID(msg.From, s.cfg.Host)
	raw, err := buildMessage(msg, messageID, time.Now())
	if err != nil {
		return "", fmt.Errorf("build message: %w", err)
	}

	c, err := s.connect(ctx)
	if err != nil {
		return "", err
	}
	defer c.Close()

	if err := s.authenticate(c); err != nil {
		return "", err
	}
	if err := c.Mail(msg.From); err != nil {
		return "", classify(nil, fmt.Errorf("mail from: %w", err))
	}
	if err := c.Rcpt(msg.To); err != nil {
		return "", classify(nil, fmt.Errorf("rcpt to: %w", err))
	}

	w, err := c.Data()
	if err != nil {
		return "", classify(nil, fmt.Errorf("data: %w", err))
	}
	if _, err := w.Write(raw); err != nil {
		return "", classify(nil, fmt.Errorf("write body: %w", err))
	}
	if err := w.Close(); err != nil {
		return "", classify(nil, fmt.Errorf("end data: %w", err))
	}

	if err := c.Quit(); err != nil {
		return "", classify(nil, fmt.Errorf("quit: %w", err))
	}
	return messageID, nil
}

func (s *SMTPSender) addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

func (s *SMTPSender) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName:         s.cfg.Host,
		InsecureSkipVerify: s.cfg.TLSInsecure,
		MinVersion:         tls.VersionTLS12,
	}
}

// connect dials the server, reads the greeting and upgrades to TLS when the
// server advertises STARTTLS. Every failure here is a connection failure.
func (s *SMTPSender) connect(ctx context.Context) (*smtp.Client, error) {
	dialer := &net.Dialer{Timeout: s.cfg.Timeout}

	var (
		conn net.Conn
		err  error
	)
	if s.cfg.Secure {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: s.tlsConfig()}
		conn, err = tlsDialer.DialContext(ctx, "tcp", s.addr())
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", s.addr())
	}
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %w", ErrConnection, s.addr(), err)
	}

	deadline := time.Now().Add(s.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: greeting: %w", ErrConnection, err)
	}

	if !s.cfg.Secure {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(s.tlsConfig()); err != nil {
				c.Close()
				return nil, fmt.Errorf("%w: starttls: %w", ErrConnection, err)
			}
		}
	}
	return c, nil
}

func (s *SMTPSender) authenticate(c *smtp.Client) error {
	if ok, _ := c.Extension("AUTH"); !ok {
		return fmt.Errorf("%w: server does not advertise AUTH", ErrAuth)
	}
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := c.Auth(auth); err != nil {
		return classify(ErrAuth, err)
	}
	return nil
}

// classify wraps err with ErrConnection when it is a network failure and
// with kind otherwise. A nil kind leaves non-network errors unclassified.
func classify(kind, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	if kind == nil {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}
