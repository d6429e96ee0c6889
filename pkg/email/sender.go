package email

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrAuth marks a failure while authenticating against the SMTP server.
	ErrAuth = errors.New("smtp authentication failed")
	// ErrConnection marks a failure to reach or talk to the SMTP server.
	ErrConnection = errors.New("smtp connection failed")
)

// Sender is the mail transport used by the contact pipeline. Verify checks
// connectivity and credentials without sending anything; Send delivers one
// message and returns its Message-ID.
type Sender interface {
	Verify(ctx context.Context) error
	Send(ctx context.Context, msg Message) (string, error)
}

// Factory builds a fresh Sender for one request. Transports are never pooled.
type Factory func(cfg SMTPConfig) Sender

// Message represents an email message to be sent.
type Message struct {
	FromName string // display name for From
	From     string // envelope and header sender
	To       string // recipient email address
	ReplyTo  string // address replies should go to
	Subject  string
	HTMLBody string
	TextBody string // plain-text fallback body
}

// SMTPConfig holds the connection settings of an SMTP sender.
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	Secure      bool // implicit TLS instead of STARTTLS
	TLSInsecure bool
	Timeout     time.Duration
}

const defaultTimeout = 10 * time.Second

// NewSMTPFactory returns a Factory producing SMTPSenders.
func NewSMTPFactory() Factory {
	return func(cfg SMTPConfig) Sender {
		return NewSMTPSender(cfg)
	}
}
