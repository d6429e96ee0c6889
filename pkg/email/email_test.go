package email

import (
	"bufio"
	"context"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/mail"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderContact(t *testing.T) {
	html, text, err := RenderContact(ContactData{
		Name:    "Ann <script>",
		Email:   "ann@example.com",
		Message: "Line one\nLine <b>two</b>",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Ann &lt;script&gt;")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "Line one<br>Line &lt;b&gt;two&lt;/b&gt;")
	assert.Contains(t, html, "ann@example.com")

	assert.Contains(t, text, "Name: Ann <script>")
	assert.Contains(t, text, "Email: ann@example.com")
	assert.Contains(t, text, "Line one\nLine <b>two</b>")
}

func TestContactSubject(t *testing.T) {
	assert.Equal(t, "New Contact Form Submission from Ann", ContactSubject("Ann"))
}

func TestNewMessageID(t *testing.T) {
	id := newMessageID("portfolio@example.com", "smtp.example.com")
	assert.True(t, strings.HasPrefix(id, "<"))
	assert.True(t, strings.HasSuffix(id, "@example.com>"))
	assert.NotEqual(t, id, newMessageID("portfolio@example.com", "smtp.example.com"))

	assert.True(t, strings.HasSuffix(newMessageID("", "smtp.example.com"), "@smtp.example.com>"))
}

func TestBuildMessage(t *testing.T) {
	date := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	raw, err := buildMessage(Message{
		FromName: "Portfolio Contact Form",
		From:     "me@example.com",
		To:       "inbox@example.com",
		ReplyTo:  "ann@example.com",
		Subject:  "Hello\r\nBcc: victim@example.com",
		HTMLBody: "<p>Hi</p>",
		TextBody: "Hi",
	}, "<id@example.com>", date)
	require.NoError(t, err)

	m, err := mail.ReadMessage(strings.NewReader(string(raw)))
	require.NoError(t, err)

	assert.Equal(t, `"Portfolio Contact Form" <me@example.com>`, m.Header.Get("From"))
	assert.Equal(t, "inbox@example.com", m.Header.Get("To"))
	assert.Equal(t, "ann@example.com", m.Header.Get("Reply-To"))
	assert.Equal(t, "<id@example.com>", m.Header.Get("Message-ID"))
	assert.Empty(t, m.Header.Get("Bcc"))
	assert.Equal(t, "Hello  Bcc: victim@example.com", m.Header.Get("Subject"))

	mediaType, params, err := mime.ParseMediaType(m.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", mediaType)

	mr := multipart.NewReader(m.Body, params["boundary"])
	var types, bodies []string
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		// multipart.Reader decodes quoted-printable transparently
		b, err := io.ReadAll(p)
		require.NoError(t, err)
		types = append(types, p.Header.Get("Content-Type"))
		bodies = append(bodies, string(b))
	}
	assert.Equal(t, []string{"text/plain; charset=UTF-8", "text/html; charset=UTF-8"}, types)
	assert.Equal(t, []string{"Hi", "<p>Hi</p>"}, bodies)
}

func TestBuildMessageSkipsEmptyParts(t *testing.T) {
	raw, err := buildMessage(Message{From: "me@example.com", To: "you@example.com", TextBody: "only text"}, "<x@y>", time.Now())
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "Reply-To")
	assert.NotContains(t, string(raw), "text/html")

	var qp strings.Builder
	w := quotedprintable.NewWriter(&qp)
	_, _ = w.Write([]byte("only text"))
	_ = w.Close()
	assert.Contains(t, string(raw), qp.String())
}

// fakeSMTP is a minimal plaintext SMTP server accepting AUTH PLAIN.
type fakeSMTP struct {
	ln         net.Listener
	acceptAuth bool
	noAuth     bool

	mu       sync.Mutex
	commands []string
	data     []string
}

func startFakeSMTP(t *testing.T, f *fakeSMTP) *fakeSMTP {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	f.ln = ln
	go f.serve()
	t.Cleanup(func() { ln.Close() })
	return f
}

func (f *fakeSMTP) port() int {
	return f.ln.Addr().(*net.TCPAddr).Port
}

func (f *fakeSMTP) serve() {
	for {
		conn, err := f.ln.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func (f *fakeSMTP) handle(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	reply := func(s string) { _, _ = conn.Write([]byte(s + "\r\n")) }

	reply("220 fake ESMTP")
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")
		f.mu.Lock()
		f.commands = append(f.commands, line)
		f.mu.Unlock()

		verb := strings.ToUpper(strings.SplitN(line, " ", 2)[0])
		switch verb {
		case "EHLO", "HELO":
			if f.noAuth {
				reply("250 fake")
			} else {
				reply("250-fake")
				reply("250 AUTH PLAIN")
			}
		case "AUTH":
			if f.acceptAuth {
				reply("235 2.7.0 Authentication successful")
			} else {
				reply("535 5.7.8 Authentication credentials invalid")
			}
		case "MAIL", "RCPT":
			reply("250 OK")
		case "DATA":
			reply("354 End data with <CR><LF>.<CR><LF>")
			var body []string
			for {
				l, err := r.ReadString('\n')
				if err != nil {
					return
				}
				l = strings.TrimRight(l, "\r\n")
				if l == "." {
					break
				}
				body = append(body, l)
			}
			f.mu.Lock()
			f.data = append(f.data, strings.Join(body, "\n"))
			f.mu.Unlock()
			reply("250 OK queued")
		case "QUIT":
			reply("221 Bye")
			return
		default:
			reply("501 Syntax error")
		}
	}
}

func (f *fakeSMTP) snapshot() ([]string, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...), append([]string(nil), f.data...)
}

func (f *fakeSMTP) config() SMTPConfig {
	return SMTPConfig{
		Host:     "127.0.0.1",
		Port:     f.port(),
		Username: "me@example.com",
		Password: "secret",
		Timeout:  2 * time.Second,
	}
}

func TestSMTPSenderVerify(t *testing.T) {
	t.Run("accepts valid credentials", func(t *testing.T) {
		srv := startFakeSMTP(t, &fakeSMTP{acceptAuth: true})
		err := NewSMTPSender(srv.config()).Verify(context.Background())
		require.NoError(t, err)

		cmds, data := srv.snapshot()
		assert.Contains(t, cmds, "QUIT")
		assert.Empty(t, data)
	})

	t.Run("rejected credentials are auth errors", func(t *testing.T) {
		srv := startFakeSMTP(t, &fakeSMTP{})
		err := NewSMTPSender(srv.config()).Verify(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAuth)
		assert.NotErrorIs(t, err, ErrConnection)
	})

	t.Run("missing AUTH support is an auth error", func(t *testing.T) {
		srv := startFakeSMTP(t, &fakeSMTP{acceptAuth: true, noAuth: true})
		err := NewSMTPSender(srv.config()).Verify(context.Background())
		assert.ErrorIs(t, err, ErrAuth)
	})

	t.Run("unreachable server is a connection error", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		port := ln.Addr().(*net.TCPAddr).Port
		require.NoError(t, ln.Close())

		err = NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: port, Timeout: time.Second}).Verify(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConnection)
		assert.NotErrorIs(t, err, ErrAuth)
	})
}

func TestSMTPSenderSend(t *testing.T) {
	srv := startFakeSMTP(t, &fakeSMTP{acceptAuth: true})
	sender := NewSMTPSender(srv.config())

	id, err := sender.Send(context.Background(), Message{
		FromName: "Portfolio Contact Form",
		From:     "me@example.com",
		To:       "inbox@example.com",
		ReplyTo:  "ann@example.com",
		Subject:  ContactSubject("Ann"),
		HTMLBody: "<p>Hello there</p>",
		TextBody: "Hello there",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(id, "@example.com>"))

	cmds, data := srv.snapshot()
	assert.Contains(t, cmds, "MAIL FROM:<me@example.com>")
	assert.Contains(t, cmds, "RCPT TO:<inbox@example.com>")
	require.Len(t, data, 1)
	assert.Contains(t, data[0], "Reply-To: ann@example.com")
	assert.Contains(t, data[0], "Message-ID: "+id)
	assert.Contains(t, data[0], "Subject: New Contact Form Submission from Ann")
}

func TestSMTPSenderSendAuthFailureSendsNothing(t *testing.T) {
	srv := startFakeSMTP(t, &fakeSMTP{})

	_, err := NewSMTPSender(srv.config()).Send(context.Background(), Message{From: "me@example.com", To: "inbox@example.com", TextBody: "x"})
	assert.ErrorIs(t, err, ErrAuth)

	_, data := srv.snapshot()
	assert.Empty(t, data)
}

func TestNewSMTPSenderDefaultsTimeout(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 587})
	assert.Equal(t, defaultTimeout, s.cfg.Timeout)
	assert.Equal(t, "smtp.example.com:587", s.addr())
}
