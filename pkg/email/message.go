package email

import (
	"bytes"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
)

var headerSanitizer = strings.NewReplacer("\r", " ", "\n", " ")

// newMessageID returns an RFC 5322 Message-ID scoped to the sender's domain.
func newMessageID(from, fallbackHost string) string {
	domain := fallbackHost
	if at := strings.LastIndexByte(from, '@'); at >= 0 && at < len(from)-1 {
		domain = from[at+1:]
	}
	if domain == "" {
		domain = "localhost"
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}

// buildMessage renders msg as a multipart/alternative MIME message with the
// plain-text part first so that clients prefer the HTML part.
func buildMessage(msg Message, messageID string, date time.Time) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	from := (&mail.Address{Name: msg.FromName, Address: msg.From}).String()
	headers := [][2]string{
		{"From", from},
		{"To", msg.To},
	}
	if msg.ReplyTo != "" {
		headers = append(headers, [2]string{"Reply-To", msg.ReplyTo})
	}
	headers = append(headers,
		[2]string{"Subject", mime.QEncoding.Encode("utf-8", headerSanitizer.Replace(msg.Subject))},
		[2]string{"Date", date.Format(time.RFC1123Z)},
		[2]string{"Message-ID", messageID},
		[2]string{"MIME-Version", "1.0"},
		[2]string{"Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", mw.Boundary())},
	)
	for _, h := range headers {
		fmt.Fprintf(&buf, "%s: %s\r\n", h[0], headerSanitizer.Replace(h[1]))
	}
	buf.WriteString("\r\n")

	parts := []struct {
		contentType string
		body        string
	}{
		{"text/plain", msg.TextBody},
		{"text/html", msg.HTMLBody},
	}
	for _, p := range parts {
		if p.body == "" {
			continue
		}
		h := textproto.MIMEHeader{}
		h.Set("Content-Type", p.contentType+"; charset=UTF-8")
		h.Set("Content-Transfer-Encoding", "quoted-printable")
		pw, err := mw.CreatePart(h)
		if err != nil {
			return nil, err
		}
		qp := quotedprintable.NewWriter(pw)
		if _, err := qp.Write([]byte(p.body)); err != nil {
			return nil, err
		}
		if err := qp.Close(); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
