package mail

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"
)

// SMTPSender delivers mail over plain SMTP. Auth is optional; leave Username
// empty for an unauthenticated relay.
type SMTPSender struct {
	Addr     string // host:port
	From     string
	Username string
	Password string
}

func NewSMTPSender(addr, from, username, password string) *SMTPSender {
	return &SMTPSender{Addr: addr, From: from, Username: username, Password: password}
}

func (s *SMTPSender) Send(_ context.Context, to, subject, htmlBody, textBody string) Result {
	msg, err := buildMessage(s.From, to, subject, htmlBody, textBody)
	if err != nil {
		return Result{Error: err.Error()}
	}

	var auth smtp.Auth
	if s.Username != "" {
		host := s.Addr
		if i := strings.LastIndex(host, ":"); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", s.Username, s.Password, host)
	}

	if err := smtp.SendMail(s.Addr, auth, s.From, []string{to}, msg); err != nil {
		return Result{Error: err.Error()}
	}
	return Result{
		Success:   true,
		MessageID: fmt.Sprintf("smtp-%d", time.Now().UnixNano()),
	}
}

// buildMessage assembles a multipart/alternative message with text and HTML
// parts.
func buildMessage(from, to, subject, htmlBody, textBody string) ([]byte, error) {
	var buf strings.Builder
	w := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", w.Boundary())

	// Text part first so clients fall back to it last.
	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(textBody)); err != nil {
		return nil, err
	}

	part, err = w.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}
