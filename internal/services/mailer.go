package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"io"
	"net"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"gopkg.in/gomail.v2"

	"alfredoptarigan/resume-screener/internal/models"
)

// MailTransport submits one already-composed message.
type MailTransport interface {
	SendMail(from string, to []string, r io.Reader) error
}

type smtpTransport struct {
	addr       string
	user       string
	password   string
	tlsEnabled bool
	tlsConfig  *tls.Config
}

type SMTPOption func(*smtpTransport)

// WithTLSConfig overrides the TLS settings used for both implicit TLS and
// STARTTLS. ServerName defaults to the host part of addr.
func WithTLSConfig(cfg *tls.Config) SMTPOption {
	return func(t *smtpTransport) {
		t.tlsConfig = cfg
	}
}

// NewSMTPTransport authenticates with SASL PLAIN. With tlsEnabled the session
// uses implicit TLS (SMTPS, port 465); otherwise it connects in plain text and
// upgrades with STARTTLS, failing if the server does not offer it.
func NewSMTPTransport(addr, user, password string, tlsEnabled bool, opts ...SMTPOption) MailTransport {
	t := &smtpTransport{
		addr:       addr,
		user:       user,
		password:   password,
		tlsEnabled: tlsEnabled,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *smtpTransport) SendMail(from string, to []string, r io.Reader) error {
	c, err := t.dial()
	if err != nil {
		return fmt.Errorf("smtp connection to %s failed: %w", t.addr, err)
	}
	defer c.Close()

	if err := c.Auth(sasl.NewPlainClient("", t.user, t.password)); err != nil {
		return fmt.Errorf("smtp auth on %s failed: %w", t.addr, err)
	}

	if err := c.SendMail(from, to, r); err != nil {
		return fmt.Errorf("smtp submission to %s failed: %w", t.addr, err)
	}

	// The message is already accepted at this point.
	_ = c.Quit()
	return nil
}

func (t *smtpTransport) dial() (*smtp.Client, error) {
	cfg, err := t.clientTLSConfig()
	if err != nil {
		return nil, err
	}

	if t.tlsEnabled {
		return smtp.DialTLS(t.addr, cfg)
	}
	return smtp.DialStartTLS(t.addr, cfg)
}

func (t *smtpTransport) clientTLSConfig() (*tls.Config, error) {
	cfg := &tls.Config{}
	if t.tlsConfig != nil {
		cfg = t.tlsConfig.Clone()
	}

	if cfg.ServerName == "" {
		host, _, err := net.SplitHostPort(t.addr)
		if err != nil {
			return nil, fmt.Errorf("invalid smtp address %q: %w", t.addr, err)
		}
		cfg.ServerName = host
	}
	return cfg, nil
}

// composeMessage renders msg as a MIME message. An attachment is added as a
// base64 part whose content type follows the file extension.
func composeMessage(from string, msg *models.EmailMessage) ([]byte, error) {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	if msg.Attachment != nil && msg.Attachment.Filename != "" && len(msg.Attachment.Content) > 0 {
		content := msg.Attachment.Content
		m.Attach(msg.Attachment.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to compose message: %w", err)
	}
	return buf.Bytes(), nil
}
