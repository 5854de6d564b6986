package emailsink

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	mail "gopkg.in/mail.v2"
)

// ErrNoRelayHost is returned when the default SMTP transport is built
// from settings without a relay host.
var ErrNoRelayHost = errors.New("emailsink: smtp relay host is required")

// SMTPTransport delivers messages through an SMTP relay using
// gopkg.in/mail.v2. Each Connect dials a fresh session; Close issues the
// protocol QUIT.
type SMTPTransport struct {
	dialer *mail.Dialer
	host   string
}

// NewSMTPTransport builds a transport from the relay fields of the
// settings. The host and port are validated eagerly so a misconfigured
// sink fails at construction instead of on its first batch.
func NewSMTPTransport(settings *ConnectionSettings) (*SMTPTransport, error) {
	if settings == nil {
		return nil, ErrNilSettings
	}
	if strings.TrimSpace(settings.Host) == "" {
		return nil, ErrNoRelayHost
	}
	if settings.Port <= 0 || settings.Port > 65535 {
		return nil, fmt.Errorf("emailsink: invalid smtp port %d", settings.Port)
	}

	d := mail.NewDialer(settings.Host, settings.Port, settings.Username, settings.Password)
	d.SSL = settings.EnableSSL
	d.Timeout = settings.timeout()
	d.TLSConfig = relayTLSConfig(settings)

	return &SMTPTransport{dialer: d, host: settings.Host}, nil
}

// Connect dials the relay, upgrading to TLS and authenticating per the
// settings, and returns a connection holding the live session.
func (t *SMTPTransport) Connect(ctx context.Context) (Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sc, err := t.dialer.Dial()
	if err != nil {
		return nil, fmt.Errorf("dial %s:%d: %w", t.dialer.Host, t.dialer.Port, err)
	}
	return &smtpConnection{sender: sc, host: t.host}, nil
}

// Name returns the transport name.
func (t *SMTPTransport) Name() string {
	return "smtp"
}

// smtpConnection wraps a live mail.v2 session.
type smtpConnection struct {
	sender mail.SendCloser
	host   string
}

// Send assembles the MIME message and transmits it over the open
// session. Cancellation is honored between protocol steps only; a send
// already in flight is bounded by the dialer timeout.
func (c *smtpConnection) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return mail.Send(c.sender, buildMIMEMessage(msg, c.host))
}

// Close quits the SMTP session and closes the underlying connection.
func (c *smtpConnection) Close() error {
	return c.sender.Close()
}

// buildMIMEMessage converts the transport-neutral message into a mail.v2
// message with a generated Message-ID.
func buildMIMEMessage(msg *Message, host string) *mail.Message {
	m := mail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), host))
	if msg.HTML {
		m.SetBody("text/html", msg.Body)
	} else {
		m.SetBody("text/plain", msg.Body)
	}
	return m
}

// relayTLSConfig returns the certificate-validation override from the
// settings, cloned and completed with the relay name, or a standard
// config verifying against the relay host.
func relayTLSConfig(settings *ConnectionSettings) *tls.Config {
	if settings.TLSConfig == nil {
		return &tls.Config{
			ServerName: settings.Host,
			MinVersion: tls.VersionTLS12,
		}
	}
	cfg := settings.TLSConfig.Clone()
	if cfg.ServerName == "" {
		cfg.ServerName = settings.Host
	}
	return cfg
}
