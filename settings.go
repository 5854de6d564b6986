package emailsink

import (
	"crypto/tls"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// defaultTimeout bounds each SMTP dial and send when the settings do not
// specify one.
const defaultTimeout = 10 * time.Second

// ConnectionSettings describes how the sink reaches its mail relay and
// how outgoing messages are addressed. The sink validates and parses the
// settings once at construction and never mutates them afterwards.
type ConnectionSettings struct {
	// Host is the SMTP relay to deliver through. Required when the sink
	// builds its default SMTP transport.
	Host string
	Port int

	// EnableSSL selects an implicit TLS connection (SMTPS). When false
	// the transport still upgrades via STARTTLS when the relay offers it.
	EnableSSL bool

	// Username and Password are optional relay credentials. When both
	// are empty the transport skips authentication.
	Username string
	Password string

	// From is the sender mailbox address.
	From string

	// To lists recipient mailbox addresses separated by commas or
	// semicolons. Every batch goes to all of them.
	To string

	// IsBodyHTML attaches the rendered body as text/html instead of
	// text/plain.
	IsBodyHTML bool

	// TLSConfig overrides certificate validation for the relay
	// connection. Leave nil for standard verification against Host.
	TLSConfig *tls.Config

	// Timeout bounds each dial and send. Zero means defaultTimeout.
	Timeout time.Duration
}

// parseAddresses validates the from-address and splits and validates the
// recipient list. Malformed addresses are construction-time failures, not
// per-send failures.
func (cs *ConnectionSettings) parseAddresses() (from string, to []string, err error) {
	addr, err := mail.ParseAddress(cs.From)
	if err != nil {
		return "", nil, fmt.Errorf("invalid from address %q: %w", cs.From, err)
	}
	from = addr.Address

	to, err = splitRecipients(cs.To)
	if err != nil {
		return "", nil, err
	}
	return from, to, nil
}

// splitRecipients parses a comma- or semicolon-delimited recipient list
// into individual mailbox addresses.
func splitRecipients(list string) ([]string, error) {
	fields := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ';'
	})

	recipients := make([]string, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		addr, err := mail.ParseAddress(field)
		if err != nil {
			return nil, fmt.Errorf("invalid to address %q: %w", field, err)
		}
		recipients = append(recipients, addr.Address)
	}

	if len(recipients) == 0 {
		return nil, fmt.Errorf("at least one to address is required")
	}
	return recipients, nil
}

// timeout returns the configured timeout or the default.
func (cs *ConnectionSettings) timeout() time.Duration {
	if cs.Timeout > 0 {
		return cs.Timeout
	}
	return defaultTimeout
}
