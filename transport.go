package emailsink

import "context"

// Message is one outgoing email built from a rendered batch. It is
// constructed fresh per batch and discarded after the delivery attempt.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string

	// HTML marks Body as text/html; otherwise it is sent as text/plain.
	HTML bool
}

// Transport produces connections to a mail delivery backend. The sink
// acquires one connection per batch and releases it when the delivery
// attempt ends, whatever the outcome.
type Transport interface {
	// Connect returns a connection ready to send one message.
	Connect(ctx context.Context) (Connection, error)

	// Name returns the human-readable name of this transport.
	Name() string
}

// Connection is a live handle to a delivery backend. The caller owns its
// lifetime and must Close it on every exit path.
type Connection interface {
	// Send delivers a single message over this connection.
	Send(ctx context.Context, msg *Message) error

	// Close disconnects gracefully, issuing a protocol-level quit where
	// the backend has one.
	Close() error
}
