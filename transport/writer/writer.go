// Package writer implements an emailsink.Transport that prints messages
// to an io.Writer in a human-readable format. It is intended for local
// development and tests.
package writer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	emailsink "github.com/Etogy/serilog-sinks-email"
)

// Transport writes sink messages to a writer instead of a network.
type Transport struct {
	w io.Writer
}

// New creates a Transport that writes to os.Stdout.
func New() *Transport {
	return &Transport{w: os.Stdout}
}

// NewWithWriter creates a Transport that writes to the given writer.
// This is useful for testing.
func NewWithWriter(w io.Writer) *Transport {
	return &Transport{w: w}
}

// Connect returns a handle writing to the transport's writer.
func (t *Transport) Connect(ctx context.Context) (emailsink.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &connection{w: t.w}, nil
}

// Name returns the transport name.
func (t *Transport) Name() string {
	return "writer"
}

type connection struct {
	w io.Writer
}

// Send prints the message in a readable block.
func (c *connection) Send(_ context.Context, msg *emailsink.Message) error {
	var b strings.Builder

	b.WriteString("========================================\n")
	b.WriteString(fmt.Sprintf("From: %s\n", msg.From))
	b.WriteString(fmt.Sprintf("To: %s\n", strings.Join(msg.To, ", ")))
	b.WriteString(fmt.Sprintf("Subject: %s\n", msg.Subject))

	contentType := "text/plain"
	if msg.HTML {
		contentType = "text/html"
	}
	b.WriteString(fmt.Sprintf("Content-Type: %s\n", contentType))

	b.WriteString("Body:\n")
	b.WriteString(msg.Body)
	if !strings.HasSuffix(msg.Body, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("========================================\n")

	if _, err := fmt.Fprint(c.w, b.String()); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// Close is a no-op: there is no connection to release.
func (c *connection) Close() error {
	return nil
}
