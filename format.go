package emailsink

import (
	"fmt"
	"html"
	"io"
	"sort"
	"strings"
	"time"
)

// Formatter renders a single event into w. The sink calls the configured
// body formatter once per event, appending each result to a shared buffer
// in batch order, and the subject formatter exactly once per batch.
// Formatters own their separators; the sink inserts nothing between
// events.
type Formatter func(e *Event, w io.Writer) error

// TextFormatter renders one event per line:
//
//	2006-01-02T15:04:05Z [Error] message (key=value) error detail
func TextFormatter(e *Event, w io.Writer) error {
	var b strings.Builder
	b.WriteString(e.Timestamp.UTC().Format(time.RFC3339))
	b.WriteString(" [")
	b.WriteString(e.Level.String())
	b.WriteString("] ")
	b.WriteString(e.Message)
	if props := formatProperties(e.Properties); props != "" {
		b.WriteString(" (")
		b.WriteString(props)
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(" ")
		b.WriteString(e.Err.Error())
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// HTMLFormatter renders one event per paragraph with all dynamic content
// escaped.
func HTMLFormatter(e *Event, w io.Writer) error {
	var b strings.Builder
	b.WriteString("<p>")
	b.WriteString(e.Timestamp.UTC().Format(time.RFC3339))
	b.WriteString(" <strong>[")
	b.WriteString(e.Level.String())
	b.WriteString("]</strong> ")
	b.WriteString(html.EscapeString(e.Message))
	if props := formatProperties(e.Properties); props != "" {
		b.WriteString(" <em>(")
		b.WriteString(html.EscapeString(props))
		b.WriteString(")</em>")
	}
	if e.Err != nil {
		b.WriteString(" <code>")
		b.WriteString(html.EscapeString(e.Err.Error()))
		b.WriteString("</code>")
	}
	b.WriteString("</p>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// SubjectFormatter renders the subject line for a batch from its most
// severe event: the level tag followed by the first line of the message.
func SubjectFormatter(e *Event, w io.Writer) error {
	msg := e.Message
	if i := strings.IndexAny(msg, "\r\n"); i >= 0 {
		msg = msg[:i]
	}
	_, err := fmt.Fprintf(w, "[%s] %s", e.Level, msg)
	return err
}

// formatProperties renders the property map as "k=v, k=v" sorted by key
// so output is deterministic.
func formatProperties(props map[string]any) string {
	if len(props) == 0 {
		return ""
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, props[k]))
	}
	return strings.Join(parts, ", ")
}
