package emailsink

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var (
	// ErrNilSettings is returned by New when no settings are supplied.
	ErrNilSettings = errors.New("emailsink: connection settings are required")

	// ErrNilBatch is returned by EmitBatch when the batch slice itself is
	// nil. An empty (non-nil) batch is accepted and fails later, at
	// subject selection.
	ErrNilBatch = errors.New("emailsink: nil event batch")

	// ErrEmptyBatch is the delivery failure produced when a batch holds
	// no event to render a subject from.
	ErrEmptyBatch = errors.New("emailsink: empty batch has no subject event")
)

// BatchedSink is the contract a batching host drives. The host owns batch
// timing, queueing and retries; it guarantees at most one call is in
// flight at a time and must tolerate that EmitBatch reports failure only
// through its return value, never by panicking.
type BatchedSink interface {
	// EmitBatch delivers one finite, ordered batch of events as a single
	// message.
	EmitBatch(ctx context.Context, events []*Event) error

	// OnEmptyBatch is invoked when the host has nothing pending. It must
	// return immediately without I/O.
	OnEmptyBatch(ctx context.Context) error
}

// Option configures a Sink.
type Option func(*Sink)

// WithTransport replaces the default SMTP transport. Settings host/port
// validation is skipped in that case, since the relay fields may be
// meaningless to the replacement backend.
func WithTransport(t Transport) Option {
	return func(s *Sink) {
		if t != nil {
			s.transport = t
		}
	}
}

// WithDiagnostics sets the logger that receives the sink's
// self-diagnostics: one entry per failed delivery and one notice per
// unsupported single-event call. Defaults to zerolog.Nop().
func WithDiagnostics(logger zerolog.Logger) Option {
	return func(s *Sink) {
		s.diag = logger
	}
}

// WithBodyFormatter overrides the per-event body formatter.
func WithBodyFormatter(f Formatter) Option {
	return func(s *Sink) {
		if f != nil {
			s.body = f
		}
	}
}

// WithSubjectFormatter overrides the subject formatter.
func WithSubjectFormatter(f Formatter) Option {
	return func(s *Sink) {
		if f != nil {
			s.subject = f
		}
	}
}

// Sink delivers event batches as email messages. It holds no state across
// batches beyond its immutable configuration, so a single instance
// serves a host for its whole lifetime.
type Sink struct {
	settings  *ConnectionSettings
	from      string
	to        []string
	transport Transport
	body      Formatter
	subject   Formatter
	diag      zerolog.Logger
}

// New validates the settings, parses the from/to addresses, and builds a
// sink. Without WithTransport it constructs the default SMTP transport,
// which requires a relay host; an empty host fails here rather than at
// send time.
func New(settings *ConnectionSettings, opts ...Option) (*Sink, error) {
	if settings == nil {
		return nil, ErrNilSettings
	}

	from, to, err := settings.parseAddresses()
	if err != nil {
		return nil, fmt.Errorf("emailsink: %w", err)
	}

	s := &Sink{
		settings: settings,
		from:     from,
		to:       to,
		subject:  SubjectFormatter,
		diag:     zerolog.Nop(),
	}
	if settings.IsBodyHTML {
		s.body = HTMLFormatter
	} else {
		s.body = TextFormatter
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if s.transport == nil {
		t, err := NewSMTPTransport(settings)
		if err != nil {
			return nil, err
		}
		s.transport = t
	}

	return s, nil
}

// Emit is the single-event path required by hosts that also support
// unbatched sinks. Per-event email delivery is deliberately unsupported:
// Emit performs no network action and records one diagnostics notice
// directing callers to the batch path.
func (s *Sink) Emit(event *Event) {
	entry := s.diag.Warn()
	if event != nil {
		entry = entry.Stringer("level", event.Level)
	}
	entry.Msg("email sink requires batched delivery; single event dropped")
}

// EmitBatch renders the batch into one message and delivers it over a
// freshly acquired transport connection. A nil batch is an
// invalid-argument error, reported before any network action. Any
// delivery failure is recorded once on the diagnostics logger and
// returned; the batch is all-or-nothing and is never retried here.
func (s *Sink) EmitBatch(ctx context.Context, events []*Event) error {
	if events == nil {
		return ErrNilBatch
	}

	if err := s.deliver(ctx, events); err != nil {
		s.diag.Error().
			Err(err).
			Int("batch_size", len(events)).
			Str("transport", s.transport.Name()).
			Msg("batch delivery failed")
		return fmt.Errorf("emailsink: deliver batch: %w", err)
	}
	return nil
}

// OnEmptyBatch satisfies the host's polling contract when no events are
// pending. It performs no I/O.
func (s *Sink) OnEmptyBatch(ctx context.Context) error {
	return nil
}

// Close releases nothing: connections are scoped to single deliveries and
// the sink pools none. It exists for hosts that manage sink lifecycles.
func (s *Sink) Close() error {
	return nil
}

// deliver performs one complete delivery attempt: render, build, connect,
// send, disconnect. The connection is released on every exit path; a
// disconnect failure after a successful send is still a delivery failure.
func (s *Sink) deliver(ctx context.Context, events []*Event) (err error) {
	body, err := s.renderBody(events)
	if err != nil {
		return fmt.Errorf("render body: %w", err)
	}

	subject, err := s.renderSubject(events)
	if err != nil {
		return fmt.Errorf("render subject: %w", err)
	}

	msg := &Message{
		From:    s.from,
		To:      s.to,
		Subject: subject,
		Body:    body,
		HTML:    s.settings.IsBodyHTML,
	}

	conn, err := s.transport.Connect(ctx)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		cerr := conn.Close()
		if err == nil && cerr != nil {
			err = fmt.Errorf("disconnect: %w", cerr)
		}
	}()

	if err := conn.Send(ctx, msg); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}

// renderBody concatenates every event's rendered output in batch order.
// Formatters supply their own separators.
func (s *Sink) renderBody(events []*Event) (string, error) {
	var buf bytes.Buffer
	for i, e := range events {
		if e == nil {
			continue
		}
		if err := s.body(e, &buf); err != nil {
			return "", fmt.Errorf("event %d: %w", i, err)
		}
	}
	return buf.String(), nil
}

// renderSubject formats the batch's subject event: the first event, in
// input order, whose severity equals the batch maximum.
func (s *Sink) renderSubject(events []*Event) (string, error) {
	subjectEvent, err := maxSeverityEvent(events)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := s.subject(subjectEvent, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// maxSeverityEvent selects the first event carrying the batch's maximum
// level. The tie-break is stable: later events only win with a strictly
// higher level.
func maxSeverityEvent(events []*Event) (*Event, error) {
	var best *Event
	for _, e := range events {
		if e == nil {
			continue
		}
		if best == nil || e.Level > best.Level {
			best = e
		}
	}
	if best == nil {
		return nil, ErrEmptyBatch
	}
	return best, nil
}
