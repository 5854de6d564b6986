package emailsink

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

var formatTime = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

func TestTextFormatter(t *testing.T) {
	t.Parallel()

	e := &Event{
		Timestamp: formatTime,
		Level:     LevelWarning,
		Message:   "disk almost full",
		Properties: map[string]any{
			"mount": "/var",
			"free":  12,
		},
		Err: errors.New("threshold exceeded"),
	}

	var buf bytes.Buffer
	if err := TextFormatter(e, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := buf.String()
	want := "2024-03-01T12:30:00Z [Warning] disk almost full (free=12, mount=/var) threshold exceeded\n"
	if got != want {
		t.Errorf("output:\n got %q\nwant %q", got, want)
	}
}

func TestTextFormatter_Minimal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := TextFormatter(&Event{Timestamp: formatTime, Level: LevelInformation, Message: "hi"}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := buf.String(), "2024-03-01T12:30:00Z [Information] hi\n"; got != want {
		t.Errorf("output: got %q, want %q", got, want)
	}
}

func TestHTMLFormatter_EscapesContent(t *testing.T) {
	t.Parallel()

	e := &Event{
		Timestamp: formatTime,
		Level:     LevelError,
		Message:   "<script>alert(1)</script>",
		Err:       errors.New("tag <b> seen"),
	}

	var buf bytes.Buffer
	if err := HTMLFormatter(e, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := buf.String()
	if strings.Contains(got, "<script>") {
		t.Errorf("message not escaped: %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("escaped message missing: %q", got)
	}
	if !strings.Contains(got, "&lt;b&gt;") {
		t.Errorf("error detail not escaped: %q", got)
	}
	if !strings.HasPrefix(got, "<p>") || !strings.HasSuffix(got, "</p>\n") {
		t.Errorf("output not a paragraph: %q", got)
	}
}

func TestSubjectFormatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		level   Level
		message string
		want    string
	}{
		{"simple", LevelError, "boom", "[Error] boom"},
		{"first line only", LevelFatal, "line one\nline two", "[Fatal] line one"},
		{"carriage return", LevelWarning, "head\r\ntail", "[Warning] head"},
		{"empty message", LevelInformation, "", "[Information] "},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			err := SubjectFormatter(&Event{Level: tt.level, Message: tt.message}, &buf)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("subject: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatProperties_SortedAndEmpty(t *testing.T) {
	t.Parallel()

	if got := formatProperties(nil); got != "" {
		t.Errorf("nil properties: got %q, want empty", got)
	}
	if got := formatProperties(map[string]any{}); got != "" {
		t.Errorf("empty properties: got %q, want empty", got)
	}

	got := formatProperties(map[string]any{"b": 2, "a": 1, "c": "x"})
	if want := "a=1, b=2, c=x"; got != want {
		t.Errorf("properties: got %q, want %q", got, want)
	}
}
