package emailsink

import (
	"testing"
	"time"
)

func TestParseAddresses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from     string
		to       string
		wantFrom string
		wantTo   []string
		wantErr  bool
	}{
		{
			name:     "single recipient",
			from:     "a@x.com",
			to:       "b@x.com",
			wantFrom: "a@x.com",
			wantTo:   []string{"b@x.com"},
		},
		{
			name:     "comma delimited",
			from:     "a@x.com",
			to:       "b@x.com,c@x.com",
			wantFrom: "a@x.com",
			wantTo:   []string{"b@x.com", "c@x.com"},
		},
		{
			name:     "semicolon delimited with spaces",
			from:     "a@x.com",
			to:       " b@x.com ; c@x.com ,d@x.com",
			wantFrom: "a@x.com",
			wantTo:   []string{"b@x.com", "c@x.com", "d@x.com"},
		},
		{
			name:     "display names reduce to mailbox addresses",
			from:     "Alerts <alerts@x.com>",
			to:       "Ops <ops@x.com>",
			wantFrom: "alerts@x.com",
			wantTo:   []string{"ops@x.com"},
		},
		{
			name:    "malformed from",
			from:    "not-an-address",
			to:      "b@x.com",
			wantErr: true,
		},
		{
			name:    "malformed recipient",
			from:    "a@x.com",
			to:      "b@x.com,@@@",
			wantErr: true,
		},
		{
			name:    "no recipients",
			from:    "a@x.com",
			to:      "",
			wantErr: true,
		},
		{
			name:    "only delimiters",
			from:    "a@x.com",
			to:      " , ; ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cs := &ConnectionSettings{From: tt.from, To: tt.to}
			from, to, err := cs.parseAddresses()

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if from != tt.wantFrom {
				t.Errorf("from: got %q, want %q", from, tt.wantFrom)
			}
			if len(to) != len(tt.wantTo) {
				t.Fatalf("to: got %v, want %v", to, tt.wantTo)
			}
			for i := range to {
				if to[i] != tt.wantTo[i] {
					t.Errorf("to[%d]: got %q, want %q", i, to[i], tt.wantTo[i])
				}
			}
		})
	}
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	cs := &ConnectionSettings{}
	if got := cs.timeout(); got != defaultTimeout {
		t.Errorf("default timeout: got %v, want %v", got, defaultTimeout)
	}

	cs.Timeout = 3 * time.Second
	if got := cs.timeout(); got != 3*time.Second {
		t.Errorf("configured timeout: got %v, want %v", got, 3*time.Second)
	}
}
