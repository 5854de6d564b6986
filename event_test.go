package emailsink

import "testing"

func TestLevelString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level Level
		want  string
	}{
		{LevelVerbose, "Verbose"},
		{LevelDebug, "Debug"},
		{LevelInformation, "Information"},
		{LevelWarning, "Warning"},
		{LevelError, "Error"},
		{LevelFatal, "Fatal"},
		{Level(42), "Unknown"},
	}

	for _, tt := range tests {
		tt := tt
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String(): got %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLevelOrdering(t *testing.T) {
	t.Parallel()

	order := []Level{LevelVerbose, LevelDebug, LevelInformation, LevelWarning, LevelError, LevelFatal}
	for i := 1; i < len(order); i++ {
		if order[i-1] >= order[i] {
			t.Errorf("%s should be less severe than %s", order[i-1], order[i])
		}
	}
}
