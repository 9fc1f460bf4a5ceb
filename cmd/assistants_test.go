package cmd

import (
	"testing"
	"time"
)

func TestFormatTime(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{name: "zero", t: time.Time{}, want: "-"},
		{name: "seconds", t: now.Add(-10 * time.Second), want: "just now"},
		{name: "minutes", t: now.Add(-5*time.Minute - time.Second), want: "5m ago"},
		{name: "hours", t: now.Add(-3*time.Hour - time.Second), want: "3h ago"},
		{name: "days", t: now.Add(-2*24*time.Hour - time.Second), want: "2d ago"},
		{
			name: "old",
			t:    time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC),
			want: "Mar 5, 2024",
		},
	}

	for _, tt := range tests {
		if got := formatTime(tt.t); got != tt.want {
			t.Errorf("%s: formatTime() = %q, want %q", tt.name, got, tt.want)
		}
	}
}
