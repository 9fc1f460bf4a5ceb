package ui

import (
	"strings"
	"testing"
)

func TestLaunchButton(t *testing.T) {
	t.Parallel()

	var b LaunchButton
	if b.Disabled() {
		t.Fatal("button should start enabled")
	}
	if b.Label() != LaunchLabel {
		t.Errorf("Label() = %q, want %q", b.Label(), LaunchLabel)
	}

	b.SetDisabled(true)
	if b.Label() != ProcessingLabel {
		t.Errorf("Label() = %q, want %q", b.Label(), ProcessingLabel)
	}
	if !strings.Contains(b.View(), ProcessingLabel) {
		t.Errorf("View() = %q", b.View())
	}

	b.SetDisabled(false)
	if b.Label() != LaunchLabel {
		t.Errorf("Label() after re-enable = %q", b.Label())
	}
}
