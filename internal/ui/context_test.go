package ui

import "testing"

func TestViewContext_UpdateTerminalSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		width       int
		height      int
		wantContent int
	}{
		{name: "normal terminal size", width: 80, height: 24, wantContent: 20},
		{name: "large terminal", width: 120, height: 40, wantContent: 36},
		{name: "small terminal", width: 60, height: 10, wantContent: 6},
		{name: "minimum content height", width: 40, height: 4, wantContent: 1},
		{name: "negative calculation clamps", width: 20, height: 2, wantContent: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := &ViewContext{}
			ctx.UpdateTerminalSize(tt.width, tt.height)

			if ctx.TerminalWidth != tt.width {
				t.Errorf("TerminalWidth = %d, want %d", ctx.TerminalWidth, tt.width)
			}
			if ctx.TerminalHeight != tt.height {
				t.Errorf("TerminalHeight = %d, want %d", ctx.TerminalHeight, tt.height)
			}
			if ctx.ContentHeight != tt.wantContent {
				t.Errorf("ContentHeight = %d, want %d", ctx.ContentHeight, tt.wantContent)
			}
			if ctx.Width() != tt.width {
				t.Errorf("Width() = %d, want %d", ctx.Width(), tt.width)
			}
		})
	}
}

func TestGetViewContext(t *testing.T) {
	t.Parallel()

	ctx := GetViewContext()
	if ctx == nil {
		t.Fatal("GetViewContext() returned nil")
	}
	if ctx != GetViewContext() {
		t.Error("GetViewContext() should return the same instance")
	}
}
