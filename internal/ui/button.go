package ui

// Button labels.
const (
	LaunchLabel     = "Launch Jockey"
	ProcessingLabel = "Processing..."
)

// LaunchButton is the submit control next to the input. It is disabled
// while a run is in flight.
type LaunchButton struct {
	disabled bool
}

// SetDisabled toggles the disabled state.
func (b *LaunchButton) SetDisabled(on bool) {
	b.disabled = on
}

// Disabled reports whether the button accepts presses.
func (b *LaunchButton) Disabled() bool {
	return b.disabled
}

// Label returns the text shown on the button.
func (b *LaunchButton) Label() string {
	if b.disabled {
		return ProcessingLabel
	}
	return LaunchLabel
}

// View renders the button.
func (b *LaunchButton) View() string {
	if b.disabled {
		return ButtonDisabledStyle.Render(b.Label())
	}
	return ButtonStyle.Render(b.Label())
}
