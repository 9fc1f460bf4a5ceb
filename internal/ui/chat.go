package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zhubert/jockey/internal/stream"
)

type entryKind int

const (
	entryQuestion entryKind = iota
	entryCard
	entryTool
	entryError
	entrySystem
)

// entry is one item in the chat history. Cards keep the message so they
// can be re-rendered at a new width.
type entry struct {
	kind entryKind
	text string
	msg  stream.DisplayMessage
}

// Chat is the main chat component: message viewport, input and launch button.
type Chat struct {
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	button   LaunchButton
	width    int
	height   int

	entries []entry
	started time.Time
	status  string
}

// NewChat creates a new chat component.
func NewChat() *Chat {
	ti := textinput.New()
	ti.Placeholder = "Ask about your videos..."
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorTool)

	return &Chat{
		viewport: viewport.New(80, 20),
		input:    ti,
		spinner:  sp,
	}
}

// SetSize updates the chat component dimensions.
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	vpHeight := height - InputHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	c.viewport.Width = width
	c.viewport.Height = vpHeight

	inputWidth := width - lipgloss.Width(c.button.View()) - 4
	if inputWidth < 10 {
		inputWidth = 10
	}
	c.input.Width = inputWidth

	c.updateContent()
}

// Focus gives focus to the text input.
func (c *Chat) Focus() tea.Cmd {
	return c.input.Focus()
}

// InputValue returns the current text input value.
func (c *Chat) InputValue() string {
	return c.input.Value()
}

// ResetInput clears the text input.
func (c *Chat) ResetInput() {
	c.input.Reset()
}

// SetProcessing disables the launch button and shows the spinner while a
// run is in flight. The returned command drives the spinner.
func (c *Chat) SetProcessing(on bool) tea.Cmd {
	c.button.SetDisabled(on)
	c.status = ""
	c.updateContent()
	if on {
		c.started = time.Now()
		return c.spinner.Tick
	}
	return nil
}

// Processing reports whether the launch button is disabled.
func (c *Chat) Processing() bool {
	return c.button.Disabled()
}

// ButtonLabel returns the launch button's current label.
func (c *Chat) ButtonLabel() string {
	return c.button.Label()
}

// SetStatus replaces the text shown next to the spinner.
func (c *Chat) SetStatus(text string) {
	c.status = text
	c.updateContent()
}

// AddQuestion appends the question that started a run.
func (c *Chat) AddQuestion(text string) {
	c.add(entry{kind: entryQuestion, text: text})
}

// AddCard appends a finalized message card.
func (c *Chat) AddCard(msg stream.DisplayMessage) {
	c.add(entry{kind: entryCard, msg: msg})
}

// AddToolStart appends a tool notification.
func (c *Chat) AddToolStart(name string) {
	c.add(entry{kind: entryTool, text: name})
}

// AddErrorMessage appends an error message to the history.
func (c *Chat) AddErrorMessage(text string) {
	c.add(entry{kind: entryError, text: text})
}

// AddSystemMessage appends a system message to the history.
func (c *Chat) AddSystemMessage(text string) {
	c.add(entry{kind: entrySystem, text: text})
}

// Clear empties the history.
func (c *Chat) Clear() {
	c.entries = nil
	c.updateContent()
}

// Len returns the number of history entries.
func (c *Chat) Len() int {
	return len(c.entries)
}

func (c *Chat) add(e entry) {
	c.entries = append(c.entries, e)
	c.updateContent()
}

// Update handles messages for the chat component.
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	var cmds []tea.Cmd

	if _, ok := msg.(spinner.TickMsg); ok {
		if !c.button.Disabled() {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		c.updateContent()
		return c, cmd
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	c.viewport, cmd = c.viewport.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	return c, tea.Batch(cmds...)
}

// View renders the chat component.
func (c *Chat) View() string {
	inputRow := lipgloss.JoinHorizontal(lipgloss.Center, c.input.View(), "  ", c.button.View())
	return lipgloss.JoinVertical(lipgloss.Left, c.viewport.View(), "", inputRow)
}

func (c *Chat) updateContent() {
	width := c.width
	if width <= 0 {
		width = GetViewContext().Width()
	}

	var parts []string
	for _, e := range c.entries {
		switch e.kind {
		case entryQuestion:
			parts = append(parts, RenderQuestion(e.text))
		case entryCard:
			parts = append(parts, RenderCard(e.msg, width-2))
		case entryTool:
			parts = append(parts, RenderToolStart(e.text))
		case entryError:
			parts = append(parts, RenderErrorMessage(e.text))
		case entrySystem:
			parts = append(parts, RenderSystemMessage(e.text))
		}
	}

	if c.button.Disabled() {
		parts = append(parts, c.renderSpinner())
	}

	c.viewport.SetContent(strings.Join(parts, "\n"))
	c.viewport.GotoBottom()
}

func (c *Chat) renderSpinner() string {
	verb := "Thinking"
	if c.status != "" {
		verb = c.status
	}
	elapsed := time.Since(c.started).Truncate(time.Second)
	return c.spinner.View() + DimStyle.Render(fmt.Sprintf(" %s... %s", verb, elapsed))
}
