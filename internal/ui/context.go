package ui

import "sync"

// Fixed layout heights shared by the app view.
const (
	HeaderHeight = 1
	FooterHeight = 1
	InputHeight  = 2
)

// ViewContext holds terminal sizing information used by all components.
type ViewContext struct {
	TerminalWidth  int
	TerminalHeight int
	ContentHeight  int

	mu sync.Mutex
}

var (
	viewContext *ViewContext
	ctxOnce     sync.Once
)

// GetViewContext returns the singleton ViewContext, sized 80x24 until the
// first resize.
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		viewContext = &ViewContext{}
		viewContext.UpdateTerminalSize(80, 24)
	})
	return viewContext
}

// UpdateTerminalSize recalculates layout dimensions.
func (v *ViewContext) UpdateTerminalSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.TerminalWidth = width
	v.TerminalHeight = height
	v.ContentHeight = height - HeaderHeight - FooterHeight - InputHeight
	if v.ContentHeight < 1 {
		v.ContentHeight = 1
	}
}

// Width returns the current terminal width.
func (v *ViewContext) Width() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.TerminalWidth
}
