package ui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const minWrapWidth = 20

var (
	renderersMu sync.Mutex
	renderers   = map[string]*glamour.TermRenderer{}
)

// MarkdownStyle is the glamour style used for message bodies. Set it to
// "notty" before rendering when output is not a terminal.
var MarkdownStyle = "dark"

// RenderMarkdown renders content with glamour, wrapped to width. The raw
// content is returned if rendering fails.
func RenderMarkdown(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	r, err := renderer(MarkdownStyle, width)
	if err != nil {
		return content
	}
	out, err := r.Render(labelCodeBlocks(content))
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

func renderer(style string, width int) (*glamour.TermRenderer, error) {
	if width < minWrapWidth {
		width = minWrapWidth
	}
	key := style + ":" + strconv.Itoa(width)

	renderersMu.Lock()
	defer renderersMu.Unlock()

	if r, ok := renderers[key]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	renderers[key] = r
	return r, nil
}

// labelCodeBlocks marks unlabeled fenced code blocks as text so chroma does
// not guess a lexer for them.
func labelCodeBlocks(content string) string {
	lines := strings.Split(content, "\n")
	open := false
	for i, line := range lines {
		if !strings.HasPrefix(line, "```") {
			continue
		}
		if !open && strings.TrimSpace(strings.TrimPrefix(line, "```")) == "" {
			lines[i] = "```text"
		}
		open = !open
	}
	return strings.Join(lines, "\n")
}
