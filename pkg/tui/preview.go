package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// letterPreview shows the composed letter rendered as markdown
type letterPreview struct {
	active   bool
	markdown string
	view     viewport.Model
}

func newLetterPreview() *letterPreview {
	return &letterPreview{view: viewport.New(80, 20)}
}

// Open renders markdown for the given size. Rendering failures fall back
// to the raw markdown.
func (p *letterPreview) Open(markdown string, width, height int) {
	p.active = true
	p.markdown = markdown
	p.view.Width = width
	p.view.Height = height
	p.view.SetContent(renderMarkdown(markdown, width))
	p.view.GotoTop()
}

func (p *letterPreview) Close() { p.active = false }

func (p *letterPreview) Active() bool { return p.active }

func renderMarkdown(markdown string, width int) string {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
