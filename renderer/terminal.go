package renderer

import "github.com/charmbracelet/glamour"

// Terminal renders markdown for display in a terminal.
//
// style is a glamour standard style ("dark", "light", "notty", ...), the
// style is detected from the terminal when empty.
func Terminal(md string, style string) (string, error) {
	opt := glamour.WithAutoStyle()
	if style != "" {
		opt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(120))
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
