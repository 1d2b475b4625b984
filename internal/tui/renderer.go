package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders tutor replies through glamour.
// Replies are plain text with occasional markdown emphasis; auto style picks
// light or dark based on the terminal background.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)

	return func(text string) (string, error) {
		return r.Render(text)
	}
}
