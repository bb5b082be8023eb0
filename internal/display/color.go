// Package display holds the lipgloss palette and the table renderer shared by
// the one-shot commands and the live widget.
//
// It respects the NO_COLOR environment variable (https://no-color.org/) and
// disables styling when stdout is not a terminal.
package display

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Palette. Adaptive colors pick the light or dark variant from the
// terminal background.
var (
	Primary = lipgloss.AdaptiveColor{Light: "#101F38", Dark: "#8BC34A"}
	Accent  = lipgloss.AdaptiveColor{Light: "#00838F", Dark: "#4DD0E1"}
	Muted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	Border  = lipgloss.AdaptiveColor{Light: "#dce0e5", Dark: "#2a3850"}
	Gold    = lipgloss.Color("#FFC107")
	Danger  = lipgloss.Color("#e53935")
)

var (
	renderer = lipgloss.NewRenderer(os.Stdout)
	enabled  bool
)

func init() {
	SetEnabled(shouldEnable())
}

func shouldEnable() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SetEnabled overrides the auto-detected color state.
// --json and tests use it to force plain output.
func SetEnabled(b bool) {
	enabled = b
	if b {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
}

// Enabled reports whether color output is currently active.
func Enabled() bool {
	return enabled
}

// NewStyle returns a style bound to the shared renderer.
func NewStyle() lipgloss.Style {
	return renderer.NewStyle()
}

// Bold returns text rendered in bold.
func Bold(text string) string {
	return NewStyle().Bold(true).Render(text)
}

// Dim returns text rendered faint.
func Dim(text string) string {
	return NewStyle().Faint(true).Render(text)
}

// Gray returns text in the muted color.
func Gray(text string) string {
	return NewStyle().Foreground(Muted).Render(text)
}

// Highlight renders the next event: bold in the accent color.
func Highlight(text string) string {
	return NewStyle().Bold(true).Foreground(Accent).Render(text)
}

// Warn renders text in the warning color.
func Warn(text string) string {
	return NewStyle().Foreground(Gold).Render(text)
}

// Error renders text in the error color.
func Error(text string) string {
	return NewStyle().Foreground(Danger).Render(text)
}
