package widget

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/smokyabdulrahman/prayer-widget/internal/display"
)

// styles holds the lipgloss styles of the widget.
type styles struct {
	Title       lipgloss.Style
	Date        lipgloss.Style
	Location    lipgloss.Style
	Card        lipgloss.Style
	CardActive  lipgloss.Style
	NightCard   lipgloss.Style
	NightActive lipgloss.Style
	CardName    lipgloss.Style
	CardTime    lipgloss.Style
	Night       lipgloss.Style
	Method      lipgloss.Style
	Next        lipgloss.Style
	Timer       lipgloss.Style
	Help        lipgloss.Style
	Error       lipgloss.Style
	Spinner     lipgloss.Style
}

func defaultStyles() styles {
	card := display.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(display.Border).
		Padding(0, 1).
		Width(cardWidth).
		Align(lipgloss.Center)

	return styles{
		Title:       display.NewStyle().Bold(true).Foreground(display.Primary),
		Date:        display.NewStyle().Foreground(display.Muted),
		Location:    display.NewStyle().Italic(true),
		Card:        card,
		CardActive:  active(card),
		NightCard:   card.Width(nightCardWidth),
		NightActive: active(card.Width(nightCardWidth)),
		CardName:    display.NewStyle(),
		CardTime:    display.NewStyle().Bold(true),
		Night:       display.NewStyle().MarginTop(1),
		Method:      display.NewStyle().Foreground(display.Muted).MarginTop(1),
		Next:        display.NewStyle().Bold(true).Foreground(display.Gold).MarginTop(1),
		Timer:       display.NewStyle().Bold(true).Foreground(display.Accent),
		Help:        display.NewStyle().Faint(true).MarginTop(1),
		Error:       display.NewStyle().Foreground(display.Danger),
		Spinner:     display.NewStyle().Foreground(display.Accent),
	}
}

func active(card lipgloss.Style) lipgloss.Style {
	return card.BorderForeground(display.Accent).Foreground(display.Accent).Bold(true)
}

const (
	cardWidth      = 14
	nightCardWidth = 24
)
