package widget

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/smokyabdulrahman/prayer-widget/internal/i18n"
	"github.com/smokyabdulrahman/prayer-widget/internal/methods"
	"github.com/smokyabdulrahman/prayer-widget/internal/prayer"
)

// View renders the widget.
func (m Model) View() string {
	lang := m.settings.Lang
	s := m.styles

	if m.snap == nil {
		var body string
		if m.err != nil {
			body = s.Error.Render("error: " + m.err.Error())
		} else {
			body = m.spinner.View() + " " + i18n.T(lang, i18n.KeyLoading)
		}
		return m.align(lipgloss.JoinVertical(m.position(), body, s.Help.Render(i18n.T(lang, i18n.KeyHelp)))) + "\n"
	}

	snap := m.snap
	now := m.now.In(snap.TZ)
	cd := snap.Countdown(now)

	header := []string{
		s.Title.Render(i18n.T(lang, i18n.KeyTitle)) + "  " + s.Date.Render("["+i18n.T(lang, i18n.KeyToggle)+"]"),
		s.Date.Render(i18n.Gregorian(lang, now)),
	}
	if h := i18n.Hijri(lang, snap.Today.Date.Hijri); h != "" {
		header = append(header, s.Date.Render(h))
	}
	header = append(header, s.Location.Render(i18n.Location(lang, snap.Location.City, snap.Location.Country)))

	blocks := []string{
		lipgloss.JoinVertical(m.position(), header...),
		m.cards(snap.Prayers, cd),
		s.Night.Render(m.nightPanel(cd)),
		s.Method.Render(i18n.T(lang, i18n.KeyMethod) + ": " + m.methodLabel() + "  ‹m/M›"),
		s.Next.Render(i18n.NextLabel(lang, cd.Event.Name)) + "  " + s.Timer.Render(cd.String()),
	}
	if m.err != nil {
		blocks = append(blocks, s.Error.Render("error: "+m.err.Error()))
	}
	if m.loading {
		blocks = append(blocks, m.spinner.View())
	}
	blocks = append(blocks, s.Help.Render(i18n.T(lang, i18n.KeyHelp)))

	return m.align(lipgloss.JoinVertical(m.position(), blocks...)) + "\n"
}

// cards renders the six daily prayers side by side, right to left in Arabic.
func (m Model) cards(prayers []prayer.Prayer, cd prayer.Countdown) string {
	rendered := make([]string, 0, len(prayers))
	for _, p := range prayers {
		rendered = append(rendered, m.card(i18n.PrayerName(m.settings.Lang, p.Name), p, cd, m.styles.Card, m.styles.CardActive))
	}
	if m.settings.Lang.RTL() {
		reverse(rendered)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) nightPanel(cd prayer.Countdown) string {
	lang := m.settings.Lang
	night, start := m.snap.Tonight(m.now)
	mid, last := night.At(start, m.snap.TZ)

	panel := []string{
		m.card(i18n.PrayerName(lang, prayer.Midnight), mid, cd, m.styles.NightCard, m.styles.NightActive),
		m.card(i18n.T(lang, i18n.KeyLastThirdOpen), last, cd, m.styles.NightCard, m.styles.NightActive),
	}
	if lang.RTL() {
		reverse(panel)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panel...)
}

func (m Model) card(label string, p prayer.Prayer, cd prayer.Countdown, style, activeStyle lipgloss.Style) string {
	if cd.Highlighted(p.Name) {
		style = activeStyle
	}
	body := m.styles.CardName.Render(label) + "\n" + m.styles.CardTime.Render(p.Time.Format(m.settings.TimeFormat))
	return style.Render(body)
}

func (m Model) methodLabel() string {
	for _, meth := range m.methods {
		if meth.ID == m.settings.Request.Method {
			return meth.Label(m.settings.Lang)
		}
	}
	return methods.Method{ID: m.settings.Request.Method}.Key()
}

// Highlighted reports the event the countdown currently points to.
func (m Model) Highlighted() string {
	if m.snap == nil {
		return ""
	}
	return m.snap.Countdown(m.now).Event.Name
}

func (m Model) position() lipgloss.Position {
	if m.settings.Lang.RTL() {
		return lipgloss.Right
	}
	return lipgloss.Left
}

// align pushes Arabic output against the right edge of the terminal.
func (m Model) align(content string) string {
	if m.width <= 0 || !m.settings.Lang.RTL() {
		return content
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, content)
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
