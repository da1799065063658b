package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"tasklist/view"
)

// styles is rebuilt from the palette whenever the theme flag changes.
type styles struct {
	app         lipgloss.Style
	title       lipgloss.Style
	themeHint   lipgloss.Style
	card        lipgloss.Style
	cardFocused lipgloss.Style
	row         lipgloss.Style
	rowSelected lipgloss.Style
	checkOpen   lipgloss.Style
	checkDone   lipgloss.Style
	textDone    lipgloss.Style
	empty       lipgloss.Style
	filter      lipgloss.Style
	filterOn    lipgloss.Style
	counter     lipgloss.Style
	clear       lipgloss.Style
	status      lipgloss.Style
	statusErr   lipgloss.Style
	overlay     lipgloss.Style
	overlayKey  lipgloss.Style
	overlayID   lipgloss.Style
}

func newStyles(p view.Palette) styles {
	base := lipgloss.NewStyle().Background(p.Background)
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Background(p.Card).
		Padding(0, 1)

	return styles{
		app:         base.Foreground(p.Text).Padding(1, 2),
		title:       lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		themeHint:   lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		card:        card,
		cardFocused: card.BorderForeground(p.Accent),
		row:         lipgloss.NewStyle().Foreground(p.Text),
		rowSelected: lipgloss.NewStyle().Foreground(p.Accent).Background(p.Card).Bold(true),
		checkOpen:   lipgloss.NewStyle().Foreground(p.Muted),
		checkDone:   lipgloss.NewStyle().Foreground(p.Done),
		textDone:    lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true),
		empty:       lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		filter:      lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 1),
		filterOn:    lipgloss.NewStyle().Foreground(p.Accent).Bold(true).Underline(true).Padding(0, 1),
		counter:     lipgloss.NewStyle().Foreground(p.Muted),
		clear:       lipgloss.NewStyle().Foreground(p.Danger),
		status:      lipgloss.NewStyle().Foreground(p.Done),
		statusErr:   lipgloss.NewStyle().Foreground(p.Danger).Bold(true),
		overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),
		overlayKey: lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		overlayID:  lipgloss.NewStyle().Foreground(p.Muted),
	}
}

func helpStyles(p view.Palette) help.Styles {
	key := lipgloss.NewStyle().Foreground(p.Accent)
	desc := lipgloss.NewStyle().Foreground(p.Muted)
	sep := lipgloss.NewStyle().Foreground(p.Border)
	return help.Styles{
		Ellipsis:       sep,
		ShortKey:       key,
		ShortDesc:      desc,
		ShortSeparator: sep,
		FullKey:        key,
		FullDesc:       desc,
		FullSeparator:  sep,
	}
}
