package view

import "github.com/charmbracelet/lipgloss"

// Palette holds the color tokens of one theme.
type Palette struct {
	Background lipgloss.Color
	Card       lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Accent     lipgloss.Color
	Done       lipgloss.Color
	Danger     lipgloss.Color
}

var (
	darkPalette = Palette{
		Background: lipgloss.Color("#111827"),
		Card:       lipgloss.Color("#1F2937"),
		Text:       lipgloss.Color("#F9FAFB"),
		Muted:      lipgloss.Color("#9CA3AF"),
		Border:     lipgloss.Color("#374151"),
		Accent:     lipgloss.Color("#7C3AED"),
		Done:       lipgloss.Color("#10B981"),
		Danger:     lipgloss.Color("#EF4444"),
	}

	lightPalette = Palette{
		Background: lipgloss.Color("#F3F4F6"),
		Card:       lipgloss.Color("#FFFFFF"),
		Text:       lipgloss.Color("#111827"),
		Muted:      lipgloss.Color("#6B7280"),
		Border:     lipgloss.Color("#D1D5DB"),
		Accent:     lipgloss.Color("#6D28D9"),
		Done:       lipgloss.Color("#047857"),
		Danger:     lipgloss.Color("#B91C1C"),
	}
)

// PaletteFor returns the dark palette when dark is true, else the light one.
func PaletteFor(dark bool) Palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}

// ThemeName is the label of the theme flag.
func ThemeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
