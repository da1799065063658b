// Package tui renders the task list as a Bubble Tea program. Every action is
// routed through app.Service.Press using the same stable affordance IDs the
// CLI accepts, so the screen and the command line stay interchangeable.
package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tasklist/app"
	"tasklist/model"
	"tasklist/view"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

func (f focusArea) String() string {
	if f == focusInput {
		return "input"
	}
	return "list"
}

type Model struct {
	svc    *app.Service
	frame  view.Frame
	styles styles

	input textinput.Model
	keys  keyMap
	help  help.Model

	focus    focusArea
	cursor   int
	showHelp bool

	status    string
	statusErr bool

	width  int
	height int

	unsubscribe func()
	copyFn      func(string) error
}

// NewModel builds the screen for svc. The model re-derives its frame on every
// state change the service publishes.
func NewModel(svc *app.Service) *Model {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.Prompt = "› "
	ti.CharLimit = 500
	ti.Focus()

	m := &Model{
		svc:    svc,
		input:  ti,
		keys:   defaultKeyMap(),
		help:   help.New(),
		focus:  focusInput,
		copyFn: clipboard.WriteAll,
	}
	m.unsubscribe = svc.Subscribe(m.onChange)
	m.onChange(svc.State())
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.viewportWidth()
		m.input.Width = clamp(m.viewportWidth()-12, 10, 120)
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, m.quit()
		}
		if m.focus == focusInput {
			return m, m.updateInputMode(msg)
		}
		if quit := m.updateListMode(msg); quit {
			return m, m.quit()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateInputMode(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.submit()
		return nil
	case key.Matches(msg, m.keys.Blur):
		m.focusOn(focusList)
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) updateListMode(msg tea.KeyMsg) bool {
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
			m.showHelp = false
			return false
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return true
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Focus):
		m.focusOn(focusInput)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selectedTask(); ok {
			m.press(model.ToggleAffordance(t.ID), "")
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selectedTask(); ok {
			m.press(model.DeleteAffordance(t.ID), "")
			m.setStatus("Deleted "+truncateRunes(t.Text, 40), false)
		}
	case key.Matches(msg, m.keys.FilterAll):
		m.press(model.AffordanceFilterAll, "")
	case key.Matches(msg, m.keys.FilterActive):
		m.press(model.AffordanceFilterActive, "")
	case key.Matches(msg, m.keys.FilterDone):
		m.press(model.AffordanceFilterDone, "")
	case key.Matches(msg, m.keys.CycleFilter):
		m.press(model.FilterAffordance(m.frame.Filter.Next()), "")
	case key.Matches(msg, m.keys.ClearCompleted):
		m.clearCompleted()
	case key.Matches(msg, m.keys.Theme):
		m.press(model.AffordanceThemeToggle, "")
	case key.Matches(msg, m.keys.Copy):
		m.copyActiveTodos()
	}
	return false
}

func (m *Model) submit() {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		return
	}
	m.press(model.AffordanceAdd, text)
	m.input.Reset()
	m.setStatus("Added "+truncateRunes(strings.TrimSpace(text), 40), false)
}

func (m *Model) clearCompleted() {
	if !m.frame.ShowClearCompleted {
		m.setStatus("Nothing to clear", false)
		return
	}
	n := m.frame.CompletedCount
	m.press(model.AffordanceClearCompleted, "")
	m.setStatus(fmt.Sprintf("Cleared %d completed", n), false)
}

func (m *Model) copyActiveTodos() {
	tasks := view.FilterTasks(m.svc.Tasks(), model.FilterActive)
	if len(tasks) == 0 {
		m.setStatus("No active todos to copy", false)
		return
	}

	parts := make([]string, 0, len(tasks))
	for _, t := range tasks {
		parts = append(parts, "- "+strings.TrimSpace(strings.ReplaceAll(t.Text, "\n", " ")))
	}
	if err := m.copyFn(strings.Join(parts, "\n")); err != nil {
		m.setStatus("Copy failed: "+err.Error(), true)
		return
	}
	m.setStatus(fmt.Sprintf("Copied %d todos to the clipboard", len(parts)), false)
}

// press routes one affordance through the service. Persistence failures are
// logged by the service and never reach the screen.
func (m *Model) press(id, input string) {
	if err := m.svc.Press(id, input); err != nil {
		m.setStatus(err.Error(), true)
	}
}

func (m *Model) onChange(st model.State) {
	m.frame = view.Derive(st)
	m.styles = newStyles(m.frame.Palette)
	m.help.Styles = helpStyles(m.frame.Palette)
	m.input.PromptStyle = lipgloss.NewStyle().Foreground(m.frame.Palette.Accent)
	m.input.TextStyle = lipgloss.NewStyle().Foreground(m.frame.Palette.Text)
	m.input.PlaceholderStyle = lipgloss.NewStyle().Foreground(m.frame.Palette.Muted)
	m.ensureSelection()
}

func (m *Model) focusOn(f focusArea) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
		return
	}
	m.input.Blur()
	m.ensureSelection()
}

func (m *Model) quit() tea.Cmd {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	return tea.Quit
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) moveCursor(delta int) {
	if len(m.frame.Tasks) == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.frame.Tasks)-1)
}

func (m *Model) ensureSelection() {
	if len(m.frame.Tasks) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = clamp(m.cursor, 0, len(m.frame.Tasks)-1)
}

func (m *Model) selectedTask() (model.Task, bool) {
	if len(m.frame.Tasks) == 0 {
		return model.Task{}, false
	}
	return m.frame.Tasks[m.cursor], true
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	s := m.styles
	width := m.viewportWidth()
	cardW := clamp(width-6, 20, 100)

	header := lipgloss.JoinHorizontal(lipgloss.Left,
		s.title.Render("todos"),
		s.themeHint.Render(fmt.Sprintf("  %s theme • focus: %s", view.ThemeName(m.frame.Dark), m.focus)),
	)

	inputCard := s.card
	if m.focus == focusInput {
		inputCard = s.cardFocused
	}
	input := inputCard.Width(cardW).Render(m.input.View())

	listCard := s.card
	if m.focus == focusList {
		listCard = s.cardFocused
	}
	list := listCard.Width(cardW).Render(m.renderTasks(cardW - 4))

	sections := []string{header, "", input, m.renderFilters(), list}
	if m.frame.ShowFooter {
		sections = append(sections, m.renderCounter())
	}
	if m.showHelp {
		sections = append(sections, m.renderHelpOverlay(cardW))
	}

	statusStyle := s.status
	if m.statusErr {
		statusStyle = s.statusErr
	}
	sections = append(sections, "", m.renderFooter(m.status, statusStyle))

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return s.app.Width(width).Height(m.height).Render(body)
}

func (m *Model) renderTasks(width int) string {
	s := m.styles
	if len(m.frame.Tasks) == 0 {
		return s.empty.Render(m.frame.EmptyMessage)
	}

	rows := make([]string, 0, len(m.frame.Tasks))
	for i, t := range m.frame.Tasks {
		selected := m.focus == focusList && i == m.cursor

		pointer := "  "
		if selected {
			pointer = "› "
		}
		box := s.checkOpen.Render("[ ]")
		if t.Completed {
			box = s.checkDone.Render("[x]")
		}

		text := truncateRunes(t.Text, width-6)
		switch {
		case t.Completed:
			text = s.textDone.Render(text)
		case selected:
			text = s.rowSelected.Render(text)
		default:
			text = s.row.Render(text)
		}
		rows = append(rows, pointer+box+" "+text)
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderFilters() string {
	parts := make([]string, 0, len(model.Filters))
	for i, f := range model.Filters {
		label := fmt.Sprintf("%d %s", i+1, filterLabel(f))
		if f == m.frame.Filter {
			parts = append(parts, m.styles.filterOn.Render(label))
			continue
		}
		parts = append(parts, m.styles.filter.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}

func (m *Model) renderCounter() string {
	line := m.styles.counter.Render(view.ItemsLeft(m.frame.ActiveCount))
	if m.frame.ShowClearCompleted {
		line += "   " + m.styles.clear.Render("c: Clear completed")
	}
	return line
}

func (m *Model) renderFooter(statusText string, statusStyle lipgloss.Style) string {
	left := strings.TrimSpace(statusText)
	if left == "" {
		left = "Ready"
	}

	var right string
	if m.focus == focusInput {
		right = m.help.View(inputHelp{k: m.keys})
	} else {
		right = m.help.View(m.keys)
	}

	width := m.viewportWidth() - 4
	leftW := utf8.RuneCountInString(left)
	rightW := lipgloss.Width(right)
	if leftW+rightW+1 > width {
		maxLeft := width - rightW - 1
		if maxLeft < 8 {
			maxLeft = 8
		}
		left = truncateRunes(left, maxLeft)
		leftW = utf8.RuneCountInString(left)
	}

	padding := width - leftW - rightW
	if padding < 1 {
		padding = 1
	}
	return statusStyle.Render(left) + strings.Repeat(" ", padding) + right
}

// renderHelpOverlay lists every visible affordance with its key and stable ID.
func (m *Model) renderHelpOverlay(width int) string {
	s := m.styles
	lines := []string{s.title.Render("Shortcuts"), ""}
	for _, a := range view.Affordances(m.frame) {
		label := truncateRunes(a.Label, 32)
		lines = append(lines, fmt.Sprintf("%s  %-32s %s",
			s.overlayKey.Render(fmt.Sprintf("%-6s", a.Key)),
			label,
			s.overlayID.Render(a.ID),
		))
	}
	lines = append(lines, "", m.help.FullHelpView(m.keys.FullHelp()))
	return s.overlay.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) viewportWidth() int {
	if m.width <= 0 {
		return 1
	}
	// One column is reserved so the right border never wraps.
	if m.width > 1 {
		return m.width - 1
	}
	return m.width
}

func filterLabel(f model.Filter) string {
	switch f {
	case model.FilterActive:
		return "Active"
	case model.FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
