package searchbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/reportdeck/reportdeck/internal/ui"
)

// Model is the one-line query editor. It is seeded with the current q
// value when opened, so editing always starts from the live filter.
type Model struct {
	input  textinput.Model
	active bool
	width  int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "@tag  p:project  s:status  free text"
	ti.CharLimit = 256
	ti.Prompt = " / "
	ti.PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary)
	return Model{input: ti}
}

// Open activates the bar with the given query preloaded.
func (m *Model) Open(query string) tea.Cmd {
	m.active = true
	m.input.SetValue(query)
	m.input.CursorEnd()
	m.input.Focus()
	return textinput.Blink
}

func (m Model) IsActive() bool {
	return m.active
}

func (m *Model) SetWidth(w int) {
	m.width = w
	m.input.Width = w - 6
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			m.active = false
			m.input.Blur()
			query := strings.TrimSpace(m.input.Value())
			return m, func() tea.Msg { return ui.QueryChangedMsg{Query: query} }
		case "esc":
			m.active = false
			m.input.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.active {
		return ""
	}
	return m.input.View()
}
