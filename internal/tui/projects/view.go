package projects

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/reportdeck/reportdeck/internal/model"
	"github.com/reportdeck/reportdeck/internal/ui"
)

// projectItem is one project row with its outcome tallies.
type projectItem struct {
	name  string
	stats model.Stats
}

func (p projectItem) Title() string {
	return fmt.Sprintf("%s  %s  %s %s %s %s",
		p.name,
		ui.StyleMuted.Render(fmt.Sprintf("%d tests", p.stats.Total)),
		ui.StyleSuccess.Render(fmt.Sprintf("%d passed", p.stats.Expected)),
		ui.StyleFailure.Render(fmt.Sprintf("%d failed", p.stats.Unexpected)),
		ui.StyleWarning.Render(fmt.Sprintf("%d flaky", p.stats.Flaky)),
		ui.StyleMuted.Render(fmt.Sprintf("%d skipped", p.stats.Skipped)),
	)
}

func (p projectItem) Description() string { return "" }
func (p projectItem) FilterValue() string { return p.name }

// Model lists the report's projects; picking one narrows the file view
// to that project.
type Model struct {
	list    list.Model
	width   int
	height  int
	loading bool
	err     error
}

func New() Model {
	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(1)
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.KeyMap.Filter = key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter"))
	l.DisableQuitKeybindings()

	return Model{list: l, loading: true}
}

func (m Model) SelectedProject() string {
	if item, ok := m.list.SelectedItem().(projectItem); ok {
		return item.name
	}
	return ""
}

func (m Model) IsFiltering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.ReportLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.Report.ProjectNames))
		for _, name := range msg.Report.ProjectNames {
			items = append(items, projectItem{name: name, stats: projectStats(msg.Report, name)})
		}
		return m, m.list.SetItems(items)

	case tea.KeyMsg:
		if m.IsFiltering() {
			break
		}
		if msg.Type == tea.KeyEnter {
			if name := m.SelectedProject(); name != "" {
				return m, func() tea.Msg { return ui.ProjectPickedMsg{Name: name} }
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// projectStats tallies outcomes over every test belonging to a project.
func projectStats(rep *model.Report, name string) model.Stats {
	var s model.Stats
	for _, file := range rep.Files {
		for _, t := range file.Tests {
			if !strings.EqualFold(t.ProjectName, name) {
				continue
			}
			s.Total++
			switch t.Outcome {
			case model.OutcomeExpected:
				s.Expected++
			case model.OutcomeUnexpected:
				s.Unexpected++
			case model.OutcomeFlaky:
				s.Flaky++
			case model.OutcomeSkipped:
				s.Skipped++
			}
		}
	}
	return s
}

func (m Model) View() string {
	if m.loading {
		return "\n  Loading report..."
	}
	if m.err != nil {
		return fmt.Sprintf("\n  Error: %v", m.err)
	}
	if len(m.list.Items()) == 0 {
		return "\n  No projects in this report"
	}
	return m.list.View()
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{ui.Keys.Enter, ui.Keys.Back, ui.Keys.Filter}
}
