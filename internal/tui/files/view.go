package files

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/reportdeck/reportdeck/internal/badges"
	"github.com/reportdeck/reportdeck/internal/labels"
	"github.com/reportdeck/reportdeck/internal/model"
	"github.com/reportdeck/reportdeck/internal/search"
	"github.com/reportdeck/reportdeck/internal/ui"
)

// --- Items ---

// fileItem is a collapsible panel header for one test file.
type fileItem struct {
	file     *model.TestFile
	matched  int
	expanded bool
}

func (f fileItem) FilterValue() string { return f.file.FileName }

// testItem is one test row inside an expanded file panel.
type testItem struct {
	test        model.TestCase
	labels      []string
	badges      []badges.Badge
	showProject bool
}

func (t testItem) FilterValue() string { return t.test.FullTitle() }

// --- Delegate ---

// rowDelegate renders both item kinds. labelFocus points at the
// model's focused-label index so tag activation can target one label
// on the focused row.
type rowDelegate struct {
	labelFocus *int
}

func (d rowDelegate) Height() int                             { return 2 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	isFocused := index == m.Index()

	var line1, line2 string
	switch it := item.(type) {
	case fileItem:
		arrow := "▸"
		if it.expanded {
			arrow = "▾"
		}
		line1 = fmt.Sprintf(" %s %s  %s", arrow,
			lipgloss.NewStyle().Bold(true).Render(it.file.FileName),
			ui.StyleMuted.Render(fmt.Sprintf("%d tests", it.matched)))
		line2 = ""
	case testItem:
		line1 = d.renderTestLine1(it)
		line2 = d.renderTestLine2(it, isFocused)
	default:
		return
	}

	if isFocused {
		hl := lipgloss.NewStyle().Background(ui.ColorHighlight).Width(m.Width())
		line1 = hl.Render(line1)
		line2 = hl.Render(line2)
	}

	fmt.Fprintf(w, "%s\n%s", line1, line2)
}

func (d rowDelegate) renderTestLine1(it testItem) string {
	icon := ui.StatusIcon(string(it.test.Outcome))
	dur := ui.StyleMuted.Render(ui.FormatMillis(it.test.DurationMS))

	project := ""
	if it.showProject && it.test.ProjectName != "" {
		project = "  " + ui.StyleInfo.Render("["+it.test.ProjectName+"]")
	}

	return fmt.Sprintf("   %s %s%s  %s", icon, it.test.FullTitle(), project, dur)
}

func (d rowDelegate) renderTestLine2(it testItem, isFocused bool) string {
	var parts []string
	for i, tag := range it.labels {
		rendered := "@" + tag
		if isFocused && d.labelFocus != nil && *d.labelFocus == i {
			rendered = ui.StyleLabelFocused.Render(rendered)
		} else {
			rendered = labels.Style(tag).Render(rendered)
		}
		parts = append(parts, rendered)
	}

	loc := ui.StyleMuted.Render(it.test.SourceLocation())

	var badgeParts []string
	for _, b := range it.badges {
		badgeParts = append(badgeParts, ui.StyleBadge.Render("["+b.Label+"]"))
	}

	segs := []string{strings.Join(parts, " ")}
	segs = append(segs, loc)
	if len(badgeParts) > 0 {
		segs = append(segs, strings.Join(badgeParts, " "))
	}
	return "      " + strings.Join(segs, "  ")
}

// --- Model ---

// Model is the file panel list. Expansion state is held by the host:
// the view only queries isExpanded and calls setExpanded, exactly as
// the report page's expand/collapse container does.
type Model struct {
	list   list.Model
	report *model.Report
	filter search.Filter

	isExpanded  func(fileID string) bool
	setExpanded func(fileID string, expanded bool)

	// labelFocus is shared with the delegate (same pointer) so the
	// focused label renders highlighted; -1 means no label focused.
	labelFocus *int
	width      int
	height     int
	loading    bool
	err        error
}

func New(isExpanded func(string) bool, setExpanded func(string, bool)) Model {
	focus := -1
	delegate := rowDelegate{labelFocus: &focus}

	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowFilter(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetShowPagination(false)
	// The q filter narrows the items; the list's fuzzy filter would
	// fight it, so it stays off.
	l.SetFilteringEnabled(false)
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "next page"))
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev page"))
	l.DisableQuitKeybindings()

	return Model{
		list:        l,
		isExpanded:  isExpanded,
		setExpanded: setExpanded,
		labelFocus:  &focus,
		loading:     true,
	}
}

// SetFilter installs a new row predicate and rebuilds the panel list.
func (m *Model) SetFilter(f search.Filter) tea.Cmd {
	m.filter = f
	return m.rebuild()
}

// rebuild projects (report, filter, expansion state) into list items.
// It is a pure function of those inputs, so it can run after every
// state change without accumulating anything.
func (m *Model) rebuild() tea.Cmd {
	if m.report == nil {
		return nil
	}
	var items []list.Item
	for i := range m.report.Files {
		file := &m.report.Files[i]

		var rows []list.Item
		for _, test := range file.Tests {
			if !m.filter.Matches(test) {
				continue
			}
			rows = append(rows, testItem{
				test:        test,
				labels:      labels.Match(test.Title),
				badges:      badges.All(test),
				showProject: m.report.MultiProject(),
			})
		}

		expanded := m.isExpanded(file.FileID)
		items = append(items, fileItem{file: file, matched: len(rows), expanded: expanded})
		if expanded {
			items = append(items, rows...)
		}
	}
	return m.list.SetItems(items)
}

// FocusedTest returns the test under the cursor, or nil when a file
// header is focused.
func (m Model) FocusedTest() *model.TestCase {
	if item, ok := m.list.SelectedItem().(testItem); ok {
		t := item.test
		return &t
	}
	return nil
}

// FocusedLabel returns the focused label on the current row, if any.
func (m Model) FocusedLabel() (string, bool) {
	item, ok := m.list.SelectedItem().(testItem)
	if !ok || *m.labelFocus < 0 || *m.labelFocus >= len(item.labels) {
		return "", false
	}
	return item.labels[*m.labelFocus], true
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.ReportLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.report = msg.Report
		cmd := m.rebuild()
		m.list.Select(0)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case msg.String() == "tab":
			return m.cycleLabelFocus(), nil

		case msg.Type == tea.KeyEnter:
			if tag, ok := m.FocusedLabel(); ok {
				// Consume the key so the row does not also activate:
				// the tag click suppresses default navigation.
				modifier := msg.Alt
				return m, func() tea.Msg { return ui.TagClickedMsg{Tag: tag, Modifier: modifier} }
			}
			if item, ok := m.list.SelectedItem().(fileItem); ok {
				m.setExpanded(item.file.FileID, !m.isExpanded(item.file.FileID))
				return m, m.rebuild()
			}
			if test := m.FocusedTest(); test != nil {
				id := test.TestID
				return m, func() tea.Msg { return ui.OpenTestMsg{TestID: id} }
			}
			return m, nil

		case key.Matches(msg, ui.Keys.Diff):
			return m, m.badgeNavigate("diff")
		case key.Matches(msg, ui.Keys.Video):
			return m, m.badgeNavigate("video")
		case key.Matches(msg, ui.Keys.Trace):
			return m, m.badgeNavigate("trace")

		case key.Matches(msg, ui.Keys.ExpandAll):
			return m, m.setAllExpanded(true)
		case key.Matches(msg, ui.Keys.CollapseAll):
			return m, m.setAllExpanded(false)
		}

		// Any movement drops label focus.
		*m.labelFocus = -1

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) cycleLabelFocus() Model {
	item, ok := m.list.SelectedItem().(testItem)
	if !ok || len(item.labels) == 0 {
		*m.labelFocus = -1
		return m
	}
	next := *m.labelFocus + 1
	if next >= len(item.labels) {
		next = -1
	}
	*m.labelFocus = next
	return m
}

// badgeNavigate emits a navigation for the focused row's badge with
// the given label, or nothing when the badge is absent.
func (m Model) badgeNavigate(label string) tea.Cmd {
	item, ok := m.list.SelectedItem().(testItem)
	if !ok {
		return nil
	}
	for _, b := range item.badges {
		if b.Label == label {
			link := b.Link
			return func() tea.Msg { return ui.NavigateMsg{Fragment: link} }
		}
	}
	return nil
}

func (m *Model) setAllExpanded(expanded bool) tea.Cmd {
	if m.report == nil {
		return nil
	}
	for i := range m.report.Files {
		m.setExpanded(m.report.Files[i].FileID, expanded)
	}
	return m.rebuild()
}

func (m Model) View() string {
	if m.loading {
		return "\n  Loading report..."
	}
	if m.err != nil {
		return fmt.Sprintf("\n  Error: %v", m.err)
	}
	return m.list.View()
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{
		ui.Keys.Enter,
		ui.Keys.Search,
		ui.Keys.Label,
		ui.Keys.Diff,
		ui.Keys.Video,
		ui.Keys.Trace,
	}
}
