package testdetail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/reportdeck/reportdeck/internal/badges"
	"github.com/reportdeck/reportdeck/internal/labels"
	"github.com/reportdeck/reportdeck/internal/model"
	"github.com/reportdeck/reportdeck/internal/ui"
)

// attachmentRef locates one attachment within a test's result list.
type attachmentRef struct {
	run        int
	attachment model.Attachment
}

// Model shows a single test: outcome, labels, per-run errors and
// attachments. The cursor walks the flattened attachment list.
type Model struct {
	test     *model.TestCase
	refs     []attachmentRef
	viewport viewport.Model
	cursor   int
	width    int
	height   int
	ready    bool
}

func New() Model {
	return Model{}
}

// SetTest installs the test to display and resets the cursor.
func (m *Model) SetTest(test *model.TestCase) {
	m.test = test
	m.cursor = 0
	m.refs = nil
	if test != nil {
		for run, result := range test.Results {
			for _, a := range result.Attachments {
				m.refs = append(m.refs, attachmentRef{run: run, attachment: a})
			}
		}
	}
	if m.ready {
		m.viewport.SetContent(m.render())
		m.viewport.GotoTop()
	}
}

func (m Model) Test() *model.TestCase {
	return m.test
}

// SetAnchor moves the cursor to the anchored attachment of one run:
// "diff" targets the first screenshot-comparison image, "video" the
// attachment named video.
func (m *Model) SetAnchor(anchor string, run int) {
	for i, ref := range m.refs {
		if ref.run != run {
			continue
		}
		switch anchor {
		case "diff":
			if badges.IsDiffImage(ref.attachment) {
				m.cursor = i
				m.refresh()
				return
			}
		case "video":
			if ref.attachment.Name == "video" {
				m.cursor = i
				m.refresh()
				return
			}
		}
	}
}

// SelectedAttachment returns the attachment under the cursor.
func (m Model) SelectedAttachment() (model.Attachment, bool) {
	if m.cursor >= 0 && m.cursor < len(m.refs) {
		return m.refs[m.cursor].attachment, true
	}
	return model.Attachment{}, false
}

func (m *Model) refresh() {
	if m.ready {
		m.viewport.SetContent(m.render())
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ui.Keys.Down):
			if m.cursor < len(m.refs)-1 {
				m.cursor++
				m.refresh()
			}
			return m, nil
		case key.Matches(msg, ui.Keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.refresh()
			}
			return m, nil
		case key.Matches(msg, ui.Keys.Enter):
			if a, ok := m.SelectedAttachment(); ok && m.test != nil {
				id := m.test.TestID
				return m, func() tea.Msg { return ui.OpenAttachmentMsg{TestID: id, Attachment: a} }
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 2
		}
		m.viewport.SetContent(m.render())
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) render() string {
	if m.test == nil {
		return "  No test selected"
	}
	t := m.test

	var b strings.Builder

	tags := labels.Match(t.Title)
	if len(tags) > 0 {
		parts := make([]string, 0, len(tags))
		for _, tag := range tags {
			parts = append(parts, labels.Style(tag).Render("@"+tag))
		}
		b.WriteString("  " + strings.Join(parts, " ") + "\n")
	}

	if len(t.Results) == 0 {
		b.WriteString("\n  No runs recorded\n")
		return b.String()
	}

	idx := 0
	for run, result := range t.Results {
		runLabel := fmt.Sprintf("Run #%d", run+1)
		if result.Retry > 0 {
			runLabel += fmt.Sprintf(" (retry %d)", result.Retry)
		}
		b.WriteString("\n  " + lipgloss.NewStyle().Bold(true).Render(runLabel) + "\n")

		for _, e := range result.Errors {
			for _, line := range strings.Split(strings.TrimRight(e, "\n"), "\n") {
				b.WriteString("    " + ui.StyleFailure.Render(line) + "\n")
			}
		}

		for _, a := range result.Attachments {
			cursor := "  "
			if idx == m.cursor {
				cursor = "> "
			}
			kind := a.ContentType
			if kind == "" {
				kind = "unknown"
			}
			line := fmt.Sprintf("  %s%s  %s", cursor, a.Name, ui.StyleMuted.Render(kind))
			if idx == m.cursor {
				line = lipgloss.NewStyle().Background(ui.ColorHighlight).Render(line)
			}
			b.WriteString(line + "\n")
			idx++
		}
	}
	return b.String()
}

func (m Model) View() string {
	if m.test == nil {
		return "\n  Select a test"
	}

	project := ""
	if m.test.ProjectName != "" {
		project = "  " + ui.StyleInfo.Render("["+m.test.ProjectName+"]")
	}
	header := fmt.Sprintf(" %s %s%s  %s  %s",
		ui.StatusIcon(string(m.test.Outcome)),
		m.test.FullTitle(),
		project,
		ui.StyleMuted.Render(m.test.SourceLocation()),
		ui.StyleMuted.Render(ui.FormatMillis(m.test.DurationMS)),
	)

	return lipgloss.NewStyle().Bold(true).Render(header) + "\n" + m.viewport.View()
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{ui.Keys.Up, ui.Keys.Down, ui.Keys.Enter, ui.Keys.Back}
}
