package files

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/reportdeck/reportdeck/internal/model"
	"github.com/reportdeck/reportdeck/internal/search"
	"github.com/reportdeck/reportdeck/internal/ui"
)

func sampleReport() *model.Report {
	return &model.Report{
		ProjectNames: []string{"chromium", "webkit"},
		Files: []model.TestFile{
			{
				FileID:   "f1",
				FileName: "cart.spec.ts",
				Tests: []model.TestCase{
					{
						TestID:      "t1",
						Title:       "adds item @smoke",
						Path:        []string{"cart"},
						ProjectName: "chromium",
						Outcome:     model.OutcomeExpected,
						DurationMS:  340,
						Location:    model.Location{File: "cart.spec.ts", Line: 12},
					},
					{
						TestID:     "t2",
						Title:      "removes item @slow",
						Path:       []string{"cart"},
						Outcome:    model.OutcomeUnexpected,
						DurationMS: 1200,
						Location:   model.Location{File: "cart.spec.ts", Line: 30},
						Results: []model.TestResult{{Attachments: []model.Attachment{
							{Name: "video", ContentType: "video/webm", Path: "data/v.webm"},
						}}},
					},
				},
			},
			{
				FileID:   "f2",
				FileName: "login.spec.ts",
				Tests: []model.TestCase{
					{TestID: "t3", Title: "logs in", Outcome: model.OutcomeSkipped},
				},
			},
		},
	}
}

type testEnv struct {
	expanded map[string]bool
}

func newEnv() *testEnv {
	return &testEnv{expanded: map[string]bool{}}
}

func (e *testEnv) model() Model {
	m := New(
		func(id string) bool { return e.expanded[id] },
		func(id string, v bool) { e.expanded[id] = v },
	)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func TestCollapsedPanelsHideTests(t *testing.T) {
	env := newEnv()
	m := env.model()
	m, _ = m.Update(ui.ReportLoadedMsg{Report: sampleReport()})

	view := m.View()
	if !strings.Contains(view, "cart.spec.ts") || !strings.Contains(view, "login.spec.ts") {
		t.Fatalf("file headers missing:\n%s", view)
	}
	if strings.Contains(view, "adds item") {
		t.Error("tests should be hidden while collapsed")
	}
}

func TestEnterTogglesExpansionThroughHostState(t *testing.T) {
	env := newEnv()
	m := env.model()
	m, _ = m.Update(ui.ReportLoadedMsg{Report: sampleReport()})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !env.expanded["f1"] {
		t.Fatal("enter on a file header must call setExpanded(true)")
	}

	view := m.View()
	if !strings.Contains(view, "adds item @smoke") {
		t.Fatalf("expanded panel should list tests:\n%s", view)
	}
	// Row order follows the input sequence.
	if strings.Index(view, "adds item") > strings.Index(view, "removes item") {
		t.Error("test order must be preserved")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if env.expanded["f1"] {
		t.Error("second enter must collapse again")
	}
}

func TestRowShowsAnnotations(t *testing.T) {
	env := newEnv()
	env.expanded["f1"] = true
	m := env.model()
	m, _ = m.Update(ui.ReportLoadedMsg{Report: sampleReport()})

	view := m.View()
	if !strings.Contains(view, "cart › adds item @smoke") {
		t.Errorf("breadcrumb title missing:\n%s", view)
	}
	if !strings.Contains(view, "340ms") || !strings.Contains(view, "1.2s") {
		t.Errorf("durations missing:\n%s", view)
	}
	if !strings.Contains(view, "cart.spec.ts:12") {
		t.Errorf("source location missing:\n%s", view)
	}
	if !strings.Contains(view, "@smoke") {
		t.Errorf("label missing:\n%s", view)
	}
	// Multi-project report + non-empty project name -> badge.
	if !strings.Contains(view, "[chromium]") {
		t.Errorf("project badge missing:\n%s", view)
	}
	if !strings.Contains(view, "[video]") {
		t.Errorf("video badge missing:\n%s", view)
	}
	if strings.Contains(view, "[diff]") || strings.Contains(view, "[trace]") {
		t.Errorf("absent badges must not render:\n%s", view)
	}
}

func TestProjectBadgeHiddenForSingleProjectReport(t *testing.T) {
	rep := sampleReport()
	rep.ProjectNames = []string{"chromium"}
	env := newEnv()
	env.expanded["f1"] = true
	m := env.model()
	m, _ = m.Update(ui.ReportLoadedMsg{Report: rep})

	if strings.Contains(m.View(), "[chromium]") {
		t.Error("project badge requires more than one known project")
	}
}

func TestFilterNarrowsRows(t *testing.T) {
	env := newEnv()
	env.expanded["f1"] = true
	env.expanded["f2"] = true
	m := env.model()
	m, _ = m.Update(ui.ReportLoadedMsg{Report: sampleReport()})

	m.SetFilter(search.ParseFilter("@smoke"))
	view := m.View()
	if !strings.Contains(view, "adds item") {
		t.Fatalf("matching row missing:\n%s", view)
	}
	if strings.Contains(view, "removes item") || strings.Contains(view, "logs in") {
		t.Errorf("non-matching rows should be filtered out:\n%s", view)
	}
}

func TestTabCyclesLabelAndEnterClicksTag(t *testing.T) {
	env := newEnv()
	env.expanded["f1"] = true
	m := env.model()
	m, _ = m.Update(ui.ReportLoadedMsg{Report: sampleReport()})

	// Move from the file header to the first test row.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if test := m.FocusedTest(); test == nil || test.TestID != "t1" {
		t.Fatalf("expected focus on t1, got %+v", test)
	}

	if _, ok := m.FocusedLabel(); ok {
		t.Fatal("no label should be focused before tab")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	tag, ok := m.FocusedLabel()
	if !ok || tag != "smoke" {
		t.Fatalf("FocusedLabel = %q, %v", tag, ok)
	}

	// Enter on a focused label is a tag click, not a row activation.
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	if cmd == nil {
		t.Fatal("expected a command carrying the tag click")
	}
	msg, ok := cmd().(ui.TagClickedMsg)
	if !ok {
		t.Fatalf("expected TagClickedMsg, got %T", cmd())
	}
	if msg.Tag != "smoke" || !msg.Modifier {
		t.Errorf("TagClickedMsg = %+v", msg)
	}

	// Tab cycles past the last label back to none.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if _, ok := m.FocusedLabel(); ok {
		t.Error("label focus should wrap back to none")
	}
}

func TestBadgeKeyEmitsNavigation(t *testing.T) {
	env := newEnv()
	env.expanded["f1"] = true
	m := env.model()
	m, _ = m.Update(ui.ReportLoadedMsg{Report: sampleReport()})

	// Focus t2 (the row with the video attachment).
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	if cmd == nil {
		t.Fatal("expected navigation command for existing video badge")
	}
	nav, ok := cmd().(ui.NavigateMsg)
	if !ok {
		t.Fatalf("expected NavigateMsg, got %T", cmd())
	}
	if nav.Fragment != "#?testId=t2&anchor=video&run=0" {
		t.Errorf("fragment = %q", nav.Fragment)
	}

	// Absent badge -> no-op, never an error.
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if cmd != nil {
		t.Error("missing diff badge should be a no-op")
	}
}
