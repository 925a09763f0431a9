package testdetail

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/reportdeck/reportdeck/internal/model"
	"github.com/reportdeck/reportdeck/internal/ui"
)

func sampleTest() *model.TestCase {
	return &model.TestCase{
		TestID:      "t9",
		Title:       "checkout total @smoke",
		Path:        []string{"checkout"},
		ProjectName: "firefox",
		Outcome:     model.OutcomeFlaky,
		DurationMS:  2500,
		Location:    model.Location{File: "checkout.spec.ts", Line: 8},
		Results: []model.TestResult{
			{
				Errors: []string{"expected 3 to equal 4"},
				Attachments: []model.Attachment{
					{Name: "total-expected.png", ContentType: "image/png", Path: "data/e.png"},
					{Name: "video", ContentType: "video/webm", Path: "data/v.webm"},
				},
			},
			{
				Retry: 1,
				Attachments: []model.Attachment{
					{Name: "stdout", ContentType: "text/plain", Body: "ok"},
				},
			},
		},
	}
}

func ready(test *model.TestCase) Model {
	m := New()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 90, Height: 28})
	m.SetTest(test)
	return m
}

func TestRendersRunsErrorsAndAttachments(t *testing.T) {
	m := ready(sampleTest())
	out := m.View()

	if !strings.Contains(out, "checkout › checkout total @smoke") {
		t.Errorf("header title missing:\n%s", out)
	}
	if !strings.Contains(out, "[firefox]") || !strings.Contains(out, "checkout.spec.ts:8") {
		t.Errorf("header annotations missing:\n%s", out)
	}
	if !strings.Contains(out, "2.5s") {
		t.Errorf("duration missing:\n%s", out)
	}
	if !strings.Contains(out, "Run #1") || !strings.Contains(out, "Run #2 (retry 1)") {
		t.Errorf("run headers missing:\n%s", out)
	}
	if !strings.Contains(out, "expected 3 to equal 4") {
		t.Errorf("error text missing:\n%s", out)
	}
	if !strings.Contains(out, "total-expected.png") || !strings.Contains(out, "stdout") {
		t.Errorf("attachments missing:\n%s", out)
	}
}

func TestCursorWalksAttachmentsAcrossRuns(t *testing.T) {
	m := ready(sampleTest())

	a, ok := m.SelectedAttachment()
	if !ok || a.Name != "total-expected.png" {
		t.Fatalf("initial selection = %+v, %v", a, ok)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if a, _ = m.SelectedAttachment(); a.Name != "stdout" {
		t.Errorf("after two downs selection = %q", a.Name)
	}

	// Cursor clamps at the end.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if a, _ = m.SelectedAttachment(); a.Name != "stdout" {
		t.Errorf("cursor should clamp, got %q", a.Name)
	}
}

func TestEnterOpensSelectedAttachment(t *testing.T) {
	m := ready(sampleTest())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on an attachment should emit a command")
	}
	msg, ok := cmd().(ui.OpenAttachmentMsg)
	if !ok {
		t.Fatalf("expected OpenAttachmentMsg, got %T", cmd())
	}
	if msg.TestID != "t9" || msg.Attachment.Name != "video" {
		t.Errorf("OpenAttachmentMsg = %+v", msg)
	}
}

func TestAnchorTargetsAttachment(t *testing.T) {
	m := ready(sampleTest())

	m.SetAnchor("video", 0)
	if a, _ := m.SelectedAttachment(); a.Name != "video" {
		t.Errorf("video anchor selected %q", a.Name)
	}

	m.SetAnchor("diff", 0)
	if a, _ := m.SelectedAttachment(); a.Name != "total-expected.png" {
		t.Errorf("diff anchor selected %q", a.Name)
	}

	// Anchor in the wrong run leaves the cursor alone.
	m.SetAnchor("video", 1)
	if a, _ := m.SelectedAttachment(); a.Name != "total-expected.png" {
		t.Errorf("missing anchor must not move cursor, got %q", a.Name)
	}
}
