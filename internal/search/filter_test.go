package search

import (
	"testing"

	"github.com/reportdeck/reportdeck/internal/model"
)

func sampleTest() model.TestCase {
	return model.TestCase{
		TestID:      "t1",
		Title:       "adds item to cart @smoke",
		Path:        []string{"cart", "checkout"},
		ProjectName: "chromium",
		Outcome:     model.OutcomeUnexpected,
		Location:    model.Location{File: "cart.spec.ts", Line: 42},
	}
}

func TestParseFilterTokenClasses(t *testing.T) {
	f := ParseFilter("@smoke p:chromium s:unexpected cart")
	if len(f.Tags) != 1 || f.Tags[0] != "smoke" {
		t.Errorf("Tags = %v", f.Tags)
	}
	if len(f.Projects) != 1 || f.Projects[0] != "chromium" {
		t.Errorf("Projects = %v", f.Projects)
	}
	if len(f.Statuses) != 1 || f.Statuses[0] != model.OutcomeUnexpected {
		t.Errorf("Statuses = %v", f.Statuses)
	}
	if len(f.Text) != 1 || f.Text[0] != "cart" {
		t.Errorf("Text = %v", f.Text)
	}
}

func TestEmptyFilterMatchesEverything(t *testing.T) {
	f := ParseFilter("")
	if !f.Empty() {
		t.Fatal("expected empty filter")
	}
	if !f.Matches(sampleTest()) {
		t.Error("empty filter must match")
	}
}

func TestFilterMatches(t *testing.T) {
	tests := []struct {
		q    string
		want bool
	}{
		{"@smoke", true},
		{"@slow", false},
		{"p:chromium", true},
		{"p:CHROMIUM", true}, // project match is case-insensitive
		{"p:webkit", false},
		{"s:unexpected", true},
		{"s:expected", false},
		{"cart", true},
		{"Checkout", true}, // free text is case-insensitive
		{"cart.spec.ts:42", true},
		{"missing-needle", false},
		{"@smoke p:chromium cart", true},
		{"@smoke p:webkit", false},
	}
	test := sampleTest()
	for _, tt := range tests {
		if got := ParseFilter(tt.q).Matches(test); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.q, got, tt.want)
		}
	}
}
