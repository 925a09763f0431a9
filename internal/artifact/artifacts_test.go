package artifact

import "testing"

func TestFindReportArtifactByName(t *testing.T) {
	artifacts := []Artifact{
		{ID: 1, Name: "coverage"},
		{ID: 2, Name: "playwright-report"},
	}
	a, err := FindReportArtifact(artifacts, "playwright-report")
	if err != nil {
		t.Fatal(err)
	}
	if a.ID != 2 {
		t.Errorf("picked artifact %d", a.ID)
	}

	if _, err := FindReportArtifact(artifacts, "missing"); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestFindReportArtifactHeuristic(t *testing.T) {
	artifacts := []Artifact{
		{ID: 1, Name: "coverage"},
		{ID: 2, Name: "HTML-Report", Expired: true},
		{ID: 3, Name: "e2e-report"},
	}
	a, err := FindReportArtifact(artifacts, "")
	if err != nil {
		t.Fatal(err)
	}
	// Expired artifacts are skipped even when their name matches.
	if a.ID != 3 {
		t.Errorf("picked artifact %d, want 3", a.ID)
	}
}

func TestFindReportArtifactNone(t *testing.T) {
	if _, err := FindReportArtifact([]Artifact{{ID: 1, Name: "coverage"}}, ""); err == nil {
		t.Error("expected error when no report artifact exists")
	}
}
