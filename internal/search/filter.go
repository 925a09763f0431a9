package search

import (
	"strings"

	"github.com/reportdeck/reportdeck/internal/model"
)

// Filter is the predicate a parsed search query applies to test rows.
// Query tokens are whitespace-separated: "@tag" tokens filter on
// derived labels, "p:name" on project, "s:status" on outcome, and
// everything else is case-insensitive free text matched against the
// full title, project name, and source location.
type Filter struct {
	Tags     []string
	Projects []string
	Statuses []model.Outcome
	Text     []string
}

// ParseFilter splits a q string into its token classes. An empty query
// yields a filter that matches everything.
func ParseFilter(q string) Filter {
	var f Filter
	for _, tok := range strings.Fields(q) {
		switch {
		case strings.HasPrefix(tok, "@") && len(tok) > 1:
			f.Tags = append(f.Tags, tok[1:])
		case strings.HasPrefix(tok, "p:") && len(tok) > 2:
			f.Projects = append(f.Projects, tok[2:])
		case strings.HasPrefix(tok, "s:") && len(tok) > 2:
			f.Statuses = append(f.Statuses, model.Outcome(tok[2:]))
		default:
			f.Text = append(f.Text, strings.ToLower(tok))
		}
	}
	return f
}

func (f Filter) Empty() bool {
	return len(f.Tags) == 0 && len(f.Projects) == 0 && len(f.Statuses) == 0 && len(f.Text) == 0
}

// Matches reports whether a test passes every token class. Tag tokens
// are matched against the raw title (a label is present iff "@tag"
// appears in it), mirroring how labels are derived.
func (f Filter) Matches(test model.TestCase) bool {
	for _, tag := range f.Tags {
		if !strings.Contains(test.Title, "@"+tag) {
			return false
		}
	}
	if len(f.Projects) > 0 && !containsFold(f.Projects, test.ProjectName) {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if s == test.Outcome {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(f.Text) > 0 {
		haystack := strings.ToLower(test.FullTitle() + " " + test.ProjectName + " " + test.SourceLocation())
		for _, needle := range f.Text {
			if !strings.Contains(haystack, needle) {
				return false
			}
		}
	}
	return true
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
