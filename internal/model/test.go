package model

import (
	"fmt"
	"strings"
	"time"
)

type Outcome string

const (
	OutcomeExpected   Outcome = "expected"
	OutcomeUnexpected Outcome = "unexpected"
	OutcomeFlaky      Outcome = "flaky"
	OutcomeSkipped    Outcome = "skipped"
)

type TestCase struct {
	TestID      string       `json:"testId"`
	Title       string       `json:"title"`
	Path        []string     `json:"path"`
	ProjectName string       `json:"projectName"`
	Location    Location     `json:"location"`
	DurationMS  int64        `json:"duration"`
	Outcome     Outcome      `json:"outcome"`
	Results     []TestResult `json:"results"`
}

type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type TestResult struct {
	Attachments []Attachment `json:"attachments"`
	Errors      []string     `json:"errors,omitempty"`
	Retry       int          `json:"retry"`
}

// Attachment is a named, typed artifact produced by a test result.
// Path points into the report's data directory; small text attachments
// may carry their body inline instead.
type Attachment struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Path        string `json:"path,omitempty"`
	Body        string `json:"body,omitempty"`
}

func (t TestCase) Duration() time.Duration {
	return time.Duration(t.DurationMS) * time.Millisecond
}

// FullTitle joins the path segments and title with the report's
// breadcrumb separator.
func (t TestCase) FullTitle() string {
	if len(t.Path) == 0 {
		return t.Title
	}
	return strings.Join(t.Path, " › ") + " › " + t.Title
}

// SourceLocation renders the test's origin as file:line.
func (t TestCase) SourceLocation() string {
	return fmt.Sprintf("%s:%d", t.Location.File, t.Location.Line)
}

func (o Outcome) Failed() bool {
	return o == OutcomeUnexpected
}
