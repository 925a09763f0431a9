package ui

import (
	"github.com/reportdeck/reportdeck/internal/model"
)

// Data loaded messages
type ReportLoadedMsg struct {
	Report *model.Report
	Dir    string // report directory on disk (attachment root)
	Err    error
}

type AttachmentLoadedMsg struct {
	TestID  string
	Name    string
	Content string
	Err     error
}

// NavigateMsg carries a location fragment the app should route,
// e.g. "#?testId=abc" or "#?q=@smoke".
type NavigateMsg struct {
	Fragment string
}

// OpenTestMsg asks the app to show a test's detail page.
type OpenTestMsg struct {
	TestID string
}

// OpenAttachmentMsg asks the app to load an attachment's content and
// show it.
type OpenAttachmentMsg struct {
	TestID     string
	Attachment model.Attachment
}

// QueryChangedMsg is emitted when the search bar commits a new q value.
type QueryChangedMsg struct {
	Query string
}

// TagClickedMsg is emitted when a label on a test row is activated.
// Modifier distinguishes the additive/toggle click from the replace
// click.
type TagClickedMsg struct {
	Tag      string
	Modifier bool
}

// ProjectPickedMsg asks the app to narrow the filter to one project.
type ProjectPickedMsg struct {
	Name string
}

type StatusMsg struct {
	Text string
}
