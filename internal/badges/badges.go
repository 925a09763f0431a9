// Package badges derives the media badges shown on a test row from the
// test's results. Each detector is an independent pure scan; a missing
// badge is an absent value, never an error.
package badges

import (
	"regexp"
	"strings"

	"github.com/reportdeck/reportdeck/internal/model"
	"github.com/reportdeck/reportdeck/internal/search"
)

// diffNameRe matches image attachments produced by screenshot
// comparisons, e.g. "header-expected.png", "header-actual.png",
// "header-diff.png".
var diffNameRe = regexp.MustCompile(`-(expected|actual|diff)`)

// Badge is a renderable media badge: its label and the fragment (or
// trace-viewer URL) it links to.
type Badge struct {
	Label string
	Link  string
}

// IsDiffImage reports whether an attachment is a screenshot-comparison
// image.
func IsDiffImage(a model.Attachment) bool {
	return strings.HasPrefix(a.ContentType, "image/") && diffNameRe.MatchString(a.Name)
}

// ImageDiff returns the image-diff badge: present when any result has
// an image attachment named like a screenshot comparison. The link
// anchors the first such result by its index within test.Results.
func ImageDiff(test model.TestCase) (Badge, bool) {
	for run, result := range test.Results {
		for _, a := range result.Attachments {
			if IsDiffImage(a) {
				return Badge{
					Label: "diff",
					Link:  search.AnchorFragment(test.TestID, "diff", run),
				}, true
			}
		}
	}
	return Badge{}, false
}

// Video returns the video badge: present when any result has an
// attachment named exactly "video".
func Video(test model.TestCase) (Badge, bool) {
	for run, result := range test.Results {
		for _, a := range result.Attachments {
			if a.Name == "video" {
				return Badge{
					Label: "video",
					Link:  search.AnchorFragment(test.TestID, "video", run),
				}, true
			}
		}
	}
	return Badge{}, false
}

// Trace returns the trace badge. Only the FIRST result holding trace
// attachments feeds the viewer URL; later results with traces exist
// but are ignored for link purposes.
func Trace(test model.TestCase) (Badge, bool) {
	for _, result := range test.Results {
		traces := traceAttachments(result)
		if len(traces) > 0 {
			return Badge{Label: "trace", Link: TraceURL(traces)}, true
		}
	}
	return Badge{}, false
}

func traceAttachments(result model.TestResult) []model.Attachment {
	var traces []model.Attachment
	for _, a := range result.Attachments {
		if a.Name == "trace" {
			traces = append(traces, a)
		}
	}
	return traces
}

// TraceURL builds the trace-viewer target from a result's trace
// attachment list.
func TraceURL(traces []model.Attachment) string {
	params := make([]string, 0, len(traces))
	for _, a := range traces {
		params = append(params, "trace="+a.Path)
	}
	return "trace/index.html?" + strings.Join(params, "&")
}

// All returns the row's badges in display order: image-diff, video,
// trace. Absent badges are simply omitted.
func All(test model.TestCase) []Badge {
	var out []Badge
	if b, ok := ImageDiff(test); ok {
		out = append(out, b)
	}
	if b, ok := Video(test); ok {
		out = append(out, b)
	}
	if b, ok := Trace(test); ok {
		out = append(out, b)
	}
	return out
}
