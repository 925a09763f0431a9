package labels

import (
	"hash/fnv"
	"regexp"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// tagRe matches @-prefixed tokens embedded in a test title,
// e.g. "checkout flow @smoke @slow" -> smoke, slow.
var tagRe = regexp.MustCompile(`@(\S+)`)

// Match extracts the tag set from a test title: deduplicated, sorted
// lexicographically, stored without the @ prefix. Pure and idempotent,
// so callers may recompute per render or memoize per test id.
func Match(title string) []string {
	matches := tagRe.FindAllStringSubmatch(title, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	var tags []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			tags = append(tags, m[1])
		}
	}
	sort.Strings(tags)
	return tags
}

// palette holds the label color classes. Assignment is a cosmetic
// classifier: same tag always gets the same color, different tags may
// collide.
var palette = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#EC4899")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#14B8A6")),
}

// ColorIndex returns the palette slot for a tag via a stable FNV-1a
// hash of the tag string.
func ColorIndex(tag string) int {
	h := fnv.New32a()
	h.Write([]byte(tag))
	return int(h.Sum32() % uint32(len(palette)))
}

// Style returns the lipgloss style for a tag's color class.
func Style(tag string) lipgloss.Style {
	return palette[ColorIndex(tag)]
}
