package search

import (
	"strconv"
	"strings"
)

// ApplyTagClick computes the new search query after a click on a tag
// label. With the modifier held the click toggles the tag in and out of
// the query; without it the click replaces every existing tag filter
// with the clicked one.
//
// The additive-mode presence test is a plain substring match on "@tag"
// while removal is token-exact. A tag that is a prefix of another tag's
// token can therefore false-positive the presence test; that quirk is
// intentional and pinned by tests.
func ApplyTagClick(q, tag string, modifier bool) string {
	q = strings.TrimSpace(q)
	at := "@" + tag

	if modifier {
		if !strings.Contains(q, at) {
			return strings.TrimSpace(q + " " + at)
		}
		return strings.Join(dropTokens(q, func(tok string) bool { return tok == at }), " ")
	}

	if !strings.Contains(q, "@") {
		return strings.TrimSpace(q + " " + at)
	}
	rest := strings.Join(dropTokens(q, func(tok string) bool { return strings.HasPrefix(tok, "@") }), " ")
	return strings.TrimSpace(rest + " " + at)
}

// dropTokens splits q on whitespace and removes every token the
// predicate matches. Rejoining the result normalizes separators to
// single spaces with no leading or trailing whitespace.
func dropTokens(q string, drop func(string) bool) []string {
	var kept []string
	for _, tok := range strings.Fields(q) {
		if !drop(tok) {
			kept = append(kept, tok)
		}
	}
	return kept
}

// Fragment builds the navigation target for a query string: "#?q=..."
// when non-empty, bare "#" to clear the parameter entirely. The query
// is carried verbatim; tags and spaces stay readable in the fragment.
func Fragment(q string) string {
	if q == "" {
		return "#"
	}
	return "#?q=" + q
}

// TestFragment addresses a single test's detail page.
func TestFragment(testID string) string {
	return "#?testId=" + testID
}

// AnchorFragment addresses a sub-element of a test's detail page, e.g.
// the diff or video of a particular run (result index).
func AnchorFragment(testID, anchor string, run int) string {
	return TestFragment(testID) + "&anchor=" + anchor + "&run=" + strconv.Itoa(run)
}
