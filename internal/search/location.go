package search

import "strings"

// Location is the page's addressable location: the one piece of shared
// mutable state in the viewer. It is injected into the editor rather
// than reached through a global so the editor stays testable.
type Location interface {
	// Query returns the current q parameter, "" when absent.
	Query() string
	// Navigate rewrites the location fragment.
	Navigate(fragment string)
}

// FragmentLocation is the in-memory Location the app owns. The zero
// value is a bare "#" with no parameters.
type FragmentLocation struct {
	fragment string
}

func (l *FragmentLocation) Navigate(fragment string) {
	l.fragment = fragment
}

func (l *FragmentLocation) Fragment() string {
	if l.fragment == "" {
		return "#"
	}
	return l.fragment
}

func (l *FragmentLocation) Query() string {
	return l.Param("q")
}

// Param extracts a parameter from the fragment. Values are stored
// verbatim, so the q value may itself contain spaces; it is always the
// last parameter in fragments that carry it.
func (l *FragmentLocation) Param(key string) string {
	frag := strings.TrimPrefix(l.Fragment(), "#")
	frag = strings.TrimPrefix(frag, "?")
	for frag != "" {
		var pair string
		pair, frag, _ = strings.Cut(frag, "&")
		k, v, ok := strings.Cut(pair, "=")
		if ok && k == key {
			if key == "q" {
				// q is verbatim: re-attach anything Cut split off.
				if frag != "" {
					return v + "&" + frag
				}
				return v
			}
			return v
		}
	}
	return ""
}

// ClickTag is the tag click entry point: it reads the current query
// from the location, applies the editor algorithm, and navigates to
// the resulting fragment. The caller consumes the triggering event so
// no default row activation happens.
func ClickTag(loc Location, tag string, modifier bool) {
	loc.Navigate(Fragment(ApplyTagClick(loc.Query(), tag, modifier)))
}
