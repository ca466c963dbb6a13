package nav

import "strings"

// Page identifies one of the three tabs.
type Page int

const (
	PageHome Page = iota
	PageMap
	PageProfile
)

func (p Page) String() string {
	switch p {
	case PageMap:
		return "map"
	case PageProfile:
		return "profile"
	default:
		return "home"
	}
}

// Detect maps a request path to the tab it belongs to. Matching is a
// case-insensitive substring test over the whole path; "map" is checked
// before "profile", so a path containing both resolves to the map tab.
// Anything else is home.
func Detect(path string) Page {
	p := strings.ToLower(path)
	switch {
	case strings.Contains(p, "map"):
		return PageMap
	case strings.Contains(p, "profile"):
		return PageProfile
	default:
		return PageHome
	}
}
