package nav

// State is a point-in-time snapshot of the bar. DisplayName is only
// meaningful while SignedIn is true.
type State struct {
	CurrentPage Page
	Visible     bool
	SignedIn    bool
	DisplayName string
}
