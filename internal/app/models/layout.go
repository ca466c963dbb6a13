package models

import (
	"github.com/a-h/templ"

	"github.com/tabrail/tabrail/internal/nav"
)

// User is the host application's current-user object. The bottom nav's
// identity probe observes a projection of it; nothing in this repo creates
// one except the demo sign-in harness.
type User struct {
	ID       string
	Name     string
	Email    string
	IsActive bool
}

// LayoutTempl carries everything the page shell needs. Bar may be nil (or
// destroyed), in which case the layout renders no bottom nav and no body
// marker classes. Modal, when set, is the host's auth modal fragment.
type LayoutTempl struct {
	Title   string
	User    *User
	Content templ.Component
	Bar     *nav.Bar
	Modal   templ.Component
}
