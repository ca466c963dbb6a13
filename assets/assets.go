// Package assets embeds the static files the demo host serves: the
// stylesheet for the bottom bar and its marker classes, and the client script
// that relays browser events to the server.
package assets

import "embed"

//go:embed css js
var Assets embed.FS
