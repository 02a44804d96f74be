// Package ui embeds the page templates and static assets.
package ui

import "embed"

//go:embed "templates" "static"
var Files embed.FS
