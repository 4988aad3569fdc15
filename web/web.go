// Package web embeds the viewer page and its HTML fragments.
package web

import "embed"

// FS holds templates/viewer.html and templates/fragments/*.html.
//
//go:embed templates
var FS embed.FS
