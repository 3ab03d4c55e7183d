// Package fitrec embeds the built front-end served by cmd/fitrec.
package fitrec

import "embed"

// WebFS holds web/dist. Serve the "web/dist" subtree.
//
//go:embed all:web/dist
var WebFS embed.FS
