// Package emails holds the transactional email templates sent by the site.
package emails

import "embed"

// FS contains <name>[_<lang>].html and .txt templates
//
//go:embed *.html *.txt
var FS embed.FS
