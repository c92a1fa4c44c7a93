package assets

import "embed"

// staticFiles stores the homepage graphics directly in the binary.
//
//go:embed static
var staticFiles embed.FS
