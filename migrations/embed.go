// Package migrations embeds the versioned SQL schema applied by pathwayctl migrate.
package migrations

import "embed"

//go:embed V*.sql
var FS embed.FS
