// Package migrations embeds the SQL schema so the binary can bootstrap its own database.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
