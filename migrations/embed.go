// Package migrations embeds the SQL migrations of the bot catalog schema.
package migrations

import "embed"

// FS holds the embedded SQL migration files.
//
//go:embed *.sql
var FS embed.FS
