// Package migrations embeds the schema migrations of the SQL cache backends.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
