// Package migrations embeds the SQL schema for the relational stores and
// applies it with goose.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
