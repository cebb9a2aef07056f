// Package migrations embebe el esquema SQLite para goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
