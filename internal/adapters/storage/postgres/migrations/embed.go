// Package migrations embebe el esquema de Postgres para goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
