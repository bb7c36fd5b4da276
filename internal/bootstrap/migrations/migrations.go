// Package migrations embeds the goose SQL migrations that create and evolve
// the per-user application tables. The product catalog itself is installed
// by the bootstrap (seed copy or schema script), not by these migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
