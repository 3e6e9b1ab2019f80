// Package migrations embeds the sqlite schema. Files follow golang-migrate's
// NNNNNN_name.{up,down}.sql convention.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
