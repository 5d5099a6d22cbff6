// Package migrations embeds the goose SQL migrations shipped with the binary.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
