// Package migrations embeds the SQL schema for the local client database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
