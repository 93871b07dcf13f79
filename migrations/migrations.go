// Package migrations embeds the goose SQL migrations so the server binary
// can bring the schema up to date on startup without shipping loose files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
