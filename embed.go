// Package forum embeds the database migrations shipped with the service.
package forum

import "embed"

// Migrations holds the goose SQL migrations under migrations/.
//
//go:embed migrations/*.sql
var Migrations embed.FS
