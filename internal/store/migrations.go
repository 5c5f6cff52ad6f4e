package store

import "embed"

// Migrations holds the schema for every supported driver, under
// migrations/<driver>.
//
//go:embed migrations
var Migrations embed.FS
