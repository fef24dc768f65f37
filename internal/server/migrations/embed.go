// Package migrations embeds the goose SQL migrations for the server schema.
package migrations

import "embed"

// Migrations holds the PostgreSQL schema.
//
//go:embed *.sql
var Migrations embed.FS

// SQLite holds the same schema for SQLite, under the "sqlite" directory.
//
//go:embed sqlite/*.sql
var SQLite embed.FS
