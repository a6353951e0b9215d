// Package database embed dosyası — migration SQL dosyalarını binary'ye gömer.
// Deploy edilen binary'nin yanında migration dosyası taşımaya gerek kalmaz.
package database

import "embed"

// EmbeddedMigrations, migrations/ dizinindeki SQL dosyalarını içerir.
// Kullanım: fs.Sub(database.EmbeddedMigrations, "migrations")
//
//go:embed migrations/*.sql
var EmbeddedMigrations embed.FS
