package initialize

import (
	"embed"

	"server/config"
	"server/internal/logger"

	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// InitializeTables applies the embedded schema migrations. Applied
// migrations are tracked in the gorp_migrations table, so re-running
// is a no-op.
func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Applying schema migrations")

	sqlDB, err := db.DB()
	if err != nil {
		return log.Err("failed to get database handle", err)
	}

	source := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations",
	}

	applied, err := migrate.Exec(sqlDB, "sqlite3", source, migrate.Up)
	if err != nil {
		return log.Err("failed to apply migrations", err)
	}

	log.Info("Schema migrations complete", "applied", applied)
	return nil
}
