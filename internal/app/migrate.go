package app

import (
	"embed"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/vistaimoveis/brokerage-service/internal/utils"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies all pending SQL migrations from the embedded FS.
func (a *App) Migrate() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("creating migration source: %w", err)
	}

	// golang-migrate selects its driver by URL scheme; the pgx driver
	// registers as "pgx".
	dbURL := a.Config.DBUrl
	dbURL = strings.Replace(dbURL, "postgresql://", "pgx://", 1)
	dbURL = strings.Replace(dbURL, "postgres://", "pgx://", 1)

	m, err := migrate.NewWithSourceInstance("iofs", source, dbURL)
	if err != nil {
		return fmt.Errorf("initializing migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("applying migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	utils.Logger.Infof("Migrations applied (version=%d dirty=%t)", version, dirty)
	return nil
}
