package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies all pending migrations from dir against databaseURL.
func RunMigrations(databaseURL, dir string) error {
	sourceURL := "file://" + dir
	dbURL := databaseURL
	if strings.HasPrefix(dbURL, "postgresql://") {
		dbURL = "postgres://" + strings.TrimPrefix(dbURL, "postgresql://")
	}

	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
