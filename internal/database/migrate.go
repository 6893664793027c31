package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

func newProvider(db *gorm.DB, driver string) (*goose.Provider, error) {
	var dialect goose.Dialect
	switch driver {
	case DriverPostgres:
		dialect = goose.DialectPostgres
	case DriverSQLite:
		dialect = goose.DialectSQLite3
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	fsys, err := fs.Sub(migrationsFS, "migrations/"+driver)
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(dialect, sqlDB, fsys)
}

// Migrate applies every pending migration and returns the versions it applied.
func Migrate(ctx context.Context, db *gorm.DB, driver string) ([]int64, error) {
	provider, err := newProvider(db, driver)
	if err != nil {
		return nil, err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return nil, err
	}
	versions := make([]int64, 0, len(results))
	for _, r := range results {
		versions = append(versions, r.Source.Version)
	}
	return versions, nil
}

// Rollback reverts the most recently applied migration.
func Rollback(ctx context.Context, db *gorm.DB, driver string) (int64, error) {
	provider, err := newProvider(db, driver)
	if err != nil {
		return 0, err
	}
	result, err := provider.Down(ctx)
	if err != nil {
		return 0, err
	}
	return result.Source.Version, nil
}

// MigrationStatus is one line of `migrate status` output.
type MigrationStatus struct {
	Version int64
	Applied bool
}

func Status(ctx context.Context, db *gorm.DB, driver string) ([]MigrationStatus, error) {
	provider, err := newProvider(db, driver)
	if err != nil {
		return nil, err
	}
	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MigrationStatus, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, MigrationStatus{
			Version: s.Source.Version,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}
