package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Options describes how to open the store.
type Options struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	AutoMigrate  bool
}

// NewConnection opens a gorm connection pool for the configured driver and, when
// requested, applies pending migrations.
func NewConnection(ctx context.Context, opts Options, logger *zap.Logger) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch opts.Driver {
	case DriverPostgres:
		db, err = gorm.Open(postgres.Open(opts.DSN), gormConfig())
	case DriverSQLite:
		db, err = OpenSQLite(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if opts.Driver == DriverPostgres && opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping %s: %w", opts.Driver, err)
	}

	if opts.AutoMigrate {
		versions, err := Migrate(ctx, db, opts.Driver)
		if err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		if len(versions) > 0 {
			logger.Info("Applied migrations", zap.Int64s("versions", versions))
		}
	}

	return db, nil
}

// OpenSQLite opens an embedded database at path with foreign keys enforced.
// The pool is limited to one connection so writers queue instead of failing with SQLITE_BUSY.
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        dsn,
	}, gormConfig())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: gormlogger.New(log.New(os.Stderr, "\r\n", log.LstdFlags), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}

// Ping returns a health probe over db's pool.
func Ping(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
