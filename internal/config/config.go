package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8080"
	defaultLogLevel        = "info"
	defaultDBDriver        = "postgres"
	defaultSQLitePath      = "docflow.db"
	defaultMaxOpenConns    = 25
	defaultShutdownTimeout = 5 * time.Second
)

type Config struct {
	Port            string
	GinMode         string
	LogLevel        string
	Database        DatabaseConfig
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver       string
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	SQLitePath   string
	MaxOpenConns int
	AutoMigrate  bool
}

// DSN returns the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.SQLitePath
	}
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=" + d.SSLMode
}

// Load reads an optional .env file at path and then the process environment.
// A missing file is not an error.
func Load(path string) (Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := Config{
		Port:     getenv("PORT", defaultPort),
		GinMode:  os.Getenv("GIN_MODE"),
		LogLevel: getenv("LOG_LEVEL", defaultLogLevel),
		Database: DatabaseConfig{
			Driver:       strings.ToLower(getenv("DB_DRIVER", defaultDBDriver)),
			Host:         getenv("DB_HOST", "localhost"),
			Port:         getenv("DB_PORT", "5432"),
			User:         getenv("DB_USER", "postgres"),
			Password:     getenv("DB_PASSWORD", "postgres"),
			Name:         getenv("DB_NAME", "postgres"),
			SSLMode:      getenv("DB_SSLMODE", "disable"),
			SQLitePath:   getenv("DB_SQLITE_PATH", defaultSQLitePath),
			MaxOpenConns: getenvInt("DB_MAX_OPEN_CONNS", defaultMaxOpenConns),
			AutoMigrate:  getenvBool("DB_AUTO_MIGRATE", true),
		},
		CORSOrigins:     splitList(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		ShutdownTimeout: getenvDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", cfg.Database.Driver)
	}

	return cfg, nil
}

// IsRelease reports whether gin runs in release mode.
func (c Config) IsRelease() bool {
	return c.GinMode == "release"
}

func getenv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
