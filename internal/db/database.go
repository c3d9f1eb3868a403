package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options selects the driver and where the data lives. Path is used by sqlite, DSN by postgres.
type Options struct {
	Driver string
	Path   string
	DSN    string
	// Logger receives gorm warnings and slow queries. Nil discards them.
	Logger gormlogger.Writer
}

func Open(options Options) (*gorm.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(options.Driver))
	switch driver {
	case "", DriverSQLite:
		return openSQLite(options.Path, options.Logger)
	case DriverPostgres:
		return openPostgres(options.DSN, options.Logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", options.Driver)
	}
}

func OpenSQLite(dbPath string) (*gorm.DB, error) {
	return openSQLite(dbPath, nil)
}

func openSQLite(dbPath string, writer gormlogger.Writer) (*gorm.DB, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), gormConfig(writer))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyEmbeddedMigrations(database); err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}
	return database, nil
}

func openPostgres(dsn string, writer gormlogger.Writer) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}

	database, err := gorm.Open(postgres.Open(dsn), gormConfig(writer))
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := applyEmbeddedMigrations(database); err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}
	return database, nil
}

func gormConfig(writer gormlogger.Writer) *gorm.Config {
	config := &gorm.Config{
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		Logger: gormlogger.Discard,
	}
	if writer != nil {
		config.Logger = gormlogger.New(writer, gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		})
	}
	return config
}

func Close(database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
