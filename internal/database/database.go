package database

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"example.com/backstage/services/campaign/config"
	"example.com/backstage/services/campaign/internal/metrics"
	"example.com/backstage/services/campaign/internal/models"
)

// Databases holds the write handle and the handle used for reads.
// Read equals Write when no replica is configured.
type Databases struct {
	Write *gorm.DB
	Read  *gorm.DB
}

// Connect opens the primary database and, when configured, the read replica
func Connect(cfg config.DatabaseConfig, m *metrics.Metrics) (*Databases, error) {
	write, err := openDB(postgres.Open(cfg.DSN), cfg, m)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to write database")
	}

	read := write
	if cfg.ReadOnlyDSN != "" {
		read, err = openDB(postgres.Open(cfg.ReadOnlyDSN), cfg, m)
		if err != nil {
			if cerr := closeDB(write); cerr != nil {
				log.Warn().Err(cerr).Msg("Failed to close write database")
			}
			return nil, errors.Wrap(err, "failed to connect to read-only database")
		}
	}

	return &Databases{Write: write, Read: read}, nil
}

// openDB is swapped in tests
var openDB = open

// Open opens a database through an arbitrary dialector with the service's logger, pool and hooks
func Open(dialector gorm.Dialector, cfg config.DatabaseConfig, m *metrics.Metrics) (*gorm.DB, error) {
	return open(dialector, cfg, m)
}

func open(dialector gorm.Dialector, cfg config.DatabaseConfig, m *metrics.Metrics) (*gorm.DB, error) {
	logLevel := logger.Error
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(&logAdapter{}, logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get database connection")
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if m != nil {
		if err := RegisterHooks(db, m); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Migrate runs schema migrations on the write database
func Migrate(db *gorm.DB) error {
	return models.SetupModels(db)
}

// Close closes both handles
func (d *Databases) Close() error {
	if err := closeDB(d.Write); err != nil {
		return err
	}
	if d.Read != d.Write {
		return closeDB(d.Read)
	}
	return nil
}

// Ping checks connectivity of the write database
func (d *Databases) Ping() error {
	sqlDB, err := d.Write.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// logAdapter forwards GORM log lines to zerolog
type logAdapter struct{}

func (l *logAdapter) Printf(format string, args ...interface{}) {
	log.Debug().Str("component", "gorm").Msgf(format, args...)
}
