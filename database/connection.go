package database

import (
	"fmt"
	"time"

	"ecom-admin/pkg/log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Config is the database section of the application config.
type Config interface {
	Host() string
	Port() string
	User() string
	Password() string
	Name() string
	SSLMode() string
	MaxOpenConns() int
	MaxIdleConns() int
	ConnMaxLifetime() time.Duration
	EnableLog() bool
	LogLevel() string
}

// Connect opens the postgres pool and routes gorm's logging through the
// application logger.
func Connect(cfg Config, l log.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: dsn(cfg),
		// Simple protocol plays nicer with pgbouncer in transaction mode.
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{},
		Logger:         newGormLogger(l, cfg),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns())
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns())
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime())

	return db, nil
}

func dsn(cfg Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Host(),
		cfg.User(),
		cfg.Password(),
		cfg.Name(),
		cfg.Port(),
		cfg.SSLMode())
}

func newGormLogger(l log.Logger, cfg Config) logger.Interface {
	logLevel := logger.Silent
	if cfg.EnableLog() {
		switch cfg.LogLevel() {
		case "info":
			logLevel = logger.Info
		case "warn":
			logLevel = logger.Warn
		case "error":
			logLevel = logger.Error
		case "silent":
			logLevel = logger.Silent
		default:
			logLevel = logger.Warn
		}
	}

	return logger.New(l, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  logLevel,
		IgnoreRecordNotFoundError: true,
	})
}
