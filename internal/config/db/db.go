// Package db opens the GORM connection and migrates the schema.
package db

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/linskybing/moderation-platform/internal/config"
	"github.com/linskybing/moderation-platform/internal/domain/audit"
	"github.com/linskybing/moderation-platform/internal/domain/review"
	"github.com/linskybing/moderation-platform/internal/domain/submission"
	"github.com/linskybing/moderation-platform/internal/domain/user"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds the driver-specific connection string.
func DSN(c config.Database) string {
	if c.Driver == "mysql" {
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.User, c.Password, c.Host, c.Port, c.Name)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

// LogLevel keeps SQL logs quiet in production unless DEBUG_SQL is set.
func LogLevel(environment string, debugSQL bool) logger.LogLevel {
	if environment == "production" && !debugSQL {
		return logger.Warn
	}
	return logger.Info
}

func Dialector(c config.Database) gorm.Dialector {
	if c.Driver == "mysql" {
		return mysql.Open(DSN(c))
	}
	return postgres.Open(DSN(c))
}

// Open connects with the given dialector. SQL logs go to w.
func Open(dialector gorm.Dialector, w io.Writer, level logger.LogLevel) (*gorm.DB, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(
			log.New(w, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  level,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return gdb, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&user.User{},
		&submission.Submission{},
		&submission.Document{},
		&review.Review{},
		&audit.AuditLog{},
	)
}

// Init opens the configured database and migrates it.
func Init(cfg *config.Config, w io.Writer) (*gorm.DB, error) {
	gdb, err := Open(Dialector(cfg.Database), w, LogLevel(cfg.Environment, cfg.Database.DebugSQL))
	if err != nil {
		return nil, err
	}
	if err := Migrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Printf("Database connected and migrated (%s)", cfg.Database.Driver)
	return gdb, nil
}
