package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-clinic-booking/config"
	"go-clinic-booking/pkg/apperror"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresConnection opens the storage handle shared by every repository.
// An unreachable database after cfg.ConnectTimeout is a CONFIGURATION error:
// the process cannot do anything useful without it.
func NewPostgresConnection(ctx context.Context, cfg config.DBConfig, log *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  parseLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, apperror.NewConfiguration("failed to open database", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperror.NewConfiguration("failed to get database instance", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = cfg.ConnectTimeout

	ping := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return sqlDB.PingContext(pingCtx)
	}
	notify := func(err error, next time.Duration) {
		log.Warnf("Database not reachable yet, retrying in %s: %v", next, err)
	}

	if err := backoff.RetryNotify(ping, backoff.WithContext(policy, ctx), notify); err != nil {
		sqlDB.Close()
		return nil, apperror.NewConfiguration(fmt.Sprintf("database unreachable after %s", cfg.ConnectTimeout), err)
	}

	log.Info("Successfully connected to PostgreSQL database")

	return db, nil
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
