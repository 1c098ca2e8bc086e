package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"routesync/internal/config"
	"routesync/internal/models/db_models"
)

// InitPostgresql opens the pool, checks it answers and migrates the schema.
func InitPostgresql(cfg *config.Config, log *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{
		Logger:  GormLogger(log),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("infra: open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("infra: get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("infra: ping postgres: %w", err)
	}
	log.Info("database connection pool established")

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("database schema up to date")

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&db_models.SavedRoute{}); err != nil {
		return fmt.Errorf("infra: auto-migrate: %w", err)
	}
	return nil
}

func ClosePostgresql(db *gorm.DB, log *logrus.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.WithError(err).Error("error getting database instance")
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.WithError(err).Error("error closing database connection")
	} else {
		log.Info("PostgreSQL database connection closed successfully")
	}
}
