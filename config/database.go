package config

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"feedback-portal-backend/store"
)

// ConnectStore opens the configured backend and returns it behind the
// uniform Store interface. Timestamps are kept in UTC on both backends so
// date bucketing agrees between them.
func ConnectStore(ctx context.Context, cfg AppConfig) (store.Store, error) {
	switch cfg.StoreBackend {
	case "sql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger:  logger.Default.LogMode(logger.Warn),
			NowFunc: func() time.Time { return time.Now().UTC() },
		})
		if err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
		s, err := store.NewSQLStore(db)
		if err != nil {
			return nil, err
		}
		log.Info("connected to MySQL store")
		return s, nil

	case "mongo":
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		if err := client.Ping(connectCtx, nil); err != nil {
			return nil, fmt.Errorf("ping mongo: %w", err)
		}
		log.Info("connected to MongoDB store")
		return store.NewDocumentStore(client, cfg.MongoDatabase), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// SeedAdmin upserts the default dashboard account. Re-running startup
// refreshes the stored hash but never duplicates the principal.
func SeedAdmin(ctx context.Context, s store.Store, cfg AppConfig) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if err := s.SeedAdmin(ctx, cfg.AdminUsername, string(hash)); err != nil {
		return err
	}
	log.WithField("username", cfg.AdminUsername).Info("admin account seeded")
	return nil
}
