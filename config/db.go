package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"frontdesk-backend/models"
	"frontdesk-backend/services"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}
	// affected-row counts must reflect matched rows for the conditional updates
	if q.Get("clientFoundRows") == "" {
		q.Set("clientFoundRows", "true")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "frontdesk")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true",
		user, pass, host, port, dbName,
	), nil
}

func gormLogger(log *logrus.Logger, debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return logger.New(log, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// OpenDatabase opens the configured store without migrating it.
func OpenDatabase(cfg AppConfig, log *logrus.Logger) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: gormLogger(log, cfg.DBDebug), TranslateError: true}

	switch cfg.DBDriver {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath+"?_busy_timeout=5000&_foreign_keys=on"), gcfg)
		if err != nil {
			return nil, err
		}
		// one writer at a time; sqlite serialises anyway
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
		return db, nil
	default:
		dsn, err := resolveMySQLDSN()
		if err != nil {
			return nil, err
		}
		db, err := gorm.Open(mysql.Open(dsn), gcfg)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(20)
			sqlDB.SetMaxIdleConns(10)
			sqlDB.SetConnMaxLifetime(5 * time.Minute)
		}
		return db, nil
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Room{},
		&models.InventoryItem{},
		&models.PriceTable{},
		&models.Transaction{},
	)
}

// ConnectDatabase opens the store and applies migrations.
func ConnectDatabase(cfg AppConfig, log *logrus.Logger) (*gorm.DB, error) {
	db, err := OpenDatabase(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// SeedDatabase creates missing rooms from the configured roster and the
// default price table when none exists. Existing data is never overwritten.
func SeedDatabase(ctx context.Context, db *gorm.DB, cfg AppConfig, log *logrus.Logger) error {
	rooms := services.NewRoomService(db, services.NewInventoryService(db), nil)
	created, err := rooms.EnsureRoster(ctx, cfg.RoomNumbers)
	if err != nil {
		return err
	}
	if created > 0 {
		log.WithField("rooms", created).Info("rooms seeded")
	}

	if err := services.NewPriceService(db).EnsureDefaults(ctx, cfg.DefaultPrices); err != nil {
		return err
	}
	return nil
}
