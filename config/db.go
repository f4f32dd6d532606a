package config

import (
	"babycare/domain"
	"fmt"
	"os"
	"strings"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// GetDatabaseURL builds the database connection string. DATABASE_URL wins
// when set; URL forms are converted to a key/value DSN.
func GetDatabaseURL() (string, error) {
	if raw := os.Getenv("DATABASE_URL"); raw != "" {
		if !strings.HasPrefix(raw, "postgres://") && !strings.HasPrefix(raw, "postgresql://") {
			return raw, nil
		}
		dsn, err := pq.ParseURL(raw)
		if err != nil {
			return "", fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		return dsn, nil
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		getEnvOr("DB_HOST", "localhost"), getEnvOr("DB_PORT", "5432"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_DATABASE"), getEnvOr("DB_SSLMODE", "disable"),
		GetOperatingTimezone())
	return dsn, nil
}

// BootDB initializes the database connection and runs migrations.
func BootDB() (*gorm.DB, error) {
	url, err := GetDatabaseURL()
	if err != nil {
		return nil, err
	}

	db, err = gorm.Open(postgres.Open(url), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := autoMigrate(db); err != nil {
		return db, err
	}

	GetLogrusInstance().Info("DB initialized")
	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	// users and children first, every tracked record references a child
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Child{},
	); err != nil {
		return fmt.Errorf("failed to migrate base tables: %w", err)
	}

	if err := db.AutoMigrate(
		&domain.Diaper{},
		&domain.Feeding{},
		&domain.Growth{},
		&domain.Sleep{},
		&domain.Vaccination{},
	); err != nil {
		return fmt.Errorf("failed to migrate relational tables: %w", err)
	}

	return nil
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
