package db

import (
	"fmt"
	"log"
	"time"

	"disaster-intake-api/internal/config"
	"disaster-intake-api/internal/domain/account"
	"disaster-intake-api/internal/domain/report"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open picks the dialector from config: sqlite matches the original
// deployment, mysql is for anything bigger.
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		return OpenGormWithDialector(sqlite.Open(cfg.SQLitePath))
	case config.DriverMySQL:
		return OpenGormWithDialector(mysql.Open(cfg.MySQLDSN()))
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}

func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Println("gorm: connected")
	return db, nil
}

// Migrate creates/updates the two persisted tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&account.Account{}, &report.Report{})
}
