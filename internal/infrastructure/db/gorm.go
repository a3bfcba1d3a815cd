package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the gorm driver for a DB_DRIVER value.
func Dialector(driver, mysqlDSN, sqlitePath string) (gorm.Dialector, error) {
	switch driver {
	case "mysql":
		return mysql.Open(mysqlDSN), nil
	case "sqlite":
		// foreign keys + wait on locks instead of failing fast
		return sqlite.Open(sqlitePath + "?_foreign_keys=on&_busy_timeout=5000"), nil
	}
	return nil, fmt.Errorf("unsupported db driver %q", driver)
}

func OpenGorm(dial gorm.Dialector, log zerolog.Logger) (*gorm.DB, error) {
	db, err := OpenGormWithDialector(dial, gormLogLevel(log.GetLevel()))
	if err != nil {
		return nil, err
	}
	log.Info().Str("driver", dial.Name()).Msg("gorm: connected")
	return db, nil
}

// OpenGormWithDialector opens and pings the database behind dial.
func OpenGormWithDialector(dial gorm.Dialector, level ...logger.LogLevel) (*gorm.DB, error) {
	lvl := logger.Warn
	if len(level) > 0 {
		lvl = level[0]
	}
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(lvl),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if dial.Name() == "sqlite" {
		// single writer; serialises transactions the way row locks would
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(30)
		sqlDB.SetMaxIdleConns(10)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func gormLogLevel(l zerolog.Level) logger.LogLevel {
	switch {
	case l <= zerolog.DebugLevel:
		return logger.Info
	case l <= zerolog.WarnLevel:
		return logger.Warn
	default:
		return logger.Error
	}
}
