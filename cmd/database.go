package cmd

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/leaveflow/internal"
	"github.com/frahmantamala/leaveflow/internal/core/datamodel"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// initDB opens the configured store and returns the ORM handle plus the
// underlying pool, which the health check and shutdown path use directly.
func initDB(cfg internal.DatabaseConfig, log *slog.Logger) (*gorm.DB, *sql.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Warn),
		TranslateError: true,
	}

	switch cfg.GetDriver() {
	case "sqlite":
		gdb, err := gorm.Open(sqlite.Open(cfg.Source), gormCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, err
		}
		// sqlite serialises writers; one connection avoids SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
		if err := gdb.AutoMigrate(datamodel.Models()...); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
		log.Info("database ready", "driver", "sqlite")
		return gdb, sqlDB, nil

	default:
		const driver = "pgx"

		dbConn, err := sqlx.Connect(driver, cfg.Source)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
		}

		dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
		dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
		dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

		// verify connection; close underlying *sql.DB on failure
		if err := dbConn.Ping(); err != nil {
			_ = dbConn.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}

		gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: dbConn.DB}), gormCfg)
		if err != nil {
			_ = dbConn.Close()
			return nil, nil, fmt.Errorf("failed to open gorm: %w", err)
		}
		log.Info("database ready", "driver", "postgres", "max_open_conns", cfg.MaxOpenConns)
		return gdb, dbConn.DB, nil
	}
}
