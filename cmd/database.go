package cmd

import (
	"fmt"

	"fooddash/config"
	"fooddash/infrastructure/persistence/mysql"
	"fooddash/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OpenDatabase 按 database.type 打开 GORM 连接，memory 模式不需要调用
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Database.Type {
	case "mysql":
		db, err = mysql.OpenMySQL(cfg.Database)
	case "sqlite":
		db, err = mysql.OpenSQLite(cfg.Database.SQLitePath, cfg.Database.LogLevel)
	default:
		return nil, fmt.Errorf("database type %q has no SQL connection", cfg.Database.Type)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping %s: %w", cfg.Database.Type, err)
	}

	if cfg.Database.AutoMigrate {
		if err := mysql.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to auto migrate: %w", err)
		}
		logger.Info("Schema migrated", zap.String("driver", cfg.Database.Type))
	}
	return db, nil
}

// CloseDatabase 关闭底层连接池
func CloseDatabase(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("Failed to close database", zap.Error(err))
	}
}
