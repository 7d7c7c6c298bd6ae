package mysql

import (
	"fmt"
	"strings"

	"fooddash/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenSQLite 单机部署与测试用的 SQLite 连接
// path 为 ":memory:" 时使用共享缓存，保证同一进程内多个连接看到同一个库
func OpenSQLite(path, logLevel string) (*gorm.DB, error) {
	dsn := path
	if path == ":memory:" {
		dsn = "file::memory:?cache=shared"
	}
	dsn = withPragmas(dsn)

	db, err := gorm.Open(sqlite.Open(dsn), newGormConfig(logLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	// SQLite 只允许一个写者，单连接避免 database is locked
	sqlDB.SetMaxOpenConns(1)

	logger.Info("Database connected", zap.String("driver", "sqlite"), zap.String("path", path))
	return db, nil
}

func withPragmas(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_busy_timeout=5000&_foreign_keys=on"
}
