package mysql

import (
	"fmt"
	"net"
	"time"

	"fooddash/config"
	"fooddash/pkg/logger"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// 连接池默认值，配置为 0 时生效
const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 10
	defaultConnMaxLifetime = 10 * time.Minute
	connMaxIdleTime        = 5 * time.Minute
	ioTimeout              = 10 * time.Second
)

// mysqlDSN 时间一律按 UTC 存取，订单号按 UTC 日期计数
func mysqlDSN(db config.DatabaseConfig) string {
	dc := mysqlDriver.NewConfig()
	dc.User = db.Username
	dc.Passwd = db.Password
	dc.Net = "tcp"
	dc.Addr = net.JoinHostPort(db.Host, db.Port)
	dc.DBName = db.Database
	dc.ParseTime = true
	dc.Loc = time.UTC
	dc.Collation = "utf8mb4_unicode_ci"
	dc.ReadTimeout = ioTimeout
	dc.WriteTimeout = ioTimeout
	return dc.FormatDSN()
}

// newGormConfig MySQL 与 SQLite 共用：UTC 时间、错误翻译、zap SQL 日志
func newGormConfig(logLevel string) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.NewGormLogger(logLevel),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}

// OpenMySQL 生产后端
func OpenMySQL(db config.DatabaseConfig) (*gorm.DB, error) {
	gdb, err := gorm.Open(mysql.Open(mysqlDSN(db)), newGormConfig(db.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mysql %s: %w", db.Host, err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpen := orDefault(db.MaxOpenConns, defaultMaxOpenConns)
	maxIdle := min(orDefault(db.MaxIdleConns, defaultMaxIdleConns), maxOpen)
	lifetime := db.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = defaultConnMaxLifetime
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(lifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	logger.Info("Database connected",
		zap.String("driver", "mysql"),
		zap.String("host", db.Host),
		zap.String("database", db.Database),
		zap.Int("max_open_conns", maxOpen),
		zap.Int("max_idle_conns", maxIdle),
		zap.Duration("conn_max_lifetime", lifetime),
	)
	return gdb, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
