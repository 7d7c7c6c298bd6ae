/*
Package logger 提供 GORM 到 Zap 的日志适配。
*/
package logger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

type GormLoggerConfig struct {
	SlowThreshold time.Duration
	// IgnoreRecordNotFoundError 仓储把查不到转换成领域 NotFound，默认不记日志
	IgnoreRecordNotFoundError bool
}

func DefaultGormLoggerConfig() *GormLoggerConfig {
	return &GormLoggerConfig{
		SlowThreshold:             200 * time.Millisecond,
		IgnoreRecordNotFoundError: true,
	}
}

// GormLoggerAdapter 实现 gorm logger.Interface，SQL 日志带 request_id
type GormLoggerAdapter struct {
	logLevel gormlogger.LogLevel
	config   *GormLoggerConfig
}

// NewGormLogger 按 database.log_level 创建适配器
func NewGormLogger(level string) *GormLoggerAdapter {
	return NewGormLoggerAdapterWithConfig(ParseGormLevel(level), DefaultGormLoggerConfig())
}

func NewGormLoggerAdapterWithConfig(logLevel gormlogger.LogLevel, config *GormLoggerConfig) *GormLoggerAdapter {
	if config == nil {
		config = DefaultGormLoggerConfig()
	}
	return &GormLoggerAdapter{logLevel: logLevel, config: config}
}

// ParseGormLevel debug/info 都记录全部 SQL，未知值按 warn 处理
func ParseGormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "debug", "info":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	case "silent":
		return gormlogger.Silent
	default:
		return gormlogger.Warn
	}
}

func (l *GormLoggerAdapter) LogMode(logLevel gormlogger.LogLevel) gormlogger.Interface {
	return &GormLoggerAdapter{logLevel: logLevel, config: l.config}
}

// forContext 每次取当前全局 logger，Init 或测试替换之后创建的连接也能生效
func (l *GormLoggerAdapter) forContext(ctx context.Context) *zap.Logger {
	return FromContext(ctx).Named("gorm")
}

func (l *GormLoggerAdapter) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.logLevel >= gormlogger.Info {
		l.forContext(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLoggerAdapter) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.logLevel >= gormlogger.Warn {
		l.forContext(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLoggerAdapter) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.logLevel >= gormlogger.Error {
		l.forContext(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLoggerAdapter) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.logLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("source", utils.FileWithLineNum()),
	}
	log := l.forContext(ctx)

	switch {
	case err != nil && errors.Is(err, gormlogger.ErrRecordNotFound):
		if !l.config.IgnoreRecordNotFoundError && l.logLevel >= gormlogger.Warn {
			log.Warn("Database record not found", fields...)
		}
	case err != nil && isDuplicateKey(err):
		// 订单号并发冲突由工作单元重试，不算故障
		if l.logLevel >= gormlogger.Warn {
			log.Warn("Duplicate key", append(fields, zap.Error(err))...)
		}
	case err != nil:
		if l.logLevel >= gormlogger.Error {
			log.Error("Database operation failed", append(fields, zap.Error(err))...)
		}
	case l.config.SlowThreshold != 0 && elapsed > l.config.SlowThreshold:
		if l.logLevel >= gormlogger.Warn {
			log.Warn("Slow SQL query", append(fields, zap.Duration("threshold", l.config.SlowThreshold))...)
		}
	case l.logLevel >= gormlogger.Info:
		log.Info("SQL query executed", fields...)
	}
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

var _ gormlogger.Interface = (*GormLoggerAdapter)(nil)
