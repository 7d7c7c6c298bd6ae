/*
Package logger 提供项目统一日志能力。

全局 zap logger，Init 之前所有函数都是空操作；
每条日志带 service/version/env，请求链路上的日志再带 request_id，
订单相关日志用 ForOrder 带上 order_id。
*/
package logger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fooddash/config"
	"fooddash/infrastructure/persistence"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log *zap.Logger

// Init 按 log 配置构建全局 logger；file 输出走 lumberjack 滚动
func Init(cfg *config.LogConfig, app config.AppConfig) error {
	level := parseLevel(cfg.Level)

	writeSyncer, err := newWriteSyncer(cfg)
	if err != nil {
		return err
	}

	core := zapcore.NewCore(newEncoder(cfg.Format, app.Env, level), writeSyncer, level)
	log = zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(
			zap.String("service", app.Name),
			zap.String("version", app.Version),
			zap.String("env", app.Env),
		),
	)
	return nil
}

func newEncoder(format, env string, level zapcore.Level) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	switch {
	case format == "json":
		return zapcore.NewJSONEncoder(encoderConfig)
	case format == "console", level == zapcore.DebugLevel, env == "dev", env == "development":
		return zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return zapcore.NewJSONEncoder(encoderConfig)
	}
}

func newWriteSyncer(cfg *config.LogConfig) (zapcore.WriteSyncer, error) {
	if cfg.Output != "file" {
		return zapcore.AddSync(os.Stdout), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    orDefault(cfg.MaxSize, 10),
		MaxBackups: orDefault(cfg.MaxBackups, 5),
		MaxAge:     orDefault(cfg.MaxAge, 7),
		Compress:   cfg.Compress,
	}), nil
}

func parseLevel(level string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return zapcore.InfoLevel
	}
	return l
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Replace swaps the global logger (tests install an observer core) and returns a restore func
func Replace(l *zap.Logger) func() {
	prev := log
	log = l
	return func() { log = prev }
}

// Sync 忽略终端设备上 fsync 报的无害错误
func Sync() error {
	if log == nil {
		return nil
	}
	if err := log.Sync(); err != nil {
		errStr := err.Error()
		if !strings.Contains(errStr, "inappropriate ioctl for device") &&
			!strings.Contains(errStr, "invalid argument") &&
			!strings.Contains(errStr, "bad file descriptor") {
			return err
		}
	}
	return nil
}

func With(fields ...zap.Field) *zap.Logger {
	if log != nil {
		return log.WithOptions(zap.AddCallerSkip(-1)).With(fields...)
	}
	return zap.NewNop()
}

func WithRequestID(requestID string) *zap.Logger {
	return With(zap.String("request_id", requestID))
}

// FromContext logger tagged with the request id carried by ctx, if any
func FromContext(ctx context.Context) *zap.Logger {
	if requestID := persistence.RequestIDFromContext(ctx); requestID != "" {
		return WithRequestID(requestID)
	}
	return With()
}

// ForOrder 请求日志再加上 order_id
func ForOrder(ctx context.Context, orderID int64) *zap.Logger {
	return FromContext(ctx).With(zap.Int64("order_id", orderID))
}

func Debug(msg string, fields ...zap.Field) {
	if log != nil {
		log.Debug(msg, fields...)
	}
}

func Info(msg string, fields ...zap.Field) {
	if log != nil {
		log.Info(msg, fields...)
	}
}

func Warn(msg string, fields ...zap.Field) {
	if log != nil {
		log.Warn(msg, fields...)
	}
}

func Error(msg string, fields ...zap.Field) {
	if log != nil {
		log.Error(msg, fields...)
	}
}

func Fatal(msg string, fields ...zap.Field) {
	if log != nil {
		log.Fatal(msg, fields...)
	}
}
