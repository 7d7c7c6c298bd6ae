package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fooddash/config"
	"fooddash/infrastructure/persistence"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var testApp = config.AppConfig{Name: "fooddash", Version: "test", Env: "development"}

func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	restore := Replace(zap.New(core))
	t.Cleanup(restore)
	return logs
}

func TestNilLoggerSafety(t *testing.T) {
	restore := Replace(nil)
	defer restore()

	Debug("test debug")
	Info("test info")
	Warn("test warn")
	Error("test error")
	With(zap.String("key", "value")).Info("test with")
	WithRequestID("test-id").Info("test with request id")
	ForOrder(context.Background(), 7).Info("test for order")

	if err := Sync(); err != nil {
		t.Fatalf("Sync on nil logger: %v", err)
	}
}

func TestInitStampsServiceFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	cfg := &config.LogConfig{Level: "info", Format: "json", Output: "file", FilePath: path}

	prev := log
	t.Cleanup(func() { log = prev })
	if err := Init(cfg, config.AppConfig{Name: "fooddash", Version: "1.2.3", Env: "production"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Info("Order placed", zap.Int64("order_id", 7))
	Debug("filtered at info level")
	_ = Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"service":"fooddash"`, `"version":"1.2.3"`, `"env":"production"`, `"order_id":7`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
	if strings.Contains(out, "filtered at info level") {
		t.Error("debug entry should be filtered at info level")
	}
}

func TestInitStdout(t *testing.T) {
	prev := log
	t.Cleanup(func() { log = prev })

	for _, format := range []string{"console", "json", ""} {
		if err := Init(&config.LogConfig{Level: "debug", Format: format, Output: "stdout"}, testApp); err != nil {
			t.Fatalf("Init(%q): %v", format, err)
		}
		Debug("stdout logger ready", zap.String("format", format))
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"WARN":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"":      zapcore.InfoLevel,
		"loud":  zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFromContextTagsRequestID(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	ctx := persistence.ContextWithRequestID(context.Background(), "req-42")
	FromContext(ctx).Info("order placed", zap.Int64("order_id", 7))
	FromContext(context.Background()).Info("no request id")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["request_id"]; got != "req-42" {
		t.Errorf("request_id = %v, want req-42", got)
	}
	if _, ok := entries[1].ContextMap()["request_id"]; ok {
		t.Error("request_id should be absent without one in context")
	}
}

func TestForOrder(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	ctx := persistence.ContextWithRequestID(context.Background(), "req-7")
	ForOrder(ctx, 9).Info("Order status updated", zap.String("status", "CONFIRMED"))

	entries := logs.FilterMessage("Order status updated").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["order_id"] != int64(9) || fields["request_id"] != "req-7" || fields["status"] != "CONFIRMED" {
		t.Errorf("unexpected fields: %v", fields)
	}
}
