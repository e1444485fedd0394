package logger

import (
	"testing"

	"huerto/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNilLoggerSafety(t *testing.T) {
	log = nil
	atomLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	Debug("test debug")
	Info("test info")
	Warn("test warn")
	Error("test error")

	if With(zap.String("key", "value")) == nil {
		t.Error("With() returned nil logger")
	}
	if WithRequestID("test-id") == nil {
		t.Error("WithRequestID() returned nil logger")
	}
	if err := Sync(); err != nil {
		t.Errorf("Sync() on nil logger: %v", err)
	}
}

func TestInitDevelopmentConfig(t *testing.T) {
	cfg := &config.LogConfig{
		Level:    "debug",
		Format:   "",
		Output:   "stdout",
		FilePath: "logs/dev.log",
	}

	if err := Init(cfg, "development"); err != nil {
		t.Fatalf("Failed to initialize development logger: %v", err)
	}
	defer Sync()

	if Get() == nil {
		t.Fatal("Get() returned nil after Init")
	}
	Info("development logger initialized", zap.String("env", "development"))
	Debug("debug message should appear")
}

func TestUpdateLevel(t *testing.T) {
	if err := Init(&config.LogConfig{Level: "info", Output: "stdout"}, "development"); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	defer Sync()

	if atomLevel.Level() != zapcore.InfoLevel {
		t.Errorf("expected info level, got %v", atomLevel.Level())
	}
	UpdateLevel("error")
	if atomLevel.Level() != zapcore.ErrorLevel {
		t.Errorf("expected error level after update, got %v", atomLevel.Level())
	}
}
