// Package logs builds the process logger: colored console output on stderr
// plus an optional rotated JSON file.
package logs

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jamjar/jamjar-editor/internal/config"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// Init replaces the process logger. The level is parsed case-insensitively
// and falls back to info.
func Init(appName string, cfg config.LogConfig) error {
	return initWith(appName, cfg, os.Stderr)
}

func initWith(appName string, cfg config.LogConfig, console io.Writer) error {
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		lvl = zapcore.InfoLevel
	}

	atomicLevel := zap.NewAtomicLevelAt(lvl)

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	consoleCfg := encoderCfg
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleSyncer := zapcore.Lock(zapcore.AddSync(console))

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), consoleSyncer, atomicLevel)

	// The file gets its own uncolored JSON core so no escape codes reach it.
	if cfg.File != "" {
		fileCfg := encoderCfg
		fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder

		fileSyncer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    max(1, cfg.MaxSize),
			MaxBackups: max(0, cfg.MaxBackups),
			MaxAge:     max(0, cfg.MaxAge),
			Compress:   cfg.Compress,
		})

		core = zapcore.NewTee(core, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), fileSyncer, atomicLevel))
	}

	opts := []zap.Option{zap.AddCaller()}
	if cfg.Dev {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	}

	l := zap.New(core, opts...).Named(appName)

	mu.Lock()
	defer mu.Unlock()

	_ = logger.Sync()
	logger = l

	return nil
}

// L returns the process logger; a no-op logger before Init.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()

	return logger
}

// Sync flushes buffered entries.
func Sync() {
	_ = L().Sync()
}
