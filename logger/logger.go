// Package logger builds the zap logger used for diagnostics.
package logger

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/stevemurr/jsonrecords/config"
)

// New creates a zap logger writing to w and, when cfg.File is set, to a
// size-rotated log file. console format is human readable, json is one
// object per line.
func New(cfg config.LoggingConfig, w io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var enc zapcore.Encoder
	switch cfg.Format {
	case "json":
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case "console", "":
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(ec)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	out := []zapcore.WriteSyncer{zapcore.AddSync(w)}
	if cfg.File != "" {
		out = append(out, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}))
	}

	core := zapcore.NewCore(enc, zapcore.NewMultiWriteSyncer(out...), level)
	return zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
