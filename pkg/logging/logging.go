// Package logging builds the zap logger shared by palette commands.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the logger's level and encoding.
type Options struct {
	Level  string
	Format string
}

// New returns a logger writing to stderr so command output on stdout stays
// clean. Format "json" selects the JSON encoder; anything else is console.
func New(o Options) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if s := strings.TrimSpace(o.Level); s != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
			return nil, fmt.Errorf("logging: level %q: %w", o.Level, err)
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch strings.ToLower(strings.TrimSpace(o.Format)) {
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)
	return zap.New(core), nil
}

// Must is New for callers that cannot recover; it falls back to a no-op
// logger instead of failing.
func Must(o Options) *zap.Logger {
	l, err := New(o)
	if err != nil {
		return zap.NewNop()
	}
	return l
}
