// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging wraps a sugared zap logger with the key/value helpers
// used across notepub. Values logged under path-like keys have the user's
// home directory shortened to "~".
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a structured key/value logger.
type Logger struct {
	SugaredLogger *zap.SugaredLogger
	home          string
}

// New builds a logger for mode: "prod"/"production" gives JSON output at
// info level, "silent"/"off" discards everything, anything else gives
// human-readable development output at debug level. Output goes to
// stderr so it never mixes with command output.
func New(mode string) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "silent", "off", "none":
		return Nop(), nil
	case "prod", "production":
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.DisableStacktrace = true
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return wrap(zapLogger), nil
}

// NewWithCore builds a logger on an existing core; tests pass an
// observer core here.
func NewWithCore(core zapcore.Core) *Logger {
	return wrap(zap.New(core))
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return wrap(zap.NewNop())
}

func wrap(z *zap.Logger) *Logger {
	home, _ := os.UserHomeDir()
	return &Logger{SugaredLogger: z.Sugar(), home: home}
}

func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.SugaredLogger.Debugw(msg, l.sanitize(keysAndValues)...)
}
func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.SugaredLogger.Infow(msg, l.sanitize(keysAndValues)...)
}
func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.SugaredLogger.Warnw(msg, l.sanitize(keysAndValues)...)
}
func (l *Logger) Error(msg string, keysAndValues ...any) {
	l.SugaredLogger.Errorw(msg, l.sanitize(keysAndValues)...)
}
func (l *Logger) With(keysAndValues ...any) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(l.sanitize(keysAndValues)...), home: l.home}
}

func (l *Logger) sanitize(kv []any) []any {
	if len(kv) == 0 || l.home == "" {
		return kv
	}
	out := make([]any, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i == len(kv)-1 {
			out = append(out, kv[i])
			break
		}
		key := fmt.Sprint(kv[i])
		out = append(out, key, l.sanitizeValue(key, kv[i+1]))
	}
	return out
}

func (l *Logger) sanitizeValue(key string, val any) any {
	s, ok := val.(string)
	if !ok || !isPathKey(key) {
		return val
	}
	if s == l.home {
		return "~"
	}
	if rest, found := strings.CutPrefix(s, l.home+string(os.PathSeparator)); found {
		return "~" + string(os.PathSeparator) + rest
	}
	return s
}

func isPathKey(key string) bool {
	key = strings.ToLower(key)
	return strings.HasSuffix(key, "path") || strings.HasSuffix(key, "dir") || key == "file"
}
