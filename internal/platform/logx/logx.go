// internal/platform/logx/logx.go
package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Err(err error, kv ...any)
	With(kv ...any) Logger
	SetLevel(lvl Level)
}

type zeroLogger struct {
	mu sync.Mutex
	zl zerolog.Logger
}

// New crea un logger de consola en stderr. El nivel se toma de HARVESTX_LOG_LEVEL.
func New() Logger {
	return NewWithLevel(parseLevel(os.Getenv("HARVESTX_LOG_LEVEL")))
}

// NewWithLevel creates a console logger with a specific log level
func NewWithLevel(lvl Level) Logger {
	out := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}
	return newLogger(out, lvl)
}

// NewWithWriter creates a JSON logger writing to w. Mostly useful in tests.
func NewWithWriter(w io.Writer, lvl Level) Logger {
	return newLogger(zerolog.SyncWriter(w), lvl)
}

// NewSilent creates a logger that only outputs errors
func NewSilent() Logger {
	return NewWithLevel(LevelError)
}

// NewNop discards everything.
func NewNop() Logger {
	return &zeroLogger{zl: zerolog.Nop()}
}

func newLogger(w io.Writer, lvl Level) Logger {
	zl := zerolog.New(w).With().Timestamp().Logger().Level(toZerolog(lvl))
	return &zeroLogger{zl: zl}
}

func (s *zeroLogger) With(kv ...any) Logger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &zeroLogger{zl: s.zl.With().Fields(kvFields(kv...)).Logger()}
}

func (s *zeroLogger) SetLevel(lvl Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zl = s.zl.Level(toZerolog(lvl))
}

func (s *zeroLogger) Debug(msg string, kv ...any) { s.log(zerolog.DebugLevel, msg, kv...) }
func (s *zeroLogger) Info(msg string, kv ...any)  { s.log(zerolog.InfoLevel, msg, kv...) }
func (s *zeroLogger) Warn(msg string, kv ...any)  { s.log(zerolog.WarnLevel, msg, kv...) }
func (s *zeroLogger) Err(err error, kv ...any) {
	if err == nil {
		return
	}
	s.mu.Lock()
	zl := s.zl
	s.mu.Unlock()
	zl.Error().Err(err).Fields(kvFields(kv...)).Send()
}

func (s *zeroLogger) log(l zerolog.Level, msg string, kv ...any) {
	s.mu.Lock()
	zl := s.zl
	s.mu.Unlock()
	ev := zl.WithLevel(l)
	if ev == nil {
		return
	}
	ev.Fields(kvFields(kv...)).Msg(msg)
}

// kvFields normaliza pares clave/valor: claves a string, valor faltante = "(missing)".
func kvFields(kv ...any) []any {
	out := make([]any, 0, len(kv)+1)
	for i := 0; i < len(kv); i += 2 {
		k := fmt.Sprint(kv[i])
		var v any = "(missing)"
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		out = append(out, k, v)
	}
	return out
}

func toZerolog(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ParseLevel exposes the level parser for config flags.
func ParseLevel(s string) Level { return parseLevel(s) }

func parseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return LevelDebug
	case "info", "inf", "":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "err", "error":
		return LevelError
	default:
		return LevelInfo
	}
}
