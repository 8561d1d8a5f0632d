// Package logging adapts zerolog to the engine's Logger capability so
// the CLI and the MCP server share one diagnostics setup.
package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog logger behind the printf-style interface the
// engine and the UI backends log through.
type Logger struct {
	zl zerolog.Logger
}

// New builds a console logger writing to out at info level, or debug
// level when verbose is set.
func New(out io.Writer, verbose bool) *Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: out}).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// Wrap adapts an existing zerolog logger.
func Wrap(zl zerolog.Logger) *Logger {
	return &Logger{zl: zl}
}

func (l *Logger) Debugf(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}
