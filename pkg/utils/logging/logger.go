package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/clog"
	"golang.org/x/term"
)

// Format represents the log output format
type Format int

const (
	FormatAuto Format = iota
	FormatConsole
	FormatJSON
)

// NewLogger creates a slog.Logger with automatic format detection. A
// terminal gets colored console output via clog; anything else gets JSON.
// Commands install the result into the context so the rest of the service
// picks it up through ctxlog.
func NewLogger(level slog.Level, w io.Writer) *slog.Logger {
	return NewLoggerWithFormat(level, w, FormatAuto)
}

// NewLoggerWithFormat creates a slog.Logger with an explicit format
func NewLoggerWithFormat(level slog.Level, w io.Writer, format Format) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}

	var handler slog.Handler

	switch format {
	case FormatConsole:
		handler = consoleHandler(level, w)

	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})

	case FormatAuto:
		isTerminal := false
		if f, ok := w.(*os.File); ok {
			isTerminal = term.IsTerminal(int(f.Fd()))
		}

		if isTerminal {
			handler = consoleHandler(level, w)
		} else {
			// JSON for piped output and service logs
			handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level: level,
			})
		}
	}

	return slog.New(handler)
}

// consoleHandler builds the colored terminal handler. The goerr hook
// expands wrapped error values into structured attributes.
func consoleHandler(level slog.Level, w io.Writer) slog.Handler {
	return clog.New(
		clog.WithWriter(w),
		clog.WithLevel(level),
		clog.WithTimeFmt("15:04:05"),
		clog.WithSource(false),
		clog.WithAttrHook(clog.GoerrHook),
	)
}

// ParseLogLevel parses a string log level to slog.Level
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug", "DEBUG":
		return slog.LevelDebug
	case "info", "INFO", "":
		return slog.LevelInfo
	case "warn", "warning", "WARN", "WARNING":
		return slog.LevelWarn
	case "error", "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
