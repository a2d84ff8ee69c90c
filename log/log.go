// Package log is the ambient structured-logging layer every other package in
// this repository uses instead of the standard library's log package. It is
// backed by github.com/rs/zerolog and exposes Init/Infof/Debugw/Warnw/Error
// plus an invalid-UTF-8 guard on logged arguments.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

const logTestWriterName = "test"

// logTestWriter is the writer Init uses when output == logTestWriterName;
// tests may swap it out (e.g. for io.Discard in a benchmark) before calling
// Init.
var logTestWriter io.Writer = os.Stderr

// panicOnInvalidChars guards an optional strict mode: when true, a log
// argument containing invalid UTF-8 panics instead of being logged verbatim.
// Off by default; flipped on only by tests exercising the guard itself.
var panicOnInvalidChars = false

var logger zerolog.Logger

func init() {
	logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Init configures the global logger. level is one of zerolog's level names
// (debug, info, warn, error); output selects the destination: "stdout",
// "stderr", or logTestWriterName ("test") to route through logTestWriter.
func Init(level, output string, extra io.Writer) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var w io.Writer
	switch output {
	case "stdout":
		w = os.Stdout
	case logTestWriterName:
		w = logTestWriter
	default:
		w = os.Stderr
	}
	if extra != nil {
		w = io.MultiWriter(w, extra)
	}

	logger = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

func checkArg(a any) any {
	var s string
	switch v := a.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return a
	}
	if utf8.ValidString(s) {
		return a
	}
	if panicOnInvalidChars {
		panic(fmt.Sprintf("log: invalid UTF-8 in argument %q", s))
	}
	return a
}

// Infof logs a formatted message at info level.
func Infof(format string, args ...any) {
	for i, a := range args {
		args[i] = checkArg(a)
	}
	logger.Info().Msg(fmt.Sprintf(format, args...))
}

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...any) {
	for i, a := range args {
		args[i] = checkArg(a)
	}
	logger.Debug().Msg(fmt.Sprintf(format, args...))
}

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...any) {
	for i, a := range args {
		args[i] = checkArg(a)
	}
	logger.Error().Msg(fmt.Sprintf(format, args...))
}

// Error logs err at error level.
func Error(err error) {
	logger.Error().Err(err).Send()
}

// Debugw logs msg at debug level with structured key-value pairs.
func Debugw(msg string, keyvals ...any) {
	withFields(logger.Debug(), keyvals...).Msg(msg)
}

// Warnw logs msg at warn level with structured key-value pairs.
func Warnw(msg string, keyvals ...any) {
	withFields(logger.Warn(), keyvals...).Msg(msg)
}

func withFields(e *zerolog.Event, keyvals ...any) *zerolog.Event {
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, checkArg(keyvals[i+1]))
	}
	return e
}
