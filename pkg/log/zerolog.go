package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Zerolog implements Logger using zerolog.
type Zerolog struct {
	logger zerolog.Logger
}

// NewZerolog creates a zerolog-backed Logger with console output on stderr.
func NewZerolog() *Zerolog {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return &Zerolog{logger: zerolog.New(output).With().Timestamp().Logger()}
}

// WrapZerolog creates a Logger around an existing zerolog.Logger.
func WrapZerolog(logger zerolog.Logger) *Zerolog {
	return &Zerolog{logger: logger}
}

// Debug logs a debug-level message.
func (z *Zerolog) Debug(msg string, fields ...Field) {
	z.emit(z.logger.Debug(), msg, fields)
}

// Info logs an info-level message.
func (z *Zerolog) Info(msg string, fields ...Field) {
	z.emit(z.logger.Info(), msg, fields)
}

// Warn logs a warning-level message.
func (z *Zerolog) Warn(msg string, fields ...Field) {
	z.emit(z.logger.Warn(), msg, fields)
}

// Error logs an error-level message.
func (z *Zerolog) Error(msg string, fields ...Field) {
	z.emit(z.logger.Error(), msg, fields)
}

// Logger returns the underlying zerolog.Logger.
func (z *Zerolog) Logger() zerolog.Logger {
	return z.logger
}

func (z *Zerolog) emit(event *zerolog.Event, msg string, fields []Field) {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			event = event.Str(f.Key, v)
		case int:
			event = event.Int(f.Key, v)
		case bool:
			event = event.Bool(f.Key, v)
		case time.Duration:
			event = event.Dur(f.Key, v)
		case error:
			event = event.Err(v)
		default:
			event = event.Interface(f.Key, v)
		}
	}
	event.Msg(msg)
}
