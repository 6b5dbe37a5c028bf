package applog

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gaut2172/bidindex/internal/appctx"
	"github.com/rs/zerolog"
)

const (
	// scopeFieldName defines the key for the "scope" field in structured logs.
	scopeFieldName = "scope"
	// sessionIDFieldName defines the key for the "session_id" field in structured logs.
	sessionIDFieldName = "session_id"
	commandFieldName   = "command"
)

// NewLogger creates a zerolog.Logger writing human-readable lines to out.
// This instance is intended to be passed to other components via Dependency Injection.
func NewLogger(out io.Writer, level zerolog.Level) zerolog.Logger {
	partsOrder := []string{
		zerolog.LevelFieldName,
		zerolog.TimestampFieldName,
		sessionIDFieldName, // Custom fields are placed before the message.
		scopeFieldName,
		zerolog.MessageFieldName,
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		PartsOrder: partsOrder,
		// FormatPrepare intercepts fields just before printing
		// to apply custom formatting, like adding brackets [SCOPE].
		FormatPrepare: func(m map[string]any) error {
			if v, ok := m[sessionIDFieldName].(string); ok && v != "" {
				m[sessionIDFieldName] = v
			} else {
				// Keep the part empty instead of letting zerolog print <nil>.
				m[sessionIDFieldName] = ""
			}

			if v, ok := m[scopeFieldName].(string); ok && v != "" {
				m[scopeFieldName] = fmt.Sprintf("[%s]", v)
			} else {
				m[scopeFieldName] = ""
			}
			return nil
		},
		// The raw fields are already rendered as parts.
		FieldsExclude: []string{sessionIDFieldName, scopeFieldName},
		NoColor:       true,
	}

	logger := zerolog.New(consoleWriter).Hook(ctxHook{}).Level(level)

	return logger.With().Timestamp().Logger()
}

// WithScope is a helper for components (like the loader or the menu)
// to create a sub-logger with their component name.
func WithScope(logger zerolog.Logger, scope string) zerolog.Logger {
	return logger.With().Str(scopeFieldName, scope).Logger()
}

// ctxHook implements the zerolog.Hook interface.
// It is triggered only if .Ctx(ctx) is added to the log chain.
type ctxHook struct{}

// Run adds the session ID and command carried by the event's context.
func (h ctxHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil {
		return
	}

	if sessionID, ok := appctx.SessionIDFrom(ctx); ok {
		e.Str(sessionIDFieldName, sessionID)
	}

	if command, ok := appctx.CommandFrom(ctx); ok {
		e.Str(commandFieldName, command)
	}
}

type joinableError interface {
	Unwrap() []error
}

// ErrorUnwrapped logs each error of a joined error on its own line.
// If the error is not joined, it logs the single error normally.
func ErrorUnwrapped(logger *zerolog.Logger, msg string, err error) {
	logUnwrapped(logger, zerolog.ErrorLevel, msg, err)
}

func WarnUnwrapped(logger *zerolog.Logger, msg string, err error) {
	logUnwrapped(logger, zerolog.WarnLevel, msg, err)
}

func logUnwrapped(logger *zerolog.Logger, level zerolog.Level, msg string, err error) {
	var joinedErrs joinableError

	if errors.As(err, &joinedErrs) {
		for _, e := range joinedErrs.Unwrap() {
			logger.WithLevel(level).Err(e).Msg(msg)
		}

		return
	}

	logger.WithLevel(level).Err(err).Msg(msg)
}
