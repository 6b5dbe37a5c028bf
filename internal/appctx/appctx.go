package appctx

import (
	"context"

	"github.com/google/uuid"
)

// We define unexported key types to prevent key collisions with other packages.
type (
	sessionIDCtxKey struct{}
	commandCtxKey   struct{}
)

// WithNewSessionID ensures a session ID is present in the context.
// If one already exists, it returns the original context unmodified.
func WithNewSessionID(ctx context.Context) context.Context {
	if _, ok := SessionIDFrom(ctx); ok {
		return ctx
	}
	return context.WithValue(ctx, sessionIDCtxKey{}, uuid.NewString())
}

// SessionIDFrom extracts a session ID string from the context, if one exists.
func SessionIDFrom(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(sessionIDCtxKey{}).(string)
	return sessionID, ok
}

// WithCommand returns a new context carrying the menu command being run.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandCtxKey{}, command)
}

func CommandFrom(ctx context.Context) (string, bool) {
	command, ok := ctx.Value(commandCtxKey{}).(string)
	return command, ok
}
