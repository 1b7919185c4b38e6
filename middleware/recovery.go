package middleware

import (
	"context"
	"runtime"

	"github.com/dzonerzy/go-argv/argv"
)

// Recovery creates a middleware that recovers from panics in the handler,
// logs them and returns the configured panic exit code
func Recovery(options ...ConfigOption) Middleware {
	config := newConfig(options)
	return RecoveryWithHandler(func(panicVal any, command string, stack []byte) int {
		if len(stack) > 0 {
			config.Logger.Error("panic", "command", command, "panic", panicVal, "stack", string(stack))
		} else {
			config.Logger.Error("panic", "command", command, "panic", panicVal)
		}
		return config.PanicCode
	}, options...)
}

// RecoveryWithHandler creates a recovery middleware with a custom panic
// handler; its return value becomes the exit code
func RecoveryWithHandler(handler func(panicVal any, command string, stack []byte) int, options ...ConfigOption) Middleware {
	config := newConfig(options)
	return func(next argv.Handler) argv.Handler {
		return func(ctx context.Context, r *argv.ParseResult) (code int) {
			defer func() {
				if p := recover(); p != nil {
					var stack []byte
					if config.PrintStack {
						stack = make([]byte, config.StackSize)
						stack = stack[:runtime.Stack(stack, false)]
					}
					code = handler(p, commandName(r), stack)
				}
			}()
			return next(ctx, r)
		}
	}
}
