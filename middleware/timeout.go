package middleware

import (
	"context"
	"time"

	"github.com/dzonerzy/go-argv/argv"
)

// Timeout creates a middleware that bounds handler execution. The handler
// receives a context carrying the deadline; when it has not returned in
// time the configured timeout code is returned and the handler keeps
// running in the background until it observes cancellation.
func Timeout(duration time.Duration, options ...ConfigOption) Middleware {
	config := newConfig(options)
	return func(next argv.Handler) argv.Handler {
		return func(ctx context.Context, r *argv.ParseResult) int {
			timeoutCtx, cancel := context.WithTimeout(ctx, duration)
			defer cancel()

			done := make(chan int, 1)
			go func() {
				defer func() {
					if p := recover(); p != nil {
						config.Logger.Error("panic", "command", commandName(r), "panic", p)
						done <- config.PanicCode
					}
				}()
				done <- next(timeoutCtx, r)
			}()

			select {
			case code := <-done:
				return code
			case <-timeoutCtx.Done():
				config.Logger.Warn("timeout", "command", commandName(r), "after", duration)
				return config.TimeoutCode
			}
		}
	}
}

// TimeoutWithDefault creates a timeout middleware with the timeout from config
func TimeoutWithDefault(options ...ConfigOption) Middleware {
	return Timeout(newConfig(options).Timeout, options...)
}
