package middleware

import (
	"context"
	"time"

	"github.com/dzonerzy/go-argv/argv"
)

// Logger creates a middleware that logs the start and end of every handler
// run with its exit code and duration
func Logger(options ...ConfigOption) Middleware {
	config := newConfig(options)
	return func(next argv.Handler) argv.Handler {
		return func(ctx context.Context, r *argv.ParseResult) int {
			name := commandName(r)
			fields := []any{"command", name}
			if config.IncludeArgs && r != nil {
				for _, a := range r.Command().Arguments().List() {
					fields = append(fields, a.Name(), r.ArgValues(a.Name()))
				}
			}
			config.Logger.Info("start", fields...)

			start := time.Now()
			code := next(ctx, r)
			elapsed := time.Since(start)

			if code != 0 {
				config.Logger.Error("done", "command", name, "code", code, "duration", elapsed)
			} else {
				config.Logger.Info("done", "command", name, "code", code, "duration", elapsed)
			}
			return code
		}
	}
}
