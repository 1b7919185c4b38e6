package middleware

import (
	"context"
	"fmt"

	"github.com/dzonerzy/go-argv/argv"
)

// ValidationError represents a failed post-parse check
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CheckFunc inspects a parse result before the handler runs
type CheckFunc func(r *argv.ParseResult) error

// Validator creates a middleware that runs checks in order before the
// handler. The first failing check is logged and code is returned without
// running the handler.
func Validator(code int, checks []CheckFunc, options ...ConfigOption) Middleware {
	config := newConfig(options)
	return func(next argv.Handler) argv.Handler {
		return func(ctx context.Context, r *argv.ParseResult) int {
			for _, check := range checks {
				if err := check(r); err != nil {
					config.Logger.Error("validation failed", "command", commandName(r), "err", err)
					return code
				}
			}
			return next(ctx, r)
		}
	}
}

// RequireOneOf fails unless at least one of the named options is present
func RequireOneOf(names ...string) CheckFunc {
	return func(r *argv.ParseResult) error {
		for _, n := range names {
			if r.Has(n) {
				return nil
			}
		}
		return &ValidationError{Message: fmt.Sprintf("one of %v is required", names)}
	}
}

// IntRange fails when the named argument holds an integer outside [lo, hi]
func IntRange(arg string, lo, hi int64) CheckFunc {
	return func(r *argv.ParseResult) error {
		for _, v := range r.ArgValues(arg) {
			i, ok := v.Int()
			if !ok {
				return &ValidationError{Field: arg, Message: fmt.Sprintf("%q is not an integer", v.String())}
			}
			if i < lo || i > hi {
				return &ValidationError{Field: arg, Message: fmt.Sprintf("%d is outside [%d, %d]", i, lo, hi)}
			}
		}
		return nil
	}
}
