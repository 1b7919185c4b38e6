// Package middleware provides wrappers for argv command handlers
// Focused on 4 essential middleware: Logger, Recovery, Timeout, and Validator
package middleware

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dzonerzy/go-argv/argv"
)

// Middleware wraps a command handler
type Middleware func(next argv.Handler) argv.Handler

// MiddlewareChain represents a chain of middleware functions
type MiddlewareChain []Middleware

// Apply applies the middleware chain to a Handler. Middleware are wrapped
// in the order they appear in the chain, so the first one runs outermost.
func (chain MiddlewareChain) Apply(h argv.Handler) argv.Handler {
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	return h
}

// Use returns a new chain with the provided middleware appended.
func (chain MiddlewareChain) Use(middleware ...Middleware) MiddlewareChain {
	return append(chain, middleware...)
}

// Chain creates a new middleware chain from the provided middleware, preserving
// order.
func Chain(middleware ...Middleware) MiddlewareChain {
	return MiddlewareChain(middleware)
}

// Wrap installs the chain around the handler of cmd and every descendant
// that has one
func (chain MiddlewareChain) Wrap(cmd *argv.Command) {
	if h := cmd.Handler(); h != nil {
		cmd.Action(chain.Apply(h))
	}
	for _, child := range cmd.Children() {
		chain.Wrap(child)
	}
}

// Config contains configuration for middleware behavior
type Config struct {
	Logger      *log.Logger
	IncludeArgs bool
	PrintStack  bool
	StackSize   int
	PanicCode   int
	TimeoutCode int
	Timeout     time.Duration
}

// DefaultConfig returns the default middleware configuration
func DefaultConfig() *Config {
	return &Config{
		Logger:      log.NewWithOptions(io.Discard, log.Options{Prefix: "argv"}),
		StackSize:   4096,
		PanicCode:   1,
		TimeoutCode: 124,
		Timeout:     30 * time.Second,
	}
}

// ConfigOption configures middleware
type ConfigOption func(*Config)

// WithLogger sets the logger used by middleware
func WithLogger(l *log.Logger) ConfigOption {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithArgs includes resolved argument values in log records
func WithArgs() ConfigOption {
	return func(c *Config) { c.IncludeArgs = true }
}

// WithStack captures the stack of recovered panics
func WithStack(size int) ConfigOption {
	return func(c *Config) {
		c.PrintStack = true
		if size > 0 {
			c.StackSize = size
		}
	}
}

// WithPanicCode sets the exit code returned after a recovered panic
func WithPanicCode(code int) ConfigOption {
	return func(c *Config) { c.PanicCode = code }
}

// WithTimeoutCode sets the exit code returned when a handler times out
func WithTimeoutCode(code int) ConfigOption {
	return func(c *Config) { c.TimeoutCode = code }
}

func newConfig(options []ConfigOption) *Config {
	config := DefaultConfig()
	for _, option := range options {
		option(config)
	}
	return config
}

func commandName(r *argv.ParseResult) string {
	if r == nil || r.Command() == nil {
		return ""
	}
	return r.Command().FullName()
}
