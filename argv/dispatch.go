package argv

import (
	"context"
	"errors"
	"fmt"
	"runtime"
)

// ErrNoHandler is returned by Dispatch when the resolved command has no
// handler installed
var ErrNoHandler = errors.New("argv: command has no handler")

// HandlerPanicError wraps a panic raised by a command handler
type HandlerPanicError struct {
	Command string
	Panic   any
	Stack   []byte
}

func (e *HandlerPanicError) Error() string {
	return fmt.Sprintf("panic in command '%s': %v", e.Command, e.Panic)
}

// Dispatch runs the handler of the resolved command on the calling
// goroutine and returns its exit code. A handler panic is recovered and
// returned as *HandlerPanicError.
func Dispatch(ctx context.Context, result *ParseResult) (code int, err error) {
	if result == nil || result.command == nil {
		return 0, fmt.Errorf("%w: nil result", ErrNoHandler)
	}
	cmd := result.command
	if cmd.handler == nil {
		return 0, fmt.Errorf("%w: %q", ErrNoHandler, cmd.FullName())
	}

	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			stack = stack[:runtime.Stack(stack, false)]
			err = &HandlerPanicError{Command: cmd.FullName(), Panic: r, Stack: stack}
		}
	}()

	return cmd.handler(ctx, result), nil
}

// Run parses tokens and dispatches the result. Parse and dispatch failures
// are mapped to an exit code by m; a nil m uses NewExitCodeManager.
func Run(ctx context.Context, p *Parser, tokens []string, m *ExitCodeManager) (int, error) {
	if m == nil {
		m = NewExitCodeManager()
	}
	result, err := p.Parse(tokens)
	if err != nil {
		return m.Resolve(err), err
	}
	code, err := Dispatch(ctx, result)
	if err != nil {
		return m.Resolve(err), err
	}
	return code, nil
}
