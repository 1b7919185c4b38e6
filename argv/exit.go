package argv

import (
	"errors"
	"reflect"
)

// ExitCodeDefaults holds common default codes.
type ExitCodeDefaults struct {
	Success         int // default: 0
	GeneralError    int // default: 1
	MisusageError   int // default: 2
	ValidationError int // default: 3
}

func defaultExitDefaults() ExitCodeDefaults {
	return ExitCodeDefaults{Success: 0, GeneralError: 1, MisusageError: 2, ValidationError: 3}
}

// ExitCodeManager maps parse and dispatch errors to process exit codes.
type ExitCodeManager struct {
	codesByCode map[ErrorCode]int
	codesByType map[reflect.Type]int
	defaults    ExitCodeDefaults
}

// NewExitCodeManager returns a manager with the default mappings: value
// errors map to ValidationError, every other parse error to MisusageError.
func NewExitCodeManager() *ExitCodeManager {
	m := &ExitCodeManager{
		codesByCode: make(map[ErrorCode]int),
		codesByType: make(map[reflect.Type]int),
	}
	m.Default(defaultExitDefaults())
	return m
}

// Exit code configuration

// DefineCode overrides the exit code used for a parse error code.
func (e *ExitCodeManager) DefineCode(code ErrorCode, exit int) *ExitCodeManager {
	e.codesByCode[code] = exit
	return e
}

// DefineError maps a concrete error value (by its dynamic type) to an exit
// code. A matching error type is consulted after parse error codes.
func (e *ExitCodeManager) DefineError(err error, code int) *ExitCodeManager {
	if err == nil {
		return e
	}
	e.codesByType[reflect.TypeOf(err)] = code
	return e
}

// Default replaces the manager's default codes and re-derives the
// per-code mappings from them. Call it before DefineCode.
func (e *ExitCodeManager) Default(d ExitCodeDefaults) *ExitCodeManager {
	e.defaults = d
	for _, code := range ErrorCodes {
		switch code {
		case CodeNoError:
			e.codesByCode[code] = d.Success
		case CodeInvalidArgumentValue, CodeArgumentTypeMismatch, CodeArgumentValidateFailed:
			e.codesByCode[code] = d.ValidationError
		default:
			e.codesByCode[code] = d.MisusageError
		}
	}
	e.codesByType[reflect.TypeOf(&HandlerPanicError{})] = d.GeneralError
	return e
}

// Defaults returns the current default codes
func (e *ExitCodeManager) Defaults() ExitCodeDefaults { return e.defaults }

// Resolve converts an error to an exit code according to registered mappings.
// Precedence:
//  1. ParseError code mapping (DefineCode)
//  2. Concrete error type mapping (DefineError), outermost first
//  3. GeneralError
func (e *ExitCodeManager) Resolve(err error) int {
	if err == nil {
		return e.defaults.Success
	}

	var perr *ParseError
	if errors.As(err, &perr) {
		if code, ok := e.codesByCode[perr.Code]; ok {
			return code
		}
		return e.defaults.MisusageError
	}

	if code, ok := e.typeCode(err); ok {
		return code
	}
	return e.defaults.GeneralError
}

// typeCode walks the error tree depth-first in the order errors.As uses and
// returns the code of the first error whose type is registered. The
// outermost registered error wins when several are wrapped.
func (e *ExitCodeManager) typeCode(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	if code, ok := e.codesByType[reflect.TypeOf(err)]; ok {
		return code, true
	}
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		return e.typeCode(u.Unwrap())
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			if code, ok := e.typeCode(inner); ok {
				return code, true
			}
		}
	}
	return 0, false
}
