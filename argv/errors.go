package argv

import (
	"errors"
	"strconv"
	"strings"
)

// Structural errors returned while a definition tree is being authored.
// They are never produced by Parse.
var (
	ErrEmptyName             = errors.New("argv: empty name")
	ErrDuplicateName         = errors.New("argv: duplicate name")
	ErrDuplicateToken        = errors.New("argv: duplicate option token")
	ErrInvalidToken          = errors.New("argv: invalid option token")
	ErrRequiredAfterOptional = errors.New("argv: required argument after optional argument")
	ErrMultipleMultiValue    = errors.New("argv: more than one multi-valued argument")
	ErrUnknownGroupMember    = errors.New("argv: exclusive group references unknown option")
	ErrInvalidMaxOccurrence  = errors.New("argv: negative max occurrence")
	ErrAlreadyAttached       = errors.New("argv: command already attached to a parent")
)

// ErrorCode identifies the terminal failure of a parse. Exactly one code is
// produced per call; CodeNoError means success.
type ErrorCode string

const (
	CodeNoError                  ErrorCode = "no_error"
	CodeUnknownOption            ErrorCode = "unknown_option"
	CodeUnknownCommand           ErrorCode = "unknown_command"
	CodeMissingOptionArgument    ErrorCode = "missing_option_argument"
	CodeMissingCommandArgument   ErrorCode = "missing_command_argument"
	CodeTooManyArguments         ErrorCode = "too_many_arguments"
	CodeInvalidArgumentValue     ErrorCode = "invalid_argument_value"
	CodeInvalidOptionPosition    ErrorCode = "invalid_option_position"
	CodeMissingRequiredOption    ErrorCode = "missing_required_option"
	CodeOptionOccurTooMuch       ErrorCode = "option_occur_too_much"
	CodeArgumentTypeMismatch     ErrorCode = "argument_type_mismatch"
	CodeArgumentValidateFailed   ErrorCode = "argument_validate_failed"
	CodeMutuallyExclusiveOptions ErrorCode = "mutually_exclusive_options"
	CodePriorOptionWithArguments ErrorCode = "prior_option_with_arguments"
	CodePriorOptionWithOptions   ErrorCode = "prior_option_with_options"
)

// ErrorCodes lists every code in declaration order
var ErrorCodes = []ErrorCode{
	CodeNoError,
	CodeUnknownOption,
	CodeUnknownCommand,
	CodeMissingOptionArgument,
	CodeMissingCommandArgument,
	CodeTooManyArguments,
	CodeInvalidArgumentValue,
	CodeInvalidOptionPosition,
	CodeMissingRequiredOption,
	CodeOptionOccurTooMuch,
	CodeArgumentTypeMismatch,
	CodeArgumentValidateFailed,
	CodeMutuallyExclusiveOptions,
	CodePriorOptionWithArguments,
	CodePriorOptionWithOptions,
}

// defaultTemplates are the English message templates. Placeholders are
// positional: {0} is the first entry of ParseError.Placeholders.
var defaultTemplates = map[ErrorCode]string{
	CodeNoError:                  "no error",
	CodeUnknownOption:            "unknown option '{0}'",
	CodeUnknownCommand:           "unknown command '{0}'",
	CodeMissingOptionArgument:    "option '{0}' requires a value for '{1}'",
	CodeMissingCommandArgument:   "missing required argument '{0}'",
	CodeTooManyArguments:         "too many arguments, unexpected '{0}'",
	CodeInvalidArgumentValue:     "invalid value '{0}' for argument '{1}'",
	CodeInvalidOptionPosition:    "option '{0}' is not valid here, argument '{1}' expected",
	CodeMissingRequiredOption:    "missing required option '{0}'",
	CodeOptionOccurTooMuch:       "option '{0}' given more than {1} time(s)",
	CodeArgumentTypeMismatch:     "value '{0}' for argument '{1}' is not of type {2}",
	CodeArgumentValidateFailed:   "value '{0}' for argument '{1}' rejected: {2}",
	CodeMutuallyExclusiveOptions: "option '{0}' cannot be used together with '{1}'",
	CodePriorOptionWithArguments: "option '{0}' cannot be combined with arguments",
	CodePriorOptionWithOptions:   "option '{0}' cannot be combined with '{1}'",
}

// DefaultTemplate returns the built-in English template for code
func DefaultTemplate(code ErrorCode) string {
	if t, ok := defaultTemplates[code]; ok {
		return t
	}
	return string(code)
}

// Expand substitutes {0}, {1}, ... in template with placeholders. Indexes
// without a matching placeholder are left untouched.
func Expand(template string, placeholders []string) string {
	if len(placeholders) == 0 || !strings.Contains(template, "{") {
		return template
	}
	pairs := make([]string, 0, len(placeholders)*2)
	for i, p := range placeholders {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", p)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// ParseError is the failure produced by Parser.Parse
type ParseError struct {
	Code         ErrorCode
	Placeholders []string
	Command      *Command // resolved command at the time of failure

	// suggestion inputs, only populated for codes that support suggestions
	offending  string
	candidates []string
}

func (e *ParseError) Error() string {
	return Expand(DefaultTemplate(e.Code), e.Placeholders)
}

// Is matches another *ParseError carrying the same code, so that
// errors.Is(err, &ParseError{Code: CodeUnknownOption}) works.
func (e *ParseError) Is(target error) bool {
	var other *ParseError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// Suggestions returns the candidates whose edit distance to the offending
// token is at most half the token length, in candidate order. Only
// UnknownOption, InvalidOptionPosition, InvalidArgumentValue and
// UnknownCommand carry candidates.
func (e *ParseError) Suggestions() []string {
	if len(e.candidates) == 0 {
		return nil
	}
	return suggest(e.offending, e.candidates)
}

func newParseError(cmd *Command, code ErrorCode, placeholders ...string) *ParseError {
	return &ParseError{Code: code, Placeholders: placeholders, Command: cmd}
}

// withCandidates attaches the suggestion universe to the error
func (e *ParseError) withCandidates(offending string, candidates []string) *ParseError {
	e.offending = offending
	e.candidates = candidates
	return e
}
