package argv

import (
	"slices"
)

// ValidatorFunc converts a raw token into a Value or rejects it. A non-nil
// error becomes ArgumentValidateFailed with the error text as message.
type ValidatorFunc func(token string) (Value, error)

// Argument describes one positional value slot, either of a Command or of an
// Option. Arguments are copied when added to a holder, so later changes to
// the original do not affect a built tree.
type Argument struct {
	symbol
	displayName    string
	defaultValue   Value
	required       bool
	multiValue     bool
	expectedValues []Value
	validator      ValidatorFunc
}

// NewArgument creates a required, single-valued argument whose tokens are
// kept verbatim as strings
func NewArgument(name, description string) *Argument {
	return &Argument{
		symbol:   symbol{name: name, description: description},
		required: true,
	}
}

// Required marks the argument as required
func (a *Argument) Required() *Argument {
	a.required = true
	return a
}

// Optional marks the argument as optional
func (a *Argument) Optional() *Argument {
	a.required = false
	return a
}

// Default sets the default value. Its type also selects the coercion applied
// to incoming tokens: an Int default makes the argument integer typed.
func (a *Argument) Default(v Value) *Argument {
	a.defaultValue = v
	return a
}

// DisplayName sets the name shown in usage output
func (a *Argument) DisplayName(name string) *Argument {
	a.displayName = name
	return a
}

// MultiValue lets the argument absorb a variable number of tokens
func (a *Argument) MultiValue() *Argument {
	a.multiValue = true
	return a
}

// Expect restricts accepted tokens to the given values. Duplicates are
// dropped while keeping first-seen order. Expected values take precedence
// over a validator.
func (a *Argument) Expect(values ...Value) *Argument {
	for _, v := range values {
		if !slices.ContainsFunc(a.expectedValues, v.Equal) {
			a.expectedValues = append(a.expectedValues, v)
		}
	}
	return a
}

// ExpectStrings is a shorthand for Expect with string values
func (a *Argument) ExpectStrings(values ...string) *Argument {
	for _, s := range values {
		a.Expect(StringValue(s))
	}
	return a
}

// Validate installs a validator callback
func (a *Argument) Validate(fn ValidatorFunc) *Argument {
	a.validator = fn
	return a
}

// WithHelp installs a custom help hook
func (a *Argument) WithHelp(fn HelpFunc) *Argument {
	a.helpFunc = fn
	return a
}

// IsRequired reports whether the argument must be supplied
func (a *Argument) IsRequired() bool { return a.required }

// IsMultiValue reports whether the argument accepts a variable number of tokens
func (a *Argument) IsMultiValue() bool { return a.multiValue }

// DefaultValue returns the default value
func (a *Argument) DefaultValue() Value { return a.defaultValue }

// ExpectedValues returns a copy of the accepted value set
func (a *Argument) ExpectedValues() []Value { return slices.Clone(a.expectedValues) }

// HasValidator reports whether a validator callback is installed
func (a *Argument) HasValidator() bool { return a.validator != nil }

// Display returns the display name, falling back to the name
func (a *Argument) Display() string {
	if a.displayName != "" {
		return a.displayName
	}
	return a.name
}

// clone returns an independent copy of the argument
func (a *Argument) clone() *Argument {
	c := *a
	c.expectedValues = slices.Clone(a.expectedValues)
	return &c
}
