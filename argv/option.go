package argv

import (
	"fmt"
	"slices"
	"strings"
)

// Reserved option names. An Option named HelpOptionName or
// VersionOptionName sets ParseResult.Help or ParseResult.Version.
const (
	HelpOptionName    = "help"
	VersionOptionName = "version"
)

// ShortMatchRule controls whether a token may match an option by prefix,
// with the remainder becoming the value of the option's single required
// argument (for example -Ipath or -O2).
type ShortMatchRule int

const (
	// ShortMatchNone only allows exact token matches.
	ShortMatchNone ShortMatchRule = iota
	// ShortMatchAll accepts any non-empty remainder.
	ShortMatchAll
	// ShortMatchSingleChar accepts a remainder of exactly one character.
	ShortMatchSingleChar
	// ShortMatchSingleLetter accepts a remainder starting with a letter.
	ShortMatchSingleLetter
)

// PriorLevel relaxes the required checks of a parse when the option is
// present. Levels are ordered; the parser keeps the maximum observed.
type PriorLevel int

const (
	PriorNone PriorLevel = iota
	// PriorIgnoreMissingSymbols skips missing argument and option checks.
	PriorIgnoreMissingSymbols
	// PriorAutoSetWhenNoSymbols marks the option present when nothing
	// follows the command path.
	PriorAutoSetWhenNoSymbols
	// PriorExclusiveToArguments forbids positional tokens alongside the option.
	PriorExclusiveToArguments
	// PriorExclusiveToOptions forbids any other option alongside the option.
	PriorExclusiveToOptions
	// PriorExclusiveToAll forbids both.
	PriorExclusiveToAll
)

func (l PriorLevel) excludesArguments() bool {
	return l == PriorExclusiveToArguments || l == PriorExclusiveToAll
}

func (l PriorLevel) excludesOptions() bool {
	return l == PriorExclusiveToOptions || l == PriorExclusiveToAll
}

// Option is a matchable flag with its own attached arguments
type Option struct {
	symbol
	args          ArgumentHolder
	tokens        []string
	required      bool
	shortMatch    ShortMatchRule
	prior         PriorLevel
	global        bool
	maxOccurrence int
}

// NewOption creates an option matched by the given tokens. Every token must
// start with '-' or '/' followed by at least one character, and tokens must
// be distinct.
func NewOption(name, description string, tokens ...string) (*Option, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: option %q has no tokens", ErrInvalidToken, name)
	}
	for i, tok := range tokens {
		if !isPrefixed(tok) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidToken, tok)
		}
		if slices.Contains(tokens[:i], tok) {
			return nil, fmt.Errorf("%w: %q repeated in option %q", ErrDuplicateToken, tok, name)
		}
	}
	return &Option{
		symbol: symbol{name: name, description: description},
		args:   newArgumentHolder(),
		tokens: slices.Clone(tokens),
	}, nil
}

// MustOption is like NewOption but panics on error. Intended for static
// definition trees.
func MustOption(name, description string, tokens ...string) *Option {
	opt, err := NewOption(name, description, tokens...)
	if err != nil {
		panic(err)
	}
	return opt
}

func isPrefixed(tok string) bool {
	if len(tok) < 2 {
		return false
	}
	if tok[0] != '-' && tok[0] != '/' {
		return false
	}
	return tok != "--" && !strings.ContainsAny(tok, " \t")
}

// AddArgument attaches an argument to the option
func (o *Option) AddArgument(arg *Argument) error {
	if err := o.args.Add(arg); err != nil {
		return fmt.Errorf("option %q: %w", o.name, err)
	}
	return nil
}

// WithArgument is the chaining form of AddArgument; it panics on error
func (o *Option) WithArgument(arg *Argument) *Option {
	if err := o.AddArgument(arg); err != nil {
		panic(err)
	}
	return o
}

// Required marks the option as required
func (o *Option) Required() *Option {
	o.required = true
	return o
}

// Global makes the option visible in every descendant command
func (o *Option) Global() *Option {
	o.global = true
	return o
}

// ShortMatch sets the prefix matching rule
func (o *Option) ShortMatch(rule ShortMatchRule) *Option {
	o.shortMatch = rule
	return o
}

// Prior sets the prior level
func (o *Option) Prior(level PriorLevel) *Option {
	o.prior = level
	return o
}

// MaxOccurrence limits how often the option may appear; 0 means unbounded.
// Negative values are rejected when the option is added to a command.
func (o *Option) MaxOccurrence(n int) *Option {
	o.maxOccurrence = n
	return o
}

// WithHelp installs a custom help hook
func (o *Option) WithHelp(fn HelpFunc) *Option {
	o.helpFunc = fn
	return o
}

// Arguments returns the attached argument holder
func (o *Option) Arguments() *ArgumentHolder { return &o.args }

// Tokens returns a copy of the tokens that match the option
func (o *Option) Tokens() []string { return slices.Clone(o.tokens) }

// DisplayTokens returns the tokens joined for display, for example "-f, --file"
func (o *Option) DisplayTokens() string { return strings.Join(o.tokens, ", ") }

// IsRequired reports whether the option must be present
func (o *Option) IsRequired() bool { return o.required }

// IsGlobal reports whether the option is inherited by descendant commands
func (o *Option) IsGlobal() bool { return o.global }

// ShortMatchRule returns the prefix matching rule
func (o *Option) ShortMatchRule() ShortMatchRule { return o.shortMatch }

// PriorLevel returns the prior level
func (o *Option) PriorLevel() PriorLevel { return o.prior }

// MaxOccurrenceLimit returns the occurrence limit, 0 for unbounded
func (o *Option) MaxOccurrenceLimit() int { return o.maxOccurrence }

// sharesIdentity reports whether o and other have the same name or any
// common token
func (o *Option) sharesIdentity(other *Option) bool {
	if o.name == other.name {
		return true
	}
	for _, t := range o.tokens {
		if slices.Contains(other.tokens, t) {
			return true
		}
	}
	return false
}

func (o *Option) clone() *Option {
	c := *o
	c.tokens = slices.Clone(o.tokens)
	c.args = o.args.clone()
	return &c
}
