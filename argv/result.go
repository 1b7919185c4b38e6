package argv

import (
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Occurrence is one appearance of an option on the command line together
// with the values its arguments received
type Occurrence struct {
	option *Option
	token  string
	values *orderedmap.OrderedMap[string, []Value]
}

func newOccurrence(opt *Option, token string) *Occurrence {
	return &Occurrence{
		option: opt,
		token:  token,
		values: orderedmap.New[string, []Value](),
	}
}

func (o *Occurrence) add(name string, v Value) {
	vals, _ := o.values.Get(name)
	o.values.Set(name, append(vals, v))
}

func (o *Occurrence) valueCount() int {
	n := 0
	for pair := o.values.Oldest(); pair != nil; pair = pair.Next() {
		n += len(pair.Value)
	}
	return n
}

// Option returns the matched option
func (o *Occurrence) Option() *Option { return o.option }

// Token returns the registered token that matched
func (o *Occurrence) Token() string { return o.token }

// Values returns the values received by the named argument, in input order
func (o *Occurrence) Values(name string) []Value {
	vals, _ := o.values.Get(name)
	return slices.Clone(vals)
}

// Value returns the first value of the named argument, falling back to the
// argument's default. ok is false if the option declares no such argument.
func (o *Occurrence) Value(name string) (Value, bool) {
	if vals, _ := o.values.Get(name); len(vals) > 0 {
		return vals[0], true
	}
	if a, ok := o.option.args.Get(name); ok {
		return a.defaultValue, true
	}
	return Value{}, false
}

// ParseResult is the outcome of a successful parse. It is built fresh for
// every call and owned by the caller.
type ParseResult struct {
	command     *Command
	path        []*Command
	globals     []*Option
	args        *orderedmap.OrderedMap[string, []Value]
	options     []*Option // present options, first-match order
	occurrences map[*Option][]*Occurrence
	byName      map[string]*Option
	help        bool
	version     bool
}

func (s *parseState) result() *ParseResult {
	r := &ParseResult{
		command:     s.cmd,
		path:        s.path,
		globals:     s.globals,
		args:        orderedmap.New[string, []Value](),
		options:     s.matched,
		occurrences: s.occurrences,
		byName:      make(map[string]*Option, len(s.index.options)),
	}
	for _, a := range s.cmd.args.List() {
		r.args.Set(a.name, s.args[a])
	}
	for _, opt := range s.index.options {
		r.byName[opt.name] = opt
	}
	for _, opt := range s.matched {
		switch opt.name {
		case HelpOptionName:
			r.help = true
		case VersionOptionName:
			r.version = true
		}
	}
	return r
}

// Command returns the resolved command
func (r *ParseResult) Command() *Command { return r.command }

// Path returns the commands from the root to the resolved command
func (r *ParseResult) Path() []*Command { return slices.Clone(r.path) }

// Globals returns the inherited global options in scope, in discovery order
func (r *ParseResult) Globals() []*Option { return slices.Clone(r.globals) }

// Options returns the options that were present, in first-match order
func (r *ParseResult) Options() []*Option { return slices.Clone(r.options) }

// ArgValues returns every value assigned to the named argument
func (r *ParseResult) ArgValues(name string) []Value {
	vals, _ := r.args.Get(name)
	return slices.Clone(vals)
}

// Arg returns the first value of the named argument, or its default when
// no token was assigned. ok is false if the command declares no such
// argument.
func (r *ParseResult) Arg(name string) (Value, bool) {
	vals, declared := r.args.Get(name)
	if !declared {
		return Value{}, false
	}
	if len(vals) > 0 {
		return vals[0], true
	}
	a, _ := r.command.args.Get(name)
	return a.defaultValue, true
}

// Has reports whether the named option was present
func (r *ParseResult) Has(name string) bool { return r.Count(name) > 0 }

// Count returns how many times the named option appeared
func (r *ParseResult) Count(name string) int {
	opt, ok := r.byName[name]
	if !ok {
		return 0
	}
	return len(r.occurrences[opt])
}

// Occurrences returns every appearance of the named option in input order
func (r *ParseResult) Occurrences(name string) []*Occurrence {
	opt, ok := r.byName[name]
	if !ok {
		return nil
	}
	return slices.Clone(r.occurrences[opt])
}

// OptionValue returns the value of argName from the first occurrence of the
// named option, falling back to the argument default. ok is false if the
// option was not present.
func (r *ParseResult) OptionValue(option, argName string) (Value, bool) {
	occ := r.Occurrences(option)
	if len(occ) == 0 {
		return Value{}, false
	}
	return occ[0].Value(argName)
}

// Help reports whether the help option was present
func (r *ParseResult) Help() bool { return r.help }

// Version reports whether the version option was present
func (r *ParseResult) Version() bool { return r.version }
