package argv

import (
	"context"
	"fmt"
	"slices"
)

// Handler runs a resolved command. Its return value becomes the process
// exit code.
type Handler func(ctx context.Context, result *ParseResult) int

// ExclusiveGroup is a named set of options of which at most one may be
// present in a single parse
type ExclusiveGroup struct {
	ID      string
	Members []*Option
}

// has reports whether opt is a member of the group
func (g *ExclusiveGroup) has(opt *Option) bool {
	return slices.Contains(g.Members, opt)
}

// Command is a node of the command tree. It holds positional arguments,
// options, exclusive groups and child commands. A tree must not be mutated
// once it is shared with a Parser.
type Command struct {
	symbol
	args     ArgumentHolder
	options  []*Option
	groups   []*ExclusiveGroup
	children []*Command
	parent   *Command
	handler  Handler
	version  string
	catalog  map[string]string
}

// NewCommand creates a command. The name is required.
func NewCommand(name, description string) (*Command, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: command", ErrEmptyName)
	}
	return &Command{
		symbol:  symbol{name: name, description: description},
		args:    newArgumentHolder(),
		catalog: make(map[string]string),
	}, nil
}

// MustCommand is like NewCommand but panics on error
func MustCommand(name, description string) *Command {
	cmd, err := NewCommand(name, description)
	if err != nil {
		panic(err)
	}
	return cmd
}

// Command configuration methods

// AddArgument appends a positional argument
func (c *Command) AddArgument(arg *Argument) error {
	if err := c.args.Add(arg); err != nil {
		return fmt.Errorf("command %q: %w", c.name, err)
	}
	return nil
}

// WithArgument is the chaining form of AddArgument; it panics on error
func (c *Command) WithArgument(arg *Argument) *Command {
	if err := c.AddArgument(arg); err != nil {
		panic(err)
	}
	return c
}

// AddOption registers a copy of opt. Names and tokens must be unique
// within the command.
func (c *Command) AddOption(opt *Option) error {
	if opt == nil {
		return fmt.Errorf("command %q: %w", c.name, ErrEmptyName)
	}
	if opt.maxOccurrence < 0 {
		return fmt.Errorf("command %q: %w: option %q", c.name, ErrInvalidMaxOccurrence, opt.name)
	}
	for _, existing := range c.options {
		if existing.name == opt.name {
			return fmt.Errorf("command %q: %w: option %q", c.name, ErrDuplicateName, opt.name)
		}
		for _, tok := range opt.tokens {
			if slices.Contains(existing.tokens, tok) {
				return fmt.Errorf("command %q: %w: %q used by %q", c.name, ErrDuplicateToken, tok, existing.name)
			}
		}
	}
	c.options = append(c.options, opt.clone())
	return nil
}

// WithOption is the chaining form of AddOption; it panics on error
func (c *Command) WithOption(opt *Option) *Command {
	if err := c.AddOption(opt); err != nil {
		panic(err)
	}
	return c
}

// AddHelpOption registers the reserved help option. Defaults to -h/--help.
func (c *Command) AddHelpOption(tokens ...string) error {
	if len(tokens) == 0 {
		tokens = []string{"-h", "--help"}
	}
	opt, err := NewOption(HelpOptionName, "show help", tokens...)
	if err != nil {
		return err
	}
	return c.AddOption(opt.Prior(PriorExclusiveToAll))
}

// AddVersionOption registers the reserved version option. Defaults to
// -V/--version.
func (c *Command) AddVersionOption(tokens ...string) error {
	if len(tokens) == 0 {
		tokens = []string{"-V", "--version"}
	}
	opt, err := NewOption(VersionOptionName, "show version", tokens...)
	if err != nil {
		return err
	}
	return c.AddOption(opt.Prior(PriorExclusiveToAll))
}

// AddExclusiveGroup declares that at most one of the named options may be
// present. All members must already be registered on this command.
func (c *Command) AddExclusiveGroup(id string, names ...string) error {
	if id == "" {
		return fmt.Errorf("command %q: %w: exclusive group", c.name, ErrEmptyName)
	}
	if slices.ContainsFunc(c.groups, func(g *ExclusiveGroup) bool { return g.ID == id }) {
		return fmt.Errorf("command %q: %w: exclusive group %q", c.name, ErrDuplicateName, id)
	}
	group := &ExclusiveGroup{ID: id}
	for _, name := range names {
		opt := c.Option(name)
		if opt == nil {
			return fmt.Errorf("command %q: %w: %q in group %q", c.name, ErrUnknownGroupMember, name, id)
		}
		if !group.has(opt) {
			group.Members = append(group.Members, opt)
		}
	}
	c.groups = append(c.groups, group)
	return nil
}

// AddCommand attaches child as a subcommand. Child names must be unique.
func (c *Command) AddCommand(child *Command) error {
	if child == nil || child.name == "" {
		return fmt.Errorf("command %q: %w: subcommand", c.name, ErrEmptyName)
	}
	if child.parent != nil || child == c {
		return fmt.Errorf("command %q: %w: %q", c.name, ErrAlreadyAttached, child.name)
	}
	if c.Child(child.name) != nil {
		return fmt.Errorf("command %q: %w: subcommand %q", c.name, ErrDuplicateName, child.name)
	}
	child.parent = c
	c.children = append(c.children, child)
	return nil
}

// Subcommand creates and attaches a new child command
func (c *Command) Subcommand(name, description string) (*Command, error) {
	child, err := NewCommand(name, description)
	if err != nil {
		return nil, err
	}
	if err := c.AddCommand(child); err != nil {
		return nil, err
	}
	return child, nil
}

// Action sets the handler invoked by Dispatch
func (c *Command) Action(h Handler) *Command {
	c.handler = h
	return c
}

// SetVersion sets the version string reported by renderers
func (c *Command) SetVersion(v string) *Command {
	c.version = v
	return c
}

// WithHelp installs a custom help hook
func (c *Command) WithHelp(fn HelpFunc) *Command {
	c.helpFunc = fn
	return c
}

// SetCatalogEntry stores a display string under key. Renderers consult the
// command catalogue before their own message tables.
func (c *Command) SetCatalogEntry(key, text string) *Command {
	if c.catalog == nil {
		c.catalog = make(map[string]string)
	}
	c.catalog[key] = text
	return c
}

// Accessors

// Arguments returns the positional argument holder
func (c *Command) Arguments() *ArgumentHolder { return &c.args }

// Options returns the command's own options in declaration order
func (c *Command) Options() []*Option { return slices.Clone(c.options) }

// Option returns the command's own option with the given name
func (c *Command) Option(name string) *Option {
	for _, opt := range c.options {
		if opt.name == name {
			return opt
		}
	}
	return nil
}

// ExclusiveGroups returns the exclusive groups declared on the command
func (c *Command) ExclusiveGroups() []*ExclusiveGroup { return slices.Clone(c.groups) }

// Children returns the subcommands in declaration order
func (c *Command) Children() []*Command { return slices.Clone(c.children) }

// Child returns the subcommand with the given name
func (c *Command) Child(name string) *Command {
	for _, child := range c.children {
		if child.name == name {
			return child
		}
	}
	return nil
}

// Parent returns the parent command, nil for the root
func (c *Command) Parent() *Command { return c.parent }

// Handler returns the command handler
func (c *Command) Handler() Handler { return c.handler }

// Version returns the version string, inherited from the nearest ancestor
// when unset
func (c *Command) Version() string {
	for cmd := c; cmd != nil; cmd = cmd.parent {
		if cmd.version != "" {
			return cmd.version
		}
	}
	return ""
}

// CatalogEntry returns a display string, searching ancestors when the key
// is not set on this command
func (c *Command) CatalogEntry(key string) (string, bool) {
	for cmd := c; cmd != nil; cmd = cmd.parent {
		if text, ok := cmd.catalog[key]; ok {
			return text, true
		}
	}
	return "", false
}

// FullName returns the space separated path from the root
func (c *Command) FullName() string {
	if c.parent == nil {
		return c.name
	}
	return c.parent.FullName() + " " + c.name
}
