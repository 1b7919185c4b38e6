package argv

// HelpFunc renders custom help text for a symbol. It replaces the
// description in usage output when set.
type HelpFunc func() string

// Named is implemented by every definition object
type Named interface {
	Name() string
}

// Described is implemented by definition objects carrying a description
type Described interface {
	Description() string
}

// HelpRenderable is implemented by definition objects that may carry a
// custom help hook
type HelpRenderable interface {
	Help() string
}

// ArgumentHolding is implemented by Option and Command
type ArgumentHolding interface {
	Arguments() *ArgumentHolder
}

// symbol is the shared name/description/help payload embedded by
// Argument, Option and Command.
type symbol struct {
	name        string
	description string
	helpFunc    HelpFunc
}

// Name returns the symbol name
func (s *symbol) Name() string { return s.name }

// Description returns the symbol description
func (s *symbol) Description() string { return s.description }

// Help returns the custom help text if a hook is set, otherwise the description
func (s *symbol) Help() string {
	if s.helpFunc != nil {
		return s.helpFunc()
	}
	return s.description
}

// HasCustomHelp reports whether a help hook was installed
func (s *symbol) HasCustomHelp() bool { return s.helpFunc != nil }
