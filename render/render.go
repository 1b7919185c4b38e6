package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dzonerzy/go-argv/argv"
)

// Theme provides semantic colors
type Theme struct {
	Error, Suggestion, Command, Option, Muted *color.Color
}

// DefaultTheme returns the basic 16 color theme
func DefaultTheme() Theme {
	return Theme{
		Error:      color.New(color.FgHiRed, color.Bold),
		Suggestion: color.New(color.FgHiGreen),
		Command:    color.New(color.FgHiBlue, color.Bold),
		Option:     color.New(color.FgHiCyan),
		Muted:      color.New(color.FgHiBlack),
	}
}

// Renderer formats parse errors and usage text
type Renderer struct {
	catalog Catalog
	theme   Theme
	colored bool
}

// Option configures a Renderer
type Option func(*Renderer)

// WithCatalog sets the message catalogue; the default catalogue is used
// otherwise
func WithCatalog(c Catalog) Option {
	return func(r *Renderer) { r.catalog = c }
}

// WithTheme sets the colors and enables colored output
func WithTheme(t Theme) Option {
	return func(r *Renderer) {
		r.theme = t
		r.colored = true
	}
}

// WithColor forces colored output on or off
func WithColor(on bool) Option {
	return func(r *Renderer) { r.colored = on }
}

// New creates a renderer. Color defaults to fatih/color's terminal
// detection.
func New(opts ...Option) *Renderer {
	r := &Renderer{theme: DefaultTheme(), colored: !color.NoColor}
	for _, opt := range opts {
		opt(r)
	}
	if r.colored {
		for _, c := range []*color.Color{r.theme.Error, r.theme.Suggestion, r.theme.Command, r.theme.Option, r.theme.Muted} {
			if c != nil {
				c.EnableColor()
			}
		}
	}
	return r
}

func (r *Renderer) paint(c *color.Color, s string) string {
	if !r.colored || c == nil {
		return s
	}
	return c.Sprint(s)
}

func (r *Renderer) catalogue() Catalog {
	if r.catalog != nil {
		return r.catalog
	}
	return DefaultCatalog()
}

// Message returns the plain message for a parse error. A catalogue entry
// keyed by the error code on the failing command (or an ancestor) takes
// precedence over the renderer's catalogue.
func (r *Renderer) Message(perr *argv.ParseError) string {
	if perr.Command != nil {
		if tmpl, ok := perr.Command.CatalogEntry(string(perr.Code)); ok {
			return argv.Expand(tmpl, perr.Placeholders)
		}
	}
	return r.catalogue().Message(perr.Code, perr.Placeholders)
}

// Error formats err for display. Parse errors get their catalogue message
// followed by any suggestions; other errors use their Error text.
func (r *Renderer) Error(err error) string {
	var perr *argv.ParseError
	if !errors.As(err, &perr) {
		return r.paint(r.theme.Error, "error:") + " " + err.Error()
	}

	var b strings.Builder
	b.WriteString(r.paint(r.theme.Error, "error:"))
	b.WriteByte(' ')
	b.WriteString(r.Message(perr))
	if s := perr.Suggestions(); len(s) > 0 {
		painted := make([]string, len(s))
		for i, cand := range s {
			painted[i] = r.paint(r.theme.Suggestion, cand)
		}
		b.WriteString("\n\nDid you mean ")
		b.WriteString(strings.Join(painted, ", "))
		b.WriteString("?")
	}
	return b.String()
}

// Fprint writes the formatted error and a trailing newline to w
func (r *Renderer) Fprint(w io.Writer, err error) error {
	_, werr := fmt.Fprintln(w, r.Error(err))
	return werr
}

// Usage returns a short usage block for cmd. Symbols with a custom help
// hook render through it instead of their description.
func (r *Renderer) Usage(cmd *argv.Command) string {
	var b strings.Builder
	b.WriteString("Usage: ")
	b.WriteString(r.paint(r.theme.Command, cmd.FullName()))
	if len(cmd.Options()) > 0 {
		b.WriteString(" [options]")
	}
	if len(cmd.Children()) > 0 {
		b.WriteString(" <command>")
	}
	for _, a := range cmd.Arguments().List() {
		b.WriteByte(' ')
		b.WriteString(argumentUsage(a))
	}
	b.WriteByte('\n')

	if d := cmd.Help(); d != "" {
		b.WriteByte('\n')
		b.WriteString(d)
		b.WriteByte('\n')
	}

	if children := cmd.Children(); len(children) > 0 {
		b.WriteString("\nCommands:\n")
		for _, child := range children {
			fmt.Fprintf(&b, "  %s  %s\n", r.paint(r.theme.Command, child.Name()), child.Help())
		}
	}

	if opts := cmd.Options(); len(opts) > 0 {
		b.WriteString("\nOptions:\n")
		for _, opt := range opts {
			line := opt.DisplayTokens()
			for _, a := range opt.Arguments().List() {
				line += " " + argumentUsage(a)
			}
			fmt.Fprintf(&b, "  %s  %s", r.paint(r.theme.Option, line), opt.Help())
			if opt.IsRequired() {
				b.WriteString(r.paint(r.theme.Muted, " (required)"))
			}
			b.WriteByte('\n')
		}
	}

	if v := cmd.Version(); v != "" {
		fmt.Fprintf(&b, "\n%s\n", r.paint(r.theme.Muted, "Version: "+v))
	}
	return b.String()
}

func argumentUsage(a *argv.Argument) string {
	name := a.Display()
	if a.IsMultiValue() {
		name += "..."
	}
	if a.IsRequired() {
		return "<" + name + ">"
	}
	return "[" + name + "]"
}
