package argv

import (
	"slices"
	"strings"
)

// resolution is the outcome of walking the command tree
type resolution struct {
	command  *Command
	path     []*Command
	globals  []*Option // in-scope globals inherited from ancestors, discovery order
	consumed int       // number of leading tokens used as command names
}

// resolve walks tokens from the left, descending into child commands while
// the next token names one. Globals of every command being left are folded
// into the scope; a deeper declaration sharing a name or token replaces the
// shallower one, and options of the resolved command replace any inherited
// global they collide with.
func (p *Parser) resolve(tokens []string) resolution {
	cmd := p.root
	res := resolution{command: cmd, path: []*Command{cmd}}
	var scope []*Option

	for res.consumed < len(tokens) && len(cmd.children) > 0 {
		child := p.findChild(cmd, tokens[res.consumed])
		if child == nil {
			break
		}
		for _, opt := range cmd.options {
			if opt.global {
				scope = evict(scope, opt)
				scope = append(scope, opt)
			}
		}
		p.logger.Debug("descend", "from", cmd.name, "to", child.name)
		cmd = child
		res.path = append(res.path, cmd)
		res.consumed++
	}

	for _, opt := range cmd.options {
		scope = evict(scope, opt)
	}

	res.command = cmd
	res.globals = scope
	return res
}

// findChild looks up a direct child by name
func (p *Parser) findChild(cmd *Command, name string) *Command {
	if child := cmd.Child(name); child != nil {
		return child
	}
	if !p.caseInsensitive {
		return nil
	}
	for _, child := range cmd.children {
		if strings.EqualFold(child.name, name) {
			return child
		}
	}
	return nil
}

// evict drops every scoped option that shares a name or token with opt
func evict(scope []*Option, opt *Option) []*Option {
	return slices.DeleteFunc(scope, func(o *Option) bool {
		return o.sharesIdentity(opt)
	})
}

// scopedGroups returns the exclusive groups that apply to the given set of
// in-scope options. Groups declared on ancestors only keep the members that
// are still visible.
func scopedGroups(path []*Command, inScope []*Option) []*ExclusiveGroup {
	var groups []*ExclusiveGroup
	for _, cmd := range path {
		for _, g := range cmd.groups {
			visible := &ExclusiveGroup{ID: g.ID}
			for _, m := range g.Members {
				if slices.Contains(inScope, m) {
					visible.Members = append(visible.Members, m)
				}
			}
			if len(visible.Members) > 1 {
				groups = append(groups, visible)
			}
		}
	}
	return groups
}
