package argv

import (
	"github.com/ef-ds/deque"
)

// distribute assigns queued positional tokens to the resolved command's
// arguments. Arguments before the multi-valued one are filled from the
// front, arguments after it from the back, and the multi-valued argument
// absorbs whatever is left in between.
func (s *parseState) distribute() *ParseError {
	args := s.cmd.args.List()
	q := deque.New()
	for _, pos := range s.positionals {
		q.PushBack(pos)
	}

	assigned := make([][]positional, len(args))
	mi := s.cmd.args.MultiValueIndex()
	forward := args
	if mi >= 0 {
		forward = args[:mi]
	}

	for i, a := range forward {
		v, ok := q.PopFront()
		if !ok {
			if a.required && !s.skipMissingArguments() {
				return newParseError(s.cmd, CodeMissingCommandArgument, a.name)
			}
			break
		}
		assigned[i] = append(assigned[i], v.(positional))
	}

	if mi < 0 {
		if v, ok := q.PopFront(); ok {
			return s.leftover(v.(positional))
		}
		return s.coerceAssigned(args, assigned)
	}

	trailing := args[mi+1:]
	if q.Len() >= len(trailing) {
		for i := len(trailing) - 1; i >= 0; i-- {
			v, _ := q.PopBack()
			assigned[mi+1+i] = append(assigned[mi+1+i], v.(positional))
		}
	} else {
		for i, a := range trailing {
			v, ok := q.PopFront()
			if !ok {
				if a.required && !s.skipMissingArguments() {
					return newParseError(s.cmd, CodeMissingCommandArgument, a.name)
				}
				break
			}
			assigned[mi+1+i] = append(assigned[mi+1+i], v.(positional))
		}
	}

	for q.Len() > 0 {
		v, _ := q.PopFront()
		assigned[mi] = append(assigned[mi], v.(positional))
	}
	s.p.logger.Debug("distribute", "command", s.cmd.name, "multi", args[mi].name, "values", len(assigned[mi]))
	return s.coerceAssigned(args, assigned)
}

// coerceAssigned converts the assigned tokens in declaration order
func (s *parseState) coerceAssigned(args []*Argument, assigned [][]positional) *ParseError {
	for i, a := range args {
		for _, pos := range assigned[i] {
			v, err := s.coerce(a, pos)
			if err != nil {
				return err
			}
			s.args[a] = append(s.args[a], v)
		}
	}
	return nil
}

// leftover reports a positional token no argument could take
func (s *parseState) leftover(pos positional) *ParseError {
	switch {
	case !pos.literal && s.p.optionShaped(pos.token):
		return s.unknownOption(pos.token)
	case !pos.literal && len(s.cmd.children) > 0:
		names := make([]string, 0, len(s.cmd.children))
		for _, child := range s.cmd.children {
			names = append(names, child.name)
		}
		return newParseError(s.cmd, CodeUnknownCommand, pos.token).withCandidates(pos.token, names)
	default:
		return newParseError(s.cmd, CodeTooManyArguments, pos.token)
	}
}
