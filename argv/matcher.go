package argv

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// optionIndex maps every in-scope token to its option. Sorted token lists
// back the prefix search used for short-flag matching.
type optionIndex struct {
	options     []*Option // local options first, then inherited globals
	exact       map[string]*Option
	sorted      []string
	lower       map[string]*Option
	lowerSorted []string
}

func newOptionIndex(local, globals []*Option, fold bool) *optionIndex {
	ix := &optionIndex{
		options: make([]*Option, 0, len(local)+len(globals)),
		exact:   make(map[string]*Option),
	}
	ix.options = append(ix.options, local...)
	ix.options = append(ix.options, globals...)
	if fold {
		ix.lower = make(map[string]*Option)
	}
	for _, opt := range ix.options {
		for _, tok := range opt.tokens {
			ix.exact[tok] = opt
			ix.sorted = append(ix.sorted, tok)
			if fold {
				low := strings.ToLower(tok)
				if _, taken := ix.lower[low]; !taken {
					ix.lower[low] = opt
					ix.lowerSorted = append(ix.lowerSorted, low)
				}
			}
		}
	}
	sort.Strings(ix.sorted)
	sort.Strings(ix.lowerSorted)
	return ix
}

// tokens returns every in-scope token in declaration order
func (ix *optionIndex) tokens() []string {
	var out []string
	for _, opt := range ix.options {
		out = append(out, opt.tokens...)
	}
	return out
}

// match is a token resolved to an option
type match struct {
	option      *Option
	token       string // registered token that matched
	input       string // raw input token
	attached    string // value glued to the token, if any
	hasAttached bool
}

// matchOption resolves tok against the index. Exact tokens win, then
// key=value (or DOS key:value) splits, then short-flag prefix matching.
// With case-insensitive matching the same steps are retried on a folded
// index.
func (p *Parser) matchOption(ix *optionIndex, tok string) (match, bool) {
	if m, ok := p.lookup(tok, ix.exact, ix.sorted, false); ok {
		return m, true
	}
	if p.caseInsensitive {
		return p.lookup(tok, ix.lower, ix.lowerSorted, true)
	}
	return match{}, false
}

func (p *Parser) lookup(tok string, exact map[string]*Option, sorted []string, fold bool) (match, bool) {
	if len(tok) < 2 {
		return match{}, false
	}
	key := func(s string) string {
		if fold {
			return strings.ToLower(s)
		}
		return s
	}

	if opt, ok := exact[key(tok)]; ok {
		return match{option: opt, token: tok, input: tok}, true
	}

	st, ok := p.styleFor(tok[0])
	if !ok {
		return match{}, false
	}

	// --name=value, /name:value
	if st.split {
		if i := strings.IndexByte(tok, st.sep); i > 1 {
			if opt, ok := exact[key(tok[:i])]; ok && opt.args.Len() > 0 {
				return match{option: opt, token: tok[:i], input: tok, attached: tok[i+1:], hasAttached: true}, true
			}
		}
	}

	if !st.prefix {
		return match{}, false
	}
	cand := greatestPrefix(sorted, key(tok))
	if cand == "" || len(cand) > len(tok) || !strings.EqualFold(tok[:len(cand)], cand) {
		return match{}, false
	}
	opt := exact[cand]
	rest := tok[len(cand):]
	if !acceptsRemainder(opt, rest) {
		return match{}, false
	}
	return match{option: opt, token: tok[:len(cand)], input: tok, attached: rest, hasAttached: true}, true
}

// tokenStyle describes how tokens with a given lead character are matched
type tokenStyle struct {
	sep    byte // key/value separator
	split  bool // key/value splitting enabled
	prefix bool // short-flag prefix matching enabled
}

// styleFor returns the matching style for tokens starting with lead. Tokens
// with a lead outside the active styles only ever match exactly.
func (p *Parser) styleFor(lead byte) (tokenStyle, bool) {
	switch {
	case lead == '-':
		return tokenStyle{sep: '=', split: p.keyValue, prefix: p.shortFlags}, true
	case lead == '/' && p.dos:
		return tokenStyle{sep: ':', split: true, prefix: true}, true
	default:
		return tokenStyle{}, false
	}
}

// greatestPrefix returns the lexically greatest entry of sorted that is a
// proper prefix of key, or "".
func greatestPrefix(sorted []string, key string) string {
	i := sort.SearchStrings(sorted, key)
	for j := i - 1; j >= 0; j-- {
		cand := sorted[j]
		if cand[0] != key[0] {
			break
		}
		if len(cand) < len(key) && strings.HasPrefix(key, cand) {
			return cand
		}
	}
	return ""
}

// acceptsRemainder applies the option's short-match rule to the text that
// follows the matched token. The option must have exactly one required
// argument to receive it.
func acceptsRemainder(opt *Option, rest string) bool {
	if rest == "" || opt.args.RequiredCount() != 1 {
		return false
	}
	switch opt.shortMatch {
	case ShortMatchAll:
		return true
	case ShortMatchSingleChar:
		return utf8.RuneCountInString(rest) == 1
	case ShortMatchSingleLetter:
		r, _ := utf8.DecodeRuneInString(rest)
		return unicode.IsLetter(r)
	default:
		return false
	}
}

// optionShaped reports whether tok looks like an option in the active style
func (p *Parser) optionShaped(tok string) bool {
	if len(tok) < 2 {
		return false
	}
	return tok[0] == '-' || (p.dos && tok[0] == '/')
}

// consumeOption records one occurrence of m.option, pulling its arguments
// from the attached value and the following tokens. It returns the index of
// the first token not consumed.
func (s *parseState) consumeOption(m match, next int) (int, *ParseError) {
	opt := m.option
	if err := s.checkOccurrence(m); err != nil {
		return next, err
	}

	occ := newOccurrence(opt, m.token)
	args := opt.args.List()
	k := 0

	// lookup only attaches values to options that take arguments
	if m.hasAttached {
		v, err := s.coerce(args[0], positional{token: m.attached})
		if err != nil {
			return next, err
		}
		occ.add(args[0].name, v)
		if !args[0].multiValue {
			k = 1
		}
	}

	for k < len(args) {
		a := args[k]
		filled := len(occ.Values(a.name)) > 0
		if next >= len(s.tokens) || s.tokens[next] == terminator {
			if a.required && !filled {
				return next, newParseError(s.cmd, CodeMissingOptionArgument, m.token, a.name)
			}
			break
		}
		tok := s.tokens[next]
		if (!a.required || filled) && s.looksLikeOption(tok) {
			if a.multiValue {
				k++
				continue
			}
			break
		}
		v, err := s.coerce(a, positional{token: tok})
		if err != nil {
			return next, err
		}
		occ.add(a.name, v)
		next++
		if !a.multiValue {
			k++
		}
	}

	// remaining required slots that were skipped because an option followed
	for _, a := range args[k:] {
		if a.required && len(occ.Values(a.name)) == 0 {
			return next, newParseError(s.cmd, CodeMissingOptionArgument, m.token, a.name)
		}
	}

	s.record(opt, occ)
	s.p.logger.Debug("option", "token", m.input, "option", opt.name, "values", occ.valueCount())
	return next, nil
}

// looksLikeOption reports whether tok would be matched as a known option
func (s *parseState) looksLikeOption(tok string) bool {
	if tok == terminator {
		return true
	}
	_, ok := s.p.matchOption(s.index, tok)
	return ok
}

// checkOccurrence enforces max occurrence and exclusive groups, and
// accumulates the prior level of the option
func (s *parseState) checkOccurrence(m match) *ParseError {
	opt := m.option
	if limit := opt.maxOccurrence; limit > 0 && len(s.occurrences[opt]) >= limit {
		return newParseError(s.cmd, CodeOptionOccurTooMuch, m.token, strconv.Itoa(limit))
	}
	for _, g := range s.groups {
		if !g.has(opt) {
			continue
		}
		if prev, seen := s.groupSeen[g]; seen && prev.option != opt {
			return newParseError(s.cmd, CodeMutuallyExclusiveOptions, m.token, prev.token)
		}
		if _, seen := s.groupSeen[g]; !seen {
			s.groupSeen[g] = m
		}
	}
	s.observe(opt.prior)
	return nil
}

// record stores a completed occurrence
func (s *parseState) record(opt *Option, occ *Occurrence) {
	if len(s.occurrences[opt]) == 0 {
		s.matched = append(s.matched, opt)
	}
	s.occurrences[opt] = append(s.occurrences[opt], occ)
}

// unknownOption builds an UnknownOption error with in-scope token suggestions
func (s *parseState) unknownOption(tok string) *ParseError {
	return newParseError(s.cmd, CodeUnknownOption, tok).withCandidates(tok, s.index.tokens())
}
