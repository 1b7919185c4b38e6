package argv

import (
	"io"

	"github.com/charmbracelet/log"
)

// terminator ends option matching; every later token is positional
const terminator = "--"

// ParseStage names the phase a parse is in. It only shows up in trace logs.
type ParseStage int

const (
	StageResolve ParseStage = iota
	StageScan
	StageAutoSet
	StageExclusivity
	StageDistribute
	StageRequired
	StageComplete
)

func (s ParseStage) String() string {
	switch s {
	case StageResolve:
		return "resolve"
	case StageScan:
		return "scan"
	case StageAutoSet:
		return "autoset"
	case StageExclusivity:
		return "exclusivity"
	case StageDistribute:
		return "distribute"
	case StageRequired:
		return "required"
	case StageComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Parser turns token vectors into ParseResults against a fixed command
// tree. A Parser holds no per-call state and may be shared between
// goroutines as long as the tree is not mutated.
type Parser struct {
	root            *Command
	caseInsensitive bool
	shortFlags      bool
	dos             bool
	keyValue        bool
	logger          *log.Logger
}

// ParserOption configures a Parser
type ParserOption func(*Parser)

// WithCaseInsensitive matches command names and option tokens ignoring case
func WithCaseInsensitive() ParserOption {
	return func(p *Parser) { p.caseInsensitive = true }
}

// WithShortFlags enables Unix short-flag prefix matching such as -Ipath
func WithShortFlags() ParserOption {
	return func(p *Parser) { p.shortFlags = true }
}

// WithDOSStyle enables /flag and /flag:value tokens
func WithDOSStyle() ParserOption {
	return func(p *Parser) { p.dos = true }
}

// WithoutKeyValue disables --key=value splitting
func WithoutKeyValue() ParserOption {
	return func(p *Parser) { p.keyValue = false }
}

// WithLogger sets the logger receiving debug traces
func WithLogger(l *log.Logger) ParserOption {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewParser creates a parser for the tree rooted at root
func NewParser(root *Command, opts ...ParserOption) *Parser {
	p := &Parser{
		root:     root,
		keyValue: true,
		logger: log.NewWithOptions(io.Discard, log.Options{
			Prefix: "argv",
			Level:  log.WarnLevel,
		}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Root returns the root command
func (p *Parser) Root() *Command { return p.root }

// positional is a token left for argument distribution
type positional struct {
	token   string
	literal bool // appeared after the terminator
}

// parseState carries everything a single Parse call accumulates
type parseState struct {
	p      *Parser
	stage  ParseStage
	tokens []string // tokens following the command path

	cmd     *Command
	path    []*Command
	globals []*Option
	index   *optionIndex
	groups  []*ExclusiveGroup

	groupSeen   map[*ExclusiveGroup]match
	occurrences map[*Option][]*Occurrence
	matched     []*Option // first-match order
	positionals []positional
	maxPrior    PriorLevel
	args        map[*Argument][]Value
}

// Parse resolves tokens against the command tree. tokens must not include
// the program name. On failure the returned error is a *ParseError and the
// result is nil.
func (p *Parser) Parse(tokens []string) (*ParseResult, error) {
	res, perr := p.parse(tokens)
	if perr != nil {
		p.logger.Debug("parse failed", "code", perr.Code, "placeholders", perr.Placeholders)
		return nil, perr
	}
	return res, nil
}

func (p *Parser) parse(tokens []string) (*ParseResult, *ParseError) {
	r := p.resolve(tokens)
	s := &parseState{
		p:           p,
		tokens:      tokens[r.consumed:],
		cmd:         r.command,
		path:        r.path,
		globals:     r.globals,
		index:       newOptionIndex(r.command.options, r.globals, p.caseInsensitive),
		groupSeen:   make(map[*ExclusiveGroup]match),
		occurrences: make(map[*Option][]*Occurrence),
		args:        make(map[*Argument][]Value),
	}
	s.groups = scopedGroups(s.path, s.index.options)

	steps := []struct {
		stage ParseStage
		run   func() *ParseError
	}{
		{StageScan, s.scan},
		{StageAutoSet, s.autoSet},
		{StageExclusivity, s.checkExclusivity},
		{StageDistribute, s.distribute},
		{StageRequired, s.checkRequired},
	}
	for _, step := range steps {
		s.stage = step.stage
		if err := step.run(); err != nil {
			return nil, err
		}
	}
	s.stage = StageComplete
	p.logger.Debug("parsed", "command", s.cmd.FullName(), "options", len(s.matched), "positionals", len(s.positionals))
	return s.result(), nil
}

// scan walks the tokens after the command path, matching options and
// queueing everything else for distribution
func (s *parseState) scan() *ParseError {
	for i := 0; i < len(s.tokens); {
		tok := s.tokens[i]
		if tok == terminator {
			for _, rest := range s.tokens[i+1:] {
				s.positionals = append(s.positionals, positional{token: rest, literal: true})
			}
			return nil
		}
		m, ok := s.p.matchOption(s.index, tok)
		if !ok {
			s.positionals = append(s.positionals, positional{token: tok})
			i++
			continue
		}
		next, err := s.consumeOption(m, i+1)
		if err != nil {
			return err
		}
		i = next
	}
	return nil
}

// observe keeps the highest prior level of the matched options
func (s *parseState) observe(l PriorLevel) {
	s.maxPrior = max(s.maxPrior, l)
}

// otherwiseEmpty reports whether the invocation holds nothing beyond
// options of level AutoSetWhenNoSymbols or higher
func (s *parseState) otherwiseEmpty() bool {
	if len(s.positionals) != 0 {
		return false
	}
	for _, opt := range s.matched {
		if opt.prior < PriorAutoSetWhenNoSymbols {
			return false
		}
	}
	return true
}

// skipMissing reports whether missing-symbol checks of one class are
// suppressed by the highest observed prior level. excl selects the class.
func (s *parseState) skipMissing(excl func(PriorLevel) bool) bool {
	switch {
	case s.maxPrior == PriorNone:
		return false
	case s.maxPrior == PriorIgnoreMissingSymbols:
		return true
	case s.otherwiseEmpty():
		return true
	}
	return excl(s.maxPrior)
}

func (s *parseState) skipMissingArguments() bool {
	return s.skipMissing(PriorLevel.excludesArguments)
}

func (s *parseState) skipMissingOptions() bool {
	return s.skipMissing(PriorLevel.excludesOptions)
}

// autoSet marks AutoSetWhenNoSymbols options present when nothing
// follows the command path
func (s *parseState) autoSet() *ParseError {
	if len(s.tokens) != 0 {
		return nil
	}
	for _, opt := range s.index.options {
		if opt.prior != PriorAutoSetWhenNoSymbols || len(s.occurrences[opt]) > 0 {
			continue
		}
		s.observe(opt.prior)
		s.record(opt, newOccurrence(opt, opt.tokens[0]))
		s.p.logger.Debug("autoset", "option", opt.name)
	}
	return nil
}

// checkExclusivity enforces the exclusive prior levels. Options are
// checked before arguments.
func (s *parseState) checkExclusivity() *ParseError {
	for _, opt := range s.matched {
		if !opt.prior.excludesOptions() {
			continue
		}
		for _, other := range s.matched {
			if other != opt {
				return newParseError(s.cmd, CodePriorOptionWithOptions, s.firstToken(opt), s.firstToken(other))
			}
		}
	}
	if len(s.positionals) == 0 {
		return nil
	}
	for _, opt := range s.matched {
		if !opt.prior.excludesArguments() {
			continue
		}
		if first := s.positionals[0]; !first.literal && s.p.optionShaped(first.token) {
			return s.unknownOption(first.token)
		}
		return newParseError(s.cmd, CodePriorOptionWithArguments, s.firstToken(opt))
	}
	return nil
}

func (s *parseState) firstToken(opt *Option) string {
	if occ := s.occurrences[opt]; len(occ) > 0 {
		return occ[0].token
	}
	return opt.tokens[0]
}

// checkRequired reports the first required option that is neither present
// nor exempted by a present member of one of its exclusive groups. Local
// options are checked before inherited globals.
func (s *parseState) checkRequired() *ParseError {
	if s.skipMissingOptions() {
		return nil
	}
	for _, opt := range s.index.options {
		if !opt.required || len(s.occurrences[opt]) > 0 || s.exempt(opt) {
			continue
		}
		return newParseError(s.cmd, CodeMissingRequiredOption, opt.DisplayTokens())
	}
	return nil
}

func (s *parseState) exempt(opt *Option) bool {
	for _, g := range s.groups {
		if _, seen := s.groupSeen[g]; seen && g.has(opt) {
			return true
		}
	}
	return false
}
