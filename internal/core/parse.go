package core

import (
	"context"
	"strings"
)

// Parse assigns tokens to the parameters of set and converts them.
//
// Named options may appear anywhere; positionals are filled in declaration order
// from the tokens that are not option references. Consumption is greedy and never
// backtracks, so an unbounded parameter can starve a later one. The first Empty,
// Invalid or Insufficient failure stops the scan; Missing is reported once, after
// the scan, naming every required parameter that got nothing.
//
// ctx is passed unchanged to every converter. Parse does not modify set.
func Parse(ctx context.Context, set *Set, tokens []string) (*Result, error) {
	pc := newParseContext(ctx, set, tokens)

	err := pc.parseTokens()
	if err != nil {
		return nil, err
	}

	err = pc.applyDefaults()
	if err != nil {
		return nil, err
	}

	return pc.result, nil
}

// ParseLine splits line on whitespace and parses the tokens. There is no quoting
// or escaping.
func ParseLine(ctx context.Context, set *Set, line string) (*Result, error) {
	return Parse(ctx, set, Tokenize(line))
}

// Tokenize splits a chat line on runs of whitespace.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// cursor walks the token list with one token of pushback.
type cursor struct {
	tokens []string
	pos    int
}

// back pushes the most recently read token back.
func (c *cursor) back() {
	if c.pos > 0 {
		c.pos--
	}
}

// next reads one token.
func (c *cursor) next() (string, bool) {
	if c.pos >= len(c.tokens) {
		return "", false
	}

	tok := c.tokens[c.pos]
	c.pos++

	return tok, true
}

// peek returns the next token without reading it.
func (c *cursor) peek() (string, bool) {
	if c.pos >= len(c.tokens) {
		return "", false
	}

	return c.tokens[c.pos], true
}

type parseContext struct {
	ctx     context.Context //nolint:containedctx // scoped to a single Parse call
	set     *Set
	cur     *cursor
	pending map[*Param]bool
	result  *Result
}

// applyDefaults fills absent parameters from their defaults and reports every
// required parameter that is still unsatisfied.
func (pc *parseContext) applyDefaults() error {
	var missing []*Param

	for _, p := range pc.set.params {
		if !pc.pending[p] {
			continue
		}

		switch {
		case p.hasDefault:
			pc.result.set(p.name, p.def)
		case p.Optional():
		default:
			missing = append(missing, p)
		}
	}

	if len(missing) > 0 {
		return missingFailure(missing)
	}

	return nil
}

// consumeGreedy reads tokens onto raw until the cardinality is full, an option
// reference appears, or the input ends. The option reference is pushed back.
func (pc *parseContext) consumeGreedy(raw []string, card Cardinality) []string {
	for card.Allows(len(raw)) {
		tok, ok := pc.cur.next()
		if !ok {
			break
		}

		if looksLikeOption(tok) {
			pc.cur.back()
			break
		}

		raw = append(raw, tok)
	}

	return raw
}

// parseOption handles a matched option reference.
func (pc *parseContext) parseOption(p *Param) error {
	if p.singleValued() {
		tok, ok := pc.cur.peek()
		if !ok || looksLikeOption(tok) {
			return emptyFailure(p)
		}

		pc.cur.next()

		return pc.settle(p, []string{tok})
	}

	return pc.settle(p, pc.consumeGreedy(nil, p.Cardinality()))
}

// parsePositional handles a token matched to the next positional. The token
// itself is the first value.
func (pc *parseContext) parsePositional(p *Param, tok string) error {
	return pc.settle(p, pc.consumeGreedy([]string{tok}, p.Cardinality()))
}

// parseToken resolves one token and dispatches on the matched parameter's kind.
func (pc *parseContext) parseToken(tok string) error {
	p := pc.resolve(tok)
	if p == nil {
		pc.result.unmatched = append(pc.result.unmatched, tok)
		return nil
	}

	switch p.kind {
	case KindFlag:
		pc.record(p, true)
		return nil
	case KindOption:
		return pc.parseOption(p)
	default:
		return pc.parsePositional(p, tok)
	}
}

// parseTokens scans every token left to right.
func (pc *parseContext) parseTokens() error {
	for {
		tok, ok := pc.cur.next()
		if !ok {
			return nil
		}

		err := pc.parseToken(tok)
		if err != nil {
			return err
		}
	}
}

func (pc *parseContext) record(p *Param, value any) {
	pc.result.set(p.name, value)
	delete(pc.pending, p)
}

// resolve matches tok against the parameters still in the working set.
// Option references never match positionals.
func (pc *parseContext) resolve(tok string) *Param {
	if after, ok := strings.CutPrefix(tok, "--"); ok {
		return pc.stillPendingNamed(pc.set.byName[after])
	}

	if looksLikeOption(tok) {
		return pc.stillPendingNamed(pc.set.byShort[tok[1:]])
	}

	for _, p := range pc.set.params {
		if p.kind == KindPositional && pc.pending[p] {
			return p
		}
	}

	return nil
}

// settle checks the consumed count against the cardinality and converts.
// Nothing consumed leaves the parameter in the working set for a later
// reference or its default.
func (pc *parseContext) settle(p *Param, raw []string) error {
	if len(raw) == 0 {
		return nil
	}

	if len(raw) < p.Cardinality().Min {
		return insufficientFailure(p, raw)
	}

	value, failure := p.apply(pc.ctx, raw)
	if failure != nil {
		return failure
	}

	pc.record(p, value)

	return nil
}

func (pc *parseContext) stillPendingNamed(p *Param) *Param {
	if p == nil || p.kind == KindPositional || !pc.pending[p] {
		return nil
	}

	return p
}

// looksLikeOption reports whether tok is an option reference: "-" followed by
// at least one character. Negative numbers are option references too.
func looksLikeOption(tok string) bool {
	return len(tok) > 1 && tok[0] == '-'
}

func newParseContext(ctx context.Context, set *Set, tokens []string) *parseContext {
	pending := make(map[*Param]bool, len(set.params))
	for _, p := range set.params {
		pending[p] = true
	}

	return &parseContext{
		ctx:     ctx,
		set:     set,
		cur:     &cursor{tokens: tokens},
		pending: pending,
		result:  newResult(),
	}
}
