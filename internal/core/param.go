package core

import (
	"context"
	"fmt"
	"strings"
)

// Exported constants.
const (
	DefaultDescription = "No description provided."
)

// Param is the declared shape of one argument.
// A Param is built by a Spec and is read-only once registered, so one Param
// is shared by every invocation of the command that owns it.
type Param struct {
	kind        Kind
	name        string
	short       string
	description string
	card        Cardinality
	optional    bool
	hasDefault  bool
	def         any
	mode        convMode
	convert     func(ctx context.Context, raw []string) (any, error)
}

// Cardinality returns the effective token range. Optional parameters report a
// Min of zero whatever range was declared.
func (p *Param) Cardinality() Cardinality {
	card := p.card
	if p.optional {
		card.Min = 0
	}

	return card
}

// Default returns the default value and whether one was declared.
func (p *Param) Default() (any, bool) {
	return p.def, p.hasDefault
}

// Description returns the help text.
func (p *Param) Description() string {
	return p.description
}

// Display returns the parameter as a user would type it: --name, or <name> for positionals.
func (p *Param) Display() string {
	if p == nil {
		return "<unknown>"
	}

	if p.kind == KindPositional {
		return "<" + p.name + ">"
	}

	return "--" + p.name
}

// Kind returns how the parameter is matched.
func (p *Param) Kind() Kind {
	return p.kind
}

// MultiValued reports whether the parameter may consume more than one token.
func (p *Param) MultiValued() bool {
	return p.card.Max != 1 && p.kind != KindFlag
}

// Name returns the parameter name.
func (p *Param) Name() string {
	return p.name
}

// Optional reports whether the parameter may be absent from the input.
func (p *Param) Optional() bool {
	return p.optional || p.hasDefault || p.card.Min == 0
}

// Short returns the single-character alias, or "".
func (p *Param) Short() string {
	return p.short
}

// String describes the parameter for debugging.
func (p *Param) String() string {
	return fmt.Sprintf("%s %s [%s]", p.kind, p.Display(), p.Cardinality())
}

// apply runs the converter over the consumed tokens. A failing or panicking
// converter becomes an Invalid failure carrying the raw text.
func (p *Param) apply(ctx context.Context, raw []string) (value any, failure *ParseError) {
	if p.convert == nil {
		return strings.Join(raw, " "), nil
	}

	defer func() {
		if recover() != nil {
			value, failure = nil, invalidFailure(p, raw)
		}
	}()

	value, err := p.convert(ctx, raw)
	if err != nil {
		return nil, invalidFailure(p, raw)
	}

	return value, nil
}

// singleValued reports whether the parameter is declared to take exactly one
// token. Such options fail Empty instead of being skipped, even when optional.
func (p *Param) singleValued() bool {
	return p.card == Cardinality{Min: 1, Max: 1}
}
