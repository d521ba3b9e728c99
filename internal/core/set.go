package core

import (
	"fmt"
	"slices"
)

// Set is the ordered list of parameters owned by one command or subcommand.
// Registration is not safe for concurrent use; once declaration is over a Set
// is only read, and may be parsed against from any number of goroutines.
type Set struct {
	params  []*Param
	byName  map[string]*Param
	byShort map[string]*Param
}

// NewSet returns an empty parameter set.
func NewSet() *Set {
	return &Set{
		byName:  map[string]*Param{},
		byShort: map[string]*Param{},
	}
}

// Len returns the number of registered parameters.
func (s *Set) Len() int {
	return len(s.params)
}

// Lookup finds a parameter by name.
func (s *Set) Lookup(name string) (*Param, bool) {
	p, ok := s.byName[name]

	return p, ok
}

// LookupShort finds a parameter by its single-character alias.
func (s *Set) LookupShort(short string) (*Param, bool) {
	p, ok := s.byShort[short]

	return p, ok
}

// Params returns the parameters in declaration order.
func (s *Set) Params() []*Param {
	return slices.Clone(s.params)
}

// Positionals returns the positional parameters in declaration order.
func (s *Set) Positionals() []*Param {
	var out []*Param

	for _, p := range s.params {
		if p.kind == KindPositional {
			out = append(out, p)
		}
	}

	return out
}

// add validates name and alias uniqueness, allows a single unbounded
// positional, and appends p.
func (s *Set) add(p *Param) error {
	if s.byName == nil {
		s.byName = map[string]*Param{}
		s.byShort = map[string]*Param{}
	}

	if _, ok := s.byName[p.name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, p.name)
	}

	if p.kind == KindPositional && p.card.Max == Unbounded {
		for _, other := range s.params {
			if other.kind == KindPositional && other.card.Max == Unbounded {
				return fmt.Errorf("%w: %s and %s", ErrTwoUnbounded, other.name, p.name)
			}
		}
	}

	if p.short != "" {
		if other, ok := s.byShort[p.short]; ok {
			return fmt.Errorf("%w: -%s (used by %s)", ErrDuplicateShort, p.short, other.name)
		}

		s.byShort[p.short] = p
	}

	s.byName[p.name] = p
	s.params = append(s.params, p)

	return nil
}
