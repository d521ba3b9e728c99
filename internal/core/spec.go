package core

import (
	"context"
	"fmt"
	"strings"
)

// Arg is the typed handle for a registered parameter. It reads the parameter's
// converted value back out of a Result.
type Arg[T any] struct {
	param *Param
}

// Get returns the parameter's value and whether it was matched or defaulted.
func (a Arg[T]) Get(r *Result) (T, bool) {
	return Lookup[T](r, a.param.name)
}

// Name returns the registered parameter name.
func (a Arg[T]) Name() string {
	return a.param.name
}

// Param returns the registered parameter.
func (a Arg[T]) Param() *Param {
	return a.param
}

// Value returns the parameter's value, or the zero value when absent.
func (a Arg[T]) Value(r *Result) T {
	v, _ := a.Get(r)

	return v
}

// Spec builds a parameter whose converted value has type T.
// Every refinement returns a modified copy; the receiver is never changed, so a
// partially refined Spec can be reused as the base of several declarations.
// Declaration mistakes are remembered and reported by Register.
type Spec[T any] struct {
	param Param
	conv  Converter[T]
	batch BatchConverter[T]
	err   error
}

// Convert replaces the converter with a per-token one, clearing any batch converter.
func (s Spec[T]) Convert(conv Converter[T]) Spec[T] {
	if s.param.kind == KindFlag {
		return s.fail(ErrFlagRefinement)
	}

	if conv == nil {
		return s.fail(ErrNoConverter)
	}

	s.conv = conv
	s.batch = nil

	if s.param.mode != convJoin {
		s.param.mode = convOne
		if s.param.card.Max != 1 {
			s.param.mode = convJoin
		}
	}

	return s
}

// Default makes the parameter optional and substitutes v when it is absent.
func (s Spec[T]) Default(v T) Spec[T] {
	s.param.optional = true
	s.param.hasDefault = true
	s.param.def = v

	return s
}

// Describe sets the help text.
func (s Spec[T]) Describe(description string) Spec[T] {
	s.param.description = description

	return s
}

// Join consumes between min and max tokens (max Unbounded for no limit), joins
// them with single spaces and converts the result once.
func (s Spec[T]) Join(minCount, maxCount int) Spec[T] {
	if s.param.kind == KindFlag {
		return s.fail(ErrFlagRefinement)
	}

	if s.conv == nil {
		return s.fail(fmt.Errorf("%w: join needs a per-token converter", ErrNoConverter))
	}

	s = s.withCardinality(minCount, maxCount)
	s.param.mode = convJoin
	s.batch = nil

	return s
}

// MustRegister is Register that panics on a declaration error.
func (s Spec[T]) MustRegister(set *Set) Arg[T] {
	arg, err := s.Register(set)
	if err != nil {
		panic(err)
	}

	return arg
}

// Optional lets the parameter be absent. No default is substituted.
func (s Spec[T]) Optional() Spec[T] {
	s.param.optional = true

	return s
}

// Register finalises the parameter and appends it to set.
func (s Spec[T]) Register(set *Set) (Arg[T], error) {
	if s.err != nil {
		name := s.param.name
		if name == "" {
			name = "<blank>"
		}

		return Arg[T]{}, fmt.Errorf("declaring %s: %w", name, s.err)
	}

	param := s.param
	param.convert = s.erase()

	err := set.add(&param)
	if err != nil {
		return Arg[T]{}, err
	}

	return Arg[T]{param: &param}, nil
}

// Short sets the single-character alias used as -x.
func (s Spec[T]) Short(short string) Spec[T] {
	if s.param.kind == KindPositional {
		return s.fail(fmt.Errorf("%w: positional parameters take no alias", ErrBadShort))
	}

	err := validateShort(short)
	if err != nil {
		return s.fail(err)
	}

	s.param.short = short

	return s
}

// erase wraps the typed converter for storage on the untyped Param.
func (s Spec[T]) erase() func(context.Context, []string) (any, error) {
	switch s.param.mode {
	case convNone:
		return nil
	case convOne:
		conv := s.conv

		return func(ctx context.Context, raw []string) (any, error) {
			return conv(ctx, raw[0])
		}
	case convJoin:
		conv := s.conv

		return func(ctx context.Context, raw []string) (any, error) {
			return conv(ctx, strings.Join(raw, " "))
		}
	default:
		batch := s.batch

		return func(ctx context.Context, raw []string) (any, error) {
			return batch(ctx, raw)
		}
	}
}

// fail records the first declaration error.
func (s Spec[T]) fail(err error) Spec[T] {
	if s.err == nil {
		s.err = err
	}

	return s
}

func (s Spec[T]) withCardinality(minCount, maxCount int) Spec[T] {
	if minCount < 0 || maxCount < 0 || (maxCount != Unbounded && maxCount < minCount) {
		return s.fail(fmt.Errorf("%w: %d..%d", ErrBadCardinality, minCount, maxCount))
	}

	s.param.card = Cardinality{Min: minCount, Max: maxCount}

	return s
}

// Collect consumes between min and max tokens and hands all of them to batch,
// which folds them into one value of type R. A default already set on s is kept
// when it is also an R.
func Collect[T, R any](s Spec[T], minCount, maxCount int, batch BatchConverter[R]) Spec[R] {
	out := Spec[R]{param: s.param, err: s.err, batch: batch}

	if s.param.kind == KindFlag {
		return out.fail(ErrFlagRefinement)
	}

	if batch == nil {
		return out.fail(ErrNoConverter)
	}

	if s.param.hasDefault {
		def, ok := s.param.def.(R)
		if !ok {
			return out.fail(fmt.Errorf("%w: %T", ErrDefaultType, s.param.def))
		}

		out.param.def = def
	}

	out = out.withCardinality(minCount, maxCount)
	out.param.mode = convBatch

	return out
}

// Flag declares a boolean parameter set by its presence alone. Absent flags are false.
func Flag(name string) Spec[bool] {
	return newSpec[bool](KindFlag, name, nil).withFlagShape()
}

// Multiple consumes between min and max tokens (max Unbounded for no limit) and
// converts each one, producing a slice. Optionality, a default (as a one-element
// slice), the description and the alias carry over from s.
func Multiple[T any](s Spec[T], minCount, maxCount int) Spec[[]T] {
	out := Spec[[]T]{param: s.param, err: s.err}

	if s.param.kind == KindFlag {
		return out.fail(ErrFlagRefinement)
	}

	conv := s.conv
	if conv == nil {
		return out.fail(fmt.Errorf("%w: multiple needs a per-token converter", ErrNoConverter))
	}

	if s.param.hasDefault {
		if def, ok := s.param.def.(T); ok {
			out.param.def = []T{def}
		}
	}

	out.batch = func(ctx context.Context, raw []string) ([]T, error) {
		values := make([]T, 0, len(raw))

		for _, token := range raw {
			v, err := conv(ctx, token)
			if err != nil {
				return nil, err
			}

			values = append(values, v)
		}

		return values, nil
	}

	out = out.withCardinality(minCount, maxCount)
	out.param.mode = convEach

	return out
}

// Option declares a named parameter (--name or -x) whose value is the raw token.
func Option(name string) Spec[string] {
	return OptionOf(name, Identity)
}

// OptionOf declares a named parameter whose token is converted by conv.
func OptionOf[T any](name string, conv Converter[T]) Spec[T] {
	return newSpec(KindOption, name, conv)
}

// Positional declares a parameter matched by position whose value is the raw token.
func Positional(name string) Spec[string] {
	return PositionalOf(name, Identity)
}

// PositionalOf declares a positional parameter whose token is converted by conv.
func PositionalOf[T any](name string, conv Converter[T]) Spec[T] {
	return newSpec(KindPositional, name, conv)
}

func newSpec[T any](kind Kind, name string, conv Converter[T]) Spec[T] {
	s := Spec[T]{
		param: Param{
			kind:        kind,
			description: DefaultDescription,
			card:        Cardinality{Min: 1, Max: 1},
			mode:        convOne,
		},
		conv: conv,
	}

	normalized, err := normalizeName(name)
	if err != nil {
		return s.fail(err)
	}

	s.param.name = normalized

	if kind != KindFlag && conv == nil {
		return s.fail(ErrNoConverter)
	}

	return s
}

func (s Spec[T]) withFlagShape() Spec[T] {
	s.param.card = Cardinality{Min: 0, Max: 0}
	s.param.mode = convNone
	s.param.hasDefault = true
	s.param.def = false

	return s
}
