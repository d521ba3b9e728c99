package chatargs

import (
	"context"

	"github.com/toejough/chatargs/internal/core"
)

// --- Re-exported types from core ---

// Arg is the typed handle for a registered parameter.
type Arg[T any] = core.Arg[T]

// BatchConverter turns every token consumed by one parameter into a single value.
type BatchConverter[T any] = core.BatchConverter[T]

// Cardinality is the inclusive range of tokens a parameter consumes.
type Cardinality = core.Cardinality

// Converter turns one raw token into a value.
type Converter[T any] = core.Converter[T]

// FailureKind identifies which of the four parse failures occurred.
type FailureKind = core.FailureKind

// Kind identifies how a parameter is matched against input tokens.
type Kind = core.Kind

// Param is the declared, read-only shape of one argument.
type Param = core.Param

// ParseError is the structured failure returned by Parse.
type ParseError = core.ParseError

// Result maps parameter names to converted values.
type Result = core.Result

// Set is the ordered parameter list of one command or subcommand.
type Set = core.Set

// Spec builds a parameter whose converted value has type T.
type Spec[T any] = core.Spec[T]

// Re-export constants.
const (
	DefaultDescription = core.DefaultDescription
	Unbounded          = core.Unbounded

	KindFlag       = core.KindFlag
	KindOption     = core.KindOption
	KindPositional = core.KindPositional

	FailureEmpty        = core.FailureEmpty
	FailureInvalid      = core.FailureInvalid
	FailureInsufficient = core.FailureInsufficient
	FailureMissing      = core.FailureMissing
)

// Re-export errors.
var (
	ErrBadCardinality = core.ErrBadCardinality
	ErrBadName        = core.ErrBadName
	ErrBadShort       = core.ErrBadShort
	ErrBlankName      = core.ErrBlankName
	ErrDefaultType    = core.ErrDefaultType
	ErrDuplicateName  = core.ErrDuplicateName
	ErrDuplicateShort = core.ErrDuplicateShort
	ErrFlagRefinement = core.ErrFlagRefinement
	ErrNoConverter    = core.ErrNoConverter
	ErrTwoUnbounded   = core.ErrTwoUnbounded

	ErrEmpty        = core.ErrEmpty
	ErrInsufficient = core.ErrInsufficient
	ErrInvalid      = core.ErrInvalid
	ErrMissing      = core.ErrMissing
)

// --- Public API ---

// Collect consumes between min and max tokens and folds them into one value with batch.
func Collect[T, R any](s Spec[T], minCount, maxCount int, batch BatchConverter[R]) Spec[R] {
	return core.Collect(s, minCount, maxCount, batch)
}

// Flag declares a boolean parameter set by its presence alone.
func Flag(name string) Spec[bool] {
	return core.Flag(name)
}

// Identity is the converter used when none is given: the raw text is the value.
func Identity(ctx context.Context, raw string) (string, error) {
	return core.Identity(ctx, raw)
}

// Lookup returns the value for name as a T.
func Lookup[T any](r *Result, name string) (T, bool) {
	return core.Lookup[T](r, name)
}

// Multiple consumes between min and max tokens and converts each, producing a slice.
func Multiple[T any](s Spec[T], minCount, maxCount int) Spec[[]T] {
	return core.Multiple(s, minCount, maxCount)
}

// NewSet returns an empty parameter set.
func NewSet() *Set {
	return core.NewSet()
}

// Option declares a named parameter whose value is the raw token.
func Option(name string) Spec[string] {
	return core.Option(name)
}

// OptionOf declares a named parameter whose token is converted by conv.
func OptionOf[T any](name string, conv Converter[T]) Spec[T] {
	return core.OptionOf(name, conv)
}

// Parse assigns tokens to the parameters of set and converts them.
func Parse(ctx context.Context, set *Set, tokens []string) (*Result, error) {
	return core.Parse(ctx, set, tokens)
}

// ParseLine splits line on whitespace and parses the tokens.
func ParseLine(ctx context.Context, set *Set, line string) (*Result, error) {
	return core.ParseLine(ctx, set, line)
}

// Plain adapts a context-free conversion function, such as strconv.Atoi.
func Plain[T any](fn func(string) (T, error)) Converter[T] {
	return core.Plain(fn)
}

// PlainBatch adapts a context-free batch conversion function.
func PlainBatch[T any](fn func([]string) (T, error)) BatchConverter[T] {
	return core.PlainBatch(fn)
}

// Positional declares a parameter matched by position whose value is the raw token.
func Positional(name string) Spec[string] {
	return core.Positional(name)
}

// PositionalOf declares a positional parameter whose token is converted by conv.
func PositionalOf[T any](name string, conv Converter[T]) Spec[T] {
	return core.PositionalOf(name, conv)
}

// Tokenize splits a chat line on runs of whitespace.
func Tokenize(line string) []string {
	return core.Tokenize(line)
}
