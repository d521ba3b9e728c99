// Package core implements parameter declaration and greedy chat-line parsing.
// The public API lives in the root chatargs package.
package core

import (
	"context"
	"strconv"
)

// Exported constants.
const (
	// Unbounded is the Cardinality.Max sentinel for "consume every eligible token".
	Unbounded = 0
)

// Kind values.
const (
	KindFlag Kind = iota
	KindOption
	KindPositional
)

// BatchConverter turns every token consumed by one parameter into a single value.
type BatchConverter[T any] func(ctx context.Context, raw []string) (T, error)

// Cardinality is the inclusive range of tokens a parameter consumes.
// A Max of Unbounded means there is no upper limit.
type Cardinality struct {
	Min int
	Max int
}

// Allows reports whether a parameter may consume one more token after n.
func (c Cardinality) Allows(n int) bool {
	return c.Max == Unbounded || n < c.Max
}

// String renders the range as "min..max", with "*" for an unbounded max.
func (c Cardinality) String() string {
	upper := "*"
	if c.Max != Unbounded {
		upper = strconv.Itoa(c.Max)
	}

	return strconv.Itoa(c.Min) + ".." + upper
}

// Converter turns one raw token (or several tokens joined by a space) into a value.
// The context is the one handed to Parse; converters read invocation data from it.
type Converter[T any] func(ctx context.Context, raw string) (T, error)

// Kind identifies how a parameter is matched against input tokens.
type Kind int

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindOption:
		return "option"
	case KindPositional:
		return "positional"
	default:
		return "unknown"
	}
}

// Identity is the converter used when none is given: the raw text is the value.
func Identity(_ context.Context, raw string) (string, error) {
	return raw, nil
}

// Plain adapts a context-free conversion function, such as strconv.Atoi.
func Plain[T any](fn func(string) (T, error)) Converter[T] {
	return func(_ context.Context, raw string) (T, error) {
		return fn(raw)
	}
}

// PlainBatch adapts a context-free batch conversion function.
func PlainBatch[T any](fn func([]string) (T, error)) BatchConverter[T] {
	return func(_ context.Context, raw []string) (T, error) {
		return fn(raw)
	}
}

// convMode says how consumed tokens reach the converter.
type convMode int

const (
	convNone  convMode = iota // flags: presence is the value
	convOne                   // exactly one token, converted once
	convJoin                  // tokens joined with a space, converted once
	convEach                  // each token converted, result is a slice
	convBatch                 // all tokens handed to a batch converter
)
