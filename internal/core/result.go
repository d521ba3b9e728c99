package core

import (
	"maps"
	"slices"
)

// Result maps parameter names to converted values. A name is present only when
// its parameter was matched in the input or received a default.
type Result struct {
	values    map[string]any
	unmatched []string
}

// NewResult builds a Result from a name→value map, mostly for tests of code that
// consumes parse output.
func NewResult(values map[string]any) *Result {
	r := newResult()
	maps.Copy(r.values, values)

	return r
}

// Get returns the value for name.
func (r *Result) Get(name string) (any, bool) {
	v, ok := r.values[name]

	return v, ok
}

// Has reports whether name was matched or defaulted.
func (r *Result) Has(name string) bool {
	_, ok := r.values[name]

	return ok
}

// Len returns the number of names in the result.
func (r *Result) Len() int {
	return len(r.values)
}

// Map returns a copy of the name→value mapping.
func (r *Result) Map() map[string]any {
	return maps.Clone(r.values)
}

// Names returns the names in the result, sorted.
func (r *Result) Names() []string {
	return slices.Sorted(maps.Keys(r.values))
}

// Unmatched returns the tokens no parameter claimed, in input order: unknown
// option references, repeats of already satisfied parameters and surplus
// positional tokens.
func (r *Result) Unmatched() []string {
	return slices.Clone(r.unmatched)
}

func (r *Result) set(name string, value any) {
	r.values[name] = value
}

// Lookup returns the value for name as a T. The second result is false when the
// name is absent or holds a value of another type.
func Lookup[T any](r *Result, name string) (T, bool) {
	var zero T

	if r == nil {
		return zero, false
	}

	v, ok := r.values[name]
	if !ok {
		return zero, false
	}

	typed, ok := v.(T)
	if !ok {
		return zero, false
	}

	return typed, true
}

func newResult() *Result {
	return &Result{values: map[string]any{}}
}
