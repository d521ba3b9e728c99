package core

import (
	"errors"
	"fmt"
	"strings"
)

// Exported variables.
var (
	// Declaration-time errors, returned when a parameter is registered.
	ErrBadCardinality = errors.New("invalid cardinality")
	ErrBadName        = errors.New("invalid parameter name")
	ErrBadShort       = errors.New("short alias must be a single character")
	ErrBlankName      = errors.New("parameter name must not be blank")
	ErrDefaultType    = errors.New("default value does not match converted type")
	ErrDuplicateName  = errors.New("parameter name already defined")
	ErrDuplicateShort = errors.New("short alias already defined")
	ErrFlagRefinement = errors.New("flags consume no values")
	ErrNoConverter    = errors.New("no converter")
	ErrTwoUnbounded   = errors.New("only one positional may be unbounded")

	// Parse-time failure kinds. A *ParseError unwraps to exactly one of these.
	ErrEmpty        = errors.New("option requires a value")
	ErrInsufficient = errors.New("not enough values")
	ErrInvalid      = errors.New("invalid value")
	ErrMissing      = errors.New("missing required argument")
)

// FailureKind values.
const (
	FailureEmpty FailureKind = iota + 1
	FailureInvalid
	FailureInsufficient
	FailureMissing
)

// FailureKind identifies which of the four parse failures occurred.
type FailureKind int

// String returns the lowercase name of the failure kind.
func (k FailureKind) String() string {
	switch k {
	case FailureEmpty:
		return "empty"
	case FailureInvalid:
		return "invalid"
	case FailureInsufficient:
		return "insufficient"
	case FailureMissing:
		return "missing"
	default:
		return "unknown"
	}
}

func (k FailureKind) sentinel() error {
	switch k {
	case FailureEmpty:
		return ErrEmpty
	case FailureInvalid:
		return ErrInvalid
	case FailureInsufficient:
		return ErrInsufficient
	case FailureMissing:
		return ErrMissing
	default:
		return nil
	}
}

// ParseError is the failure produced by Parse.
// Params holds the offending parameters: one for Empty, Invalid and Insufficient,
// every missing required parameter (in declaration order) for Missing.
type ParseError struct {
	Kind   FailureKind
	Params []*Param
	// Raw is the consumed input, joined by single spaces. Empty for Empty and Missing.
	Raw string
	// Count is how many tokens were consumed. Only set for Insufficient.
	Count int
}

// Error returns a terse, unstyled description of the failure.
func (e *ParseError) Error() string {
	switch e.Kind {
	case FailureEmpty:
		return fmt.Sprintf("%v: %s", ErrEmpty, e.Param().Display())
	case FailureInvalid:
		return fmt.Sprintf("%v %q for %s", ErrInvalid, e.Raw, e.Param().Display())
	case FailureInsufficient:
		p := e.Param()

		return fmt.Sprintf("%v: %s wants at least %d, got %d",
			ErrInsufficient, p.Display(), p.Cardinality().Min, e.Count)
	case FailureMissing:
		return fmt.Sprintf("%v: %s", ErrMissing, strings.Join(e.Names(), ", "))
	default:
		return "parse failure"
	}
}

// Is matches another *ParseError of the same kind.
func (e *ParseError) Is(target error) bool {
	other, ok := target.(*ParseError)

	return ok && other.Kind == e.Kind
}

// Names returns the names of the offending parameters.
func (e *ParseError) Names() []string {
	names := make([]string, 0, len(e.Params))
	for _, p := range e.Params {
		names = append(names, p.Name())
	}

	return names
}

// Param returns the first offending parameter, or nil.
func (e *ParseError) Param() *Param {
	if len(e.Params) == 0 {
		return nil
	}

	return e.Params[0]
}

// Unwrap returns the sentinel for the failure kind.
func (e *ParseError) Unwrap() error {
	return e.Kind.sentinel()
}

func emptyFailure(p *Param) *ParseError {
	return &ParseError{Kind: FailureEmpty, Params: []*Param{p}}
}

func insufficientFailure(p *Param, raw []string) *ParseError {
	return &ParseError{
		Kind:   FailureInsufficient,
		Params: []*Param{p},
		Raw:    strings.Join(raw, " "),
		Count:  len(raw),
	}
}

func invalidFailure(p *Param, raw []string) *ParseError {
	return &ParseError{Kind: FailureInvalid, Params: []*Param{p}, Raw: strings.Join(raw, " ")}
}

func missingFailure(params []*Param) *ParseError {
	return &ParseError{Kind: FailureMissing, Params: params}
}
