// Package convert provides ready-made converters for chatargs parameters.
package convert

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/toejough/chatargs"
)

// Exported variables.
var (
	ErrBadGlob     = errors.New("invalid glob pattern")
	ErrBlank       = errors.New("value must not be blank")
	ErrNotInChoice = errors.New("value not among choices")
)

// Bool parses strconv-style booleans ("true", "0", "F", ...).
func Bool(_ context.Context, raw string) (bool, error) {
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parsing bool %q: %w", raw, err)
	}

	return parsed, nil
}

// Duration parses Go durations such as "90s" or "1h30m".
func Duration(_ context.Context, raw string) (time.Duration, error) {
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing duration %q: %w", raw, err)
	}

	return parsed, nil
}

// Float parses a float64.
func Float(_ context.Context, raw string) (float64, error) {
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float64 value %q: %w", raw, err)
	}

	return parsed, nil
}

// Glob accepts a doublestar pattern (** and {a,b} included) and returns it unchanged.
func Glob(_ context.Context, raw string) (string, error) {
	if !doublestar.ValidatePattern(raw) {
		return "", fmt.Errorf("%w: %q", ErrBadGlob, raw)
	}

	return raw, nil
}

// Int parses a base-10 int.
func Int(_ context.Context, raw string) (int, error) {
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing int %q: %w", raw, err)
	}

	return parsed, nil
}

// Matching returns a converter that accepts only values matching the doublestar
// pattern, e.g. "release-*" or "{dev,prod}".
func Matching(pattern string) chatargs.Converter[string] {
	return func(_ context.Context, raw string) (string, error) {
		ok, err := doublestar.Match(pattern, raw)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrBadGlob, pattern)
		}

		if !ok {
			return "", fmt.Errorf("%w: %q does not match %q", ErrNotInChoice, raw, pattern)
		}

		return raw, nil
	}
}

// NonEmpty rejects values that are only whitespace.
func NonEmpty(_ context.Context, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrBlank
	}

	return raw, nil
}

// OneOf returns a converter accepting one of choices, compared case-insensitively.
// The choice as declared is returned.
func OneOf(choices ...string) chatargs.Converter[string] {
	return func(_ context.Context, raw string) (string, error) {
		idx := slices.IndexFunc(choices, func(c string) bool {
			return strings.EqualFold(c, raw)
		})
		if idx < 0 {
			return "", fmt.Errorf("%w: %q (want one of %s)",
				ErrNotInChoice, raw, strings.Join(choices, ", "))
		}

		return choices[idx], nil
	}
}

// Sentence folds every consumed token into one string joined by single spaces.
func Sentence(_ context.Context, raw []string) (string, error) {
	return strings.Join(raw, " "), nil
}

// Words keeps the consumed tokens as they are.
func Words(_ context.Context, raw []string) ([]string, error) {
	return slices.Clone(raw), nil
}
