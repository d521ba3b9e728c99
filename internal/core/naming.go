package core

import (
	"fmt"
	"strings"
	"unicode"
)

// CamelToKebab converts camelCase or CamelCase identifiers to kebab-case.
// Names that are already kebab-case come back unchanged.
func CamelToKebab(s string) string {
	var result strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			// fooBar -> foo-bar, and APIServer -> api-server at the end of an acronym
			if unicode.IsLower(prev) || unicode.IsDigit(prev) ||
				(unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])) {
				result.WriteRune('-')
			}
		}

		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}

// normalizeName turns a declaration-site identifier into a parameter name.
func normalizeName(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrBlankName
	}

	if strings.HasPrefix(name, "-") || strings.ContainsFunc(name, unicode.IsSpace) {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}

	return CamelToKebab(name), nil
}

// validateShort checks a short alias: exactly one non-space, non-dash character.
func validateShort(short string) error {
	runes := []rune(short)
	if len(runes) != 1 || runes[0] == '-' || unicode.IsSpace(runes[0]) {
		return fmt.Errorf("%w: %q", ErrBadShort, short)
	}

	return nil
}
