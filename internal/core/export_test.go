package core

// Exported variables.
var (
	LooksLikeOptionForTest = looksLikeOption
	NormalizeNameForTest   = normalizeName
	ValidateShortForTest   = validateShort
)

// Test-only exports for use by core_test package tests.
// These follow Go's standard export_test.go pattern (see Go stdlib).

// SingleValuedForTest reports whether p takes the exactly-one-token path.
func SingleValuedForTest(p *Param) bool {
	return p.singleValued()
}
