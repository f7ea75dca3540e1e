package pattern

import "github.com/fouriertransform/msq3/internal/u128"

// knownSolutionDivisor is 425^2; c^2/knownSolutionDivisor being a perfect
// square identifies centers built from 425's own known magic-square
// solution and its multiples, which HideKnownSolution lets callers skip.
// For an integer c, 425^2 divides c^2 exactly when 425 divides c, and the
// quotient is then (c/425)^2, so this test holds exactly when c % 425 == 0.
const knownSolutionDivisor = 425 * 425

// IsKnownSolution reports whether c reproduces the already-published 3x3
// magic square of squares built around center 425 (or a multiple of it).
func IsKnownSolution(c uint64) bool {
	squared := u128.Square(c)
	quotient, remainder := squared.DivModSmall(knownSolutionDivisor)
	if remainder != 0 {
		return false
	}
	return quotient.IsSquare()
}

// Mode selects which checkers Detect runs, matching the two search modes
// the driver exposes on the command line.
type Mode int

const (
	// Hourglass runs only the magic-hourglass checker.
	Hourglass Mode = iota
	// Patterns123456 runs patterns 1, 2, 3, 4, and 6 (pattern 5 is not
	// implemented; see the package doc).
	Patterns123456
)

// Detect runs the checkers selected by mode over one composite number's
// magic-triple powerset, reporting hits to sink. If hideKnownSolution is
// set, centers matching IsKnownSolution are skipped entirely.
func Detect(mode Mode, primitiveStart int, a, b []uint64, c uint64, hideKnownSolution bool, sink Sink) {
	if hideKnownSolution && IsKnownSolution(c) {
		return
	}

	switch mode {
	case Hourglass:
		DetectHourglass(primitiveStart, a, b, c, sink)
	case Patterns123456:
		CheckPatterns1And6(primitiveStart, a, b, c, sink)
		CheckPatterns234(a, b, c, sink)
	}
}
