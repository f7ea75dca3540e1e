package pattern

import (
	"testing"

	"github.com/fouriertransform/msq3/internal/u128"
)

// recordingSink captures every hit without any formatting, so tests can
// check the invariants a hit must satisfy rather than exact text output.
type recordingSink struct {
	hourglasses [][4]u128.U128 // square1, square2, square3, magicSum
	grids       [][3][3]u128.U128
}

func (s *recordingSink) EmitHourglass(square1, square2, square3, magicSum u128.U128) {
	s.hourglasses = append(s.hourglasses, [4]u128.U128{square1, square2, square3, magicSum})
}

func (s *recordingSink) EmitGrid(grid [3][3]u128.U128) {
	s.grids = append(s.grids, grid)
}

// fixture reproduces the magic-triple powerset produced for composite
// number 65 (5*13), already verified in internal/composite's own tests
// (TestEnumerateFinalTermsYieldingMagicTriples): a[i]^2 + b[i]^2 = 2*c^2
// for every column, with the first two columns non-primitive.
var (
	fixtureA              = []uint64{85, 91, 79, 89}
	fixtureB              = []uint64{35, 13, 47, 23}
	fixtureC              = uint64(65)
	fixturePrimitiveStart = 2
)

func TestDetectHourglassSatisfiesMagicSum(t *testing.T) {
	sink := &recordingSink{}
	DetectHourglass(fixturePrimitiveStart, fixtureA, fixtureB, fixtureC, sink)

	magicSum := u128.Square(fixtureC).Add(u128.Square(fixtureC)).Add(u128.Square(fixtureC))
	for i, h := range sink.hourglasses {
		square1, square2, square3, gotMagicSum := h[0], h[1], h[2], h[3]
		if !gotMagicSum.Equal(magicSum) {
			t.Errorf("hourglass[%d] magicSum = %s, want %s", i, gotMagicSum, magicSum)
		}
		sum := square1.Add(square2).Add(square3)
		if !sum.Equal(magicSum) {
			t.Errorf("hourglass[%d] squares sum to %s, want %s", i, sum, magicSum)
		}
	}
}

// The magic-triple powerset of 845 = 5 * 13 * 13, as the tripletable
// pipeline produces it (two products of (5,12,13) and one of (3,4,5),
// scaled, sorted, and deduped). The repeated factor 13 leaves every
// representation flagged non-primitive, so the primitive region is empty.
var (
	fixture845A = []uint64{953, 959, 1027, 1105, 1157, 1183, 1195}
	fixture845B = []uint64{721, 713, 611, 455, 299, 169, 5}
)

func TestDetectHourglassNeedsAPrimitiveRepresentation(t *testing.T) {
	const c = uint64(845)
	for i := range fixture845A {
		a, b := fixture845A[i], fixture845B[i]
		if a*a+b*b != 2*c*c {
			t.Fatalf("fixture[%d]: (%d,%d) does not satisfy a^2+b^2 = 2*%d^2", i, a, b, c)
		}
	}

	sink := &recordingSink{}
	DetectHourglass(len(fixture845A), fixture845A, fixture845B, c, sink)
	if len(sink.hourglasses) != 0 {
		t.Errorf("got %d hourglass hits, want 0: every representation of 845 is non-primitive, so no square can anchor a scan", len(sink.hourglasses))
	}

	if IsKnownSolution(c) {
		t.Errorf("IsKnownSolution(%d) = true, want false", c)
	}
}

func TestCheckPatterns1And6RunsWithoutPanicAndGridsAreWellFormed(t *testing.T) {
	sink := &recordingSink{}
	CheckPatterns1And6(fixturePrimitiveStart, fixtureA, fixtureB, fixtureC, sink)

	squaredCenter := u128.Square(fixtureC)
	for i, g := range sink.grids {
		if !g[1][1].Equal(squaredCenter) {
			t.Errorf("grid[%d] center = %s, want %s", i, g[1][1], squaredCenter)
		}
	}
}

func TestCheckPatterns234RunsWithoutPanicAndGridsAreWellFormed(t *testing.T) {
	sink := &recordingSink{}
	CheckPatterns234(fixtureA, fixtureB, fixtureC, sink)

	squaredCenter := u128.Square(fixtureC)
	for i, g := range sink.grids {
		if !g[1][1].Equal(squaredCenter) {
			t.Errorf("grid[%d] center = %s, want %s", i, g[1][1], squaredCenter)
		}
	}
}

func TestDetectRunsSelectedMode(t *testing.T) {
	hourglassSink := &recordingSink{}
	Detect(Hourglass, fixturePrimitiveStart, fixtureA, fixtureB, fixtureC, false, hourglassSink)
	if len(hourglassSink.grids) != 0 {
		t.Error("Detect(Hourglass, ...) should never emit a grid")
	}

	patternsSink := &recordingSink{}
	Detect(Patterns123456, fixturePrimitiveStart, fixtureA, fixtureB, fixtureC, false, patternsSink)
	if len(patternsSink.hourglasses) != 0 {
		t.Error("Detect(Patterns123456, ...) should never emit an hourglass hit")
	}
}

func TestIsKnownSolution(t *testing.T) {
	if !IsKnownSolution(425) {
		t.Error("IsKnownSolution(425) = false, want true")
	}
	if IsKnownSolution(fixtureC) {
		t.Errorf("IsKnownSolution(%d) = true, want false", fixtureC)
	}
}

func TestDetectHidesKnownSolution(t *testing.T) {
	sink := &recordingSink{}
	Detect(Hourglass, 0, nil, nil, 425, true, sink)
	if len(sink.hourglasses) != 0 || len(sink.grids) != 0 {
		t.Error("Detect with hideKnownSolution=true should skip a known-solution center entirely")
	}
}
