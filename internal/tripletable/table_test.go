package tripletable_test

import (
	"testing"
	"testing/quick"

	"github.com/fouriertransform/msq3/internal/pythagorean"
	. "github.com/fouriertransform/msq3/internal/tripletable"
)

// quickCheckConfig32 will make each quickcheck test run (32 * -quickchecks)
// times. The default value of -quickchecks is 100.
var quickCheckConfig32 = &quick.Config{MaxCountScale: 1 << 5}

func buildFirstN(t *testing.T, n int) *Table {
	t.Helper()
	table, err := pythagorean.BuildTable(pythagorean.NewTrialDivisionSource(), n)
	if err != nil {
		t.Fatalf("BuildTable(%d): %v", n, err)
	}
	return table
}

func assertEqualU64(t *testing.T, name string, got, want []uint64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: len = %d, want %d (%v vs %v)", name, len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s[%d] = %d, want %d (got %v, want %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func assertEqualU32(t *testing.T, name string, got, want []uint32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: len = %d, want %d (%v vs %v)", name, len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s[%d] = %d, want %d (got %v, want %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func TestProductOfPrimitiveTriples(t *testing.T) {
	triples := buildFirstN(t, 100)

	output := &Table{}
	output.Push(3, 4, 5, 1)
	output.Push(5, 12, 13, 2)
	output.Push(15, 8, 17, 3)

	triples.Product(3, 4, 5, 1, output)

	if output.Len() != 203 {
		t.Fatalf("output.Len() = %d, want 203", output.Len())
	}

	assertEqualU64(t, "A", output.A[:8], []uint64{3, 5, 15, 7, 33, 13, 17, 57})
	assertEqualU64(t, "B", output.B[:8], []uint64{4, 12, 8, 24, 56, 84, 144, 176})
	assertEqualU64(t, "C", output.C[:8], []uint64{5, 13, 17, 25, 65, 85, 145, 185})

	for i := 0; i < output.Len(); i++ {
		a, b, c := output.A[i], output.B[i], output.C[i]
		if a*a+b*b != c*c {
			t.Errorf("row %d: (%d,%d,%d) is not a Pythagorean triple", i, a, b, c)
		}
	}
}

// tripleFromPair builds a Pythagorean triple from Euclid's formula, keeping
// the generator pair small enough that products of two resulting hypotenuses
// square without overflowing uint64.
func tripleFromPair(mRaw, nRaw uint16) (a, b, c uint64) {
	m := uint64(mRaw%60) + 2
	n := uint64(nRaw)%(m-1) + 1
	return m*m - n*n, 2 * m * n, m*m + n*n
}

func TestProductPreservesTripleInvariant(t *testing.T) {
	holds := func(m1, n1, m2, n2 uint16) bool {
		a1, b1, c1 := tripleFromPair(m1, n1)
		x, y, z := tripleFromPair(m2, n2)

		table := &Table{}
		table.Push(a1, b1, c1, 0b01)

		out := &Table{}
		table.Product(x, y, z, 0b10, out)
		if out.Len() != 2 {
			return false
		}
		for i := 0; i < out.Len(); i++ {
			a, b, c := out.A[i], out.B[i], out.C[i]
			if a*a+b*b != c*c || c != c1*z || out.F[i] != 0b11 {
				return false
			}
		}

		// Overlapping factor bitmaps must set the non-primitive flag.
		out.Clear()
		table.Product(x, y, z, 0b01, out)
		for i := 0; i < out.Len(); i++ {
			if out.F[i] != TopBit|0b01 {
				return false
			}
		}
		return true
	}
	if err := quick.Check(holds, quickCheckConfig32); err != nil {
		t.Errorf("product broke the triple invariant: %v", err)
	}
}

func TestProductOfIdenticalTripleIsTrivial(t *testing.T) {
	triples := buildFirstN(t, 1)
	output := &Table{}

	triples.Product(3, 4, 5, 1, output)

	if output.Len() != 2 {
		t.Fatalf("output.Len() = %d, want 2", output.Len())
	}
	assertEqualU64(t, "A", output.A, []uint64{7, 25})
	assertEqualU64(t, "B", output.B, []uint64{24, 0})
}

func TestRemoveTrivial(t *testing.T) {
	triples := &Table{
		A: []uint64{3, 5, 5, 13, 0},
		B: []uint64{4, 0, 12, 0, 0},
		C: []uint64{5, 5, 13, 13, 0},
		F: []uint32{1, 0, 2, 2, 0},
	}

	triples.RemoveTrivial(&Scratch{})

	assertEqualU64(t, "A", triples.A, []uint64{3, 5})
	assertEqualU64(t, "B", triples.B, []uint64{4, 12})
	assertEqualU64(t, "C", triples.C, []uint64{5, 13})
}

func TestSortAndDedupByCAndA(t *testing.T) {
	triples := &Table{
		A: []uint64{3, 5, 3, 5, 3},
		B: []uint64{4, 12, 4, 12, 4},
		C: []uint64{5, 13, 5, 13, 5},
		F: []uint32{1, 2, 1, 2, 1},
	}

	triples.SortAndDedupByCAndA(&Scratch{})

	assertEqualU64(t, "A", triples.A, []uint64{3, 5})
	assertEqualU64(t, "B", triples.B, []uint64{4, 12})
	assertEqualU64(t, "C", triples.C, []uint64{5, 13})
	assertEqualU32(t, "F", triples.F, []uint32{1, 2})
}

func TestIntoMagicTriples(t *testing.T) {
	scratch := &Scratch{}

	triples0 := &Table{}
	triples0.Push(3, 4, 5, 1)

	triples1 := &Table{}
	triples1.Push(5, 12, 13, 2)
	triples1.Extend(triples0)
	triples0.Product(5, 12, 13, 2, triples1)
	triples1.SortAndDedupByCAndA(scratch)

	triples2 := &Table{}
	triples2.Push(5, 12, 13, 2)
	triples2.Extend(triples1)
	triples1.Product(5, 12, 13, 2, triples2)
	triples2.SortAndDedupByCAndA(scratch)

	// Run once at the end, since trivial triples can combine into
	// non-trivial ones in a later product.
	triples2.RemoveTrivial(scratch)

	assertEqualU64(t, "A", triples2.A, []uint64{3, 5, 33, 63, 119, 123, 507, 837})
	assertEqualU64(t, "B", triples2.B, []uint64{4, 12, 56, 16, 120, 836, 676, 116})
	assertEqualU64(t, "C", triples2.C, []uint64{5, 13, 65, 65, 169, 845, 845, 845})

	finalProduct := uint64(5 * 13 * 13)
	triples2.IntoMagicTriples(finalProduct)

	assertEqualU64(t, "A", triples2.A, []uint64{1183, 1105, 1157, 1027, 1195, 959, 1183, 953})
	assertEqualU64(t, "B", triples2.B, []uint64{169, 455, 299, 611, 5, 713, 169, 721})

	// Scaling reintroduces the duplicate (1183, 169, 845) seen twice above;
	// IntoMagicTriples never re-dedups; SortAndDedupByPrimitiveAndA does.
	for i := 0; i < triples2.Len(); i++ {
		a, b := triples2.A[i], triples2.B[i]
		if a*a+b*b != 2*finalProduct*finalProduct {
			t.Errorf("row %d: (%d,%d) does not satisfy a^2+b^2 = 2*finalProduct^2", i, a, b)
		}
	}
}

func TestPrimitiveStart(t *testing.T) {
	scratch := &Scratch{}

	triples0 := &Table{}
	triples0.Push(3, 4, 5, 1)

	triples1 := &Table{}
	triples1.Push(5, 12, 13, 2)
	triples1.Extend(triples0)
	triples0.Product(5, 12, 13, 2, triples1)
	triples1.RemoveTrivial(scratch)

	finalProduct := uint64(5 * 13)
	triples1.IntoMagicTriples(finalProduct)
	triples1.SortAndDedupByPrimitiveAndA(scratch)

	assertEqualU64(t, "A", triples1.A, []uint64{85, 91, 79, 89})
	assertEqualU64(t, "B", triples1.B, []uint64{35, 13, 47, 23})
	assertEqualU32(t, "F", triples1.F, []uint32{TopBit + 0b10, TopBit + 0b1, 0b11, 0b11})

	if got := triples1.PrimitiveStart(); got != 2 {
		t.Errorf("PrimitiveStart() = %d, want 2", got)
	}
}
