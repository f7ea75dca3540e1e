package pattern

import (
	"sort"

	"github.com/fouriertransform/msq3/internal/u128"
)

// pair is a (square, complementary square) row, e.g. (a^2, b^2), kept
// ordered by its first component so it can be partition-pointed and
// binary-searched the same way the flat square slices are.
type pair struct {
	First, Second u128.U128
}

func buildPairs(a, b []uint64) []pair {
	pairs := make([]pair, len(a))
	for i := range a {
		pairs[i] = pair{u128.Square(a[i]), u128.Square(b[i])}
	}
	return pairs
}

func partitionPointFirstLess(pairs []pair, target u128.U128) int {
	return sort.Search(len(pairs), func(i int) bool { return !pairs[i].First.Less(target) })
}

func binarySearchPair(pairs []pair, target pair) bool {
	i := sort.Search(len(pairs), func(i int) bool { return !pairs[i].First.Less(target.First) })
	return i < len(pairs) && pairs[i].First.Equal(target.First) && pairs[i].Second.Equal(target.Second)
}

func grid(topLeft, topMiddle, topRight, middleLeft, middleMiddle, middleRight, bottomLeft, bottomMiddle, bottomRight u128.U128) [3][3]u128.U128 {
	return [3][3]u128.U128{
		{topLeft, topMiddle, topRight},
		{middleLeft, middleMiddle, middleRight},
		{bottomLeft, bottomMiddle, bottomRight},
	}
}

// orderedPair returns (x, y) sorted so the larger value comes first, the
// convention pattern 1's target key needs for the "decreasing" cases below.
func orderedPair(x, y u128.U128) (hi, lo u128.U128) {
	if x.Less(y) {
		return y, x
	}
	return x, y
}

// CheckPatterns1And6 scans a magic-triple powerset for patterns 1 and 6,
// the two configurations whose unknown cells form a diagonal band.
func CheckPatterns1And6(primitiveStart int, a, b []uint64, c uint64, sink Sink) {
	squaredCenter := u128.Square(c)
	magicSum := squaredCenter.Add(squaredCenter).Add(squaredCenter)

	nonPrimitive := buildPairs(a[:primitiveStart], b[:primitiveStart])
	primitive := buildPairs(a[primitiveStart:], b[primitiveStart:])

	for i, topPair := range primitive {
		topLeft, bottomRight := topPair.First, topPair.Second

		remainder1, ok1 := magicSum.Sub(topLeft)
		remainder2, ok2 := magicSum.Sub(bottomRight)
		if !ok1 || !ok2 {
			continue
		}

		uptoIndex1 := partitionPointFirstLess(primitive[:i], remainder1)
		uptoIndex2 := partitionPointFirstLess(nonPrimitive, remainder1)

		for _, mid := range primitive[:uptoIndex1] {
			middleLeft, middleRight := mid.First, mid.Second

			bottomLeft, ok := remainder1.Sub(middleLeft)
			if !ok {
				continue
			}
			topRight, ok := remainder2.Sub(middleRight)
			if !ok {
				continue
			}
			pattern1Target := pair{topRight, bottomLeft}

			bottomMiddle, ok := remainder2.Sub(bottomLeft)
			if !ok {
				continue
			}
			topMiddle, ok := remainder1.Sub(topRight)
			if !ok {
				continue
			}
			pattern6Target := pair{bottomMiddle, topMiddle}

			if binarySearchPair(primitive[:i], pattern1Target) || binarySearchPair(nonPrimitive, pattern1Target) {
				sink.EmitGrid(grid(topLeft, topMiddle, topRight, middleLeft, squaredCenter, middleRight, bottomLeft, bottomMiddle, bottomRight))
			}
			if binarySearchPair(primitive[:i], pattern6Target) || binarySearchPair(nonPrimitive, pattern6Target) {
				sink.EmitGrid(grid(topLeft, topMiddle, topRight, middleLeft, squaredCenter, middleRight, bottomLeft, bottomMiddle, bottomRight))
			}
		}

		for _, mid := range nonPrimitive[:uptoIndex2] {
			middleLeft, middleRight := mid.First, mid.Second

			bottomLeft, ok := remainder1.Sub(middleLeft)
			if !ok {
				continue
			}
			topRight, ok := remainder2.Sub(middleRight)
			if !ok {
				continue
			}
			pattern1Target := pair{topRight, bottomLeft}

			bottomMiddle, ok := remainder2.Sub(bottomLeft)
			if !ok {
				continue
			}
			topMiddle, ok := remainder1.Sub(topRight)
			if !ok {
				continue
			}
			pattern6Target := pair{bottomMiddle, topMiddle}

			if binarySearchPair(nonPrimitive, pattern1Target) {
				sink.EmitGrid(grid(topLeft, topMiddle, topRight, middleLeft, squaredCenter, middleRight, bottomLeft, bottomMiddle, bottomRight))
			}
			if binarySearchPair(nonPrimitive, pattern6Target) {
				sink.EmitGrid(grid(topLeft, topMiddle, topRight, middleLeft, squaredCenter, middleRight, bottomLeft, bottomMiddle, bottomRight))
			}
		}

		// The symmetrical case, where middle_left and middle_right swap.
		for _, mid := range primitive[:i] {
			middleRight, middleLeft := mid.First, mid.Second

			bottomLeft, ok := remainder1.Sub(middleLeft)
			if !ok {
				bottomLeft, _ = middleLeft.Sub(remainder1)
			}
			topRight, ok2 := remainder2.Sub(middleRight)
			if !ok2 {
				topRight, _ = middleRight.Sub(remainder2)
			}
			pattern1Hi, pattern1Lo := orderedPair(topRight, bottomLeft)
			pattern1Target := pair{pattern1Hi, pattern1Lo}

			bottomMiddle, ok3 := remainder2.Sub(bottomLeft)
			if !ok3 {
				bottomMiddle, _ = bottomLeft.Sub(remainder2)
			}
			topMiddle, ok4 := remainder1.Sub(topRight)
			if !ok4 {
				continue
			}
			pattern6Hi, pattern6Lo := orderedPair(bottomMiddle, topMiddle)
			pattern6Target := pair{pattern6Hi, pattern6Lo}

			if binarySearchPair(primitive[:i], pattern1Target) || binarySearchPair(nonPrimitive, pattern1Target) {
				sink.EmitGrid(grid(topLeft, topMiddle, topRight, middleRight, squaredCenter, middleLeft, bottomLeft, bottomMiddle, bottomRight))
			}
			if binarySearchPair(primitive[:i], pattern6Target) || binarySearchPair(nonPrimitive, pattern6Target) {
				sink.EmitGrid(grid(topLeft, topMiddle, topRight, middleRight, squaredCenter, middleLeft, bottomLeft, bottomMiddle, bottomRight))
			}
		}

		for _, mid := range nonPrimitive {
			middleRight, middleLeft := mid.First, mid.Second

			bottomLeft, ok := remainder1.Sub(middleLeft)
			if !ok {
				bottomLeft, _ = middleLeft.Sub(remainder1)
			}
			topRight, ok2 := remainder2.Sub(middleRight)
			if !ok2 {
				topRight, _ = middleRight.Sub(remainder2)
			}
			pattern1Hi, pattern1Lo := orderedPair(topRight, bottomLeft)
			pattern1Target := pair{pattern1Hi, pattern1Lo}

			bottomMiddle, ok3 := remainder2.Sub(bottomLeft)
			if !ok3 {
				bottomMiddle, _ = bottomLeft.Sub(remainder2)
			}
			topMiddle, ok4 := remainder1.Sub(topRight)
			if !ok4 {
				continue
			}
			pattern6Hi, pattern6Lo := orderedPair(bottomMiddle, topMiddle)
			pattern6Target := pair{pattern6Hi, pattern6Lo}

			if binarySearchPair(nonPrimitive, pattern1Target) {
				sink.EmitGrid(grid(topLeft, topMiddle, topRight, middleRight, squaredCenter, middleLeft, bottomLeft, bottomMiddle, bottomRight))
			}
			if binarySearchPair(nonPrimitive, pattern6Target) {
				sink.EmitGrid(grid(topLeft, topMiddle, topRight, middleRight, squaredCenter, middleLeft, bottomLeft, bottomMiddle, bottomRight))
			}
		}
	}
}
