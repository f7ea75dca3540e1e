package pattern

import (
	"sort"

	"github.com/fouriertransform/msq3/internal/u128"
)

// partitionPointLess returns the number of leading elements of squares that
// are strictly less than target, assuming squares is sorted ascending (as
// it is here, since it is built from an a/b column already sorted by a,
// with b reversed to restore ascending order on the complementary leg).
func partitionPointLess(squares []u128.U128, target u128.U128) int {
	return sort.Search(len(squares), func(i int) bool { return !squares[i].Less(target) })
}

// binarySearch reports whether target appears in the ascending slice squares.
func binarySearch(squares []u128.U128, target u128.U128) bool {
	i := sort.Search(len(squares), func(i int) bool { return !squares[i].Less(target) })
	return i < len(squares) && squares[i].Equal(target)
}

// squareColumn returns the squares of the given leg values, ordered so that
// non-primitive legs come first (complementary leg reversed, to restore
// ascending order) followed by primitive legs (also complementary-leg
// reversed), the flat layout the hourglass scan's partition-point searches
// rely on.
func squareColumn(primitiveStart int, ascendingLeg, complementaryLeg []uint64) (squares []u128.U128, primitiveOffset int) {
	squares = make([]u128.U128, 0, len(ascendingLeg)*2)

	for i := primitiveStart - 1; i >= 0; i-- {
		squares = append(squares, u128.Square(complementaryLeg[i]))
	}
	for i := 0; i < primitiveStart; i++ {
		squares = append(squares, u128.Square(ascendingLeg[i]))
	}
	primitiveOffset = len(squares)

	for i := len(complementaryLeg) - 1; i >= primitiveStart; i-- {
		squares = append(squares, u128.Square(complementaryLeg[i]))
	}
	for i := primitiveStart; i < len(ascendingLeg); i++ {
		squares = append(squares, u128.Square(ascendingLeg[i]))
	}

	return squares, primitiveOffset
}
