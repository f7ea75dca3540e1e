package pattern

import "github.com/fouriertransform/msq3/internal/u128"

// DetectHourglass scans a magic-triple powerset (as produced by
// tripletable.Table.IntoMagicTriples and sorted by
// tripletable.Table.SortAndDedupByPrimitiveAndA) for a "magic hourglass": a
// square1, square2, target triple of squares summing to 3*c^2. See
// http://www.multimagie.com/Buell.pdf for the configuration's definition.
func DetectHourglass(primitiveStart int, a, b []uint64, c uint64, sink Sink) {
	squaredCenter := u128.Square(c)
	magicSum := squaredCenter.Add(squaredCenter).Add(squaredCenter)

	squares, primitiveOffset := squareColumn(primitiveStart, a, b)

	for i := primitiveOffset; i < len(squares); i++ {
		square1 := squares[i]
		remainder, ok := magicSum.Sub(square1)
		if !ok {
			continue
		}

		nonPrimitive := squares[:primitiveOffset]
		uptoIndex1 := partitionPointLess(nonPrimitive, remainder)
		for j := 0; j < uptoIndex1; j++ {
			square2 := nonPrimitive[j]
			target, ok := remainder.Sub(square2)
			if !ok {
				continue
			}
			if binarySearch(nonPrimitive[j+1:primitiveOffset], target) {
				sink.EmitHourglass(square1, square2, target, magicSum)
			}
		}

		seenPrimitive := squares[primitiveOffset:i]
		uptoIndex2 := partitionPointLess(seenPrimitive, remainder)
		for j := 0; j < uptoIndex2; j++ {
			square2 := seenPrimitive[j]
			target, ok := remainder.Sub(square2)
			if !ok {
				continue
			}
			if binarySearch(seenPrimitive[j+1:], target) {
				sink.EmitHourglass(square1, square2, target, magicSum)
			}
		}
	}
}
