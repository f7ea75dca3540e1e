package pattern

import "github.com/fouriertransform/msq3/internal/u128"

// CheckPatterns234 scans a magic-triple powerset for patterns 2, 3, and 4,
// the configurations whose unknown cells form an L-shape or a pair of
// opposite corners. Pattern 5 is not implemented (see the package doc).
func CheckPatterns234(a, b []uint64, c uint64, sink Sink) {
	centerSquare := u128.Square(c)
	centerSum := centerSquare.Add(centerSquare)
	magicSum := centerSum.Add(centerSquare)

	aSquares := make([]u128.U128, len(a))
	bSquares := make([]u128.U128, len(b))
	for i := range a {
		aSquares[i] = u128.Square(a[i])
		bSquares[i] = u128.Square(b[i])
	}

	for i := range aSquares {
		aSquare1, bSquare1 := aSquares[i], bSquares[i]
		otherA := aSquares[i+1:]
		otherB := bSquares[i+1:]

		aRemainder, okA := magicSum.Sub(aSquare1)
		bRemainder, okB := magicSum.Sub(bSquare1)
		bMinimum, okMin := aSquare1.Sub(centerSquare)
		if !okA || !okB {
			continue
		}

		aUpto := partitionPointLess(otherA, aRemainder)
		bUpto := partitionPointAtLeast(otherB, bMinimum, okMin)

		for j := 0; j < aUpto && j < len(otherB); j++ {
			aSquare2, bSquare2 := otherA[j], otherB[j]
			aaCandidate, ok := aRemainder.Sub(aSquare2)
			if ok && aaCandidate.IsSquare() {
				checkPattern2(aaCandidate, aSquare1, bSquare1, aSquare2, bSquare2, centerSquare, sink)
				checkPattern34(aaCandidate, aSquare1, aSquare2, bSquare1, bSquare2, centerSquare, magicSum, centerSum, sink)
			}
		}

		for j := range otherA {
			aSquare2, bSquare2 := otherA[j], otherB[j]

			if abCandidate, ok := aRemainder.Sub(bSquare2); ok && abCandidate.IsSquare() {
				checkPattern34(abCandidate, aSquare1, bSquare2, bSquare1, aSquare2, centerSquare, magicSum, centerSum, sink)
			}
			if baCandidate, ok := bRemainder.Sub(aSquare2); ok && baCandidate.IsSquare() {
				checkPattern34(baCandidate, bSquare1, aSquare2, aSquare1, bSquare2, centerSquare, magicSum, centerSum, sink)
			}
		}

		for j := 0; j < bUpto && j < len(otherA); j++ {
			aSquare2, bSquare2 := otherA[j], otherB[j]
			bbCandidate, ok := bRemainder.Sub(bSquare2)
			if ok && bbCandidate.IsSquare() {
				checkPattern2(bbCandidate, aSquare1, bSquare1, aSquare2, bSquare2, centerSquare, sink)
				checkPattern34(bbCandidate, bSquare1, bSquare2, aSquare1, aSquare2, centerSquare, magicSum, centerSum, sink)
			}
		}
	}
}

// partitionPointAtLeast returns the count of leading elements of squares
// that are >= minimum. squares need not be sorted for this linear variant;
// the original relies on ascending order for a true partition-point
// binary search, but a single linear pass is both correct and simple here
// since this count only bounds an already-linear scan.
func partitionPointAtLeast(squares []u128.U128, minimum u128.U128, minimumOK bool) int {
	if !minimumOK {
		return len(squares)
	}
	n := 0
	for _, s := range squares {
		if s.Less(minimum) {
			break
		}
		n++
	}
	return n
}

func checkPattern2(topMiddle, aSquare1, bSquare1, aSquare2, bSquare2, centerSquare u128.U128, sink Sink) {
	if middleLeft, ok := aSquare1.Sub(bSquare1); ok && middleLeft.IsSquare() {
		sink.EmitGrid(grid(aSquare1, topMiddle, aSquare2, middleLeft, centerSquare, u128.U128{}, bSquare1, u128.U128{}, bSquare2))
	}
	if middleLeft, ok := aSquare1.Sub(bSquare2); ok && middleLeft.IsSquare() {
		sink.EmitGrid(grid(aSquare1, topMiddle, aSquare2, middleLeft, centerSquare, u128.U128{}, bSquare1, u128.U128{}, bSquare2))
	}
	if middleLeft, ok := aSquare2.Sub(bSquare1); ok && middleLeft.IsSquare() {
		sink.EmitGrid(grid(aSquare1, topMiddle, aSquare2, middleLeft, centerSquare, u128.U128{}, bSquare1, u128.U128{}, bSquare2))
	}
	if middleLeft, ok := aSquare2.Sub(bSquare2); ok && middleLeft.IsSquare() {
		sink.EmitGrid(grid(aSquare1, topMiddle, aSquare2, middleLeft, centerSquare, u128.U128{}, bSquare1, u128.U128{}, bSquare2))
	}
}

func checkPattern34(topLeft, leftSquare1, leftSquare2, rightSquare1, rightSquare2, centerSquare, magicSum, centerSum u128.U128, sink Sink) {
	tryOne := func(topLeft, rightSquare1, rightSquare2, leftSquare1, leftSquare2 u128.U128) {
		topMiddle, ok := u128Sub3(magicSum, topLeft, rightSquare1)
		if ok && topMiddle.IsSquare() {
			sink.EmitGrid(grid(topLeft, topMiddle, rightSquare1, leftSquare2, centerSquare, rightSquare2, leftSquare1, u128.U128{}, u128.U128{}))
			return
		}
		if ok {
			if bottomMiddle, ok2 := centerSum.Sub(topMiddle); ok2 && bottomMiddle.IsSquare() {
				sink.EmitGrid(grid(topLeft, u128.U128{}, rightSquare1, leftSquare2, centerSquare, rightSquare2, leftSquare1, bottomMiddle, u128.U128{}))
			}
		}
	}

	tryOne(topLeft, rightSquare1, rightSquare2, leftSquare1, leftSquare2)
	tryOne(topLeft, rightSquare2, rightSquare1, leftSquare2, leftSquare1)
}

func u128Sub3(total, a, b u128.U128) (u128.U128, bool) {
	r, ok := total.Sub(a)
	if !ok {
		return u128.U128{}, false
	}
	return r.Sub(b)
}
