// Package u128 is a minimal 128-bit unsigned integer, just wide enough for
// the squares of the 64-bit magic-triple legs the pattern detectors compare:
// two uint64 legs near a 10^10-scale center square to roughly 10^20, well
// past uint64's range. math/bits supplies the carry-propagating primitives;
// math/big is used only for the rare operations (division by a constant,
// perfect-square testing, formatting) where hand-rolled 128-bit code would
// add risk for no measurable benefit on a cold path.
package u128

import (
	"math/big"
	"math/bits"
)

// U128 is an unsigned 128-bit integer, Hi*2^64 + Lo.
type U128 struct {
	Hi, Lo uint64
}

// FromUint64 widens x to 128 bits.
func FromUint64(x uint64) U128 { return U128{Lo: x} }

// Square returns x*x computed with full 128-bit precision.
func Square(x uint64) U128 {
	hi, lo := bits.Mul64(x, x)
	return U128{Hi: hi, Lo: lo}
}

// Add returns a+b.
func (a U128) Add(b U128) U128 {
	lo, carry := bits.Add64(a.Lo, b.Lo, 0)
	hi := a.Hi + b.Hi + carry
	return U128{Hi: hi, Lo: lo}
}

// Sub returns a-b and ok=true if a >= b. If a < b, it returns the zero
// value and ok=false rather than wrapping, so callers never need to treat
// an underflowed 128-bit value as a candidate square.
func (a U128) Sub(b U128) (U128, bool) {
	if a.Less(b) {
		return U128{}, false
	}
	lo, borrow := bits.Sub64(a.Lo, b.Lo, 0)
	hi := a.Hi - b.Hi - borrow
	return U128{Hi: hi, Lo: lo}, true
}

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func (a U128) Cmp(b U128) int {
	switch {
	case a.Hi != b.Hi:
		if a.Hi < b.Hi {
			return -1
		}
		return 1
	case a.Lo != b.Lo:
		if a.Lo < b.Lo {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Less reports whether a < b.
func (a U128) Less(b U128) bool { return a.Cmp(b) < 0 }

// Equal reports whether a == b.
func (a U128) Equal(b U128) bool { return a.Hi == b.Hi && a.Lo == b.Lo }

// DivModSmall divides a by the nonzero uint64 d, returning the quotient (as
// U128) and remainder. It relies on the remainder of a.Hi/d being strictly
// less than d, which math/bits.Div64 requires to avoid overflow, and which
// always holds here since a.Hi % d < d by definition.
func (a U128) DivModSmall(d uint64) (quotient U128, remainder uint64) {
	qHi, rHi := a.Hi/d, a.Hi%d
	qLo, rLo := bits.Div64(rHi, a.Lo, d)
	return U128{Hi: qHi, Lo: qLo}, rLo
}

// IsSquare reports whether a is a perfect square.
func (a U128) IsSquare() bool {
	n := a.bigInt()
	root := new(big.Int).Sqrt(n)
	return new(big.Int).Mul(root, root).Cmp(n) == 0
}

func (a U128) bigInt() *big.Int {
	n := new(big.Int).SetUint64(a.Hi)
	n.Lsh(n, 64)
	n.Or(n, new(big.Int).SetUint64(a.Lo))
	return n
}

// String formats a in decimal.
func (a U128) String() string { return a.bigInt().String() }
