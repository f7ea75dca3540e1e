// Package pythagorean turns a stream of Pythagorean primes (primes p with
// p = 1 mod 4) into the legs of the unique primitive triple whose hypotenuse
// is p, and assembles the first N of those into a global table. The
// underlying number theory -- Euler's criterion to find a quadratic
// non-residue, modular exponentiation to extract a square root of -1 mod p,
// then a Euclid-style descent (Cornacchia's algorithm) splitting p into two
// squares -- follows the classical construction of a Pythagorean triple from
// a prime's two-square decomposition.
package pythagorean

import (
	"fmt"
	"math/big"
	"math/bits"

	"github.com/fouriertransform/msq3/internal/msqerr"
	"github.com/fouriertransform/msq3/internal/tripletable"
)

// maxNonResidueSearch bounds the search for a quadratic non-residue mod p.
// Half of the residues mod an odd prime are non-residues, so the expected
// number of tries is 2; this cap only exists to turn a would-be infinite
// loop (on bad input) into a reported error.
const maxNonResidueSearch = 1 << 20

// PrimeSource produces an ascending stream of primes. Next returns ok=false
// once the source is exhausted. Implementations need not be safe for
// concurrent use; BuildTable, called once by the driver, consumes one
// PrimeSource for the global table, sequentially.
type PrimeSource interface {
	Next() (p uint64, ok bool)
}

// TrialDivisionSource is a minimal, unoptimized PrimeSource for tests and
// small ad hoc runs. Producing the actual search's prime stream efficiently
// (a wheel sieve, a segmented sieve, or similar) is explicitly out of scope;
// callers of cmd/msq3 that need millions of primes should supply their own
// PrimeSource.
type TrialDivisionSource struct {
	next uint64
}

// NewTrialDivisionSource returns a source starting its search at 2.
func NewTrialDivisionSource() *TrialDivisionSource {
	return &TrialDivisionSource{next: 2}
}

// Next returns the next prime in ascending order.
func (s *TrialDivisionSource) Next() (uint64, bool) {
	for n := s.next; ; n++ {
		if isPrime(n) {
			s.next = n + 1
			return n, true
		}
	}
}

func isPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := uint64(3); d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// modPow computes base^exp mod m for m > 1, via math/big's modular
// exponentiation. The modulus varies on every call (it is the Pythagorean
// prime currently being split), so this can't be served by a fixed-modulus
// field implementation.
func modPow(base, exp, m uint64) uint64 {
	b := new(big.Int).SetUint64(base)
	e := new(big.Int).SetUint64(exp)
	n := new(big.Int).SetUint64(m)
	return new(big.Int).Exp(b, e, n).Uint64()
}

// sumOfSquaresEquals reports whether x*x + y*y == target, computed with
// full 128-bit precision so it stays correct even when x or y is close to
// target itself (as happens in the first steps of the Euclidean descent
// below, before the partial remainders have shrunk).
func sumOfSquaresEquals(x, y, target uint64) bool {
	xHi, xLo := bits.Mul64(x, x)
	yHi, yLo := bits.Mul64(y, y)
	lo, carry := bits.Add64(xLo, yLo, 0)
	hi := xHi + yHi + carry
	return hi == 0 && lo == target
}

// modularSqrtOfNegativeOne finds r such that r*r = -1 mod p, for p = 1 mod 4.
// It works by locating a quadratic non-residue c via Euler's criterion
// (c^((p-1)/2) = -1 mod p) and then computing r = c^((p-1)/4) mod p, whose
// square is necessarily -1 mod p.
func modularSqrtOfNegativeOne(p uint64) (uint64, error) {
	k := (p - 1) / 4
	for candidate := uint64(2); candidate < p && candidate < maxNonResidueSearch; candidate++ {
		if modPow(candidate, 2*k, p) == p-1 {
			return modPow(candidate, k, p), nil
		}
	}
	return 0, fmt.Errorf("%w: no quadratic non-residue found below %d for prime %d", msqerr.ErrLogic, maxNonResidueSearch, p)
}

// cornacchiaDescent runs the Euclidean-style descent that splits p into two
// squares, given a square root root of -1 mod p. It repeatedly replaces
// (m, n) with (n, m mod n) -- exactly gcd(p, root) -- until the remainder
// pair's squares sum to p, at which point m and n are the two squares'
// roots (m^2 + n^2 = p).
func cornacchiaDescent(p, root uint64) (m, n uint64) {
	a, b := p, root
	for {
		remainder := a % b
		if sumOfSquaresEquals(remainder, b, p) {
			return b, remainder
		}
		a, b = b, remainder
	}
}

// PrimeToTriple returns the two legs (a, b) of the unique primitive
// Pythagorean triple whose hypotenuse is p: a^2 + b^2 = p^2. p must be a
// Pythagorean prime (p = 1 mod 4); any other input returns ErrLogic, since
// the caller is expected to have already filtered the prime stream.
func PrimeToTriple(p uint64) (a, b uint64, err error) {
	if p%4 != 1 {
		return 0, 0, fmt.Errorf("%w: %d is not congruent to 1 mod 4", msqerr.ErrLogic, p)
	}

	root, err := modularSqrtOfNegativeOne(p)
	if err != nil {
		return 0, 0, err
	}

	m, n := cornacchiaDescent(p, root)
	// p = m^2 + n^2, with m,n < sqrt(p); Euclid's formula turns any such
	// decomposition directly into the leg pair of a triple with hypotenuse p.
	return m*m - n*n, 2 * m * n, nil
}

// BuildTable consumes source until it has produced numTriples Pythagorean
// primes (primes congruent to 1 mod 4), skipping all other primes, and
// returns the resulting triple table with hypotenuse column c = p and an
// all-zero factor column (the global table carries no factor bitmap; one is
// only meaningful relative to a partial composite product).
func BuildTable(source PrimeSource, numTriples int) (*tripletable.Table, error) {
	table := &tripletable.Table{}
	for table.Len() < numTriples {
		p, ok := source.Next()
		if !ok {
			return nil, fmt.Errorf("%w: prime source exhausted after %d of %d triples", msqerr.ErrConfiguration, table.Len(), numTriples)
		}
		if p%4 != 1 {
			continue
		}
		a, b, err := PrimeToTriple(p)
		if err != nil {
			return nil, err
		}
		table.Push(a, b, p, 0)
	}
	return table, nil
}
