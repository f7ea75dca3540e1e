package u128_test

import (
	"math/big"
	"testing"

	"github.com/fouriertransform/msq3/internal/u128"
)

func TestSquareOverflowsUint64(t *testing.T) {
	x := uint64(10_000_000_000) // x*x > max uint64
	got := u128.Square(x)
	want := new(big.Int).Mul(big.NewInt(int64(x)), big.NewInt(int64(x)))
	if got.String() != want.String() {
		t.Errorf("Square(%d) = %s, want %s", x, got, want)
	}
}

func TestAddAndSub(t *testing.T) {
	a := u128.Square(5_000_000_000)
	b := u128.Square(3_000_000_000)

	sum := a.Add(b)
	back, ok := sum.Sub(b)
	if !ok || !back.Equal(a) {
		t.Fatalf("Add/Sub round trip failed: sum=%s back=%s a=%s", sum, back, a)
	}

	if _, ok := b.Sub(a); ok {
		t.Fatal("Sub: expected ok=false when subtrahend is larger")
	}
}

func TestCmpAndLess(t *testing.T) {
	small := u128.FromUint64(3)
	big := u128.Square(1 << 40)

	if !small.Less(big) {
		t.Fatal("expected small < big")
	}
	if big.Less(small) {
		t.Fatal("expected !(big < small)")
	}
	if small.Cmp(small) != 0 {
		t.Fatal("expected Cmp(x,x) == 0")
	}
}

func TestDivModSmall(t *testing.T) {
	n := u128.Square(425 * 1000)
	q, r := n.DivModSmall(425 * 425)
	if r != 0 {
		t.Fatalf("DivModSmall remainder = %d, want 0", r)
	}
	if !q.Equal(u128.FromUint64(1000 * 1000)) {
		t.Fatalf("DivModSmall quotient = %s, want %d", q, 1000*1000)
	}
}

func TestIsSquare(t *testing.T) {
	if !u128.Square(123456789).IsSquare() {
		t.Error("Square(123456789) should be a perfect square")
	}
	notSquare := u128.Square(123456789).Add(u128.FromUint64(1))
	if notSquare.IsSquare() {
		t.Error("Square(123456789)+1 should not be a perfect square")
	}
}
