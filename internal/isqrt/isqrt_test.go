package isqrt_test

import (
	"testing"

	"github.com/fouriertransform/msq3/internal/isqrt"
)

func TestUint64(t *testing.T) {
	cases := map[uint64]uint64{
		0:          0,
		1:          1,
		2:          1,
		3:          1,
		4:          2,
		15:         3,
		16:         4,
		17:         4,
		1 << 40:    1 << 20,
		999999999:  31622,
		1000000000: 31622,
	}
	for n, want := range cases {
		if got := isqrt.Uint64(n); got != want {
			t.Errorf("Uint64(%d) = %d, want %d", n, got, want)
		}
	}
}
