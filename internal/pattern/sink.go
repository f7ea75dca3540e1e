// Package pattern implements the magic-hourglass and six magic-square
// pattern checkers that run over a composite number's magic-triple
// powerset, plus the known-solution filter and text output. Patterns 1 and 6
// share a checker, as do patterns 2, 3, and 4; pattern 5 is not implemented,
// so its absence only narrows recall, not soundness.
package pattern

import (
	"fmt"
	"io"
	"sync"

	"github.com/fouriertransform/msq3/internal/u128"
)

// Sink receives every grid the pattern checkers find. Hourglass hits and
// full magic-square-pattern hits use separate methods because each has its
// own text form; implementations must be safe to call from multiple
// goroutines concurrently, since the composite enumerator dispatches
// final-term batches across a worker pool.
type Sink interface {
	EmitHourglass(square1, square2, square3, magicSum u128.U128)
	EmitGrid(grid [3][3]u128.U128)
}

// TextSink writes plain-text lines and 3x3 blocks to w, serializing writes
// with a mutex so concurrent hits from different workers don't interleave
// mid-line; it makes no promise about the relative order hits appear in.
type TextSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTextSink wraps w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// EmitHourglass writes "EUREKA! s1 + s2 + s3 = magic_sum".
func (s *TextSink) EmitHourglass(square1, square2, square3, magicSum u128.U128) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "EUREKA! %s + %s + %s = %s\n", square1, square2, square3, magicSum)
}

// EmitGrid writes the nine cell values as a bordered 3x3 block.
func (s *TextSink) EmitGrid(grid [3][3]u128.U128) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const rule = "----------------------------------------------------------------------------------------------------"
	fmt.Fprintln(s.w, rule)
	for i, row := range grid {
		fmt.Fprintf(s.w, "| %30s | %30s | %30s |\n", row[0], row[1], row[2])
		if i < 2 {
			fmt.Fprintln(s.w, "|--------------------------------------------------------------------------------------------------|")
		}
	}
	fmt.Fprintln(s.w, rule)
	fmt.Fprintln(s.w)
}
