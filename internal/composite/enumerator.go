// Package composite walks every composite number with a configurable
// number of Pythagorean-prime factors inside a doubling search window,
// lexicographically, and for each one hands its magic-triple powerset to a
// caller-supplied callback. The walk itself is a "non-final term" odometer
// plus a final term scanned in parallel batches; the bounded worker pool
// over final-term batches runs on golang.org/x/sync/errgroup.
package composite

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fouriertransform/msq3/internal/isqrt"
	"github.com/fouriertransform/msq3/internal/msqerr"
	"github.com/fouriertransform/msq3/internal/tripletable"
)

// Callback receives one composite number's magic-triple powerset:
// a[primitiveStart:] and b[primitiveStart:] are the primitive
// representations, a[:primitiveStart] and b[:primitiveStart] the
// non-primitive ones, and finalProduct is the composite number itself. It
// may be invoked concurrently from multiple goroutines and must not retain
// the slices past the call -- they are reused scratch buffers.
type Callback func(primitiveStart int, a, b []uint64, finalProduct uint64)

// quad is a single Pythagorean-triple row alongside its factor bitmap,
// passed around by value between the non-final-term odometer steps.
type quad struct {
	A, B, C uint64
	F       uint32
}

type nonFinalTerm struct {
	current           quad
	cumulativeProduct uint64
	powerset          tripletable.Table
	nextIndex         int
	endIndex          int
}

func newNonFinalTerm(numTriples int) nonFinalTerm {
	return nonFinalTerm{current: quad{0, 0, 1, 0}, cumulativeProduct: 1, endIndex: numTriples}
}

func (t *nonFinalTerm) reset(numTriples int) {
	t.current = quad{0, 0, 1, 0}
	t.cumulativeProduct = 1
	t.powerset.Clear()
	t.nextIndex = 0
	t.endIndex = numTriples
}

// Config configures an Enumerator.
type Config struct {
	// MinFactors and MaxFactors bound the number of prime factors a
	// composite number may have, inclusive. MinFactors must be at least 2.
	MinFactors, MaxFactors int
	// SearchStart and SearchEnd bound the initial composite-number search
	// window; the window doubles every time ForEach exhausts it.
	SearchStart, SearchEnd uint64
	// FinalBatchSize is the number of final-term candidates handed to a
	// single worker goroutine at a time. Zero selects a default.
	FinalBatchSize int
}

// Enumerator walks composite numbers with MinFactors..MaxFactors prime
// factors inside a doubling search window, maintaining a running
// Pythagorean-representation powerset for every factor prefix.
type Enumerator struct {
	minFactors, maxFactors int
	nonFinalTerms          []nonFinalTerm
	finalTermStart         int
	finalTermEnd           int
	searchStart, searchEnd uint64
	triples                *tripletable.Table
	scratch                tripletable.Scratch
	finalBatchSize         int
	logger                 *slog.Logger
}

const defaultFinalBatchSize = 4096

// NewEnumerator builds an Enumerator over triples, a global Pythagorean
// triple table already sorted by ascending hypotenuse (as BuildTable
// produces it). logger may be nil to disable progress logging.
func NewEnumerator(cfg Config, triples *tripletable.Table, logger *slog.Logger) (*Enumerator, error) {
	if cfg.MinFactors < 2 {
		return nil, fmt.Errorf("%w: MinFactors must be at least 2, got %d", msqerr.ErrConfiguration, cfg.MinFactors)
	}
	if cfg.MaxFactors < cfg.MinFactors {
		return nil, fmt.Errorf("%w: MaxFactors (%d) must be >= MinFactors (%d)", msqerr.ErrConfiguration, cfg.MaxFactors, cfg.MinFactors)
	}
	if cfg.SearchEnd <= cfg.SearchStart {
		return nil, fmt.Errorf("%w: SearchEnd (%d) must be > SearchStart (%d)", msqerr.ErrConfiguration, cfg.SearchEnd, cfg.SearchStart)
	}

	batchSize := cfg.FinalBatchSize
	if batchSize <= 0 {
		batchSize = defaultFinalBatchSize
	}

	e := &Enumerator{
		minFactors:     cfg.MinFactors,
		maxFactors:     cfg.MaxFactors,
		searchStart:    cfg.SearchStart,
		searchEnd:      cfg.SearchEnd,
		triples:        triples,
		finalBatchSize: batchSize,
		logger:         logger,
	}

	for i := 0; i < cfg.MaxFactors-1; i++ {
		e.nonFinalTerms = append(e.nonFinalTerms, newNonFinalTerm(triples.Len()))
	}
	e.nextNonFinalTerm(cfg.MaxFactors - cfg.MinFactors)

	return e, nil
}

// ForEach walks the search window, doubling it forever, until ctx is
// cancelled or callback/the underlying walk reports an error.
func (e *Enumerator) ForEach(ctx context.Context, callback Callback) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := e.forEachInSearchRange(ctx, callback); err != nil {
			return err
		}

		e.searchStart = e.searchEnd
		e.searchEnd *= 2

		for i := range e.nonFinalTerms {
			e.nonFinalTerms[i].reset(e.triples.Len())
		}
		e.nextNonFinalTerm(e.maxFactors - e.minFactors)

		e.finalTermStart = 0
		e.finalTermEnd = 0
	}
}

func (e *Enumerator) nonFinalFactors() []uint64 {
	out := make([]uint64, len(e.nonFinalTerms))
	for i, t := range e.nonFinalTerms {
		out[i] = t.current.C
	}
	return out
}

func (e *Enumerator) finalFactors() []uint64 {
	out := make([]uint64, e.finalTermEnd-e.finalTermStart)
	copy(out, e.triples.C[e.finalTermStart:e.finalTermEnd])
	return out
}

func (e *Enumerator) forEachInSearchRange(ctx context.Context, callback Callback) error {
	for {
		if e.logger != nil {
			e.logger.Info("searching composite numbers",
				"non_final_factors", e.nonFinalFactors(),
				"search_start", e.searchStart,
				"search_end", e.searchEnd,
			)
		}

		if err := e.dispatchFinalBatch(ctx, callback); err != nil {
			return err
		}
		if !e.nextAvailableTerm() {
			return nil
		}
	}
}

func (e *Enumerator) nextAvailableTerm() bool {
	for i := len(e.nonFinalTerms) - 1; i >= 0; i-- {
		if e.nextNonFinalTerm(i) {
			return true
		}
	}
	return false
}

// nextNonFinalTerm advances the non-final term at termIndex to its next
// candidate prime triple, cascading that change through every later
// non-final term (each restarting its own search from the new prefix) and
// recomputing the final term's index window. It returns false if termIndex
// has no remaining candidates in the current search window.
func (e *Enumerator) nextNonFinalTerm(termIndex int) bool {
	numTerms := len(e.nonFinalTerms) + 1
	maxValue := e.searchEnd - 1

	var previousProduct, previousC uint64 = 1, 1
	var previousF uint32
	var previousPowerset *tripletable.Table
	if termIndex > 0 {
		prev := &e.nonFinalTerms[termIndex-1]
		previousProduct, previousC, previousF = prev.cumulativeProduct, prev.current.C, prev.current.F
		previousPowerset = &prev.powerset
	}

	current := &e.nonFinalTerms[termIndex]
	if current.nextIndex >= current.endIndex {
		return false
	}

	c := e.triples.C[current.nextIndex]
	product := previousProduct * c

	nextMax := maxValueForTerm(termIndex+1, numTerms, product, maxValue)
	if nextMax < c {
		return false
	}

	a := e.triples.A[current.nextIndex]
	b := e.triples.B[current.nextIndex]
	f := previousF
	if c != previousC {
		f = previousF + 1
	}

	current.current = quad{a, b, c, f}
	current.cumulativeProduct = product
	updateTriplesPowerset(&current.powerset, current.current, previousPowerset)
	current.powerset.SortAndDedupByCAndA(&e.scratch)
	current.nextIndex++
	nextIndex := current.nextIndex

	for i := termIndex + 1; i < len(e.nonFinalTerms); i++ {
		previousPowerset := &e.nonFinalTerms[i-1].powerset
		nextTerm := &e.nonFinalTerms[i]

		product *= c

		nextTerm.current = quad{a, b, c, f}
		nextTerm.cumulativeProduct = product
		updateTriplesPowerset(&nextTerm.powerset, nextTerm.current, previousPowerset)
		nextTerm.powerset.SortAndDedupByCAndA(&e.scratch)
		nextTerm.nextIndex = nextIndex
		nextTerm.endIndex = partitionPointLE(e.triples.C, nextMax)

		nextMax = maxValueForTerm(i+1, numTerms, product, maxValue)
	}

	nextMin := c
	if ceilDiv(e.searchStart, product) > nextMin {
		nextMin = ceilDiv(e.searchStart, product)
	}

	e.finalTermEnd = partitionPointLE(e.triples.C, nextMax)
	e.finalTermStart = partitionPointLT(e.triples.C[:e.finalTermEnd], nextMin)

	return true
}

func partitionPointLE(c []uint64, max uint64) int {
	return sort.Search(len(c), func(i int) bool { return c[i] > max })
}

func partitionPointLT(c []uint64, min uint64) int {
	return sort.Search(len(c), func(i int) bool { return c[i] >= min })
}

func ceilDiv(a, b uint64) uint64 {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

func maxValueForTerm(termIndex, numTerms int, previousProduct, maxValue uint64) uint64 {
	remainingMultiple := maxValue / previousProduct
	remainingTerms := numTerms - termIndex

	switch remainingTerms {
	case 1:
		return remainingMultiple
	case 2:
		return isqrt.Uint64(remainingMultiple)
	default:
		return uint64(math.Floor(math.Pow(float64(remainingMultiple), 1/float64(remainingTerms))))
	}
}

func updateTriplesPowerset(current *tripletable.Table, currentTriple quad, previous *tripletable.Table) {
	current.Clear()
	current.Push(currentTriple.A, currentTriple.B, currentTriple.C, currentTriple.F)

	if previous != nil {
		current.Extend(previous)
		previous.Product(currentTriple.A, currentTriple.B, currentTriple.C, currentTriple.F, current)
	}
}

// workerState is the goroutine-local scratch a final-term batch needs: a
// powerset table and its sort/dedup scratch buffer, pooled so a long-running
// search does not allocate one per batch.
type workerState struct {
	powerset tripletable.Table
	scratch  tripletable.Scratch
}

// dispatchFinalBatch scans [finalTermStart, finalTermEnd) in batches of
// finalBatchSize, each handled by one goroutine out of a pool bounded to
// GOMAXPROCS, with per-goroutine scratch state pooled across batches.
func (e *Enumerator) dispatchFinalBatch(ctx context.Context, callback Callback) error {
	start, end := e.finalTermStart, e.finalTermEnd
	if start >= end {
		return nil
	}

	prev := &e.nonFinalTerms[len(e.nonFinalTerms)-1]
	previousProduct, previousC, previousF := prev.cumulativeProduct, prev.current.C, prev.current.F
	previousPowerset := &prev.powerset

	pool := sync.Pool{New: func() any { return &workerState{} }}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	batch := e.finalBatchSize
	for i := start; i < end; i += batch {
		lo, hi := i, i+batch
		if hi > end {
			hi = end
		}

		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			st := pool.Get().(*workerState)
			defer pool.Put(st)

			for idx := lo; idx < hi; idx++ {
				a, b, c := e.triples.A[idx], e.triples.B[idx], e.triples.C[idx]
				f := previousF
				if c != previousC {
					f = previousF + 1
				}
				finalProduct := previousProduct * c

				updateTriplesPowerset(&st.powerset, quad{a, b, c, f}, previousPowerset)
				st.powerset.RemoveTrivial(&st.scratch)
				st.powerset.IntoMagicTriples(finalProduct)
				st.powerset.SortAndDedupByPrimitiveAndA(&st.scratch)

				callback(st.powerset.PrimitiveStart(), st.powerset.A, st.powerset.B, finalProduct)
			}
			return nil
		})
	}

	return g.Wait()
}
