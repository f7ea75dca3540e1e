// Package driver composes the composite enumerator with the magic-triple
// transform and pattern checkers across an indefinitely growing search
// window. It owns the configuration a CLI front end and a prime source feed
// in, and the progress/trace logging that front end wants surfaced.
package driver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fouriertransform/msq3/internal/composite"
	"github.com/fouriertransform/msq3/internal/msqerr"
	"github.com/fouriertransform/msq3/internal/pattern"
	"github.com/fouriertransform/msq3/internal/pythagorean"
)

// Config is the full set of knobs a CLI front end exposes to control one
// search run.
type Config struct {
	// NumTriples is the size of the global Pythagorean-prime-triple table.
	NumTriples int
	// SearchInterval is the initial search window's width; the window
	// doubles every time the enumerator exhausts it.
	SearchInterval uint64
	// SearchMode selects which pattern checkers run over each composite.
	SearchMode pattern.Mode
	// HideKnownSolution skips centers matching the published 425-family
	// solution.
	HideKnownSolution bool
	// PrintFactors logs each non-final prime prefix as it is visited, a
	// debug trace of the composite's partial factorization.
	PrintFactors bool
	// FinalBatchSize is the number of final-term candidates handed to one
	// worker goroutine at a time; zero selects composite.Enumerator's
	// default.
	FinalBatchSize int
	// KMin and KMax bound the number of Pythagorean-prime factors a
	// composite may have, inclusive. KMin must be at least 2; KMax must be
	// at most floor(log5(2^64-1)) = 27, the largest factor count (counted
	// with multiplicity) a uint64 product of primes each at least 5 can reach.
	KMin, KMax int
}

// maxFactors is floor(log5(2^64-1)), the largest number of prime factors
// (each at least 5, counted with multiplicity) a uint64 product can have.
const maxFactors = 27

// Validate checks Config against the bounds the search requires,
// independent of however the CLI layer parsed the flags.
func (c Config) Validate() error {
	if c.NumTriples <= 0 {
		return fmt.Errorf("%w: num-triples must be positive, got %d", msqerr.ErrConfiguration, c.NumTriples)
	}
	if c.SearchInterval == 0 {
		return fmt.Errorf("%w: search-interval must be positive, got %d", msqerr.ErrConfiguration, c.SearchInterval)
	}
	if c.KMin < 2 {
		return fmt.Errorf("%w: k-min must be at least 2, got %d", msqerr.ErrConfiguration, c.KMin)
	}
	if c.KMax < c.KMin {
		return fmt.Errorf("%w: k-max (%d) must be >= k-min (%d)", msqerr.ErrConfiguration, c.KMax, c.KMin)
	}
	if c.KMax > maxFactors {
		return fmt.Errorf("%w: k-max must be at most %d (the largest factor count a uint64 product can hold), got %d", msqerr.ErrConfiguration, maxFactors, c.KMax)
	}
	return nil
}

// Search owns the global prime-triple table and the enumerator built over
// it, driving the window-doubling composite walk until ctx is cancelled.
type Search struct {
	cfg    Config
	logger *slog.Logger
	sink   pattern.Sink
}

// New validates cfg and returns a Search ready to Run. logger may be nil to
// disable progress logging; sink receives every pattern/hourglass hit. The
// PrimeSource that supplies the actual Pythagorean primes is passed to Run,
// not New, since building the global table is itself part of the run.
func New(cfg Config, sink pattern.Sink, logger *slog.Logger) (*Search, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		return nil, fmt.Errorf("%w: sink must not be nil", msqerr.ErrConfiguration)
	}

	return &Search{cfg: cfg, logger: logger, sink: sink}, nil
}

// Run builds the global Pythagorean-triple table and then walks composite
// numbers forever (or until ctx is cancelled), reporting every hit to the
// configured sink. It returns ctx.Err() on cancellation; any other error is
// a configuration or logic failure from the underlying components.
func (s *Search) Run(ctx context.Context, source pythagorean.PrimeSource) error {
	if s.logger != nil {
		s.logger.Info("building global prime-triple table", "num_triples", s.cfg.NumTriples)
	}

	triples, err := pythagorean.BuildTable(source, s.cfg.NumTriples)
	if err != nil {
		return err
	}

	enumCfg := composite.Config{
		MinFactors:     s.cfg.KMin,
		MaxFactors:     s.cfg.KMax,
		SearchStart:    0,
		SearchEnd:      s.cfg.SearchInterval,
		FinalBatchSize: s.cfg.FinalBatchSize,
	}

	var enumLogger *slog.Logger
	if s.cfg.PrintFactors {
		enumLogger = s.logger
	}

	enumerator, err := composite.NewEnumerator(enumCfg, triples, enumLogger)
	if err != nil {
		return err
	}

	mode := s.cfg.SearchMode
	hideKnown := s.cfg.HideKnownSolution
	sink := s.sink

	callback := func(primitiveStart int, a, b []uint64, finalProduct uint64) {
		pattern.Detect(mode, primitiveStart, a, b, finalProduct, hideKnown, sink)
	}

	if s.logger != nil {
		s.logger.Info("starting composite search",
			"search_interval", s.cfg.SearchInterval,
			"k_min", s.cfg.KMin,
			"k_max", s.cfg.KMax,
			"mode", s.cfg.SearchMode,
		)
	}

	return enumerator.ForEach(ctx, callback)
}
