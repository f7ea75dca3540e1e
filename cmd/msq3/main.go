// Command msq3 searches for 3x3 magic squares of squares and magic
// hourglass configurations (see the internal/driver package doc). This file
// supplies stdlib flag parsing and feeds the search pythagorean's
// trial-division PrimeSource, adequate for small ad hoc runs, structured as
// a main1() error-returning helper plus flag.Usage.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fouriertransform/msq3/internal/driver"
	"github.com/fouriertransform/msq3/internal/msqerr"
	"github.com/fouriertransform/msq3/internal/pattern"
	"github.com/fouriertransform/msq3/internal/pythagorean"
)

func usage() {
	fmt.Fprintf(os.Stderr, `msq3 searches for 3x3 magic squares of squares and magic hourglasses.

Usage:

	msq3 [flags]

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	if err := main1(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if msqerr.IsConfiguration(err) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func main1() error {
	numTriples := flag.Int("num-triples", 100_000, "size of the global Pythagorean-prime-triple table")
	searchInterval := flag.Uint64("search-interval", 10_000, "initial composite search window width; doubles every time it is exhausted")
	searchMode := flag.String("search-mode", "patterns", `which checkers to run: "hourglass" or "patterns"`)
	hideKnownSolution := flag.Bool("hide-known-solution", false, "skip centers matching the published 425-family solution")
	printFactors := flag.Bool("print-factors", false, "log each non-final prime factor prefix as it is visited")
	finalBatchSize := flag.Int("final-batch-size", 0, "final-term candidates handed to one worker goroutine at a time (0 selects a default)")
	kMin := flag.Int("k-min", 2, "minimum number of Pythagorean-prime factors a composite may have")
	kMax := flag.Int("k-max", 5, "maximum number of Pythagorean-prime factors a composite may have")
	flag.Usage = usage
	flag.Parse()

	mode, err := parseSearchMode(*searchMode)
	if err != nil {
		return err
	}

	cfg := driver.Config{
		NumTriples:        *numTriples,
		SearchInterval:    *searchInterval,
		SearchMode:        mode,
		HideKnownSolution: *hideKnownSolution,
		PrintFactors:      *printFactors,
		FinalBatchSize:    *finalBatchSize,
		KMin:              *kMin,
		KMax:              *kMax,
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	sink := pattern.NewTextSink(os.Stdout)

	search, err := driver.New(cfg, sink, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = search.Run(ctx, pythagorean.NewTrialDivisionSource())
	if ctx.Err() != nil {
		// Interrupted by the user; not a failure worth a nonzero exit.
		return nil
	}
	return err
}

func parseSearchMode(s string) (pattern.Mode, error) {
	switch s {
	case "hourglass":
		return pattern.Hourglass, nil
	case "patterns":
		return pattern.Patterns123456, nil
	default:
		return 0, fmt.Errorf("%w: unknown search-mode %q, want \"hourglass\" or \"patterns\"", msqerr.ErrConfiguration, s)
	}
}
