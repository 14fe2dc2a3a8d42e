package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/HannesFeil/multiway-powersort-experiments/config"
	"github.com/HannesFeil/multiway-powersort-experiments/internal/invoke"
	"github.com/HannesFeil/multiway-powersort-experiments/internal/record"
	"github.com/HannesFeil/multiway-powersort-experiments/internal/runplan"
	"github.com/HannesFeil/multiway-powersort-experiments/internal/sweep"
)

// buildMatrix translates the flat config into the experiment matrix.
func buildMatrix(cfg *config.PowersortConfig) (sweep.Matrix, error) {
	m := sweep.Matrix{
		Algorithms: cfg.Algorithms,
		Reps:       cfg.Reps,
		Seed:       cfg.Seed,
	}
	for _, s := range cfg.Sizes {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return m, fmt.Errorf("bad size %q", s)
		}
		m.Sizes = append(m.Sizes, n)
	}
	for _, token := range cfg.Dists {
		mode, err := runplan.ParseMode(token)
		if err != nil {
			return m, err
		}
		m.Modes = append(m.Modes, mode)
	}
	return m, nil
}

// runSweep executes one experiment family end to end. An interrupt
// stops the sweep at the next cell boundary; the result logs are
// flushed and closed on every exit path.
func runSweep(ctx context.Context) error {
	cfg := config.Config

	matrix, err := buildMatrix(cfg)
	if err != nil {
		return err
	}

	rec, err := record.New(cfg.OutputDir)
	if err != nil {
		return err
	}

	adapter := &invoke.Adapter{
		Bin:       cfg.SortBin,
		Warmup:    cfg.Warmup,
		KeyDomain: cfg.KeyDomain,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := sweep.Run(ctx, matrix, adapter, rec)
	return errors.Join(runErr, rec.Close())
}
