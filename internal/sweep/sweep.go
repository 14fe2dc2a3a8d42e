// Package sweep enumerates the experiment matrix and drives the
// adapter cell by cell. Execution is strictly sequential: concurrent
// sort benchmarks on shared hardware contend for cache and scheduler
// and corrupt the timings, so one process runs at a time and nothing
// else happens in between.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/HannesFeil/multiway-powersort-experiments/internal/catalog"
	derrors "github.com/HannesFeil/multiway-powersort-experiments/internal/errors"
	"github.com/HannesFeil/multiway-powersort-experiments/internal/invoke"
	"github.com/HannesFeil/multiway-powersort-experiments/internal/logging"
	"github.com/HannesFeil/multiway-powersort-experiments/internal/record"
	"github.com/HannesFeil/multiway-powersort-experiments/internal/runplan"
)

// Matrix describes one experiment family: the cross-product of
// algorithms (all their variants), distribution modes and sizes,
// sharing a single seed and repetition count.
type Matrix struct {
	// Algorithms to sweep; empty means every catalog algorithm.
	Algorithms []string
	Sizes      []int
	Modes      []runplan.Mode
	Reps       int
	Seed       uint64
}

// Trials expands the matrix into its trials in the canonical
// enumeration order: algorithm in catalog order, then variant index,
// then distribution mode in configured order, then size ascending.
// The order is a stable total order over cells, so append order in
// the result logs is reproducible and resumption logic can diff
// logged cells against planned ones.
func (m Matrix) Trials() ([]invoke.Trial, error) {
	selected := make(map[string]bool, len(m.Algorithms))
	for _, name := range m.Algorithms {
		if _, ok := catalog.Variants(name); !ok {
			return nil, fmt.Errorf("unknown algorithm %q", name)
		}
		selected[name] = true
	}
	if m.Reps < 1 {
		return nil, fmt.Errorf("repetitions %d < 1", m.Reps)
	}

	sizes := append([]int(nil), m.Sizes...)
	sort.Ints(sizes)

	var trials []invoke.Trial
	for _, name := range catalog.Names() {
		if len(selected) > 0 && !selected[name] {
			continue
		}
		variants, _ := catalog.Variants(name)
		for v := range variants {
			for _, mode := range m.Modes {
				for _, n := range sizes {
					trials = append(trials, invoke.Trial{
						Algorithm: name,
						Variant:   v,
						Size:      n,
						Mode:      mode,
						Reps:      m.Reps,
						Seed:      m.Seed,
					})
				}
			}
		}
	}
	return trials, nil
}

// Run drives the whole matrix through the adapter, appending one
// record per completed or failed cell. Per-cell process failures are
// recorded and the sweep continues; planner/generator contract
// violations and result-log write failures abort the family, since
// no further results could be trusted.
//
// Cancellation takes effect only between cells: a cell that has
// started runs to completion so the logs stay consistent.
func Run(ctx context.Context, m Matrix, adapter *invoke.Adapter, rec *record.Recorder) error {
	trials, err := m.Trials()
	if err != nil {
		return fmt.Errorf("expand matrix: %w", err)
	}

	slog.Info("starting sweep",
		slog.Int("cells", len(trials)),
		slog.Uint64("seed", m.Seed),
		slog.Int("reps", m.Reps))

	cellCtx := context.WithoutCancel(ctx)
	done := 0
	for _, t := range trials {
		if err := ctx.Err(); err != nil {
			slog.Warn("sweep interrupted between cells",
				slog.Int("completed", done), slog.Int("planned", len(trials)))
			return err
		}

		logging.VInfo("sweep", "running cell", cellAttrs(t)...)
		res, err := adapter.Invoke(cellCtx, t)
		switch {
		case err == nil:
			if err := rec.Append(res); err != nil {
				return err
			}
		case errors.Is(err, derrors.ErrExhaustedDomain):
			// No input could be constructed; nothing to record.
			slog.LogAttrs(cellCtx, slog.LevelError, "skipping cell",
				append(cellAttrs(t), slog.Any("error", err))...)
		case errors.Is(err, derrors.ErrExternalProcess):
			slog.LogAttrs(cellCtx, slog.LevelError, "cell failed",
				append(cellAttrs(t), slog.Any("error", err))...)
			res.Failed = true
			res.Error = err.Error()
			if err := rec.Append(res); err != nil {
				return err
			}
		default:
			return fmt.Errorf("cell %s/v%d %s n=%d: %w", t.Algorithm, t.Variant, t.Mode.Token(), t.Size, err)
		}
		done++
	}

	slog.Info("sweep complete", slog.Int("cells", done))
	return nil
}

func cellAttrs(t invoke.Trial) []slog.Attr {
	return []slog.Attr{
		slog.String("algorithm", t.Algorithm),
		slog.Int("variant", t.Variant),
		slog.String("dist", t.Mode.Token()),
		slog.Int("size", t.Size),
		slog.Int("reps", t.Reps),
		slog.Uint64("seed", t.Seed),
	}
}
