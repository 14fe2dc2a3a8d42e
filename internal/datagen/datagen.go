// Package datagen turns a planned run structure into a concrete
// input sequence, drawing keys from a seeded stream so that the same
// (mode, n, seed) always yields a byte-identical input. Head-to-head
// comparability of algorithms depends on that invariant.
//
// The generator's stream is independent of the planner's (distinct
// salt over the same experiment seed). Stream consumption order:
// blocks in run order; within a block, element keys in position
// order, with a composite element's key drawn before its reference.
// Permutation mode pre-draws its distinct key set before any block
// is assembled.
package datagen

import (
	"cmp"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	derrors "github.com/HannesFeil/multiway-powersort-experiments/internal/errors"
	"github.com/HannesFeil/multiway-powersort-experiments/internal/logging"
	"github.com/HannesFeil/multiway-powersort-experiments/internal/runplan"
)

// ScalarDomain is the native key domain of scalar (u32) elements.
const ScalarDomain = uint64(1) << 32

// Record is a composite element: a primary ordering key paired with
// an opaque reference payload. Comparisons use only the key; a copy
// always moves both fields together.
type Record struct {
	Key uint64
	Ref uint64
}

// Compare orders records by primary key only.
func (a Record) Compare(b Record) int { return cmp.Compare(a.Key, b.Key) }

const dataStreamSalt = 0x64617461

func stream(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, dataStreamSalt))
}

// Uint32s generates the scalar sequence realizing spec. A domain of 0
// means the native u32 domain; smaller domains restrict the key range
// (Permutation mode with domain == n yields a permutation of 0..n-1).
func Uint32s(mode runplan.Mode, spec runplan.RunSpec, seed uint64, domain uint64) ([]uint32, error) {
	n, err := validate(mode, spec, runplan.Scalar)
	if err != nil {
		return nil, err
	}
	if domain == 0 {
		domain = ScalarDomain
	}
	if domain > ScalarDomain {
		return nil, fmt.Errorf("%w: domain %d exceeds u32 key space", derrors.ErrInvalidSpec, domain)
	}

	r := stream(seed)
	keys, err := newDrawer(mode, r, domain, n)
	if err != nil {
		return nil, err
	}

	out := make([]uint32, 0, n)
	block := make([]uint32, 0, maxRunLength(spec))
	for _, run := range spec {
		block = block[:run.Length]
		for i := range block {
			block[i] = uint32(keys.draw())
		}
		slices.Sort(block)
		if run.Orientation == runplan.Descending {
			slices.Reverse(block)
		}
		out = append(out, block...)
	}
	logging.VInfo("datagen", "generated scalar sequence",
		slog.String("dist", mode.Token()), slog.Int("n", n), slog.Int("runs", len(spec)))
	return out, nil
}

// Records generates the composite sequence realizing spec. A domain
// of 0 means the full u64 key space.
func Records(mode runplan.Mode, spec runplan.RunSpec, seed uint64, domain uint64) ([]Record, error) {
	n, err := validate(mode, spec, runplan.Composite)
	if err != nil {
		return nil, err
	}

	r := stream(seed)
	keys, err := newDrawer(mode, r, domain, n)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, n)
	block := make([]Record, 0, maxRunLength(spec))
	for _, run := range spec {
		block = block[:run.Length]
		for i := range block {
			block[i] = Record{Key: keys.draw(), Ref: r.Uint64()}
		}
		slices.SortStableFunc(block, Record.Compare)
		if run.Orientation == runplan.Descending {
			slices.Reverse(block)
		}
		out = append(out, block...)
	}
	logging.VInfo("datagen", "generated composite sequence",
		slog.String("dist", mode.Token()), slog.Int("n", n), slog.Int("runs", len(spec)))
	return out, nil
}

func validate(mode runplan.Mode, spec runplan.RunSpec, want runplan.ElementKind) (int, error) {
	if mode.Elem != want {
		return 0, fmt.Errorf("%w: element kind mismatch for token %s", derrors.ErrInvalidSpec, mode.Token())
	}
	n := 0
	for i, run := range spec {
		if run.Length < 1 {
			return 0, fmt.Errorf("%w: run %d has length %d", derrors.ErrInvalidSpec, i, run.Length)
		}
		n += run.Length
	}
	return n, nil
}

func maxRunLength(spec runplan.RunSpec) int {
	m := 0
	for _, run := range spec {
		if run.Length > m {
			m = run.Length
		}
	}
	return m
}
