// Package runplan plans the run structure of synthetic sorting
// inputs: given a distribution mode, a length and a seed it produces
// the sequence of run lengths and orientations the generator will
// realize.
//
// Plan is a pure function of (mode, n, seed). Its seeded stream is
// consumed in a fixed order: every run length is drawn before any
// orientation. Nothing else may touch the stream, so changing
// unrelated sweep parameters never perturbs the generated input.
package runplan

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	derrors "github.com/HannesFeil/multiway-powersort-experiments/internal/errors"
)

// Orientation is the direction of a monotonic run.
type Orientation uint8

const (
	Ascending Orientation = iota
	Descending
)

func (o Orientation) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// Run is one planned run: a length and a direction.
type Run struct {
	Length      int
	Orientation Orientation
}

// RunSpec is the ordered run decomposition of a planned input.
// Invariants: every Length >= 1 and Total() equals the planned n.
type RunSpec []Run

// Total returns the summed run lengths.
func (s RunSpec) Total() int {
	total := 0
	for _, r := range s {
		total += r.Length
	}
	return total
}

// planStreamSalt separates the planner's stream from the generator's
// stream derived from the same experiment seed.
const planStreamSalt = 0x706c616e

func stream(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, planStreamSalt))
}

// Plan computes the run structure for the given mode, length and
// seed. It is deterministic: identical inputs yield identical specs.
func Plan(mode Mode, n int, seed uint64) (RunSpec, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", derrors.ErrInvalidSpec, n)
	}
	if n == 0 {
		return RunSpec{}, nil
	}

	switch mode.Kind {
	case Permutation:
		// Degenerate run structure, no directional draws.
		spec := make(RunSpec, n)
		for i := range spec {
			spec[i] = Run{Length: 1, Orientation: Ascending}
		}
		return spec, nil
	case RandomRunsSqrt:
		r := stream(seed)
		return orient(sqrtLengths(r, n), r), nil
	case RandomRunsFixedCount:
		if mode.K < 1 {
			return nil, fmt.Errorf("%w: run count %d < 1", derrors.ErrInvalidSpec, mode.K)
		}
		r := stream(seed)
		return orient(cutLengths(r, n, mode.K), r), nil
	default:
		return nil, fmt.Errorf("%w: unknown mode kind %d", derrors.ErrInvalidSpec, mode.Kind)
	}
}

// sqrtLengths draws successive run lengths uniformly from
// [1, 2*ceil(sqrt(n))-1], mean ceil(sqrt(n)), clamping the final run
// to consume exactly the remaining elements.
func sqrtLengths(r *rand.Rand, n int) []int {
	mean := int(math.Ceil(math.Sqrt(float64(n))))
	var lengths []int
	for remaining := n; remaining > 0; {
		l := 1 + r.IntN(2*mean-1)
		if l > remaining {
			l = remaining
		}
		lengths = append(lengths, l)
		remaining -= l
	}
	return lengths
}

// cutLengths partitions n into exactly min(k, n) positive parts via
// k-1 distinct cut points over [1, n-1], resampling coinciding points.
func cutLengths(r *rand.Rand, n, k int) []int {
	if k >= n {
		lengths := make([]int, n)
		for i := range lengths {
			lengths[i] = 1
		}
		return lengths
	}

	seen := make(map[int]bool, k-1)
	cuts := make([]int, 0, k-1)
	for len(cuts) < k-1 {
		c := 1 + r.IntN(n-1)
		if seen[c] {
			continue
		}
		seen[c] = true
		cuts = append(cuts, c)
	}
	sort.Ints(cuts)

	lengths := make([]int, 0, k)
	prev := 0
	for _, c := range cuts {
		lengths = append(lengths, c-prev)
		prev = c
	}
	return append(lengths, n-prev)
}

// orient draws one uniform direction per run, strictly after all
// lengths have been drawn.
func orient(lengths []int, r *rand.Rand) RunSpec {
	spec := make(RunSpec, len(lengths))
	for i, l := range lengths {
		spec[i] = Run{Length: l, Orientation: Ascending}
	}
	for i := range spec {
		if r.IntN(2) == 1 {
			spec[i].Orientation = Descending
		}
	}
	return spec
}
