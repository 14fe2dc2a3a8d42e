package runplan

import (
	"fmt"
	"strconv"
	"strings"
)

// ElementKind selects the element payload of a generated sequence.
type ElementKind uint8

const (
	// Scalar elements are bare 32-bit unsigned integers.
	Scalar ElementKind = iota
	// Composite elements pair a 64-bit ordering key with an opaque
	// 64-bit reference payload, modeling record sorts.
	Composite
)

func (k ElementKind) suffix() string {
	if k == Composite {
		return "lp"
	}
	return "u32"
}

// Kind tags how the run structure of an input is constructed.
type Kind uint8

const (
	// Permutation is a uniformly random permutation of distinct keys;
	// its run structure degenerates to runs of length 1.
	Permutation Kind = iota
	// RandomRunsSqrt draws run lengths with mean ceil(sqrt(n)), so the
	// expected run count is proportional to sqrt(n).
	RandomRunsSqrt
	// RandomRunsFixedCount partitions the input into exactly K runs
	// (clamped to n runs of length 1 when K > n).
	RandomRunsFixedCount
)

// Mode is a distribution mode: run-structure kind plus element kind,
// with K carrying the run count for RandomRunsFixedCount.
type Mode struct {
	Kind Kind
	K    int
	Elem ElementKind
}

// Token returns the short identifier used on the measured binary's
// command line and in result file names, e.g. "random-runs-sqrt-u32",
// "random-runs30-u32", "permutation-lp".
func (m Mode) Token() string {
	switch m.Kind {
	case Permutation:
		return "permutation-" + m.Elem.suffix()
	case RandomRunsSqrt:
		return "random-runs-sqrt-" + m.Elem.suffix()
	default:
		return fmt.Sprintf("random-runs%d-%s", m.K, m.Elem.suffix())
	}
}

// ParseMode parses a distribution token back into a Mode.
func ParseMode(token string) (Mode, error) {
	var m Mode
	rest, ok := strings.CutSuffix(token, "-u32")
	if !ok {
		rest, ok = strings.CutSuffix(token, "-lp")
		if !ok {
			return m, fmt.Errorf("distribution token %q: unknown element kind suffix", token)
		}
		m.Elem = Composite
	}

	switch {
	case rest == "permutation":
		m.Kind = Permutation
	case rest == "random-runs-sqrt":
		m.Kind = RandomRunsSqrt
	case strings.HasPrefix(rest, "random-runs"):
		k, err := strconv.Atoi(strings.TrimPrefix(rest, "random-runs"))
		if err != nil || k < 1 {
			return m, fmt.Errorf("distribution token %q: bad run count", token)
		}
		m.Kind = RandomRunsFixedCount
		m.K = k
	default:
		return m, fmt.Errorf("unknown distribution token %q", token)
	}
	return m, nil
}
