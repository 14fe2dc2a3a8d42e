package datagen

import (
	"fmt"
	"math/rand/v2"

	derrors "github.com/HannesFeil/multiway-powersort-experiments/internal/errors"
	"github.com/HannesFeil/multiway-powersort-experiments/internal/runplan"
)

// keyDrawer yields successive keys for one generated sequence.
// Exhaustion is checked at construction time, so draw itself cannot
// fail; over-drawing past n is a programming error and panics.
type keyDrawer interface {
	draw() uint64
}

// newDrawer selects with- or without-replacement drawing for the
// mode. Only Permutation draws without replacement; a domain of 0
// means the element type's full native key space.
func newDrawer(mode runplan.Mode, r *rand.Rand, domain uint64, n int) (keyDrawer, error) {
	if mode.Kind != runplan.Permutation {
		return &replacementDrawer{r: r, domain: domain}, nil
	}
	return newDistinctDrawer(r, domain, n)
}

type replacementDrawer struct {
	r      *rand.Rand
	domain uint64
}

func (d *replacementDrawer) draw() uint64 {
	if d.domain == 0 {
		return d.r.Uint64()
	}
	return d.r.Uint64N(d.domain)
}

// distinctDrawer pre-draws n distinct keys in stream order.
type distinctDrawer struct {
	keys []uint64
	next int
}

// Materializing the whole domain is only worthwhile when it is not
// much larger than n; beyond that rejection sampling rarely collides.
const materializeFactor = 4

func newDistinctDrawer(r *rand.Rand, domain uint64, n int) (*distinctDrawer, error) {
	if domain != 0 && domain < uint64(n) {
		return nil, fmt.Errorf("%w: need %d distinct keys, domain has %d", derrors.ErrExhaustedDomain, n, domain)
	}

	keys := make([]uint64, 0, n)
	if domain != 0 && domain <= uint64(n)*materializeFactor {
		// Partial Fisher-Yates over the materialized domain: one
		// stream draw per selected key.
		vals := make([]uint64, domain)
		for i := range vals {
			vals[i] = uint64(i)
		}
		for i := 0; i < n; i++ {
			j := i + r.IntN(int(domain)-i)
			vals[i], vals[j] = vals[j], vals[i]
			keys = append(keys, vals[i])
		}
	} else {
		// Sparse domain: rejection sampling, collisions are rare.
		used := make(map[uint64]bool, n)
		for len(keys) < n {
			var v uint64
			if domain == 0 {
				v = r.Uint64()
			} else {
				v = r.Uint64N(domain)
			}
			if used[v] {
				continue
			}
			used[v] = true
			keys = append(keys, v)
		}
	}
	return &distinctDrawer{keys: keys}, nil
}

func (d *distinctDrawer) draw() uint64 {
	if d.next >= len(d.keys) {
		panic("datagen: distinct drawer over-drawn")
	}
	v := d.keys[d.next]
	d.next++
	return v
}
