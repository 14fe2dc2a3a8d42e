// Package catalog names the sorting algorithms and variants the
// external measured binary understands. The driver never sees
// algorithm internals; it only forwards (name, variant index) pairs,
// so the catalog is a closed table rather than any kind of dispatch.
package catalog

import "fmt"

// Variant describes one selectable sub-behavior of an algorithm
// family. The index of a Variant within its family is the variant
// index forwarded verbatim to the measured binary.
type Variant struct {
	// Desc is a human-readable summary of the sub-behavior.
	Desc string
	// Stable reports whether the variant preserves the order of
	// equal elements.
	Stable bool
}

type entry struct {
	name     string
	variants []Variant
}

// Ordered to match the measured binary's own enumeration; the sweep
// order (and therefore result-file append order) depends on it.
var algorithms = []entry{
	{"std", []Variant{
		{Desc: "library sort, stable", Stable: true},
		{Desc: "library sort, unstable", Stable: false},
	}},
	{"insertionsort", []Variant{
		{Desc: "linear insertion point", Stable: true},
		{Desc: "binary insertion point", Stable: true},
	}},
	{"quicksort", []Variant{
		{Desc: "median-of-ninther", Stable: false},
		{Desc: "median-of-ninther, verified", Stable: false},
	}},
	{"peeksort", []Variant{
		{Desc: "default", Stable: true},
	}},
	{"mergesort", []Variant{
		{Desc: "top-down", Stable: true},
		{Desc: "top-down, no insertion cutoff", Stable: true},
		{Desc: "top-down, no insertion cutoff, verified", Stable: true},
		{Desc: "bottom-up, verified", Stable: true},
	}},
	{"timsort", []Variant{
		{Desc: "default", Stable: true},
		{Desc: "copy-both merging", Stable: true},
		{Desc: "copy-both merging, simple insertion", Stable: true},
	}},
	{"powersort", []Variant{
		{Desc: "default", Stable: true},
	}},
	{"multiway-powersort", []Variant{
		{Desc: "default", Stable: true},
		{Desc: "4-way, division-loop node power", Stable: true},
	}},
}

// Names returns all algorithm names in their canonical sweep order.
func Names() []string {
	names := make([]string, 0, len(algorithms))
	for _, e := range algorithms {
		names = append(names, e.name)
	}
	return names
}

// Variants returns the variant table for the named algorithm.
func Variants(name string) ([]Variant, bool) {
	for _, e := range algorithms {
		if e.name == name {
			return e.variants, true
		}
	}
	return nil, false
}

// Validate checks that (name, variant) selects a known catalog entry.
func Validate(name string, variant int) error {
	vs, ok := Variants(name)
	if !ok {
		return fmt.Errorf("unknown algorithm %q", name)
	}
	if variant < 0 || variant >= len(vs) {
		return fmt.Errorf("algorithm %q has %d variants, got index %d", name, len(vs), variant)
	}
	return nil
}

// IsStable reports whether the selected variant is a stable sort.
func IsStable(name string, variant int) (bool, error) {
	if err := Validate(name, variant); err != nil {
		return false, err
	}
	vs, _ := Variants(name)
	return vs[variant].Stable, nil
}
