package datagen

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/HannesFeil/multiway-powersort-experiments/internal/runplan"
)

// Input fingerprints prove that two trials saw byte-identical inputs
// before sorting. The encoding is canonical: fixed-width
// little-endian, no separators, so the hash is stable across
// platforms and releases.

// FingerprintUint32s returns the 64-bit fingerprint of a scalar
// sequence.
func FingerprintUint32s(vs []uint32) uint64 {
	d := xxhash.New()
	var buf [4]byte
	for _, v := range vs {
		binary.LittleEndian.PutUint32(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// FingerprintRecords returns the 64-bit fingerprint of a composite
// sequence. Both the key and the reference payload are covered, so a
// torn copy would change the fingerprint.
func FingerprintRecords(rs []Record) uint64 {
	d := xxhash.New()
	var buf [16]byte
	for _, r := range rs {
		binary.LittleEndian.PutUint64(buf[:8], r.Key)
		binary.LittleEndian.PutUint64(buf[8:], r.Ref)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// Fingerprint plans and generates the input for (mode, n, seed) and
// returns its fingerprint. This is what the adapter records with
// every result so cross-algorithm input identity is auditable.
func Fingerprint(mode runplan.Mode, n int, seed uint64, domain uint64) (uint64, error) {
	spec, err := runplan.Plan(mode, n, seed)
	if err != nil {
		return 0, err
	}
	if mode.Elem == runplan.Composite {
		rs, err := Records(mode, spec, seed, domain)
		if err != nil {
			return 0, err
		}
		return FingerprintRecords(rs), nil
	}
	vs, err := Uint32s(mode, spec, seed, domain)
	if err != nil {
		return 0, err
	}
	return FingerprintUint32s(vs), nil
}
