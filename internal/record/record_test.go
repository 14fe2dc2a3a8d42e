package record

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(alg string, variant, size int) Record {
	return Record{
		Timestamp:        time.Unix(1700000000, 0).UTC(),
		Algorithm:        alg,
		Variant:          variant,
		Dist:             "random-runs-sqrt-u32",
		Size:             size,
		Reps:             3,
		Seed:             42,
		InputFingerprint: 0xdead,
		SampleNs:         []int64{1000, 2000, 3000},
		TotalNs:          6000,
	}
}

func TestFileName(t *testing.T) {
	rec := sample("powersort", 1, 100)
	assert.Equal(t, "powersort-v1-random-runs-sqrt-u32.jsonl", rec.FileName())
}

func TestAppendPartitionsAndReadAll(t *testing.T) {
	dir := t.TempDir()
	r, err := New(dir)
	require.NoError(t, err)

	a := sample("powersort", 0, 100)
	b := sample("timsort", 2, 100)
	require.NoError(t, r.Append(a))
	require.NoError(t, r.Append(b))
	require.NoError(t, r.Close())

	got, err := ReadAll(filepath.Join(dir, a.FileName()))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a, got[0])

	got, err = ReadAll(filepath.Join(dir, b.FileName()))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b, got[0])
}

func TestAppendOrderPreserved(t *testing.T) {
	dir := t.TempDir()
	r, err := New(dir)
	require.NoError(t, err)

	for _, size := range []int{10, 100, 1000} {
		require.NoError(t, r.Append(sample("peeksort", 0, size)))
	}
	require.NoError(t, r.Close())

	got, err := ReadAll(filepath.Join(dir, sample("peeksort", 0, 0).FileName()))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{10, 100, 1000}, []int{got[0].Size, got[1].Size, got[2].Size})
}

func TestAppendSurvivesReopen(t *testing.T) {
	// A second recorder over the same directory appends after the
	// existing prefix instead of truncating it.
	dir := t.TempDir()

	r, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, r.Append(sample("std", 0, 10)))
	require.NoError(t, r.Close())

	r, err = New(dir)
	require.NoError(t, err)
	require.NoError(t, r.Append(sample("std", 0, 20)))
	require.NoError(t, r.Close())

	got, err := ReadAll(filepath.Join(dir, sample("std", 0, 0).FileName()))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 10, got[0].Size)
	assert.Equal(t, 20, got[1].Size)
}

func TestReadAllRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"algorithm\":\"std\"}\nnot json\n"), 0o644))

	_, err := ReadAll(path)
	assert.Error(t, err)
}
