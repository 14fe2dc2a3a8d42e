// Package record owns the durable result logs of an experiment
// family. Records are JSON lines appended to flat files partitioned
// by (algorithm, variant, distribution), one file per partition; a
// crashed sweep leaves a valid, parseable prefix behind.
package record

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Record is one completed (or failed) trial. Records are append-only
// and never mutated after being written.
type Record struct {
	Timestamp        time.Time `json:"timestamp"`
	Algorithm        string    `json:"algorithm"`
	Variant          int       `json:"variant"`
	Dist             string    `json:"dist"`
	Size             int       `json:"size"`
	Reps             int       `json:"reps"`
	Seed             uint64    `json:"seed"`
	InputFingerprint uint64    `json:"inputFingerprint,omitempty"`
	SampleNs         []int64   `json:"sampleNs,omitempty"`
	TotalNs          int64     `json:"totalNs,omitempty"`
	Comparisons      uint64    `json:"comparisons,omitempty"`
	MergeCost        uint64    `json:"mergeCost,omitempty"`
	Failed           bool      `json:"failed,omitempty"`
	Error            string    `json:"error,omitempty"`
}

// FileName returns the log file the record belongs to under the
// recorder's directory.
func (r Record) FileName() string {
	return fmt.Sprintf("%s-v%d-%s.jsonl", r.Algorithm, r.Variant, r.Dist)
}

// Recorder appends records to per-partition log files. It exclusively
// owns every handle it opens until Close.
type Recorder struct {
	dir   string
	mu    sync.Mutex
	files map[string]*os.File
}

// New creates a recorder writing under dir, creating it if needed.
func New(dir string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Recorder{dir: dir, files: make(map[string]*os.File)}, nil
}

// Append writes one record as a single JSON line to its partition
// file. The write reaches the file before Append returns, so a crash
// mid-sweep loses at most the in-flight trial.
func (r *Recorder) Append(rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := rec.FileName()
	f, ok := r.files[name]
	if !ok {
		var err error
		f, err = os.OpenFile(filepath.Join(r.dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open result log %s: %w", name, err)
		}
		r.files[name] = f
	}
	if err := json.NewEncoder(f).Encode(rec); err != nil {
		return fmt.Errorf("append to result log %s: %w", name, err)
	}
	return nil
}

// Close closes every open log file. Safe to call once after the sweep
// on all exit paths.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for name, f := range r.files {
		if err := f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
		delete(r.files, name)
	}
	return errors.Join(errs...)
}

// ReadAll parses a result log back into records, in append order.
// External resumption logic diffs these against the planned matrix.
func ReadAll(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []Record
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 1<<20), 1<<24)
	for sc.Scan() {
		var rec Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		out = append(out, rec)
	}
	return out, sc.Err()
}
