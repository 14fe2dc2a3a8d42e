// Package invoke wraps a single call to the external measured
// sorting binary. Every repetition inside the measured process
// observes a freshly regenerated input (the binary regenerates from
// the same seed contract); the adapter independently derives the
// input fingerprint so cross-algorithm input identity is verifiable
// from the result logs alone.
package invoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/HannesFeil/multiway-powersort-experiments/internal/catalog"
	"github.com/HannesFeil/multiway-powersort-experiments/internal/clock"
	"github.com/HannesFeil/multiway-powersort-experiments/internal/datagen"
	derrors "github.com/HannesFeil/multiway-powersort-experiments/internal/errors"
	"github.com/HannesFeil/multiway-powersort-experiments/internal/logging"
	"github.com/HannesFeil/multiway-powersort-experiments/internal/record"
	"github.com/HannesFeil/multiway-powersort-experiments/internal/runplan"
)

// Trial is one experiment matrix cell: the unit the orchestrator
// schedules.
type Trial struct {
	Algorithm string
	Variant   int
	Size      int
	Mode      runplan.Mode
	Reps      int
	Seed      uint64
}

// BaseRecord returns a record carrying the trial's identity, ready
// for the adapter or the orchestrator to fill in outcome fields.
func (t Trial) BaseRecord() record.Record {
	return record.Record{
		Algorithm: t.Algorithm,
		Variant:   t.Variant,
		Dist:      t.Mode.Token(),
		Size:      t.Size,
		Reps:      t.Reps,
		Seed:      t.Seed,
	}
}

// Adapter invokes the measured binary once per trial.
type Adapter struct {
	// Bin is the path of the measured sorting binary.
	Bin string
	// Clock supplies the wall measurement around the process call.
	// Nil means the real clock.
	Clock clock.Clock
	// Warmup requests one extra repetition and discards its sample,
	// as the measured binary's first run is cache-cold.
	Warmup bool
	// KeyDomain restricts the generator key range; 0 means the
	// element type's native domain.
	KeyDomain uint64
}

// output is the record format the measured binary writes to the
// result path handed to it.
type output struct {
	SampleNs         []int64 `json:"sampleNs"`
	Comparisons      uint64  `json:"comparisons"`
	MergeCost        uint64  `json:"mergeCost"`
	InputFingerprint uint64  `json:"inputFingerprint"`
}

func (a *Adapter) timeSource() clock.Clock {
	if a.Clock == nil {
		return clock.Wall{}
	}
	return a.Clock
}

// Invoke runs the measured binary for one trial and returns its
// result record. Errors are classified: ErrExhaustedDomain and
// ErrInvalidSpec come from input construction (no process was
// spawned); ErrExternalProcess covers a non-zero exit, unparsable
// output, or an input fingerprint mismatch.
func (a *Adapter) Invoke(ctx context.Context, t Trial) (record.Record, error) {
	rec := t.BaseRecord()

	if err := catalog.Validate(t.Algorithm, t.Variant); err != nil {
		return rec, fmt.Errorf("%w: %v", derrors.ErrInvalidSpec, err)
	}

	fp, err := datagen.Fingerprint(t.Mode, t.Size, t.Seed, a.KeyDomain)
	if err != nil {
		return rec, err
	}
	rec.InputFingerprint = fp

	scratch, err := os.MkdirTemp("", "powersort-trial-")
	if err != nil {
		return rec, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)
	outPath := filepath.Join(scratch, "samples.json")

	runs := t.Reps
	if a.Warmup {
		runs++
	}
	args := []string{
		t.Algorithm,
		t.Mode.Token(),
		"--variant", strconv.Itoa(t.Variant),
		"--runs", strconv.Itoa(runs),
		"--size", strconv.Itoa(t.Size),
		"--seed", strconv.FormatUint(t.Seed, 10),
		outPath,
	}
	logging.VInfo("invoke", "spawning measured binary",
		slog.String("bin", a.Bin), slog.String("args", strings.Join(args, " ")))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, a.Bin, args...)
	cmd.Stderr = &stderr

	clk := a.timeSource()
	start := clk.Now()
	rec.Timestamp = start.UTC()
	runErr := cmd.Run()
	rec.TotalNs = clk.Now().Sub(start).Nanoseconds()

	if runErr != nil {
		return rec, fmt.Errorf("%w: %v%s", derrors.ErrExternalProcess, runErr, stderrTail(&stderr))
	}

	out, err := parseOutput(outPath)
	if err != nil {
		return rec, err
	}
	if len(out.SampleNs) != runs {
		return rec, fmt.Errorf("%w: expected %d samples, got %d", derrors.ErrExternalProcess, runs, len(out.SampleNs))
	}
	if out.InputFingerprint != 0 && out.InputFingerprint != fp {
		return rec, fmt.Errorf("%w: input fingerprint mismatch: process saw %x, driver derived %x",
			derrors.ErrExternalProcess, out.InputFingerprint, fp)
	}

	samples := out.SampleNs
	if a.Warmup {
		samples = samples[1:]
	}
	rec.SampleNs = samples
	rec.Comparisons = out.Comparisons
	rec.MergeCost = out.MergeCost
	return rec, nil
}

func parseOutput(path string) (output, error) {
	var out output
	raw, err := os.ReadFile(path)
	if err != nil {
		return out, fmt.Errorf("%w: read process output: %v", derrors.ErrExternalProcess, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: parse process output: %v", derrors.ErrExternalProcess, err)
	}
	return out, nil
}

const stderrTailLimit = 512

func stderrTail(buf *bytes.Buffer) string {
	s := strings.TrimSpace(buf.String())
	if s == "" {
		return ""
	}
	if len(s) > stderrTailLimit {
		s = s[len(s)-stderrTailLimit:]
	}
	return "; stderr: " + s
}
