// Package errors defines the error taxonomy shared by the experiment
// driver. Callers classify failures with errors.Is against these
// sentinels to decide whether a sweep continues or aborts.
package errors

import "errors"

var (
	// ErrInvalidSpec marks a planner/generator contract violation.
	// It indicates the input itself was not constructed as specified,
	// so results would not be comparable; treat as fatal.
	ErrInvalidSpec = errors.New("invalid run spec")

	// ErrExhaustedDomain marks a without-replacement draw requesting
	// more distinct keys than the key domain provides. Fatal for the
	// trial, which is reported and skipped without a result record.
	ErrExhaustedDomain = errors.New("key domain exhausted")

	// ErrExternalProcess marks a measured-process failure: non-zero
	// exit, unparsable output, or a fingerprint mismatch. Recorded as
	// a failed cell; the sweep continues.
	ErrExternalProcess = errors.New("external sort process failed")
)
