// Package logging provides tag-gated verbose diagnostics on top of
// slog. Sweeps over large matrices produce one line per cell; the
// noisier per-repetition and per-draw diagnostics are only emitted
// when their tag is enabled via the LOG_TAGS environment variable or
// the --log-tags flag.
//
// Tags used by the driver: "sweep" (cell scheduling), "invoke"
// (external process argv and parsing), "datagen" (draw accounting).
package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu   sync.RWMutex
	tags map[string]bool
)

func init() {
	tags = make(map[string]bool)
	if v := os.Getenv("LOG_TAGS"); v != "" {
		EnableMany(v)
	}
}

// VerboseEnabled returns true if the given tag is enabled.
func VerboseEnabled(tag string) bool {
	mu.RLock()
	defer mu.RUnlock()
	return tags[tag]
}

// Enable turns on a tag at runtime.
func Enable(tag string) {
	if tag == "" {
		return
	}
	mu.Lock()
	tags[tag] = true
	mu.Unlock()
}

// EnableMany enables a comma-separated list of tags at runtime.
func EnableMany(csv string) {
	for _, t := range strings.Split(csv, ",") {
		Enable(strings.TrimSpace(t))
	}
}

// VInfo logs an Info message only when the tag is enabled.
// It forwards to slog.Info so callers can pass structured attributes.
func VInfo(tag string, msg string, attrs ...slog.Attr) {
	if !VerboseEnabled(tag) {
		return
	}
	if len(attrs) == 0 {
		slog.Info(msg)
		return
	}
	pairs := make([]any, 0, len(attrs)*2)
	for _, a := range attrs {
		pairs = append(pairs, a.Key)
		pairs = append(pairs, a.Value.Any())
	}
	slog.Info(msg, pairs...)
}
