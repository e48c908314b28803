package gimbal

import (
	"fmt"
	"os"
	"time"
)

// AuditEntry records one modifier failure: the provider's name and its
// error message.
type AuditEntry struct {
	Name    string
	Message string
}

// AuditLog collects modifier failures during rig resolution for debugging.
// Failures are expected and recoverable; the log exists so authors can see
// which providers are falling back. A nil *AuditLog discards everything.
type AuditLog struct {
	Entries []AuditEntry
}

// record appends a failure. Safe on a nil receiver.
func (l *AuditLog) record(name string, err error) {
	if l == nil {
		return
	}
	l.Entries = append(l.Entries, AuditEntry{Name: name, Message: err.Error()})
}

// Reset clears the log for the next frame.
func (l *AuditLog) Reset() {
	if l == nil {
		return
	}
	l.Entries = l.Entries[:0]
}

// frameStats holds per-frame timing and count metrics.
// Only populated when Stage debug mode is on.
type frameStats struct {
	resolveTime     time.Duration
	rigTime         time.Duration
	elementCount    int
	projectionCount int
	auditCount      int
}

// debugLog prints per-frame stats to stderr.
func (s *Stage) debugLog(stats frameStats) {
	if !s.debug {
		return
	}
	total := stats.resolveTime + stats.rigTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[gimbal] resolve: %v | rig: %v | total: %v\n",
		stats.resolveTime, stats.rigTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[gimbal] elements: %d | projections: %d | modifier failures: %d\n",
		stats.elementCount, stats.projectionCount, stats.auditCount)
}
