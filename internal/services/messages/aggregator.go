// Package messages collects data-quality reports emitted during a replay.
package messages

import (
	"sync"

	"go.uber.org/zap"
)

// Aggregator is a fire-and-forget sink for errors and warnings.
// Reports are kept in emission order and can be consumed by surrounding tooling
// after a run.
type Aggregator struct {
	mu       sync.Mutex
	l        *zap.Logger
	errors   []string
	warnings []string
}

// NewAggregator returns an aggregator logging every report through l.
func NewAggregator(l *zap.Logger) *Aggregator {
	if l == nil {
		l = zap.NewNop()
	}
	return &Aggregator{l: l}
}

// AddError records an error report.
func (a *Aggregator) AddError(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errors = append(a.errors, msg)
	a.l.Error(msg)
}

// AddWarning records a warning report.
func (a *Aggregator) AddWarning(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.warnings = append(a.warnings, msg)
	a.l.Warn(msg)
}

// Errors returns a copy of the collected errors.
func (a *Aggregator) Errors() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.errors))
	copy(out, a.errors)
	return out
}

// Warnings returns a copy of the collected warnings.
func (a *Aggregator) Warnings() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.warnings))
	copy(out, a.warnings)
	return out
}

// ConsumeErrors returns the collected errors and resets the error list.
func (a *Aggregator) ConsumeErrors() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := a.errors
	a.errors = nil
	return out
}

// ConsumeWarnings returns the collected warnings and resets the warning list.
func (a *Aggregator) ConsumeWarnings() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := a.warnings
	a.warnings = nil
	return out
}
