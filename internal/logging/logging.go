// Package logging centralizes the structured logger used across boolnet.
//
// The teacher package (gokanlogic) logs ad hoc through the standard "log"
// package (see its context_utils.go and wfs_trace.go). boolnet instead
// routes every ambient log line through logrus, matching the direct
// dolthub-go-mysql-server usage (auth/audit.go, engine.go) so that cache
// invalidation, solve-loop progress, and fatal invariant diagnostics share
// one leveled, structured sink instead of bare fmt/log calls.
package logging

import "github.com/sirupsen/logrus"

// base is the package-level logger used when callers do not inject their own.
var base = logrus.StandardLogger()

// SetOutputLogger replaces the package-level logger, e.g. to redirect to a
// test hook or to attach fields (request IDs, model names) for the lifetime
// of a process. Entries already returned by For keep the logger they were
// created from; the package-level entries of registry, rulebook, analysis
// and solver are created at package initialization.
func SetOutputLogger(l *logrus.Logger) {
	if l != nil {
		base = l
	}
}

// For returns an entry scoped to a named subsystem ("registry", "rulebook",
// "analysis", ...), mirroring the teacher's per-file logger fields
// (context_utils.go's ContextMonitor.logger) but structured rather than a
// bare prefix string.
func For(component string) *logrus.Entry {
	return base.WithField("component", component)
}
