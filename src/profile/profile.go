// Package profile defines the shared surface of the three optimization
// profiles. Each profile applies a set of reversible OS mutations and can
// undo them from the most recent persisted manifest; apply and restore both
// return an immutable report the caller renders.
package profile

// Report is the read-only view of one apply or restore outcome. Concrete
// results additionally expose typed counters and booleans.
type Report interface {
	// BackupDir is the session directory used by the call, empty when no
	// session was created or found.
	BackupDir() string
	// Failures lists human-readable error strings in call order.
	Failures() []string
	// Lines renders the profile-specific summary, one "key: value" line
	// per metric.
	Lines() []string
}

// Runner is implemented by each profile engine. Apply and Restore must not
// be invoked concurrently for the same profile; engines enforce this with an
// internal mutex rather than leaving it an implicit caller contract.
type Runner interface {
	Name() string
	Apply() Report
	Restore() Report
	// Targets describes what an apply would touch, for dry runs.
	Targets() []string
}
