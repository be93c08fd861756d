// Package testutil contains common test utilities.
package testutil

// Cleanuper wraps the Cleanup method. It is a subset of [testing.TB], thus
// satisfied by [*testing.T] and [*testing.B].
type Cleanuper interface {
	Cleanup(func())
}

// Skipper wraps the Skipf method. It is a subset of [testing.TB], thus
// satisfied by [*testing.T] and [*testing.B].
type Skipper interface {
	Skipf(format string, args ...any)
}

// Recover calls f and returns what it panicked with, or nil if it returned
// normally.
func Recover(f func()) (r any) {
	defer func() { r = recover() }()
	f()
	return
}

// Set sets *p to v for the duration of a test.
func Set[T any](c Cleanuper, p *T, v T) {
	old := *p
	*p = v
	c.Cleanup(func() { *p = old })
}
