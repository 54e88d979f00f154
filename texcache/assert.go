package texcache

import "fmt"

// debugAssertions gates the invariant checks below. Off by default, the
// same performance posture as a release build: the checks are skipped
// entirely rather than silently tolerated. SetDebugAssertions lets the CLI
// turn them on with --debug-assertions.
var debugAssertions = false

// SetDebugAssertions turns the package's internal invariant checks on or
// off. Violations panic rather than corrupting cache state silently.
func SetDebugAssertions(on bool) {
	debugAssertions = on
}

func assertf(cond bool, format string, args ...any) {
	if !debugAssertions {
		return
	}
	if !cond {
		panic(fmt.Sprintf("texcache: assertion failed: "+format, args...))
	}
}
