// Package preflight runs the health checks behind `promptdex doctor`.
//
// The checks cover:
//   - the catalog root (exists, is a directory, yields prompts)
//   - the HTTP listen address (free to bind)
//   - the log directory (writable)
//   - the file descriptor limit (enough for --watch on large trees)
//
// Use the Checker type to run all of them:
//
//	checker := preflight.New()
//	results := checker.RunAll(ctx, preflight.Target{Catalog: s, Addr: addr})
//	if checker.HasCriticalFailures(results) {
//	    // Handle failures
//	}
package preflight
