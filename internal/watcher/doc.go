// Package watcher reports changes under the catalog root.
//
// It watches every non-excluded directory with fsnotify, adds directories
// as they appear, and coalesces bursts of events through a Debouncer so
// an editor save or a git checkout produces one batch instead of dozens.
//
// Usage:
//
//	w := watcher.New(root, watcher.DefaultOptions())
//	err := w.Run(ctx, func(batch []watcher.FileEvent) {
//	    snapshot.Invalidate()
//	})
package watcher
