package watcher

import (
	"log/slog"
	"time"
)

// Operation represents a file system operation type.
type Operation int

const (
	// OpCreate indicates a new file or directory was created.
	OpCreate Operation = iota
	// OpModify indicates an existing file was modified.
	OpModify
	// OpDelete indicates a file or directory was deleted.
	OpDelete
	// OpRename indicates a file or directory was renamed away.
	OpRename
)

// String returns a human-readable representation of the operation.
func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpModify:
		return "MODIFY"
	case OpDelete:
		return "DELETE"
	case OpRename:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}

// FileEvent represents a file system event.
type FileEvent struct {
	// Path is relative to the watched root, slash-separated.
	Path string

	// Operation is the type of file system operation.
	Operation Operation

	// IsDir indicates if the event is for a directory.
	// Always false for deletes and renames, since the entry is gone.
	IsDir bool

	// Timestamp is when the event was detected.
	Timestamp time.Time
}

// Options configures the watcher behavior.
type Options struct {
	// DebounceWindow is the time to wait before emitting coalesced events.
	// Default: 200ms
	DebounceWindow time.Duration

	// ExcludeDirs are directory names never watched, at any depth.
	// Names starting with "." are always excluded.
	ExcludeDirs []string

	// Extensions limits file events to these suffixes. Deletes and renames
	// are always reported because the entry may have been a directory.
	Extensions []string

	// Logger receives watcher errors (nil = slog.Default()).
	Logger *slog.Logger
}

// DefaultOptions returns the default watcher options.
func DefaultOptions() Options {
	return Options{
		DebounceWindow: 200 * time.Millisecond,
		ExcludeDirs:    []string{"node_modules", "prompt-explorer"},
		Extensions:     []string{".txt", ".md"},
	}
}

// WithDefaults returns options with defaults applied for zero values.
func (o Options) WithDefaults() Options {
	defaults := DefaultOptions()
	if o.DebounceWindow <= 0 {
		o.DebounceWindow = defaults.DebounceWindow
	}
	if o.ExcludeDirs == nil {
		o.ExcludeDirs = defaults.ExcludeDirs
	}
	if o.Extensions == nil {
		o.Extensions = defaults.Extensions
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
