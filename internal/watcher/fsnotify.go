package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a catalog root recursively.
type Watcher struct {
	root  string
	opts  Options
	ready chan struct{}
}

// New creates a watcher for root. Nothing is watched until Run.
func New(root string, opts Options) *Watcher {
	return &Watcher{
		root:  root,
		opts:  opts.WithDefaults(),
		ready: make(chan struct{}),
	}
}

// Ready is closed once the initial directory watches are in place.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is done, calling onChange with each debounced batch.
// onChange runs on the watcher goroutine. Run returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context, onChange func([]FileEvent)) error {
	absRoot, err := filepath.Abs(w.root)
	if err != nil {
		return fmt.Errorf("resolve absolute path: %w", err)
	}
	w.root = absRoot

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	if err := w.addRecursive(fsw, absRoot); err != nil {
		return fmt.Errorf("add directories to watcher: %w", err)
	}
	close(w.ready)

	debouncer := NewDebouncer(w.opts.DebounceWindow)
	defer debouncer.Stop()

	w.opts.Logger.Debug("watching catalog root", slog.String("root", absRoot))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if fe, ok := w.convert(fsw, event); ok {
				debouncer.Add(fe)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.opts.Logger.Warn("watcher error", slog.String("error", err.Error()))
		case batch, ok := <-debouncer.Output():
			if !ok {
				return nil
			}
			onChange(batch)
		}
	}
}

// convert maps an fsnotify event to a FileEvent, watching new directories.
func (w *Watcher) convert(fsw *fsnotify.Watcher, event fsnotify.Event) (FileEvent, bool) {
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil || rel == "." {
		return FileEvent{}, false
	}
	rel = filepath.ToSlash(rel)

	if w.excluded(rel) {
		return FileEvent{}, false
	}

	isDir := false
	if info, err := os.Stat(event.Name); err == nil {
		isDir = info.IsDir()
	}
	if isDir && w.excludedName(path.Base(rel)) {
		return FileEvent{}, false
	}

	var op Operation
	switch {
	case event.Has(fsnotify.Create):
		op = OpCreate
		if isDir {
			if err := w.addRecursive(fsw, event.Name); err != nil {
				w.opts.Logger.Warn("failed to watch new directory",
					slog.String("dir", event.Name),
					slog.String("error", err.Error()))
			}
		}
	case event.Has(fsnotify.Write):
		op = OpModify
	case event.Has(fsnotify.Remove):
		op = OpDelete
	case event.Has(fsnotify.Rename):
		op = OpRename
	default:
		// chmod
		return FileEvent{}, false
	}

	if !isDir && (op == OpCreate || op == OpModify) && !w.eligible(rel) {
		return FileEvent{}, false
	}

	return FileEvent{
		Path:      rel,
		Operation: op,
		IsDir:     isDir,
		Timestamp: time.Now(),
	}, true
}

// addRecursive adds dir and every non-excluded directory below it.
func (w *Watcher) addRecursive(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip what we can't access, but the starting point must exist.
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.excludedName(d.Name()) {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

// excluded reports whether any parent directory of rel is excluded.
func (w *Watcher) excluded(rel string) bool {
	segments := strings.Split(rel, "/")
	for _, seg := range segments[:len(segments)-1] {
		if w.excludedName(seg) {
			return true
		}
	}
	return false
}

func (w *Watcher) excludedName(name string) bool {
	return strings.HasPrefix(name, ".") || slices.Contains(w.opts.ExcludeDirs, name)
}

func (w *Watcher) eligible(rel string) bool {
	for _, ext := range w.opts.Extensions {
		if strings.HasSuffix(rel, ext) {
			return true
		}
	}
	return false
}
