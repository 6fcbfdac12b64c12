// Package scanner builds the prompt catalog from a directory tree.
// It walks the tree depth-first, skips hidden and reserved directories,
// and turns every eligible .txt or .md file into a Document.
package scanner

import (
	"io/fs"
	"log/slog"
	"time"
)

// Document is one catalog entry derived from a prompt file.
type Document struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Content      string   `json:"content"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags"`
	SourcePath   string   `json:"sourcePath"`
	WordCount    int      `json:"wordCount"`
	LastModified string   `json:"lastModified"`
}

// FileSystem is the read-only view of the disk the scanner needs.
// Stat follows symbolic links.
type FileSystem interface {
	ReadDir(name string) ([]fs.DirEntry, error)
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
}

// Options configures the scanner behavior.
type Options struct {
	// RootDir is the catalog root. Relative paths are resolved against the working directory.
	RootDir string

	// ExcludeDirs lists directory names that are never traversed, at any depth.
	// Names starting with "." are always excluded. Nil means DefaultExcludeDirs.
	ExcludeDirs []string

	// Extensions lists the case-sensitive filename suffixes of eligible files.
	// Nil means DefaultExtensions.
	Extensions []string

	// MaxFileSize is the maximum file size in bytes (0 = DefaultMaxFileSize).
	MaxFileSize int64

	// DisambiguateIDs appends a short path hash to every colliding id after the first.
	DisambiguateIDs bool

	// FS overrides the filesystem (nil = the real one).
	FS FileSystem

	// Logger receives per-file and per-directory warnings (nil = slog.Default()).
	Logger *slog.Logger
}

// Stats summarises one scan.
type Stats struct {
	FilesIndexed int           `json:"files_indexed"`
	FilesSkipped int           `json:"files_skipped"`
	DirsSkipped  int           `json:"dirs_skipped"`
	DuplicateIDs int           `json:"duplicate_ids"`
	Duration     time.Duration `json:"duration"`
}

// add merges the counters of other into s.
func (s Stats) add(other Stats) Stats {
	s.FilesIndexed += other.FilesIndexed
	s.FilesSkipped += other.FilesSkipped
	s.DirsSkipped += other.DirsSkipped
	return s
}

// DefaultMaxFileSize is the default maximum file size (10MB).
const DefaultMaxFileSize = 10 * 1024 * 1024

// DefaultExcludeDirs are the reserved directory names: the node build-artifact
// directory and the bundled explorer tool.
var DefaultExcludeDirs = []string{
	"node_modules",
	"prompt-explorer",
}

// DefaultExtensions are the suffixes of eligible prompt files.
var DefaultExtensions = []string{
	".txt",
	".md",
}
