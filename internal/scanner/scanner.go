package scanner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	dexerrors "github.com/Aman-CERP/promptdex/internal/errors"
	"github.com/Aman-CERP/promptdex/internal/frontmatter"
)

// Scanner discovers and parses prompt files under a root directory.
// A Scanner holds no state between calls; every Index call walks the tree again.
type Scanner struct {
	opts   Options
	fsys   FileSystem
	logger *slog.Logger
}

// New creates a new Scanner with defaults applied for zero-valued options.
func New(opts Options) *Scanner {
	if opts.RootDir == "" {
		opts.RootDir = "."
	}
	if opts.ExcludeDirs == nil {
		opts.ExcludeDirs = DefaultExcludeDirs
	}
	if opts.Extensions == nil {
		opts.Extensions = DefaultExtensions
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}

	s := &Scanner{
		opts:   opts,
		fsys:   opts.FS,
		logger: opts.Logger,
	}
	if s.fsys == nil {
		s.fsys = osFS{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Root returns the absolute catalog root.
func (s *Scanner) Root() (string, error) {
	absRoot, err := filepath.Abs(s.opts.RootDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return absRoot, nil
}

// Index walks the root and returns every document in encounter order.
// Unreadable files and directories are logged and skipped; only a missing root,
// a root that is not a directory, or cancellation fails the whole call.
func (s *Scanner) Index(ctx context.Context) ([]Document, Stats, error) {
	start := time.Now()

	absRoot, err := s.Root()
	if err != nil {
		return nil, Stats{}, err
	}

	info, err := s.fsys.Stat(absRoot)
	if err != nil {
		return nil, Stats{}, dexerrors.IOError(dexerrors.ErrCodeRootNotFound,
			fmt.Sprintf("catalog root %s cannot be read", absRoot), err).
			WithDetail("root", absRoot).
			WithSuggestion("pass --root or set PROMPTDEX_ROOT to an existing directory")
	}
	if !info.IsDir() {
		return nil, Stats{}, dexerrors.IOError(dexerrors.ErrCodeRootNotDir,
			fmt.Sprintf("catalog root %s is not a directory", absRoot), nil).
			WithDetail("root", absRoot)
	}

	docs, stats, err := s.scanDir(ctx, absRoot, nil, []fs.FileInfo{info})
	if err != nil {
		return nil, Stats{}, err
	}

	docs, stats.DuplicateIDs = s.resolveDuplicates(absRoot, docs)
	stats.Duration = time.Since(start)

	s.logger.Debug("scan complete",
		slog.String("root", absRoot),
		slog.Int("indexed", stats.FilesIndexed),
		slog.Int("skipped_files", stats.FilesSkipped),
		slog.Int("skipped_dirs", stats.DirsSkipped),
		slog.Duration("duration", stats.Duration))

	return docs, stats, nil
}

// scanDir returns the documents found in dir and below it.
// segments are the directory names descended from the root; ancestors holds
// the stat results of dir and every directory above it for cycle detection.
func (s *Scanner) scanDir(ctx context.Context, dir string, segments []string, ancestors []fs.FileInfo) ([]Document, Stats, error) {
	var stats Stats

	entries, err := s.fsys.ReadDir(dir)
	if err != nil {
		dirErr := dexerrors.IOError(dexerrors.ErrCodeDirUnreadable, "directory cannot be listed", err)
		s.logger.Warn("skipping unreadable directory",
			append([]any{slog.String("dir", dir)}, dexerrors.LogAttrs(dirErr)...)...)
		stats.DirsSkipped++
		return nil, stats, nil
	}

	var docs []Document
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, Stats{}, err
		}

		name := entry.Name()
		fullPath := filepath.Join(dir, name)

		info, err := s.fsys.Stat(fullPath)
		if err != nil {
			s.logger.Warn("skipping entry that cannot be stat'ed",
				slog.String("path", fullPath),
				slog.String("error", err.Error()))
			stats.FilesSkipped++
			continue
		}

		if info.IsDir() {
			if s.isExcludedDir(name) {
				continue
			}
			if isAncestor(info, ancestors) {
				s.logger.Warn("skipping directory symlink cycle", slog.String("dir", fullPath))
				stats.DirsSkipped++
				continue
			}

			childSegments := append(slices.Clip(segments), name)
			childAncestors := append(slices.Clip(ancestors), info)
			childDocs, childStats, err := s.scanDir(ctx, fullPath, childSegments, childAncestors)
			if err != nil {
				return nil, Stats{}, err
			}
			docs = append(docs, childDocs...)
			stats = stats.add(childStats)
			continue
		}

		if !s.isEligible(name) {
			continue
		}

		doc, err := s.readDocument(fullPath, name, segments, info)
		if err != nil {
			s.logger.Warn("skipping unreadable file",
				append([]any{slog.String("path", fullPath)}, dexerrors.LogAttrs(err)...)...)
			stats.FilesSkipped++
			continue
		}
		docs = append(docs, doc)
		stats.FilesIndexed++
	}

	return docs, stats, nil
}

// readDocument reads and parses one eligible file.
func (s *Scanner) readDocument(path, name string, segments []string, info fs.FileInfo) (Document, error) {
	if info.Size() > s.opts.MaxFileSize {
		return Document{}, dexerrors.IOError(dexerrors.ErrCodeFileTooLarge,
			fmt.Sprintf("file is %d bytes, limit is %d", info.Size(), s.opts.MaxFileSize), nil)
	}

	data, err := s.fsys.ReadFile(path)
	if err != nil {
		code := dexerrors.ErrCodeFileUnreadable
		if errors.Is(err, fs.ErrPermission) {
			code = dexerrors.ErrCodeFilePermission
		}
		return Document{}, dexerrors.IOError(code, "read failed", err)
	}

	parsed, err := frontmatter.Parse(string(data))
	if err != nil {
		return Document{}, dexerrors.New(dexerrors.ErrCodeInvalidMetadata, "invalid front-matter", err)
	}

	content := parsed.Body
	if content == "" {
		content = string(data)
	}

	category := parsed.Metadata.Category
	if category == "" {
		category = DirCategory(path, segments)
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))

	title := parsed.Metadata.Title
	if title == "" {
		title = stem
	}

	tags := []string(parsed.Metadata.Tags)
	if tags == nil {
		tags = []string{}
	}

	return Document{
		ID:           DeriveID(category, stem),
		Title:        FormatTitle(title),
		Category:     category,
		Content:      content,
		Description:  parsed.Metadata.Description,
		Tags:         tags,
		SourcePath:   path,
		WordCount:    WordCount(content),
		LastModified: FormatTimestamp(info.ModTime()),
	}, nil
}

// resolveDuplicates logs colliding ids and, when enabled, disambiguates them.
// The first document keeps the bare id.
func (s *Scanner) resolveDuplicates(absRoot string, docs []Document) ([]Document, int) {
	firstSeen := make(map[string]string, len(docs))
	duplicates := 0

	for i := range docs {
		first, dup := firstSeen[docs[i].ID]
		if !dup {
			firstSeen[docs[i].ID] = docs[i].SourcePath
			continue
		}

		duplicates++
		dupErr := dexerrors.New(dexerrors.ErrCodeDuplicateDocument, "id already used by "+first, nil).
			WithDetail("id", docs[i].ID)
		s.logger.Warn("duplicate document id",
			append([]any{slog.String("path", docs[i].SourcePath)}, dexerrors.LogAttrs(dupErr)...)...)

		if s.opts.DisambiguateIDs {
			docs[i].ID = docs[i].ID + "-" + pathHash(absRoot, docs[i].SourcePath)
		}
	}

	return docs, duplicates
}

// isExcludedDir checks if a directory name is hidden or reserved.
func (s *Scanner) isExcludedDir(name string) bool {
	return strings.HasPrefix(name, ".") || slices.Contains(s.opts.ExcludeDirs, name)
}

// isEligible checks the filename against the configured suffixes.
func (s *Scanner) isEligible(name string) bool {
	for _, ext := range s.opts.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// isAncestor reports whether info refers to one of the directories already on the path.
func isAncestor(info fs.FileInfo, ancestors []fs.FileInfo) bool {
	for _, a := range ancestors {
		if os.SameFile(info, a) {
			return true
		}
	}
	return false
}

// pathHash returns the first 8 hex characters of the sha256 of the root-relative path.
func pathHash(absRoot, path string) string {
	rel, err := filepath.Rel(absRoot, path)
	if err != nil {
		rel = path
	}
	sum := sha256.Sum256([]byte(filepath.ToSlash(rel)))
	return hex.EncodeToString(sum[:])[:8]
}

// osFS is the real filesystem.
type osFS struct{}

func (osFS) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }

func (osFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

// ReadFile reads the whole file; the handle is closed on every path.
func (osFS) ReadFile(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return io.ReadAll(f)
}
