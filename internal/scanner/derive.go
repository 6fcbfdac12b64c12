package scanner

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var (
	// idUnsafe matches every rune that may not appear in a document id.
	idUnsafe = regexp.MustCompile(`[^a-z0-9-]`)

	// wordStart matches the first character of each word.
	wordStart = regexp.MustCompile(`\b\w`)
)

// TimestampLayout is the ISO-8601 layout used for LastModified (UTC, milliseconds).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// DeriveID builds the document id from its category and filename stem.
// Two files with the same stem in the same category get the same id.
func DeriveID(category, stem string) string {
	return idUnsafe.ReplaceAllString(strings.ToLower(category+"-"+stem), "-")
}

// FormatTitle turns "code_review-bot" into "Code Review Bot".
// It is applied to both front-matter titles and filename stems.
func FormatTitle(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return wordStart.ReplaceAllStringFunc(s, strings.ToUpper)
}

// WordCount counts whitespace-delimited tokens.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// DirCategory returns the slash-joined directory path below the root, or the
// name of the file's parent directory for files sitting directly in the root.
func DirCategory(path string, segments []string) string {
	if len(segments) > 0 {
		return strings.Join(segments, "/")
	}
	return filepath.Base(filepath.Dir(path))
}
