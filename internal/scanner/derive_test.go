package scanner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveID(t *testing.T) {
	tests := []struct {
		name     string
		category string
		stem     string
		want     string
	}{
		{name: "simple", category: "A", stem: "x", want: "a-x"},
		{name: "nested category", category: "Tools/Coding", stem: "agent", want: "tools-coding-agent"},
		{name: "spaces and punctuation", category: "My Prompts", stem: "Hello, World!", want: "my-prompts-hello--world-"},
		{name: "dots and underscores", category: "v1.2", stem: "snake_case", want: "v1-2-snake-case"},
		{name: "hyphens kept", category: "a-b", stem: "c-d", want: "a-b-c-d"},
		{name: "non-ascii replaced", category: "Café", stem: "résumé", want: "caf--r-sum-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveID(tt.category, tt.stem))
		})
	}
}

func TestFormatTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "agent", want: "Agent"},
		{in: "code_review-bot", want: "Code Review Bot"},
		{in: "already Title", want: "Already Title"},
		{in: "v0.dev", want: "V0.Dev"},
		{in: "o'neil", want: "O'Neil"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTitle(tt.in))
		})
	}
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("  \n\t "))
	assert.Equal(t, 3, WordCount("  one two\nthree  "))
}

func TestFormatTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2025, 1, 2, 5, 4, 5, 678_000_000, loc)

	assert.Equal(t, "2025-01-02T03:04:05.678Z", FormatTimestamp(ts))
}

func TestDirCategory(t *testing.T) {
	assert.Equal(t, "A/B", DirCategory("/r/A/B/x.md", []string{"A", "B"}))
	assert.Equal(t, "r", DirCategory("/r/x.md", nil))
}

func TestSortByTitle(t *testing.T) {
	docs := []Document{
		{ID: "1", Title: "cherry"},
		{ID: "2", Title: "Banana"},
		{ID: "3", Title: "apple"},
		{ID: "4", Title: "Éclair"},
		{ID: "5", Title: "Banana"},
	}

	SortByTitle(docs)

	assert.Equal(t, []string{"3", "2", "5", "1", "4"}, ids(docs))
}
