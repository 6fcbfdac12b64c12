package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Status_PrintsIconAndMessage(t *testing.T) {
	// Given: a writer with a buffer
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: printing a status message
	w.Status("🔍", "Scanning prompts...")

	// Then: output contains icon and message
	assert.Equal(t, "🔍 Scanning prompts...\n", buf.String())
}

func TestWriter_Status_NoIconIndents(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Status("", "detail")

	assert.Equal(t, "   detail\n", buf.String())
}

func TestWriter_Icons(t *testing.T) {
	tests := []struct {
		name  string
		print func(*Writer)
		icon  string
		msg   string
	}{
		{"success", func(w *Writer) { w.Success("Config written") }, "✅", "Config written"},
		{"warning", func(w *Writer) { w.Warningf("%d files skipped", 2) }, "⚠️", "2 files skipped"},
		{"error", func(w *Writer) { w.Errorf("prompt %q not found", "a-x") }, "❌", `prompt "a-x" not found`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.print(New(buf))

			assert.Contains(t, buf.String(), tt.icon)
			assert.Contains(t, buf.String(), tt.msg)
		})
	}
}

func TestWriter_Field_SkipsEmptyValues(t *testing.T) {
	// Given: a writer
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: printing one empty and one set field
	w.Field("Description", "")
	w.Field("Category", "Tools/Coding")

	// Then: only the set field appears
	assert.Equal(t, "Category: Tools/Coding\n", buf.String())
}

func TestWriter_Code_IndentsLines(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Code("line one\nline two")

	assert.Equal(t, "\n  line one\n  line two\n\n", buf.String())
}

func TestWriter_Table_AlignsColumns(t *testing.T) {
	// Given: rows of different widths
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: rendering a table
	w.Table([]string{"ID", "TITLE", "WORDS"}, [][]string{
		{"tools-coding-review", "Review", "12"},
		{"a-x", "X", "3"},
	})

	// Then: columns line up and trailing spaces are trimmed
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID                   TITLE   WORDS", lines[0])
	assert.Equal(t, "tools-coding-review  Review  12", lines[1])
	assert.Equal(t, "a-x                  X       3", lines[2])
}

func TestWriter_Table_ShortRows(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Table([]string{"NAME", "COUNT"}, [][]string{{"solo"}})

	assert.Equal(t, "NAME  COUNT\nsolo\n", buf.String())
}

func TestWriter_Newline_PrintsEmptyLine(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Newline()

	assert.Equal(t, "\n", buf.String())
}

func TestNew_BufferIsNotATerminal(t *testing.T) {
	// Given/When: a non-file writer
	buf := &bytes.Buffer{}

	// Then: it is never treated as a terminal
	assert.False(t, IsTTY(buf))
	assert.False(t, UseColor(buf))
}

func TestDetectNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, DetectNoColor())
}
