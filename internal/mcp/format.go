package mcp

import (
	"fmt"
	"strings"

	"github.com/Aman-CERP/promptdex/internal/query"
	"github.com/Aman-CERP/promptdex/internal/scanner"
)

// FormatPromptList formats a prompt listing as markdown.
func FormatPromptList(opts query.Options, docs []scanner.Document) string {
	if len(docs) == 0 {
		return "No prompts found" + describeFilter(opts)
	}

	var sb strings.Builder
	sb.WriteString("## Prompts" + describeFilter(opts) + "\n\n")
	sb.WriteString(fmt.Sprintf("Found %d prompt", len(docs)))
	if len(docs) != 1 {
		sb.WriteString("s")
	}
	sb.WriteString("\n\n")

	for _, doc := range docs {
		sb.WriteString(fmt.Sprintf("- **%s** `%s` (%s, %d words)", doc.Title, doc.ID, doc.Category, doc.WordCount))
		if doc.Description != "" {
			sb.WriteString(": " + doc.Description)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatPrompt formats a single prompt with its full content.
func FormatPrompt(doc scanner.Document) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s\n\n", doc.Title))
	sb.WriteString(fmt.Sprintf("**ID:** `%s`  \n", doc.ID))
	sb.WriteString(fmt.Sprintf("**Category:** %s  \n", doc.Category))
	if len(doc.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("**Tags:** %s  \n", strings.Join(doc.Tags, ", ")))
	}
	if doc.Description != "" {
		sb.WriteString(fmt.Sprintf("**Description:** %s  \n", doc.Description))
	}
	sb.WriteString(fmt.Sprintf("**Words:** %d\n\n", doc.WordCount))
	sb.WriteString("---\n\n")
	sb.WriteString(doc.Content)
	if !strings.HasSuffix(doc.Content, "\n") {
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatCategories formats the category listing as a markdown table.
func FormatCategories(cats []query.CategorySummary) string {
	if len(cats) == 0 {
		return "No categories found"
	}

	var sb strings.Builder
	sb.WriteString("## Categories\n\n")
	sb.WriteString("| Category | Prompts |\n|---|---|\n")
	for _, c := range cats {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", c.Name, c.Count))
	}
	return sb.String()
}

func describeFilter(opts query.Options) string {
	var parts []string
	if opts.Search != "" {
		parts = append(parts, fmt.Sprintf("matching \"%s\"", opts.Search))
	}
	if opts.Category != "" {
		parts = append(parts, fmt.Sprintf("in %s", opts.Category))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}
