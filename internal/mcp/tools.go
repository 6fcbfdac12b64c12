package mcp

import (
	"github.com/Aman-CERP/promptdex/internal/query"
	"github.com/Aman-CERP/promptdex/internal/scanner"
)

// Tool names.
const (
	ToolListPrompts    = "list_prompts"
	ToolGetPrompt      = "get_prompt"
	ToolListCategories = "list_categories"
)

// ListPromptsInput defines the input schema for the list_prompts tool.
type ListPromptsInput struct {
	Search   string `json:"search,omitempty" jsonschema:"case-insensitive text matched against title, category, content and tags"`
	Category string `json:"category,omitempty" jsonschema:"exact category name, e.g. Tools/Coding"`
}

// ListPromptsOutput defines the output schema for the list_prompts tool.
type ListPromptsOutput struct {
	Prompts []PromptSummary `json:"prompts" jsonschema:"matching prompts ordered by title"`
}

// PromptSummary is a prompt without its content, to keep listings small.
type PromptSummary struct {
	ID          string   `json:"id" jsonschema:"prompt id, pass to get_prompt"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags"`
	WordCount   int      `json:"word_count"`
}

// GetPromptInput defines the input schema for the get_prompt tool.
type GetPromptInput struct {
	ID string `json:"id" jsonschema:"the prompt id as returned by list_prompts"`
}

// GetPromptOutput defines the output schema for the get_prompt tool.
type GetPromptOutput struct {
	Prompt scanner.Document `json:"prompt"`
}

// ListCategoriesInput defines the input schema for the list_categories tool (no parameters).
type ListCategoriesInput struct{}

// ListCategoriesOutput defines the output schema for the list_categories tool.
type ListCategoriesOutput struct {
	Categories []query.CategorySummary `json:"categories" jsonschema:"categories with document counts, largest first"`
}

// toSummary drops the content of a document.
func toSummary(doc scanner.Document) PromptSummary {
	return PromptSummary{
		ID:          doc.ID,
		Title:       doc.Title,
		Category:    doc.Category,
		Description: doc.Description,
		Tags:        doc.Tags,
		WordCount:   doc.WordCount,
	}
}
