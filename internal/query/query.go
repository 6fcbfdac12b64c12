// Package query filters and aggregates an indexed document collection.
// Everything here is a linear pass over a slice; nothing is ranked.
package query

import (
	"strings"

	"github.com/Aman-CERP/promptdex/internal/scanner"
)

// Options narrows a document list. Empty fields mean "not provided".
type Options struct {
	// Category is matched exactly and case-sensitively.
	Category string `json:"category,omitempty"`

	// Search is matched case-insensitively as a substring of the title,
	// category, content, or any tag.
	Search string `json:"search,omitempty"`
}

// CategorySummary is one entry of the category listing.
type CategorySummary struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	// Description is reserved and currently never populated.
	Description string `json:"description,omitempty"`
}

// FilterFunc checks if a document matches filter criteria.
type FilterFunc func(doc *scanner.Document) bool

// Filter returns the documents matching opts, preserving input order.
// Filters use AND logic. The input slice is never modified.
func Filter(docs []scanner.Document, opts Options) []scanner.Document {
	filters := buildFilters(opts)

	filtered := make([]scanner.Document, 0, len(docs))
	for i := range docs {
		if matchesAll(&docs[i], filters) {
			filtered = append(filtered, docs[i])
		}
	}
	return filtered
}

func buildFilters(opts Options) []FilterFunc {
	var filters []FilterFunc

	if opts.Category != "" {
		filters = append(filters, categoryFilter(opts.Category))
	}
	if opts.Search != "" {
		filters = append(filters, searchFilter(opts.Search))
	}

	return filters
}

func matchesAll(doc *scanner.Document, filters []FilterFunc) bool {
	for _, f := range filters {
		if !f(doc) {
			return false
		}
	}
	return true
}

func categoryFilter(category string) FilterFunc {
	return func(doc *scanner.Document) bool {
		return doc.Category == category
	}
}

func searchFilter(search string) FilterFunc {
	needle := strings.ToLower(search)
	return func(doc *scanner.Document) bool {
		if strings.Contains(strings.ToLower(doc.Title), needle) ||
			strings.Contains(strings.ToLower(doc.Category), needle) ||
			strings.Contains(strings.ToLower(doc.Content), needle) {
			return true
		}
		for _, tag := range doc.Tags {
			if strings.Contains(strings.ToLower(tag), needle) {
				return true
			}
		}
		return false
	}
}

// Categories counts documents per category. The result is ordered by count,
// highest first; equal counts keep the order in which categories first appear.
func Categories(docs []scanner.Document) []CategorySummary {
	index := make(map[string]int)
	summaries := make([]CategorySummary, 0)

	for _, doc := range docs {
		if i, ok := index[doc.Category]; ok {
			summaries[i].Count++
			continue
		}
		index[doc.Category] = len(summaries)
		summaries = append(summaries, CategorySummary{Name: doc.Category, Count: 1})
	}

	sortByCount(summaries)
	return summaries
}

// Find returns the first document with the given id.
func Find(docs []scanner.Document, id string) (scanner.Document, bool) {
	for _, doc := range docs {
		if doc.ID == id {
			return doc, true
		}
	}
	return scanner.Document{}, false
}
