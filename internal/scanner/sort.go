package scanner

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortByTitle orders docs by title using English collation.
// The sort is stable so equal titles keep their encounter order.
func SortByTitle(docs []Document) {
	// Collators keep internal buffers and are not safe for concurrent use.
	c := collate.New(language.English)
	slices.SortStableFunc(docs, func(a, b Document) int {
		return c.CompareString(a.Title, b.Title)
	})
}
