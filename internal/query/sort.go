package query

import (
	"cmp"
	"slices"
)

// sortByCount orders summaries by descending count. The sort is stable.
func sortByCount(summaries []CategorySummary) {
	slices.SortStableFunc(summaries, func(a, b CategorySummary) int {
		return cmp.Compare(b.Count, a.Count)
	})
}
