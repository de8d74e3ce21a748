package stats

import (
	"sort"

	"github.com/verte-zerg/tuidict/internal/model"
)

// TopTerms returns the n most searched terms, ties broken alphabetically.
func TopTerms(aggs []model.TermAggregate, n int) []model.TermAggregate {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	items := make([]model.TermAggregate, len(aggs))
	copy(items, aggs)
	sort.Slice(items, func(i, j int) bool {
		if items[i].Searches == items[j].Searches {
			return items[i].Term < items[j].Term
		}
		return items[i].Searches > items[j].Searches
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
