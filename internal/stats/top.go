package stats

import "sort"

// Ranked is a labelled count or share.
type Ranked[N int | float64] struct {
	Key   string
	Count N
}

// TopCounts returns the top N entries of counts, highest first.
// Ties are ordered by key.
func TopCounts[N int | float64](counts map[string]N, n int) []Ranked[N] {
	if n <= 0 || len(counts) == 0 {
		return nil
	}
	items := make([]Ranked[N], 0, len(counts))
	for k, v := range counts {
		items = append(items, Ranked[N]{Key: k, Count: v})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Key < items[j].Key
		}
		return items[i].Count > items[j].Count
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
