package scoring

import "sort"

// SelectTopK returns the k highest-scoring items in descending key order.
// The sort is stable: items with equal keys keep their original relative
// order, and no secondary tie-break key is introduced. k <= 0 yields an
// empty result; fewer than k items yields all of them. The input slice is
// never modified.
func SelectTopK[T any](items []T, key func(T) float64, k int) []T {
	if k <= 0 || len(items) == 0 {
		return []T{}
	}

	ranked := make([]T, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		return key(ranked[i]) > key(ranked[j])
	})

	if k < len(ranked) {
		ranked = ranked[:k:k]
	}
	return ranked
}
