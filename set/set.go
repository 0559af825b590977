package set

import (
	"cmp"
	"sort"
)

// Set returns the unique members of incoming in sorted order.
func Set[T cmp.Ordered](incoming []T) []T {
	return Sort(Unique(incoming))
}

func Unique[T comparable](incoming []T) []T {
	seen := make(map[T]bool, len(incoming))
	result := make([]T, 0, len(incoming))
	for _, candidate := range incoming {
		if !seen[candidate] {
			seen[candidate] = true
			result = append(result, candidate)
		}
	}
	return result
}

func Sort[T cmp.Ordered](values []T) []T {
	sort.Slice(values, func(left, right int) bool {
		return values[left] < values[right]
	})
	return values
}

func Member[T comparable](haystack []T, needle T) bool {
	for _, candidate := range haystack {
		if candidate == needle {
			return true
		}
	}
	return false
}

func Keys[K cmp.Ordered, V any](source map[K]V) []K {
	result := make([]K, 0, len(source))
	for key := range source {
		result = append(result, key)
	}
	return Sort(result)
}

func Values[K cmp.Ordered, V any](source map[K]V) []V {
	result := make([]V, 0, len(source))
	for _, key := range Keys(source) {
		result = append(result, source[key])
	}
	return result
}
