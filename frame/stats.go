package frame

import "slices"

// Mode returns the most frequent value, preferring the value that reached
// the winning count first. It returns 0 for no values.
func Mode(values []int) int {
	if len(values) == 0 {
		return 0
	}
	counts := make(map[int]int, len(values))
	best, bestCount := values[0], 0
	for _, v := range values {
		counts[v]++
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

// Median returns the upper median of values. It returns 0 for no values.
func Median(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return sorted[len(sorted)/2]
}
