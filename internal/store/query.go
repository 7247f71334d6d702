package store

import "strings"

// containsFold reports whether s contains substr, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func anyContainsFold(substr string, fields ...string) bool {
	for _, f := range fields {
		if containsFold(f, substr) {
			return true
		}
	}
	return false
}

func countBy[T any](records []T, key func(T) string) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[key(r)]++
	}
	return counts
}

// distinct returns the distinct values of key in first-seen order.
func distinct[T any](records []T, key func(T) string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, r := range records {
		k := key(r)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
