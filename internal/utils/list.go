package utils

// Unique keeps the first occurrence of every value, preserving order.
func Unique[T comparable](values []T) []T {
	seen := make(map[T]struct{}, len(values))
	unique := make([]T, 0, len(values))
	for _, v := range values {
		if _, exists := seen[v]; !exists {
			seen[v] = struct{}{}
			unique = append(unique, v)
		}
	}
	return unique
}
