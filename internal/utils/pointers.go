package utils

// ValueOr dereferences ptr, or returns fallback when ptr is nil.
func ValueOr[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

func ToPtr[T any](v T) *T {
	return &v
}
