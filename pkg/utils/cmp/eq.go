// Package cmp compares slices and maps element-wise, directly or
// through a caller-supplied predicate.
package cmp

// PEqEq compares two pointers by their pointees. Two nils are equal.
func PEqEq[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// PEqualWith compares two pointers by applying pred to their pointees.
// Two nils are equal.
func PEqualWith[T any](a, b *T, pred func(T, T) bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return pred(*a, *b)
}
