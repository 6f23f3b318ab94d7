package cmp

// SliceEq reports whether a and b hold equal elements in the same order.
func SliceEq[T comparable](a []T, b []T) bool {
	return SliceEqWith(a, b, func(va, vb T) bool { return va == vb })
}

// SliceEqWith reports whether a and b match element by element under eq.
func SliceEqWith[T any, U any](a []T, b []U, eq func(T, U) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for nth := range a {
		if !eq(a[nth], b[nth]) {
			return false
		}
	}
	return true
}

// SliceContentEq reports whether a and b hold the same elements
// regardless of order, counting duplicates. Equality of bags.
func SliceContentEq[T comparable](a, b []T) bool {
	return SliceContentEqWith(a, b, func(va, vb T) bool { return va == vb })
}

// SliceContentEqWith is SliceContentEq under eq. Each element of b
// can match at most one element of a.
func SliceContentEqWith[S, T any](a []S, b []T, eq func(S, T) bool) bool {
	if len(a) != len(b) {
		return false
	}

	used := make([]bool, len(b))
	for _, ea := range a {
		found := false
		for i, eb := range b {
			if used[i] || !eq(ea, eb) {
				continue
			}
			used[i] = true
			found = true
			break
		}
		if !found {
			return false
		}
	}
	return true
}
