// Package slices has the slice helpers the standard library lacks.
package slices

// Map applies mapper to each element, building a new slice.
func Map[T any, R any](sli []T, mapper func(v T) R) []R {
	ret := make([]R, len(sli))
	for nth, v := range sli {
		ret[nth] = mapper(v)
	}
	return ret
}

// First scans sli for the first element pred accepts.
// When no element matches, it returns the zero value and false.
func First[T any](sli []T, pred func(T) bool) (T, bool) {
	for _, v := range sli {
		if pred(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}
