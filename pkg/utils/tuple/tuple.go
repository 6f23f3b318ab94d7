// Package tuple pairs two values, for passing key-value couples around.
package tuple

import "fmt"

type Pair[A, B any] struct {
	First  A
	Second B
}

func PairOf[A, B any](a A, b B) Pair[A, B] {
	return Pair[A, B]{First: a, Second: b}
}

func (p Pair[A, B]) Decompose() (A, B) {
	return p.First, p.Second
}

func (p Pair[A, B]) String() string {
	return fmt.Sprintf("Pair{%v, %v}", p.First, p.Second)
}

// UnzipPair splits pairs into the slice of firsts and the slice of
// seconds, keeping order.
func UnzipPair[A, B any](pairs []Pair[A, B]) ([]A, []B) {
	firsts := make([]A, len(pairs))
	seconds := make([]B, len(pairs))
	for nth, p := range pairs {
		firsts[nth], seconds[nth] = p.First, p.Second
	}
	return firsts, seconds
}
