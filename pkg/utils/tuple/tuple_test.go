package tuple_test

import (
	"testing"

	"github.com/passportware/featsync/pkg/utils/cmp"
	"github.com/passportware/featsync/pkg/utils/tuple"
)

func TestPair(t *testing.T) {

	t.Run("Decompose returns both elements", func(t *testing.T) {
		a, b := tuple.PairOf("one", 1).Decompose()
		if a != "one" || b != 1 {
			t.Errorf("pair unmatch: (%v, %v)", a, b)
		}
	})

	t.Run("String renders both elements", func(t *testing.T) {
		if s := tuple.PairOf("one", 1).String(); s != "Pair{one, 1}" {
			t.Errorf("string unmatch: %s", s)
		}
	})
}

func TestUnzipPair(t *testing.T) {

	t.Run("it splits pairs into two slices, keeping order", func(t *testing.T) {
		firsts, seconds := tuple.UnzipPair([]tuple.Pair[string, int]{
			tuple.PairOf("one", 1),
			tuple.PairOf("two", 2),
			tuple.PairOf("three", 3),
		})

		if !cmp.SliceEq(firsts, []string{"one", "two", "three"}) {
			t.Errorf("firsts unmatch: %+v", firsts)
		}
		if !cmp.SliceEq(seconds, []int{1, 2, 3}) {
			t.Errorf("seconds unmatch: %+v", seconds)
		}
	})

	t.Run("no pairs unzip to empty slices", func(t *testing.T) {
		firsts, seconds := tuple.UnzipPair([]tuple.Pair[string, int]{})
		if len(firsts) != 0 || len(seconds) != 0 {
			t.Errorf("slices should be empty: %+v / %+v", firsts, seconds)
		}
	})
}
