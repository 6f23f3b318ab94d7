// Package try shortens (value, error) handling in tests.
package try

// Fataler is anything with a Fatal method, like *testing.T or log.Logger.
type Fataler interface {
	Fatal(...any)
}

// Either holds a (value, error) pair from a fallible call.
type Either[T any] interface {
	// Get returns the pair as-is.
	Get() (T, error)

	// OrFatal returns the value, or calls ftl.Fatal with the error.
	// When ftl has a Helper method, as *testing.T does, it is called first.
	OrFatal(ftl Fataler) T

	// OrDefault returns the value, or d when there was an error.
	OrDefault(d T) T
}

// To wraps a function call returning (T, error):
//
//	value := try.To(strconv.Atoi(s)).OrFatal(t)
func To[T any](value T, err error) Either[T] {
	if err != nil {
		return failed[T]{err}
	}
	return succeeded[T]{value}
}

type succeeded[T any] struct {
	value T
}

func (s succeeded[T]) Get() (T, error)   { return s.value, nil }
func (s succeeded[T]) OrFatal(Fataler) T { return s.value }
func (s succeeded[T]) OrDefault(T) T     { return s.value }

type failed[T any] struct {
	err error
}

func (f failed[T]) Get() (T, error) {
	var zero T
	return zero, f.err
}

func (f failed[T]) OrFatal(ftl Fataler) T {
	if helper, ok := ftl.(interface{ Helper() }); ok {
		helper.Helper()
	}
	ftl.Fatal(f.err)

	var zero T
	return zero
}

func (f failed[T]) OrDefault(d T) T { return d }
