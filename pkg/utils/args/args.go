// Package args adapts "parse a string into T" functions to the flag.Value
// interface, so command line flags can carry domain types.
package args

// Parser wraps a parser function as a flag.Value.
//
// Pass the returned Adapter to flag.Var, then read the parsed value
// with its Value() after flag.Parse.
func Parser[T interface{ String() string }](parse func(string) (T, error)) *Adapter[T] {
	return &Adapter[T]{parse: parse}
}

type Adapter[T interface{ String() string }] struct {
	parse func(string) (T, error)
	value T
	isSet bool
}

// Set parses s. A value the parser rejects leaves the Adapter unset.
func (a *Adapter[T]) Set(s string) error {
	value, err := a.parse(s)
	if err != nil {
		return err
	}
	a.value = value
	a.isSet = true
	return nil
}

func (a *Adapter[T]) String() string {
	if !a.isSet {
		return ""
	}
	return a.value.String()
}

// Value is the parsed value, or the zero value while unset.
func (a *Adapter[T]) Value() T {
	return a.value
}

// IsSet tells whether the flag appeared on the command line.
func (a *Adapter[T]) IsSet() bool {
	return a.isSet
}
