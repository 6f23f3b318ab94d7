package maps

// Map is a key-value store.
//
// Unlike built-in map, implementations can have extra properties,
// ordered keys for example.
type Map[K comparable, V any] interface {
	// Set stores a value for a key. Existing value for the key is replaced.
	Set(k K, v V)

	// Get returns the value for a key, and whether the key is present.
	Get(k K) (V, bool)

	// Keys returns all keys.
	Keys() []K

	// Values returns all values.
	Values() []V

	// Delete removes a key and its value.
	Delete(k K)

	// Len returns the number of keys.
	Len() int

	// Iter returns an iterator over key-value pairs, for range-over-func.
	Iter() func(yield func(k K, v V) bool)

	// ToMap copies the content into a built-in map.
	ToMap() map[K]V
}
