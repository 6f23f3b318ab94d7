package maps

import "github.com/passportware/featsync/pkg/utils/tuple"

// orderedMap remembers the order keys were first set in.
type orderedMap[K comparable, V any] struct {
	entries []tuple.Pair[K, V]
	index   map[K]int
}

// NewOrderedMap creates a Map whose Keys, Values and Iter follow
// insertion order. Setting an existing key replaces its value in place.
func NewOrderedMap[K comparable, V any](initial ...tuple.Pair[K, V]) Map[K, V] {
	m := &orderedMap[K, V]{index: map[K]int{}}
	for _, pair := range initial {
		m.Set(pair.First, pair.Second)
	}
	return m
}

func (m *orderedMap[K, V]) Set(k K, v V) {
	if at, ok := m.index[k]; ok {
		m.entries[at].Second = v
		return
	}
	m.index[k] = len(m.entries)
	m.entries = append(m.entries, tuple.PairOf(k, v))
}

func (m *orderedMap[K, V]) Get(k K) (V, bool) {
	if at, ok := m.index[k]; ok {
		return m.entries[at].Second, true
	}
	var zero V
	return zero, false
}

func (m *orderedMap[K, V]) Keys() []K {
	keys := make([]K, len(m.entries))
	for i, entry := range m.entries {
		keys[i] = entry.First
	}
	return keys
}

func (m *orderedMap[K, V]) Values() []V {
	values := make([]V, len(m.entries))
	for i, entry := range m.entries {
		values[i] = entry.Second
	}
	return values
}

func (m *orderedMap[K, V]) Delete(k K) {
	at, ok := m.index[k]
	if !ok {
		return
	}
	delete(m.index, k)
	m.entries = append(m.entries[:at], m.entries[at+1:]...)
	for i := at; i < len(m.entries); i++ {
		m.index[m.entries[i].First] = i
	}
}

func (m *orderedMap[K, V]) Len() int {
	return len(m.entries)
}

func (m *orderedMap[K, V]) Iter() func(yield func(k K, v V) bool) {
	return func(yield func(k K, v V) bool) {
		for _, entry := range m.entries {
			if !yield(entry.First, entry.Second) {
				break
			}
		}
	}
}

func (m *orderedMap[K, V]) ToMap() map[K]V {
	ret := make(map[K]V, len(m.entries))
	for _, entry := range m.entries {
		ret[entry.First] = entry.Second
	}
	return ret
}
