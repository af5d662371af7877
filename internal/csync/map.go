package csync

import (
	"sync"
)

// Map is a thread-safe map that remembers insertion order.
// It uses a RWMutex for concurrent read access and exclusive write access.
type Map[K comparable, V any] struct {
	data  map[K]V
	order []K
	mu    sync.RWMutex
}

// Pair is one key-value entry of a Map
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// NewMap creates a new thread-safe map
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		data: make(map[K]V),
	}
}

// Set stores a key-value pair. New keys are appended to the order.
func (m *Map[K, V]) Set(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; !exists {
		m.order = append(m.order, key)
	}
	m.data[key] = value
}

// Update overwrites the value of an existing key. It returns false and
// leaves the map unchanged when the key is absent.
func (m *Map[K, V]) Update(key K, value V) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; !exists {
		return false
	}
	m.data[key] = value
	return true
}

// Get retrieves a value by key, returns the value and whether it exists
func (m *Map[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.data[key]
	return value, exists
}

// Len returns the number of key-value pairs in the map
func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Keys returns the keys in insertion order
func (m *Map[K, V]) Keys() []K {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]K, len(m.order))
	copy(keys, m.order)
	return keys
}

// Range iterates over all key-value pairs in insertion order.
// The function f is called for each pair. If f returns false, iteration stops.
// f must not modify the map.
func (m *Map[K, V]) Range(f func(key K, value V) bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, key := range m.order {
		if !f(key, m.data[key]) {
			break
		}
	}
}

// Replace swaps the whole content for pairs, in the given order.
// A key repeated in pairs keeps its first position and its last value.
func (m *Map[K, V]) Replace(pairs []Pair[K, V]) {
	data := make(map[K]V, len(pairs))
	order := make([]K, 0, len(pairs))
	for _, p := range pairs {
		if _, exists := data[p.Key]; !exists {
			order = append(order, p.Key)
		}
		data[p.Key] = p.Value
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.order = order
}

// Pairs returns a copy of the content in insertion order
func (m *Map[K, V]) Pairs() []Pair[K, V] {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pairs := make([]Pair[K, V], len(m.order))
	for i, key := range m.order {
		pairs[i] = Pair[K, V]{Key: key, Value: m.data[key]}
	}
	return pairs
}
