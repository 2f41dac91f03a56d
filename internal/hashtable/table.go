// Package hashtable provides a generic in-memory key-value table addressed by
// hash, using separate chaining for collision resolution and automatic
// load-factor driven resizing. Key and value content is opaque to the table:
// a pluggable strategy set (hash, compare, copy, destroy) parameterizes it
// over arbitrary fixed-width byte buffers.
//
// The table performs no internal synchronization; concurrent use has to be
// serialized by the caller.
package hashtable

import "errors"

const (
	// MinimalCapacity is the smallest bucket count a table may ever be
	// constructed with or shrink to.
	MinimalCapacity = 2

	// DefaultCapacity is used when a table is created with a capacity of 0.
	DefaultCapacity = 16

	// DefaultGrowThreshold is the load factor above which the table grows.
	DefaultGrowThreshold = 0.75

	// DefaultShrinkThreshold is the load factor below which the table shrinks.
	DefaultShrinkThreshold = 0.25
)

// ErrInvalidThresholds is returned by SetThresholds for threshold pairs that
// do not satisfy 0 < shrink < grow < 1.
var ErrInvalidThresholds = errors.New("hashtable: thresholds must satisfy 0 < shrink < grow < 1")

// Table represents a hash table storing fixed-width keys and values with
// separate chaining.
type Table struct {
	capacity  int
	keySize   int
	valueSize int
	count     int

	growThreshold   float64
	shrinkThreshold float64

	strategies Strategies

	buckets []*entry
}

// New creates a new table for keys and values of the given byte widths.
// An initial capacity of 0 selects DefaultCapacity; any capacity below
// MinimalCapacity is clamped to it. Nil strategy slots (or a nil strategy
// set altogether) fall back to the package defaults.
// Non-positive key or value widths are a caller defect and panic.
func New(initialCapacity, keySize, valueSize int, strategies *Strategies) *Table {
	if keySize <= 0 || valueSize <= 0 {
		panic("hashtable: key and value sizes must be positive")
	}

	if initialCapacity == 0 {
		initialCapacity = DefaultCapacity
	}
	if initialCapacity < MinimalCapacity {
		initialCapacity = MinimalCapacity
	}

	resolved := Strategies{}
	if strategies != nil {
		resolved = *strategies
	}

	return &Table{
		capacity:        initialCapacity,
		keySize:         keySize,
		valueSize:       valueSize,
		growThreshold:   DefaultGrowThreshold,
		shrinkThreshold: DefaultShrinkThreshold,
		strategies:      resolved.resolve(),
		buckets:         make([]*entry, initialCapacity),
	}
}

// Get looks up a key and returns the stored value.
// The returned buffer is the table's own storage, not a copy: it stays valid
// until the next structural mutation (Add, Remove or Close) and must not be
// retained across one.
func (table *Table) Get(key []byte) ([]byte, bool) {
	for current := table.buckets[table.index(key, table.capacity)]; current != nil; current = current.next {
		if table.strategies.Compare(key, current.key, table.keySize) == 0 {
			return current.value, true
		}
	}
	return nil, false
}

// Add inserts a key-value pair if the key is absent and returns the stored
// value buffer (the existing one if the key was already present - Add never
// overwrites). The buffer borrows the table's storage the same way Get does.
//
// If a copy strategy fails, the table is left exactly as before the call and
// the error is returned.
func (table *Table) Add(key, value []byte) ([]byte, error) {
	if existing, ok := table.Get(key); ok {
		return existing, nil
	}

	// Growing before the insert spares the fresh entry a redundant rehash.
	table.count++
	table.autoGrow()

	ent, err := table.newEntry(key, value)
	if err != nil {
		table.count--
		return nil, err
	}

	// Prepend to the chain so insertion stays O(1).
	index := table.index(key, table.capacity)
	ent.next = table.buckets[index]
	table.buckets[index] = ent

	return ent.value, nil
}

// Remove deletes a key from the table, releasing its key and value through
// the destroy strategies. It reports whether a matching key was found.
func (table *Table) Remove(key []byte) bool {
	index := table.index(key, table.capacity)

	var prev *entry
	for current := table.buckets[index]; current != nil; current = current.next {
		if table.strategies.Compare(key, current.key, table.keySize) == 0 {
			if prev != nil {
				prev.next = current.next
			} else {
				table.buckets[index] = current.next
			}

			table.destroyEntry(current)
			table.count--
			table.autoShrink()
			return true
		}
		prev = current
	}

	return false
}

// Count returns the number of stored key-value pairs.
func (table *Table) Count() int {
	return table.count
}

// Capacity returns the current bucket count.
func (table *Table) Capacity() int {
	return table.capacity
}

// KeySize returns the configured key width in bytes.
func (table *Table) KeySize() int {
	return table.keySize
}

// ValueSize returns the configured value width in bytes.
func (table *Table) ValueSize() int {
	return table.valueSize
}

// LoadFactor returns count divided by capacity.
func (table *Table) LoadFactor() float64 {
	return float64(table.count) / float64(table.capacity)
}

// Close destroys every stored entry through the destroy strategies and
// releases the bucket array. Using the table afterwards is out of contract.
func (table *Table) Close() {
	for _, head := range table.buckets {
		for current := head; current != nil; {
			next := current.next
			table.destroyEntry(current)
			current = next
		}
	}
	table.buckets = nil
	table.count = 0
}

// SetThresholds reconfigures the load factor window triggering resizes.
func (table *Table) SetThresholds(shrink, grow float64) error {
	if shrink <= 0 || shrink >= grow || grow >= 1 {
		return ErrInvalidThresholds
	}
	table.shrinkThreshold = shrink
	table.growThreshold = grow
	return nil
}

// SetHash replaces the hash strategy. Stored entries are immediately
// rehashed so their bucket positions match the new function.
func (table *Table) SetHash(hash HashFunc) {
	table.strategies.Hash = hash
	table.resize(table.capacity)
}

// SetCompare replaces the key comparison strategy.
func (table *Table) SetCompare(compare CompareFunc) {
	table.strategies.Compare = compare
}

// SetCopyKey replaces the key copy strategy.
func (table *Table) SetCopyKey(copyKey CopyFunc) {
	table.strategies.CopyKey = copyKey
}

// SetCopyValue replaces the value copy strategy.
func (table *Table) SetCopyValue(copyValue CopyFunc) {
	table.strategies.CopyValue = copyValue
}

// SetDestroyKey replaces the key destroy strategy.
func (table *Table) SetDestroyKey(destroyKey DestroyFunc) {
	table.strategies.DestroyKey = destroyKey
}

// SetDestroyValue replaces the value destroy strategy.
func (table *Table) SetDestroyValue(destroyValue DestroyFunc) {
	table.strategies.DestroyValue = destroyValue
}

// index computes the bucket index of a key under the given capacity.
func (table *Table) index(key []byte, capacity int) int {
	return int(table.strategies.Hash(key, table.keySize) % uint64(capacity))
}

// autoGrow widens the table by 50% once the load factor exceeds the grow
// threshold.
func (table *Table) autoGrow() {
	if table.LoadFactor() > table.growThreshold {
		table.resize(table.capacity + table.capacity/2)
	}
}

// autoShrink halves the table once the load factor falls below the shrink
// threshold.
func (table *Table) autoShrink() {
	if table.LoadFactor() < table.shrinkThreshold {
		table.resize(table.capacity / 2)
	}
}

// resize relinks every stored entry into a freshly allocated bucket array of
// the given capacity. Entry payloads are never copied or recreated; only the
// chain links change.
func (table *Table) resize(newCapacity int) {
	if newCapacity < MinimalCapacity {
		newCapacity = MinimalCapacity
	}

	newBuckets := make([]*entry, newCapacity)

	for _, head := range table.buckets {
		for current := head; current != nil; {
			next := current.next

			index := table.index(current.key, newCapacity)
			current.next = newBuckets[index]
			newBuckets[index] = current

			current = next
		}
	}

	table.buckets = newBuckets
	table.capacity = newCapacity
}
