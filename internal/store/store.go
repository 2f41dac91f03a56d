package store

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/skybi/table-server/internal/hashtable"
)

var (
	// ErrKeyTooLong is returned when a key exceeds the configured key width.
	ErrKeyTooLong = errors.New("store: key exceeds the configured width")

	// ErrValueTooLong is returned when a value exceeds the configured value width.
	ErrValueTooLong = errors.New("store: value exceeds the configured width")
)

// Store provides a string-keyed view on a raw hash table.
// The underlying table performs no synchronization of its own, so the store
// wraps every operation in a mutex to stay safe for concurrent use.
type Store struct {
	mtx   sync.Mutex
	table *hashtable.Table
}

// Stats is a point-in-time snapshot of the underlying table.
type Stats struct {
	Capacity   int     `json:"capacity"`
	Count      int     `json:"count"`
	LoadFactor float64 `json:"load_factor"`
	KeyWidth   int     `json:"key_width"`
	ValueWidth int     `json:"value_width"`
}

// New creates a new store limited to the given key and value widths.
// An initial capacity of 0 selects the table default.
func New(initialCapacity, maxKeyLength, maxValueLength int) *Store {
	return &Store{
		table: hashtable.New(initialCapacity, maxKeyLength, maxValueLength, &hashtable.Strategies{
			Compare:   hashtable.CompareText,
			CopyKey:   hashtable.CopyText,
			CopyValue: hashtable.CopyText,
		}),
	}
}

// SetThresholds reconfigures the resize trigger points of the underlying table.
func (store *Store) SetThresholds(shrink, grow float64) error {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	return store.table.SetThresholds(shrink, grow)
}

// Add stores a key-value pair if the key is absent. It returns the value that
// ends up stored (the existing one for an already-present key) and whether
// this call inserted it.
func (store *Store) Add(key, value string) (string, bool, error) {
	if err := store.check(key, value); err != nil {
		return "", false, err
	}

	store.mtx.Lock()
	defer store.mtx.Unlock()

	before := store.table.Count()
	stored, err := store.table.Add([]byte(key), []byte(value))
	if err != nil {
		return "", false, err
	}
	return string(stored), store.table.Count() > before, nil
}

// Lookup returns the value assigned to the given key and whether it exists.
func (store *Store) Lookup(key string) (string, bool) {
	store.mtx.Lock()
	defer store.mtx.Unlock()

	value, ok := store.table.Get([]byte(key))
	if !ok {
		return "", false
	}
	return string(value), true
}

// Remove deletes the given key and reports whether it existed.
func (store *Store) Remove(key string) bool {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	return store.table.Remove([]byte(key))
}

// Size returns the amount of stored key-value pairs.
func (store *Store) Size() int {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	return store.table.Count()
}

// Stats returns a snapshot of the underlying table's state.
func (store *Store) Stats() Stats {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	return Stats{
		Capacity:   store.table.Capacity(),
		Count:      store.table.Count(),
		LoadFactor: store.table.LoadFactor(),
		KeyWidth:   store.table.KeySize(),
		ValueWidth: store.table.ValueSize(),
	}
}

// Dump writes the diagnostic rendering of the underlying table.
func (store *Store) Dump(w io.Writer) error {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	return store.table.Dump(w, hashtable.FormatText, hashtable.FormatText)
}

// Close tears down the underlying table. The store must not be used afterwards.
func (store *Store) Close() {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	store.table.Close()
}

func (store *Store) check(key, value string) error {
	if len(key) > store.table.KeySize() {
		return fmt.Errorf("%w: %d > %d bytes", ErrKeyTooLong, len(key), store.table.KeySize())
	}
	if len(value) > store.table.ValueSize() {
		return fmt.Errorf("%w: %d > %d bytes", ErrValueTooLong, len(value), store.table.ValueSize())
	}
	return nil
}
