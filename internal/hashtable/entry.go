package hashtable

// entry holds one table-owned key/value pair and links to the next entry in
// the same bucket. Entries are created only by Add, relocated (never
// recreated) during a resize and destroyed only by Remove or Close.
type entry struct {
	key   []byte
	value []byte
	next  *entry
}

// newEntry copies the caller's key and value into table-owned storage.
// If the value copy fails, the already-copied key is released again through
// the destroy strategy so that a failed creation leaves nothing behind.
func (table *Table) newEntry(key, value []byte) (*entry, error) {
	keyCopy, err := table.strategies.CopyKey(key, table.keySize)
	if err != nil {
		return nil, err
	}

	valueCopy, err := table.strategies.CopyValue(value, table.valueSize)
	if err != nil {
		table.strategies.DestroyKey(keyCopy)
		return nil, err
	}

	return &entry{key: keyCopy, value: valueCopy}, nil
}

// destroyEntry releases the entry's key and value through the destroy
// strategies.
func (table *Table) destroyEntry(ent *entry) {
	table.strategies.DestroyKey(ent.key)
	table.strategies.DestroyValue(ent.value)
}
