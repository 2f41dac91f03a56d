package hashtable

import (
	"fmt"
	"io"
)

// FormatFunc renders a key or value buffer for diagnostic output.
type FormatFunc func(buf []byte) string

// FormatRaw is the fallback rendering used by Dump for nil format callbacks.
func FormatRaw(buf []byte) string {
	return fmt.Sprintf("0x%x", buf)
}

// Dump writes a diagnostic rendering of the table to the given writer:
// its configuration, count, load factor and every stored entry grouped by
// bucket index. It is a debugging aid, not part of the table contract.
func (table *Table) Dump(w io.Writer, formatKey, formatValue FormatFunc) error {
	if formatKey == nil {
		formatKey = FormatRaw
	}
	if formatValue == nil {
		formatValue = FormatRaw
	}

	if _, err := fmt.Fprintf(
		w,
		"(hashtable):\n{\n    key_size: %d bytes\n    value_size: %d bytes\n    capacity: %d\n    count: %d\n    load_factor: %.2f\n    buckets:\n    [\n",
		table.keySize, table.valueSize, table.capacity, table.count, table.LoadFactor(),
	); err != nil {
		return err
	}

	for index, head := range table.buckets {
		for current := head; current != nil; current = current.next {
			// Entries are comma-separated; only an entry in the last bucket
			// with no successor closes the listing bare.
			separator := ",\n"
			if index == table.capacity-1 && current.next == nil {
				separator = ""
			}
			if _, err := fmt.Fprintf(w, "\t(%d) : %s  =>  %s%s", index, formatKey(current.key), formatValue(current.value), separator); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprint(w, "\n    ]\n}\n")
	return err
}
