package hashtable

import (
	"bytes"
	"fmt"
)

// Presets for NUL-padded text keys and values. They derive the logical string
// extent themselves instead of relying on the configured width, the same way
// strcmp/strdup-style helpers behave on C strings.

// CompareText compares two buffers as NUL-terminated text, ignoring anything
// past the first NUL byte.
func CompareText(a, b []byte, _ int) int {
	return bytes.Compare(cut(a), cut(b))
}

// CopyText duplicates only the logical string extent of the source,
// independently of the configured width.
func CopyText(src []byte, _ int) ([]byte, error) {
	dst := make([]byte, len(cut(src)))
	copy(dst, src)
	return dst, nil
}

// FormatText renders a buffer as a quoted string for diagnostic dumps.
func FormatText(buf []byte) string {
	return fmt.Sprintf("%q", cut(buf))
}

// cut returns the slice up to the first NUL byte.
func cut(buf []byte) []byte {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return buf[:i]
	}
	return buf
}
