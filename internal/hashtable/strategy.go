package hashtable

// HashFunc maps a key to an unsigned word used to pick its bucket.
// The size parameter carries the table's configured key width; hash functions
// that derive the key's extent themselves (text keys) may ignore it.
type HashFunc func(key []byte, size int) uint64

// CompareFunc reports the ordering of two keys the way bytes.Compare does.
// The table only ever evaluates it against zero (equality).
type CompareFunc func(a, b []byte, size int) int

// CopyFunc transfers a caller-supplied buffer into table-owned storage.
// Whatever a CopyFunc acquires, the matching DestroyFunc must fully release.
type CopyFunc func(src []byte, size int) ([]byte, error)

// DestroyFunc releases a buffer previously produced by the matching CopyFunc.
type DestroyFunc func(buf []byte)

// Strategies bundles the pluggable behaviours parameterizing a Table over
// arbitrary key/value content. Nil fields fall back to the package defaults.
type Strategies struct {
	Hash         HashFunc
	Compare      CompareFunc
	CopyKey      CopyFunc
	CopyValue    CopyFunc
	DestroyKey   DestroyFunc
	DestroyValue DestroyFunc
}

// CompareBytes is the default key comparison.
// It compares up to size bytes of both buffers; if one buffer is shorter, its
// missing tail is treated as zero bytes, matching the fixed-width padding
// CopyBytes applies.
func CompareBytes(a, b []byte, size int) int {
	if len(a) > size {
		a = a[:size]
	}
	if len(b) > size {
		b = b[:size]
	}
	for i := 0; i < size; i++ {
		var av, bv byte
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

// CopyBytes is the default copy strategy. It duplicates the source into a
// fresh buffer of exactly size bytes, zero-padding if the source is shorter.
func CopyBytes(src []byte, size int) ([]byte, error) {
	dst := make([]byte, size)
	copy(dst, src)
	return dst, nil
}

// DestroyNoop is the default destroy strategy. Plain buffers are reclaimed by
// the garbage collector; the slot exists so strategies that hold external
// resources can release them symmetrically to their copy.
func DestroyNoop([]byte) {}

// resolve fills every nil slot with the package default.
func (strategies Strategies) resolve() Strategies {
	if strategies.Hash == nil {
		strategies.Hash = HashDJB2
	}
	if strategies.Compare == nil {
		strategies.Compare = CompareBytes
	}
	if strategies.CopyKey == nil {
		strategies.CopyKey = CopyBytes
	}
	if strategies.CopyValue == nil {
		strategies.CopyValue = CopyBytes
	}
	if strategies.DestroyKey == nil {
		strategies.DestroyKey = DestroyNoop
	}
	if strategies.DestroyValue == nil {
		strategies.DestroyValue = DestroyNoop
	}
	return strategies
}
