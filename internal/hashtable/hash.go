package hashtable

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hash functions shipped as presets. djb2 and sdbm originate from
// http://www.cse.yorku.ca/~oz/hash.html and walk the logical extent of the
// key: up to size bytes, stopping early at a NUL byte so that text keys hash
// independently of their buffer width.

// HashDJB2 is the default hash function (seed 5381, hash*33 + byte).
// Unsigned overflow wraps silently.
func HashDJB2(key []byte, size int) uint64 {
	hash := uint64(5381)
	for _, b := range extent(key, size) {
		hash = hash<<5 + hash + uint64(b)
	}
	return hash
}

// HashSDBM is a drop-in alternative multiplicative hash function.
func HashSDBM(key []byte, size int) uint64 {
	var hash uint64
	for _, b := range extent(key, size) {
		hash = uint64(b) + hash<<6 + hash<<16 - hash
	}
	return hash
}

// HashIdentity reinterprets the key's leading 8 bytes as an unsigned word.
// It is only valid for keys that are exactly one machine word wide and
// already well distributed (sequence numbers, pre-hashed identifiers); any
// other use is out of contract.
func HashIdentity(key []byte, _ int) uint64 {
	return binary.LittleEndian.Uint64(key)
}

// HashXX hashes the full key extent with xxHash. Unlike the text-derived
// presets it does not stop at NUL bytes, making it the right choice for
// binary keys such as UUIDs or packed records.
func HashXX(key []byte, size int) uint64 {
	if size > 0 && size < len(key) {
		key = key[:size]
	}
	return xxhash.Sum64(key)
}

// extent clamps the key to size bytes and cuts it at the first NUL byte.
func extent(key []byte, size int) []byte {
	if size > 0 && size < len(key) {
		key = key[:size]
	}
	for i, b := range key {
		if b == 0 {
			return key[:i]
		}
	}
	return key
}
