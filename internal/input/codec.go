package input

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/zeebo/xxh3"
)

// ErrCorrupt is returned when a cache entry does not decode.
var ErrCorrupt = errors.New("corrupt input cache entry")

const (
	countSize = 8
	valueSize = 4
)

// encodedSize is the number of bytes an n-value dataset occupies on disk.
func encodedSize(n int) int {
	return countSize + n*valueSize
}

// Encode serializes vals as a little-endian uint64 count followed by
// little-endian int32 values.
func Encode(vals []int32) []byte {
	buf := make([]byte, encodedSize(len(vals)))
	binary.LittleEndian.PutUint64(buf, uint64(len(vals)))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[countSize+i*valueSize:], uint32(v)) //nolint:gosec // bit-preserving
	}
	return buf
}

// Decode parses a count-prefixed dataset. Bytes after the last value are ignored.
func Decode(buf []byte) ([]int32, error) {
	if len(buf) < countSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrCorrupt, len(buf), countSize)
	}
	count := binary.LittleEndian.Uint64(buf)
	avail := uint64(len(buf)-countSize) / valueSize
	if count > avail {
		return nil, fmt.Errorf("%w: count %d exceeds %d encoded values", ErrCorrupt, count, avail)
	}

	vals := make([]int32, count)
	for i := range vals {
		vals[i] = int32(binary.LittleEndian.Uint32(buf[countSize+i*valueSize:])) //nolint:gosec // bit-preserving
	}
	return vals, nil
}

// Fingerprint hashes the encoded form of vals.
// Equal fingerprints mean the cache file bytes are equal.
func Fingerprint(vals []int32) uint64 {
	return xxh3.Hash(Encode(vals))
}
