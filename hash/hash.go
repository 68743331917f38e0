// Package hash provides the pluggable digest functions used to place
// virtual nodes and keys on the ring. Every function is pure: identical
// input always yields an identical fixed-width lowercase hex digest.
package hash

import (
	"fmt"
	"hash/crc32"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
)

// Algorithm names a supported digest algorithm.
type Algorithm string

const (
	// CRC32 is the standard reflected CRC-32 (polynomial 0xEDB88320,
	// initial and final register 0xFFFFFFFF).
	CRC32 Algorithm = "crc32"

	// Murmur3 is a 32-bit Murmur3 variant whose running hash is seeded
	// with 0x811C9DC5 instead of the conventional zero seed.
	Murmur3 Algorithm = "murmur3"

	// MD5 and SHA1 are declared for configuration compatibility but have
	// no distinct implementation: both resolve to Murmur3, as does any
	// unrecognized Algorithm value. Existing ring placements depend on
	// this fallback; a stricter design would reject the selection.
	MD5  Algorithm = "md5"
	SHA1 Algorithm = "sha1"

	// XXHash64 is the 64-bit xxHash digest.
	XXHash64 Algorithm = "xxhash64"
)

// Func maps a byte string to a fixed-width zero-padded lowercase hex digest.
// All digests produced by one Func share a width, so lexicographic order on
// them equals numeric order.
type Func func(data []byte) string

// New returns the digest function for the given algorithm. Unrecognized
// algorithms (MD5 and SHA1 included) resolve to Murmur3.
func New(algo Algorithm) Func {
	switch algo {
	case CRC32:
		return crc32Hex
	case XXHash64:
		return xxhash64Hex
	default:
		return murmur3Hex
	}
}

func crc32Hex(data []byte) string {
	return fmt.Sprintf("%08x", crc32.ChecksumIEEE(data))
}

func xxhash64Hex(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// murmurSeed initializes the Murmur3 running hash. Changing it would move
// every virtual node, so it is part of the digest contract.
const murmurSeed = 0x811c9dc5

func murmur3Hex(data []byte) string {
	return fmt.Sprintf("%08x", murmur3.Sum32WithSeed(data, murmurSeed))
}
