package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRC32_KnownVectors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "00000000"},
		{"hello", "3610a686"},
		{"The quick brown fox jumps over the lazy dog", "414fa339"},
	}

	fn := New(CRC32)
	for _, tt := range tests {
		assert.Equal(t, tt.want, fn([]byte(tt.input)), "CRC32(%q)", tt.input)
	}
}

func TestMurmur3_KnownVectors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "ab3e7c0b"},
		{"hello", "f313adcd"},
		{"consistent-hashing", "ddb9aad1"},
		{"shard-01", "9c0ba028"},
	}

	fn := New(Murmur3)
	for _, tt := range tests {
		assert.Equal(t, tt.want, fn([]byte(tt.input)), "Murmur3(%q)", tt.input)
	}
}

func TestXXHash64_EmptyVector(t *testing.T) {
	fn := New(XXHash64)
	assert.Equal(t, "ef46db3751d8e999", fn(nil))
}

// TestAliasedAlgorithms pins the fallback behavior: MD5, SHA1 and any
// unrecognized algorithm resolve to the Murmur3 implementation.
func TestAliasedAlgorithms(t *testing.T) {
	murmur := New(Murmur3)
	inputs := []string{"", "a", "ab", "abc", "abcd", "node1:vnode-17", "user:42"}

	for _, algo := range []Algorithm{MD5, SHA1, Algorithm("whirlpool"), Algorithm("")} {
		fn := New(algo)
		for _, in := range inputs {
			assert.Equal(t, murmur([]byte(in)), fn([]byte(in)),
				"algorithm %q should alias Murmur3 for input %q", algo, in)
		}
	}
}

func TestDigestWidthAndDeterminism(t *testing.T) {
	widths := map[Algorithm]int{
		CRC32:    8,
		Murmur3:  8,
		MD5:      8,
		SHA1:     8,
		XXHash64: 16,
	}
	inputs := []string{"", "x", "0:node1", "1:node1", "some longer input spanning blocks"}

	for algo, width := range widths {
		fn := New(algo)
		for _, in := range inputs {
			d1 := fn([]byte(in))
			d2 := fn([]byte(in))
			require.Equal(t, d1, d2, "%s digest of %q not deterministic", algo, in)
			require.Len(t, d1, width, "%s digest of %q has wrong width", algo, in)
			for _, c := range d1 {
				require.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f'),
					"%s digest %q contains non-hex character", algo, d1)
			}
		}
	}
}

// TestMurmur3_TailSensitivity makes sure every tail byte of a non-aligned
// input participates in the digest.
func TestMurmur3_TailSensitivity(t *testing.T) {
	fn := New(Murmur3)
	assert.NotEqual(t, fn([]byte("abcde")), fn([]byte("abcdf")))
	assert.NotEqual(t, fn([]byte("abcdef")), fn([]byte("abcdgf")))
	assert.NotEqual(t, fn([]byte("abcdefg")), fn([]byte("abcdehg")))
	assert.NotEqual(t, fn([]byte("abcd")), fn([]byte("abcde")))
}
