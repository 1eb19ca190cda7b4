// Package hashring implements the digest and bucket-selection math behind
// partition routing: a CRC-64 key digest feeding Lamping & Veach's jump
// consistent hash algorithm.
package hashring

import (
	"hash"
	"hash/crc64"
)

var ecmaTable = crc64.MakeTable(crc64.ECMA)

// Digester produces a stable 64-bit digest of a key. It is a hash.Hash64 so
// it composes with anything written against that interface, the same shape
// the original implementation's Hasher trait gave its CRC-64 type.
type Digester struct {
	hash.Hash64
}

// NewDigester returns a Digester backed by the CRC-64/ECMA table. The
// algorithm and table are fixed: spec requires identical digests across
// versions and platforms, so this must never change once partitions have
// been routed against it.
func NewDigester() Digester {
	return Digester{crc64.New(ecmaTable)}
}

// Sum64 hashes key in one call without mutating shared state.
func Sum64(key []byte) uint64 {
	return crc64.Checksum(key, ecmaTable)
}

// JumpHash implements the jump consistent hash algorithm (Lamping & Veach,
// 2014): it maps a 64-bit digest to a bucket index in [0, numBuckets) such
// that increasing numBuckets by one moves only a 1/(numBuckets+1) fraction
// of keys. numBuckets must be positive.
func JumpHash(digest uint64, numBuckets int32) int32 {
	if numBuckets <= 0 {
		return 0
	}

	var b, j int64 = -1, 0
	for j < int64(numBuckets) {
		b = j
		digest = digest*2862933555777941757 + 1
		j = int64(float64(b+1) * (float64(int64(1)<<31) / float64((digest>>33)+1)))
	}
	return int32(b)
}

// Slot computes the bucket a key routes to out of numBuckets partitions.
// Identical key + numBuckets always yields the same slot, on any platform.
func Slot(key []byte, numBuckets int32) int32 {
	return JumpHash(Sum64(key), numBuckets)
}
