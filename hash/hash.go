// Package hash wraps the non-cryptographic hash used to integrity-check
// every header record in the store format.
package hash

import "github.com/cespare/xxhash/v2"

// Seed is the fixed seed every header hash in the format is computed with.
// Changing it would invalidate every file written by this package.
const Seed uint64 = 0x51a8e981bf823c61

// Sum64 computes the seeded XXH64 digest of b. Every header record reserves
// its first 8 bytes for this value, computed over the remainder of the
// record only — callers pass that remainder, never the whole record.
func Sum64(b []byte) uint64 {
	d := xxhash.NewWithSeed(Seed)
	d.Write(b)
	return d.Sum64()
}
