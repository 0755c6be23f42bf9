package store

import (
	"hash"
	"math"

	"github.com/spaolacci/murmur3"
)

// columnFilter is a Bloom filter over a chunkset's on-disk column names,
// built by every ReadMeta call once the names are read. It is purely an
// early-out: spec.md §4.6 mandates an exact linear byte-compare to find
// a column by name, and that scan remains the source of truth. The
// filter only lets a lookup skip the scan entirely when a name cannot
// possibly be present, the same role the teacher's SSTable filter played
// for key lookups, redirected from "might this key be in this file" to
// "might this name be in this column list".
type columnFilter struct {
	bitset  []bool
	hashFns []hash.Hash32
}

func newColumnFilter(names []string) *columnFilter {
	n := len(names)
	if n == 0 {
		return nil
	}
	const falsePositiveRate = 0.01

	m := int(math.Ceil(-float64(n) * math.Log(falsePositiveRate) / math.Pow(math.Log(2), 2)))
	k := int(math.Round((float64(m) / float64(n)) * math.Log(2)))
	if m == 0 {
		m = 1
	}
	if k == 0 {
		k = 1
	}

	hashFns := make([]hash.Hash32, k)
	for i := 0; i < k; i++ {
		hashFns[i] = murmur3.New32WithSeed(uint32(i))
	}

	f := &columnFilter{bitset: make([]bool, m), hashFns: hashFns}
	for _, name := range names {
		f.add(name)
	}
	return f
}

func (f *columnFilter) add(name string) {
	for _, fn := range f.hashFns {
		_, _ = fn.Write([]byte(name))
		index := int(fn.Sum32()) % len(f.bitset)
		f.bitset[index] = true
		fn.Reset()
	}
}

// mightContain returns false only when name is definitely absent. A true
// result is not a guarantee of presence — the caller still runs the
// exact scan.
func (f *columnFilter) mightContain(name string) bool {
	if f == nil {
		return true
	}
	for _, fn := range f.hashFns {
		_, _ = fn.Write([]byte(name))
		index := int(fn.Sum32()) % len(f.bitset)
		fn.Reset()
		if !f.bitset[index] {
			return false
		}
	}
	return true
}
