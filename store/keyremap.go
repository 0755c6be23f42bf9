package store

// remapKeys implements spec.md §4.7: for each on-disk key position in
// order, find the selection index it maps to and emit it; stop at the
// first key that is not present in the selection. The result is always
// a prefix of the keys that survived selection — a key sequence loses
// its utility once its leading key is filtered out.
func remapKeys(keyColPos []int32, colIndex []int32) []int32 {
	outKeyIndex := make([]int32, 0, len(keyColPos))
	for _, key := range keyColPos {
		j := indexOf(colIndex, key)
		if j < 0 {
			break
		}
		outKeyIndex = append(outKeyIndex, int32(j))
	}
	return outKeyIndex
}

func indexOf(haystack []int32, v int32) int {
	for i, x := range haystack {
		if x == v {
			return i
		}
	}
	return -1
}
