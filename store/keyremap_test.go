package store

import (
	"reflect"
	"testing"
)

func TestRemapKeysAllPresentFollowsKeyOrder(t *testing.T) {
	// keyColPos=[0,2], selection colIndex=[2,0,1]: no key is missing. The
	// loop walks keyColPos in order, so key 0 (checked first) is found at
	// selection index 1, then key 2 is found at selection index 0.
	got := remapKeys([]int32{0, 2}, []int32{2, 0, 1})
	want := []int32{1, 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRemapKeysStopsOnAbsentKey(t *testing.T) {
	// key 2 is absent from the selection; key 0 survives first but the
	// loop stops there, regardless of whether key 3 would have matched.
	got := remapKeys([]int32{0, 2, 3}, []int32{0, 3, 1})
	want := []int32{0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRemapKeysEmpty(t *testing.T) {
	got := remapKeys(nil, []int32{0, 1, 2})
	if len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}
