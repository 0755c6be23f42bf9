package column

import (
	"reflect"
	"testing"
)

func TestLevelDictSortsAndDedupes(t *testing.T) {
	d := NewLevelDict()
	for _, s := range []string{"banana", "apple", "cherry", "apple", "banana"} {
		d.Insert(s)
	}
	got := d.Levels()
	want := []string{"apple", "banana", "cherry"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuildFactorLevelsAssignsOneBasedRanksAndZeroForNA(t *testing.T) {
	w := SimpleStringWriter{
		Values:  []string{"mid", "lo", "hi", "mid"},
		Present: []bool{true, true, false, true},
	}
	codes, levels := BuildFactorLevels(w)
	wantLevels := []string{"lo", "mid"}
	if !reflect.DeepEqual(levels, wantLevels) {
		t.Fatalf("levels = %v, want %v", levels, wantLevels)
	}
	wantCodes := []int32{2, 1, 0, 2}
	if !reflect.DeepEqual(codes, wantCodes) {
		t.Fatalf("codes = %v, want %v", codes, wantCodes)
	}
}
