package hash

import "testing"

func TestSum64Deterministic(t *testing.T) {
	b := []byte("fst header bytes")
	h1 := Sum64(b)
	h2 := Sum64(b)
	if h1 != h2 {
		t.Fatalf("hash not deterministic: %x != %x", h1, h2)
	}
}

func TestSum64DetectsSingleByteFlip(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	base := Sum64(b)
	for i := range b {
		flipped := append([]byte{}, b...)
		flipped[i] ^= 0x01
		if Sum64(flipped) == base {
			t.Fatalf("byte flip at %d did not change hash", i)
		}
	}
}
