// Package block implements the fixed-element-count block streamer: it
// turns a raw element buffer into a self-describing sequence of
// independently compressed blocks, and the inverse, supporting random
// access to an arbitrary contiguous row range without decompressing
// untouched blocks.
package block

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/17ai/fst/compress"
)

// headerFixedSize is the fixed-size prefix of a block stream header:
// nrOfElements (8) + elementSize (4) + blockSize (4) + nrOfBlocks (4).
const headerFixedSize = 20

// blockTableEntrySize is the size of one (compressedSize, algorithm,
// reserved) entry in the per-block table.
const blockTableEntrySize = 8

// WriteBlocks splits buf (nrOfElements elements of elementSize bytes each)
// into consecutive blocks of blockSize elements, asks strategy for each
// block's compression plan, and writes the block-size table followed by
// the compressed payloads and a length-prefixed annotation.
func WriteBlocks(w io.Writer, buf []byte, nrOfElements int, elementSize int, blockSize int, strategy compress.StreamCompressor, annotation string) error {
	if nrOfElements < 0 {
		return fmt.Errorf("block: negative element count %d", nrOfElements)
	}
	if len(buf) != nrOfElements*elementSize {
		return fmt.Errorf("block: buffer length %d does not match %d elements of size %d", len(buf), nrOfElements, elementSize)
	}

	nrOfBlocks := blockCount(nrOfElements, blockSize)
	strategy.CompressBufferSize(blockSize * elementSize)

	payloads := make([][]byte, nrOfBlocks)
	algos := make([]compress.Algorithm, nrOfBlocks)

	for i := 0; i < nrOfBlocks; i++ {
		start := i * blockSize * elementSize
		end := start + blockSize*elementSize
		if end > len(buf) {
			end = len(buf)
		}

		plan := strategy.Plan(i)
		compressed, err := compress.Apply(plan, buf[start:end])
		if err != nil {
			return fmt.Errorf("block: compress block %d: %w", i, err)
		}

		payloads[i] = compressed
		algos[i] = plan.Algorithm
	}

	header := make([]byte, headerFixedSize+blockTableEntrySize*nrOfBlocks)
	binary.LittleEndian.PutUint64(header[0:8], uint64(nrOfElements))
	binary.LittleEndian.PutUint32(header[8:12], uint32(elementSize))
	binary.LittleEndian.PutUint32(header[12:16], uint32(blockSize))
	binary.LittleEndian.PutUint32(header[16:20], uint32(nrOfBlocks))

	for i := 0; i < nrOfBlocks; i++ {
		off := headerFixedSize + i*blockTableEntrySize
		binary.LittleEndian.PutUint32(header[off:off+4], uint32(len(payloads[i])))
		header[off+4] = byte(algos[i])
		// header[off+5:off+8] stays zero: reserved for future per-block flags.
	}

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("block: write header: %w", err)
	}
	for i, p := range payloads {
		if _, err := w.Write(p); err != nil {
			return fmt.Errorf("block: write payload %d: %w", i, err)
		}
	}

	annBytes := []byte(annotation)
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(annBytes)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("block: write annotation length: %w", err)
	}
	if _, err := w.Write(annBytes); err != nil {
		return fmt.Errorf("block: write annotation: %w", err)
	}

	return nil
}

func blockCount(nrOfElements, blockSize int) int {
	if nrOfElements == 0 {
		return 0
	}
	return (nrOfElements + blockSize - 1) / blockSize
}

// header is the parsed fixed prefix plus per-block table of a block
// stream, kept just long enough to locate and decompress the blocks a
// read needs.
type header struct {
	nrOfElements int
	elementSize  int
	blockSize    int
	nrOfBlocks   int
	sizes        []uint32
	algos        []compress.Algorithm
}

func readHeader(r io.ReaderAt, pos int64) (header, error) {
	prefix := make([]byte, headerFixedSize)
	if _, err := r.ReadAt(prefix, pos); err != nil {
		return header{}, fmt.Errorf("block: read header: %w", err)
	}

	h := header{
		nrOfElements: int(binary.LittleEndian.Uint64(prefix[0:8])),
		elementSize:  int(binary.LittleEndian.Uint32(prefix[8:12])),
		blockSize:    int(binary.LittleEndian.Uint32(prefix[12:16])),
		nrOfBlocks:   int(binary.LittleEndian.Uint32(prefix[16:20])),
	}

	table := make([]byte, blockTableEntrySize*h.nrOfBlocks)
	if len(table) > 0 {
		if _, err := r.ReadAt(table, pos+headerFixedSize); err != nil {
			return header{}, fmt.Errorf("block: read block table: %w", err)
		}
	}

	h.sizes = make([]uint32, h.nrOfBlocks)
	h.algos = make([]compress.Algorithm, h.nrOfBlocks)
	for i := 0; i < h.nrOfBlocks; i++ {
		off := i * blockTableEntrySize
		h.sizes[i] = binary.LittleEndian.Uint32(table[off : off+4])
		h.algos[i] = compress.Algorithm(table[off+4])
	}

	return h, nil
}

func (h header) payloadStart() int64 {
	return headerFixedSize + blockTableEntrySize*int64(h.nrOfBlocks)
}

// blockOffset returns the byte offset (relative to the stream's start)
// at which block i's compressed payload begins.
func (h header) blockOffset(i int) int64 {
	off := h.payloadStart()
	for j := 0; j < i; j++ {
		off += int64(h.sizes[j])
	}
	return off
}

// elementsInBlock returns the number of elements physically stored in
// block i (the final block may be a short partial block).
func (h header) elementsInBlock(i int) int {
	if i < h.nrOfBlocks-1 {
		return h.blockSize
	}
	n := h.nrOfElements - i*h.blockSize
	if n < 0 {
		n = 0
	}
	return n
}

// ReadBlocks decompresses exactly the blocks spanning
// [startElem, startElem+length) of the stream beginning at pos, and
// copies the requested element range into dst (length*elementSize bytes).
// It returns the stream's persisted annotation.
func ReadBlocks(r io.ReaderAt, pos int64, dst []byte, startElem, length, elementSize int) (string, error) {
	h, err := readHeader(r, pos)
	if err != nil {
		return "", err
	}
	if elementSize != h.elementSize {
		return "", fmt.Errorf("block: element size mismatch: header has %d, caller expects %d", h.elementSize, elementSize)
	}
	if startElem < 0 || length < 0 || startElem+length > h.nrOfElements {
		return "", fmt.Errorf("block: requested range [%d,%d) out of bounds for %d elements", startElem, startElem+length, h.nrOfElements)
	}
	if len(dst) != length*elementSize {
		return "", fmt.Errorf("block: dst length %d does not match %d elements of size %d", len(dst), length, elementSize)
	}

	if length == 0 {
		return readAnnotation(r, pos, h)
	}

	firstBlock := startElem / h.blockSize
	lastBlock := (startElem + length - 1) / h.blockSize

	for i := firstBlock; i <= lastBlock; i++ {
		nElem := h.elementsInBlock(i)
		raw := make([]byte, h.sizes[i])
		if _, err := r.ReadAt(raw, pos+h.blockOffset(i)); err != nil {
			return "", fmt.Errorf("block: read block %d payload: %w", i, err)
		}

		plain, err := compress.Decode(h.algos[i], raw, nElem*elementSize)
		if err != nil {
			return "", fmt.Errorf("block: decompress block %d: %w", i, err)
		}

		blockStartElem := i * h.blockSize
		// intersect [blockStartElem, blockStartElem+nElem) with [startElem, startElem+length)
		loElem := max(blockStartElem, startElem)
		hiElem := min(blockStartElem+nElem, startElem+length)
		if hiElem <= loElem {
			continue
		}

		srcOff := (loElem - blockStartElem) * elementSize
		dstOff := (loElem - startElem) * elementSize
		n := (hiElem - loElem) * elementSize
		copy(dst[dstOff:dstOff+n], plain[srcOff:srcOff+n])
	}

	return readAnnotation(r, pos, h)
}

func readAnnotation(r io.ReaderAt, pos int64, h header) (string, error) {
	lastOffset := h.blockOffset(h.nrOfBlocks)
	lenBuf := make([]byte, 4)
	if _, err := r.ReadAt(lenBuf, pos+lastOffset); err != nil {
		return "", fmt.Errorf("block: read annotation length: %w", err)
	}
	n := binary.LittleEndian.Uint32(lenBuf)
	if n == 0 {
		return "", nil
	}
	ann := make([]byte, n)
	if _, err := r.ReadAt(ann, pos+lastOffset+4); err != nil {
		return "", fmt.Errorf("block: read annotation: %w", err)
	}
	return string(ann), nil
}

func streamSize(r io.ReaderAt, pos int64, h header) (int64, error) {
	lastOffset := h.blockOffset(h.nrOfBlocks)
	lenBuf := make([]byte, 4)
	if _, err := r.ReadAt(lenBuf, pos+lastOffset); err != nil {
		return 0, fmt.Errorf("block: read annotation length: %w", err)
	}
	n := binary.LittleEndian.Uint32(lenBuf)
	return lastOffset + 4 + int64(n), nil
}

// ElementCount returns the nrOfElements recorded in the block stream
// header at pos, letting a caller size a destination buffer before
// issuing the matching ReadBlocks call.
func ElementCount(r io.ReaderAt, pos int64) (int, error) {
	h, err := readHeader(r, pos)
	if err != nil {
		return 0, err
	}
	return h.nrOfElements, nil
}

// HeaderSize returns the total number of bytes the block stream at pos
// occupies on disk (header, block table, payloads, and annotation),
// letting a caller that lays out several streams back-to-back locate
// where the next one starts without decompressing anything.
func HeaderSize(r io.ReaderAt, pos int64) (int64, error) {
	h, err := readHeader(r, pos)
	if err != nil {
		return 0, err
	}
	return streamSize(r, pos, h)
}

// ReadAnnotation returns the on-disk size of the stream at pos together
// with its persisted annotation, without decompressing any block.
func ReadAnnotation(r io.ReaderAt, pos int64) (int64, string, error) {
	h, err := readHeader(r, pos)
	if err != nil {
		return 0, "", err
	}
	size, err := streamSize(r, pos, h)
	if err != nil {
		return 0, "", err
	}
	ann, err := readAnnotation(r, pos, h)
	if err != nil {
		return 0, "", err
	}
	return size, ann, nil
}


