package column

// SimpleStringColumn is a ready-to-use StringColumn backed by a plain
// []string plus a parallel presence bitmap. It covers any host that
// doesn't need its own in-memory string representation: column names,
// factor level names, and a minimal in-memory table's character columns.
type SimpleStringColumn struct {
	Values   []string
	Present  []bool
	Encoding StringEncoding
}

func (c *SimpleStringColumn) AllocateVec(length int) {
	c.Values = make([]string, length)
	c.Present = make([]bool, length)
}

func (c *SimpleStringColumn) SetEncoding(enc StringEncoding) { c.Encoding = enc }

func (c *SimpleStringColumn) BufferToVec(startElem, endElem, vecOffset int, sizeMeta []uint32, buf []byte) {
	var prevEnd uint32
	for i := 0; i < endElem-startElem; i++ {
		entry := sizeMeta[i]
		end := entry &^ naBit
		idx := vecOffset + i
		if entry&naBit != 0 {
			c.Present[idx] = false
		} else {
			c.Values[idx] = string(buf[prevEnd:end])
			c.Present[idx] = true
		}
		prevEnd = end
	}
}

// SimpleStringWriter adapts a []string plus an optional presence bitmap
// (nil means every element is present) to StringWriter.
type SimpleStringWriter struct {
	Values  []string
	Present []bool
	Enc     StringEncoding
}

func (w SimpleStringWriter) Encoding() StringEncoding { return w.Enc }
func (w SimpleStringWriter) Length() int              { return len(w.Values) }

func (w SimpleStringWriter) GetElement(i int) (string, bool) {
	if w.Present != nil && !w.Present[i] {
		return "", false
	}
	return w.Values[i], true
}
