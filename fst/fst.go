package fst

import (
	"log"
	"os"

	"github.com/17ai/fst/store"
)

// WriteFile writes table to path at the given compress setting
// (0-100), creating or truncating the file. A write failure leaves the
// file reported as possibly corrupted — the caller is responsible for
// removing it.
func WriteFile(path string, table *Table, compress int) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := store.Write(f, table, compress); err != nil {
		log.Printf("fst: write %s failed: %v", path, err)
		return err
	}
	log.Printf("fst: wrote %s (%d cols, %d rows, compress=%d)", path, table.NrOfCols(), table.NrOfRows(), compress)
	return nil
}

// ReadMetaFile opens path and validates its headers without reading any
// column payload.
func ReadMetaFile(path string) (*store.Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return store.ReadMeta(f)
}

// ReadFile reads the selected columns of path in row range
// [startRow, endRow] (1-based, inclusive; endRow == -1 means to the end)
// into a fresh Result.
func ReadFile(path string, columnSelection []string, startRow, endRow int) (*Result, []int32, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()

	res := &Result{}
	keyIndex, selectedCols, err := store.Read(f, columnSelection, startRow, endRow, res, res)
	if err != nil {
		return nil, nil, nil, err
	}
	for i, name := range selectedCols {
		res.Columns[i].Name = name
	}
	return res, keyIndex, selectedCols, nil
}
