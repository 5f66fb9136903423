package storage

import (
	"encoding/csv"
	"errors"
	"io"
	"os"

	"rent591-crawler/apperr"
)

// Table is a CSV file read fully into memory.
type Table struct {
	Path   string
	Header []string
	Rows   [][]string

	index map[string]int
}

// Column returns the position of name in the header.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// ReadTable loads the CSV at path. A missing or unreadable file is an
// *apperr.FileError; a file without a header or with ragged rows is an
// *apperr.SchemaError.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &apperr.FileError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &apperr.SchemaError{Path: path, Reason: "missing header row"}
	}
	if err != nil {
		return nil, &apperr.SchemaError{Path: path, Row: 1, Reason: err.Error()}
	}

	t := &Table{
		Path:   path,
		Header: header,
		index:  make(map[string]int, len(header)),
	}
	for i, name := range header {
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}

	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &apperr.SchemaError{Path: path, Row: line, Reason: err.Error()}
		}
		t.Rows = append(t.Rows, rec)
	}

	return t, nil
}
