package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"rent591-crawler/apperr"
	"rent591-crawler/models"
)

// RentalHeader is the header of the reshaped table.
var RentalHeader = []string{"title", "link", "addr", "style", "size", "floor", "price"}

// CSVWriter writes tables to a single CSV file, truncating it on every write.
type CSVWriter struct {
	path string
}

// NewCSVWriter returns a CSVWriter for path. Nothing is created until a
// table is written.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Path returns the destination file.
func (c *CSVWriter) Path() string { return c.path }

// MaxStyles returns the longest style list in the batch.
func MaxStyles(listings []models.Listing) int {
	n := 0
	for _, l := range listings {
		if len(l.Styles) > n {
			n = len(l.Styles)
		}
	}
	return n
}

// ListingHeader returns the raw-table header for n style columns:
// title, area, price, style_1..style_n, link.
func ListingHeader(n int) []string {
	header := make([]string, 0, n+4)
	header = append(header, "title", "area", "price")
	for i := 1; i <= n; i++ {
		header = append(header, fmt.Sprintf("style_%d", i))
	}
	return append(header, "link")
}

// listingRecord flattens l, padding its styles to n columns.
func listingRecord(l models.Listing, n int) []string {
	rec := make([]string, 0, n+4)
	rec = append(rec, l.Title, l.Area, l.Price)
	for i := 0; i < n; i++ {
		if i < len(l.Styles) {
			rec = append(rec, l.Styles[i])
		} else {
			rec = append(rec, "")
		}
	}
	return append(rec, l.Link)
}

// WriteListings writes the raw table. The number of style columns is the
// longest style list in the batch, so an empty batch is rejected with an
// *apperr.EmptyResultError before the file is touched.
func (c *CSVWriter) WriteListings(listings []models.Listing) error {
	if len(listings) == 0 {
		return &apperr.EmptyResultError{}
	}

	n := MaxStyles(listings)
	records := make([][]string, 0, len(listings)+1)
	records = append(records, ListingHeader(n))
	for _, l := range listings {
		records = append(records, listingRecord(l, n))
	}
	return c.writeAll(records)
}

// WriteRentalRows writes the reshaped table. An empty batch still produces
// the header row.
func (c *CSVWriter) WriteRentalRows(rows []models.RentalRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, RentalHeader)
	for _, r := range rows {
		records = append(records, r.Record())
	}
	return c.writeAll(records)
}

func (c *CSVWriter) writeAll(records [][]string) error {
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &apperr.FileError{Op: "create dir", Path: dir, Err: err}
		}
	}

	f, err := os.Create(c.path)
	if err != nil {
		return &apperr.FileError{Op: "create", Path: c.path, Err: err}
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		_ = f.Close()
		return &apperr.FileError{Op: "write", Path: c.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &apperr.FileError{Op: "close", Path: c.path, Err: err}
	}
	return nil
}
