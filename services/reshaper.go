package services

import (
	"strings"

	"rent591-crawler/apperr"
	"rent591-crawler/models"
	"rent591-crawler/storage"
	"rent591-crawler/utils"
)

// filterColumn must be non-blank for a row to be kept.
const filterColumn = "style_4"

// sourceColumns lists, in final-table order, the raw-table column feeding
// each RentalRow field: title, link, addr, style, size, floor, price.
var sourceColumns = []string{"title", "link", "area", "style_2", "style_3", "style_4", "price"}

// Reshaper turns the raw listings table into the final rental table.
type Reshaper struct {
	logger *utils.Logger
}

// NewReshaper creates a Reshaper with the given logger.
func NewReshaper(logger *utils.Logger) *Reshaper {
	return &Reshaper{logger: logger}
}

// Reshape reads the raw table at src, keeps rows with a non-blank style_4,
// writes them renamed and reordered to dst, and returns the kept rows.
func (r *Reshaper) Reshape(src, dst string) ([]models.RentalRow, error) {
	tbl, err := storage.ReadTable(src)
	if err != nil {
		return nil, err
	}

	rows, err := r.Filter(tbl)
	if err != nil {
		return nil, err
	}

	if err := storage.NewCSVWriter(dst).WriteRentalRows(rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Filter applies the style_4 predicate and the column mapping to tbl,
// preserving row order.
func (r *Reshaper) Filter(tbl *storage.Table) ([]models.RentalRow, error) {
	idx := make([]int, len(sourceColumns))
	for i, name := range sourceColumns {
		col, ok := tbl.Column(name)
		if !ok {
			return nil, &apperr.SchemaError{Path: tbl.Path, Column: name}
		}
		idx[i] = col
	}
	floorIdx, ok := tbl.Column(filterColumn)
	if !ok {
		return nil, &apperr.SchemaError{Path: tbl.Path, Column: filterColumn}
	}

	result := make([]models.RentalRow, 0, len(tbl.Rows))
	for _, rec := range tbl.Rows {
		if strings.TrimSpace(rec[floorIdx]) == "" {
			continue
		}
		result = append(result, models.RentalRow{
			Title: rec[idx[0]],
			Link:  rec[idx[1]],
			Addr:  rec[idx[2]],
			Style: rec[idx[3]],
			Size:  rec[idx[4]],
			Floor: rec[idx[5]],
			Price: rec[idx[6]],
		})
	}

	r.logger.Info("[reshaper] Reshaped %d → %d rows (dropped %d with blank %s)",
		len(tbl.Rows), len(result), len(tbl.Rows)-len(result), filterColumn)
	return result, nil
}
