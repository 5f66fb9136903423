package storage

import "rent591-crawler/models"

// ListingWriter persists the first (raw) table of scraped listings.
type ListingWriter interface {
	WriteListings(listings []models.Listing) error
}

// RentalRowWriter persists reshaped rows.
type RentalRowWriter interface {
	WriteRentalRows(rows []models.RentalRow) error
}

var (
	_ ListingWriter   = (*CSVWriter)(nil)
	_ RentalRowWriter = (*CSVWriter)(nil)
	_ RentalRowWriter = (*PostgresWriter)(nil)
)
