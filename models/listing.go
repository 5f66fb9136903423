package models

// NotAvailable stands in for any text field whose source element was absent.
const NotAvailable = "N/A"

// Listing is one rental record scraped from a listings page.
// Every text field is always set; Styles may be empty but is never nil.
type Listing struct {
	Title  string
	Area   string
	Price  string
	Styles []string
	Link   string
}

// RentalRow is a listing after reshaping: the subset of columns kept in the
// final table, under their final names.
type RentalRow struct {
	Title string
	Link  string
	Addr  string
	Style string
	Size  string
	Floor string
	Price string
}

// Record returns the row's fields in final-table column order.
func (r RentalRow) Record() []string {
	return []string{r.Title, r.Link, r.Addr, r.Style, r.Size, r.Floor, r.Price}
}

// Summary holds the run statistics printed at the end of a crawl.
type Summary struct {
	TotalListings  int
	KeptListings   int
	MaxStyles      int
	ListingsByArea map[string]int
	MissingFields  map[string]int
	StyleCounts    map[int]int
}
