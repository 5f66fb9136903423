package services

import (
	"bytes"
	"strings"
	"testing"

	"rent591-crawler/models"
	"rent591-crawler/utils"
)

func sampleListings() []models.Listing {
	return []models.Listing{
		{Title: "A", Area: "大安區-復興南路", Price: "18,000", Styles: []string{"a", "b", "c", "d"}, Link: "l1"},
		{Title: "B", Area: "大安區-和平東路", Price: "12,000", Styles: []string{"a", "b"}, Link: "l2"},
		{Title: "C", Area: "信義區", Price: "N/A", Styles: []string{"a", "b", "c", "d"}, Link: "N/A"},
		{Title: "N/A", Area: "N/A", Price: "N/A", Styles: []string{}, Link: "N/A"},
	}
}

func TestSummaryCounts(t *testing.T) {
	svc := NewSummaryService(utils.Discard())
	r := svc.Generate(sampleListings(), 2)

	if r.TotalListings != 4 {
		t.Errorf("TotalListings: got %d, want 4", r.TotalListings)
	}
	if r.KeptListings != 2 {
		t.Errorf("KeptListings: got %d, want 2", r.KeptListings)
	}
	if r.MaxStyles != 4 {
		t.Errorf("MaxStyles: got %d, want 4", r.MaxStyles)
	}
	if r.StyleCounts[4] != 2 || r.StyleCounts[2] != 1 || r.StyleCounts[0] != 1 {
		t.Errorf("StyleCounts: got %v", r.StyleCounts)
	}
}

func TestSummaryMissingFields(t *testing.T) {
	svc := NewSummaryService(utils.Discard())
	r := svc.Generate(sampleListings(), 0)

	want := map[string]int{"title": 1, "area": 1, "price": 2, "link": 2}
	for field, n := range want {
		if r.MissingFields[field] != n {
			t.Errorf("MissingFields[%s]: got %d, want %d", field, r.MissingFields[field], n)
		}
	}
}

func TestSummaryDistrictGrouping(t *testing.T) {
	svc := NewSummaryService(utils.Discard())
	r := svc.Generate(sampleListings(), 0)

	if r.ListingsByArea["大安區"] != 2 {
		t.Errorf("大安區 count: got %d, want 2", r.ListingsByArea["大安區"])
	}
	if r.ListingsByArea["信義區"] != 1 {
		t.Errorf("信義區 count: got %d, want 1", r.ListingsByArea["信義區"])
	}
	if _, ok := r.ListingsByArea["N/A"]; ok {
		t.Error("N/A areas should not be grouped")
	}
}

func TestSummaryEmptyInput(t *testing.T) {
	svc := NewSummaryService(utils.Discard())
	r := svc.Generate(nil, 0)
	if r.TotalListings != 0 {
		t.Errorf("expected 0 total listings for empty input")
	}
}

func TestSummaryPrint(t *testing.T) {
	svc := NewSummaryService(utils.Discard())
	var buf bytes.Buffer
	svc.Print(&buf, svc.Generate(sampleListings(), 2))

	out := buf.String()
	for _, want := range []string{"Listings scraped", "Kept after reshaping", "大安區", "price    2"} {
		if !strings.Contains(out, want) {
			t.Errorf("Print output missing %q", want)
		}
	}
}
