package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"rent591-crawler/models"
	"rent591-crawler/utils"
)

type SummaryService struct {
	logger *utils.Logger
}

func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger}
}

func (s *SummaryService) Generate(listings []models.Listing, kept int) *models.Summary {
	report := &models.Summary{
		KeptListings:   kept,
		ListingsByArea: make(map[string]int),
		MissingFields:  make(map[string]int),
		StyleCounts:    make(map[int]int),
	}

	report.TotalListings = len(listings)

	for _, l := range listings {
		report.StyleCounts[len(l.Styles)]++
		if len(l.Styles) > report.MaxStyles {
			report.MaxStyles = len(l.Styles)
		}

		for field, v := range map[string]string{"title": l.Title, "area": l.Area, "price": l.Price, "link": l.Link} {
			if v == models.NotAvailable {
				report.MissingFields[field]++
			}
		}

		if l.Area != models.NotAvailable && l.Area != "" {
			report.ListingsByArea[district(l.Area)]++
		}
	}

	return report
}

// district returns the part of an area string before the first "-", which on
// 591 is the district name ("大安區-復興南路" → "大安區").
func district(area string) string {
	d, _, _ := strings.Cut(area, "-")
	return strings.TrimSpace(d)
}

func (s *SummaryService) Print(w io.Writer, r *models.Summary) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  591 RENTAL CRAWL SUMMARY\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Listings scraped      : \033[1m%d\033[0m\n", r.TotalListings)
	fmt.Fprintf(w, "  Kept after reshaping  : \033[1m%d\033[0m\n", r.KeptListings)
	fmt.Fprintf(w, "  Dropped (no floor)    : \033[1m%d\033[0m\n", r.TotalListings-r.KeptListings)
	fmt.Fprintf(w, "  Style columns         : \033[1m%d\033[0m\n", r.MaxStyles)
	fmt.Fprintln(w)

	// Missing fields
	fmt.Fprintf(w, "\033[1;33m  Missing Fields (N/A)\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.MissingFields) == 0 {
		fmt.Fprintf(w, "  None\n")
	} else {
		for _, field := range []string{"title", "area", "price", "link"} {
			if n := r.MissingFields[field]; n > 0 {
				fmt.Fprintf(w, "  %-8s %d\n", field, n)
			}
		}
	}
	fmt.Fprintln(w)

	// Style tag counts
	fmt.Fprintf(w, "\033[1;33m  Style Tags per Listing\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	counts := make([]int, 0, len(r.StyleCounts))
	for n := range r.StyleCounts {
		counts = append(counts, n)
	}
	sort.Ints(counts)
	for _, n := range counts {
		fmt.Fprintf(w, "  %d tags : %d\n", n, r.StyleCounts[n])
	}
	fmt.Fprintln(w)

	// Listings by district
	fmt.Fprintf(w, "\033[1;33m  Listings by District\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.ListingsByArea) == 0 {
		fmt.Fprintf(w, "  No area data\n")
	} else {
		type areaCount struct {
			area  string
			count int
		}
		var areas []areaCount
		for a, cnt := range r.ListingsByArea {
			areas = append(areas, areaCount{a, cnt})
		}
		sort.Slice(areas, func(i, j int) bool {
			if areas[i].count != areas[j].count {
				return areas[i].count > areas[j].count
			}
			return areas[i].area < areas[j].area
		})
		for _, ac := range areas {
			bar := strings.Repeat("█", ac.count)
			fmt.Fprintf(w, "  %-30s %s (%d)\n", truncate(ac.area, 28), bar, ac.count)
		}
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
