package rent591

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"rent591-crawler/models"
	"rent591-crawler/utils"
)

// BaseURL is prefixed to a listing's data-bind attribute to form its link.
const BaseURL = "https://rent.591.com.tw/"

const (
	listingSelector = "section.vue-list-rent-item"
	titleSelector   = "div.item-title"
	areaSelector    = "div.item-area"
	priceSelector   = "div.item-price-text"
	styleSelector   = "ul.item-style"
	linkAttr        = "data-bind"
)

// extractOne extracts a single listing container.
var extractOne = extractListing

// Extractor turns a rendered listings page into Listing records.
type Extractor struct {
	logger *utils.Logger
}

// NewExtractor creates an Extractor with the given logger.
func NewExtractor(logger *utils.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract parses html and returns one Listing per listing container, in
// document order. A document without containers yields an empty slice.
// Containers that fail to extract are logged and skipped.
func (e *Extractor) Extract(html string) ([]models.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("rent591: parse html: %w", err)
	}

	houses := doc.Find(listingSelector)
	e.logger.Info("Found %d houses", houses.Length())

	listings := make([]models.Listing, 0, houses.Length())
	houses.Each(func(i int, s *goquery.Selection) {
		l, err := extractOne(s)
		if err != nil {
			e.logger.Warn("Error extracting house %d: %v", i+1, err)
			return
		}
		listings = append(listings, l)
	})

	return listings, nil
}

func extractListing(s *goquery.Selection) (l models.Listing, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed listing: %v", r)
		}
	}()

	l = models.Listing{
		Title:  textOrNA(s, titleSelector),
		Area:   textOrNA(s, areaSelector),
		Price:  textOrNA(s, priceSelector),
		Styles: styles(s),
		Link:   models.NotAvailable,
	}
	if bind, ok := s.Attr(linkAttr); ok && bind != "" {
		l.Link = BaseURL + bind
	}
	return l, nil
}

func textOrNA(s *goquery.Selection, selector string) string {
	el := s.Find(selector).First()
	if el.Length() == 0 {
		return models.NotAvailable
	}
	return strings.TrimSpace(el.Text())
}

func styles(s *goquery.Selection) []string {
	list := s.Find(styleSelector).First()
	if list.Length() == 0 {
		return []string{}
	}

	items := list.Find("li")
	out := make([]string, 0, items.Length())
	items.Each(func(_ int, li *goquery.Selection) {
		out = append(out, strings.TrimSpace(li.Text()))
	})
	return out
}
