package rent591

import (
	"context"
	"fmt"
	"time"

	"rent591-crawler/apperr"
	"rent591-crawler/models"
	"rent591-crawler/utils"
)

// PageSource returns the fully rendered HTML of one listings page.
type PageSource interface {
	FetchPage(ctx context.Context, page int) (string, error)
}

// Options controls which pages are crawled and how the crawl is paced.
type Options struct {
	Pages       []int
	SettleDelay time.Duration
	PacingDelay time.Duration
}

// Crawler walks the configured pages one at a time and accumulates listings.
type Crawler struct {
	source    PageSource
	extractor *Extractor
	opts      Options
	logger    *utils.Logger
	sleep     utils.SleepFunc
}

// NewCrawler creates a Crawler reading pages from source.
func NewCrawler(source PageSource, opts Options, logger *utils.Logger) *Crawler {
	return &Crawler{
		source:    source,
		extractor: NewExtractor(logger),
		opts:      opts,
		logger:    logger,
		sleep:     utils.Sleep,
	}
}

// Crawl fetches and extracts every page in order. The first fetch failure
// stops the crawl; listings gathered up to that point are returned along with
// an *apperr.FetchError.
func (c *Crawler) Crawl(ctx context.Context) ([]models.Listing, error) {
	c.logger.Info("Starting crawl — %d page(s), settle %v, pacing %v",
		len(c.opts.Pages), c.opts.SettleDelay, c.opts.PacingDelay)

	listings := make([]models.Listing, 0)
	for i, page := range c.opts.Pages {
		html, err := c.source.FetchPage(ctx, page)
		if err != nil {
			return listings, &apperr.FetchError{Page: page, Err: err}
		}

		if err := c.sleep(ctx, c.opts.SettleDelay); err != nil {
			return listings, &apperr.FetchError{Page: page, Err: err}
		}

		found, err := c.extractor.Extract(html)
		if err != nil {
			return listings, fmt.Errorf("rent591: page %d: %w", page, err)
		}
		listings = append(listings, found...)

		c.logger.Info("Page %d done — %d listings on page, %d so far", page+1, len(found), len(listings))

		if i == len(c.opts.Pages)-1 {
			break
		}
		if err := c.sleep(ctx, c.opts.PacingDelay); err != nil {
			return listings, &apperr.FetchError{Page: c.opts.Pages[i+1], Err: err}
		}
	}

	c.logger.Info("Crawl complete — total listings: %d", len(listings))
	return listings, nil
}
