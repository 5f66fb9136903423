package rent591

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"rent591-crawler/utils"
)

// RowsPerPage is the number of listings the site shows per page; page N
// starts at row N*RowsPerPage.
const RowsPerPage = 30

// BrowserOptions configures the headless Chrome session.
type BrowserOptions struct {
	ChromeBin   string
	Headless    bool
	Region      int
	Kind        int
	PageTimeout time.Duration
}

// Browser is the chromedp-backed PageSource. One browser process serves the
// whole crawl; each page is loaded in a fresh tab.
type Browser struct {
	opts   BrowserOptions
	logger *utils.Logger

	ctx         context.Context
	cancelAlloc context.CancelFunc
	cancelCtx   context.CancelFunc
}

// NewBrowser starts Chrome and returns a ready-to-use Browser. Callers must
// Close it.
func NewBrowser(opts BrowserOptions, logger *utils.Logger) (*Browser, error) {
	chromeBin := opts.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	logger.Info("Using browser binary: %s", chromeBin)

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)

	// Suppress chromedp log noise
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	// An empty Run launches the browser so start-up failures surface here.
	if err := chromedp.Run(ctx); err != nil {
		cancelCtx()
		cancelAlloc()
		return nil, fmt.Errorf("rent591: start browser: %w", err)
	}

	return &Browser{
		opts:        opts,
		logger:      logger,
		ctx:         ctx,
		cancelAlloc: cancelAlloc,
		cancelCtx:   cancelCtx,
	}, nil
}

// FetchPage loads one listings page and returns its rendered HTML.
func (b *Browser) FetchPage(ctx context.Context, page int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	url := PageURL(b.opts.Region, b.opts.Kind, page)
	b.logger.Info("Fetching page %d — URL: %s", page+1, url)

	tabCtx, cancel := chromedp.NewContext(b.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, b.opts.PageTimeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("chromedp page load: %w", err)
	}
	return html, nil
}

// Close shuts the browser down.
func (b *Browser) Close() {
	b.cancelCtx()
	b.cancelAlloc()
}

// PageURL builds the listings URL for a zero-based page index.
func PageURL(region, kind, page int) string {
	return fmt.Sprintf("%s?kind=%d&region=%d&firstRow=%d", BaseURL, kind, region, page*RowsPerPage)
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary() string {
	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
