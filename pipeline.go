package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"rent591-crawler/apperr"
	"rent591-crawler/config"
	"rent591-crawler/models"
	"rent591-crawler/scraper/rent591"
	"rent591-crawler/services"
	"rent591-crawler/storage"
	"rent591-crawler/utils"
)

type pipeline struct {
	cfg    *config.Config
	logger *utils.Logger
	out    io.Writer
	runID  string
}

func newPipeline(cfg *config.Config, logger *utils.Logger, out io.Writer) *pipeline {
	return &pipeline{cfg: cfg, logger: logger, out: out, runID: uuid.NewString()}
}

func runCrawl(ctx context.Context, cfg *config.Config, logger *utils.Logger, out io.Writer) error {
	p := newPipeline(cfg, logger, out)

	logger.Info("=== 591 Rental Crawler starting — run %s ===", p.runID)
	logger.Info("Config — pages: %v | settle: %v | pacing: %v | region: %d",
		cfg.PageRange(), cfg.SettleDelay, cfg.PacingDelay, cfg.Region)

	listings, err := p.scrapeWithBrowser(ctx)
	if err != nil {
		return err
	}
	return p.persist(listings)
}

func runReshape(cfg *config.Config, logger *utils.Logger) error {
	p := newPipeline(cfg, logger, io.Discard)

	rows, err := services.NewReshaper(logger).Reshape(cfg.RawCSVPath, cfg.FinalCSVPath)
	if err != nil {
		return fmt.Errorf("reshape: %w", err)
	}
	logger.Info("Final table saved to %s (%d rows)", cfg.FinalCSVPath, len(rows))

	return p.mirror(rows)
}

// scrapeWithBrowser holds the browser only for the duration of the crawl.
func (p *pipeline) scrapeWithBrowser(ctx context.Context) ([]models.Listing, error) {
	browser, err := rent591.NewBrowser(rent591.BrowserOptions{
		ChromeBin:   p.cfg.ChromeBin,
		Headless:    p.cfg.Headless,
		Region:      p.cfg.Region,
		Kind:        p.cfg.Kind,
		PageTimeout: p.cfg.PageTimeout,
	}, p.logger.With("rent591"))
	if err != nil {
		return nil, err
	}
	defer browser.Close()

	return p.crawl(ctx, browser)
}

func (p *pipeline) crawl(ctx context.Context, source rent591.PageSource) ([]models.Listing, error) {
	pages := p.cfg.PageRange()
	crawler := rent591.NewCrawler(source, rent591.Options{
		Pages:       pages,
		SettleDelay: p.cfg.SettleDelay,
		PacingDelay: p.cfg.PacingDelay,
	}, p.logger.With("rent591"))

	listings, err := crawler.Crawl(ctx)
	if err != nil {
		p.logger.Error("Crawl aborted with %d listings collected", len(listings))
		return nil, err
	}
	if len(listings) == 0 {
		return nil, &apperr.EmptyResultError{Pages: len(pages)}
	}
	return listings, nil
}

func (p *pipeline) persist(listings []models.Listing) error {
	p.logger.Info("Scraped %d listings — writing to CSV...", len(listings))

	if err := storage.NewCSVWriter(p.cfg.RawCSVPath).WriteListings(listings); err != nil {
		return fmt.Errorf("write raw table: %w", err)
	}
	p.logger.Info("Raw listings saved to %s", p.cfg.RawCSVPath)

	rows, err := services.NewReshaper(p.logger).Reshape(p.cfg.RawCSVPath, p.cfg.FinalCSVPath)
	if err != nil {
		return fmt.Errorf("reshape: %w", err)
	}
	p.logger.Info("Final table saved to %s", p.cfg.FinalCSVPath)

	if err := p.mirror(rows); err != nil {
		return err
	}

	summarySvc := services.NewSummaryService(p.logger)
	summarySvc.Print(p.out, summarySvc.Generate(listings, len(rows)))

	fmt.Fprintf(p.out, "  Done. Raw CSV → %s | Final CSV → %s\n\n", p.cfg.RawCSVPath, p.cfg.FinalCSVPath)
	return nil
}

// mirror copies the final rows into PostgreSQL when enabled.
func (p *pipeline) mirror(rows []models.RentalRow) error {
	if !p.cfg.PostgresEnabled {
		return nil
	}

	pgWriter, err := storage.NewPostgresWriter(p.cfg.DSN(), p.runID)
	if err != nil {
		return err
	}
	defer pgWriter.Close()

	if err := pgWriter.WriteRentalRows(rows); err != nil {
		return err
	}
	p.logger.Info("Final rows stored in PostgreSQL (table: rental_data, run %s)", p.runID)
	return nil
}
