package main

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"rent591-crawler/config"
	"rent591-crawler/utils"
)

type flagOverrides struct {
	start  int
	pages  int
	raw    string
	final  string
	settle time.Duration
	pacing time.Duration
}

func newRootCmd(logger *utils.Logger, out io.Writer) *cobra.Command {
	var f flagOverrides

	crawl := func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd, &f)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return runCrawl(cmd.Context(), cfg, logger, out)
	}

	root := &cobra.Command{
		Use:   "rent591",
		Short: "Scrape rent.591.com.tw listings into CSV",
		Long: `rent591 crawls rental listing pages from rent.591.com.tw with headless Chrome,
writes every listing to a raw CSV table (rental_info.csv), then filters and
reshapes it into the final table (rental_data.csv).

Settings come from the environment (or a .env file); flags override them.`,
		Args:          cobra.NoArgs,
		RunE:          crawl,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().IntVar(&f.start, "start", 0, "first page index (START_PAGE)")
	root.PersistentFlags().IntVar(&f.pages, "pages", 1, "number of pages to crawl (PAGES_TO_SCRAPE)")
	root.PersistentFlags().StringVar(&f.raw, "raw", "", "raw table path (RAW_CSV_PATH)")
	root.PersistentFlags().StringVar(&f.final, "final", "", "final table path (FINAL_CSV_PATH)")
	root.PersistentFlags().DurationVar(&f.settle, "settle", 0, "wait after each page load (SETTLE_DELAY_MS)")
	root.PersistentFlags().DurationVar(&f.pacing, "pacing", 0, "wait between pages (PACING_DELAY_MS)")

	root.AddCommand(&cobra.Command{
		Use:   "crawl",
		Short: "Crawl, write the raw table and reshape it (default)",
		Args:  cobra.NoArgs,
		RunE:  crawl,
	})

	root.AddCommand(&cobra.Command{
		Use:   "reshape",
		Short: "Rebuild the final table from an existing raw table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, &f)
			if err != nil {
				return err
			}
			if err := cfg.ValidatePaths(); err != nil {
				return err
			}
			return runReshape(cfg, logger)
		},
	})

	return root
}

// loadConfig reads the environment and applies any flags set on the command
// line. Each command validates the settings it uses.
func loadConfig(cmd *cobra.Command, f *flagOverrides) (*config.Config, error) {
	cfg := config.Load()

	flags := cmd.Flags()
	if flags.Changed("start") {
		cfg.StartPage = f.start
	}
	if flags.Changed("pages") {
		cfg.PagesToScrape = f.pages
	}
	if flags.Changed("raw") {
		cfg.RawCSVPath = f.raw
	}
	if flags.Changed("final") {
		cfg.FinalCSVPath = f.final
	}
	if flags.Changed("settle") {
		cfg.SettleDelay = f.settle
	}
	if flags.Changed("pacing") {
		cfg.PacingDelay = f.pacing
	}

	return cfg, nil
}
