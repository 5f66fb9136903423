package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	StartPage     int
	PagesToScrape int
	Region        int
	Kind          int

	SettleDelay time.Duration
	PacingDelay time.Duration
	PageTimeout time.Duration

	RawCSVPath   string
	FinalCSVPath string

	ChromeBin string
	Headless  bool

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		StartPage:     getEnvInt("START_PAGE", 0),
		PagesToScrape: getEnvInt("PAGES_TO_SCRAPE", 1),
		Region:        getEnvInt("RENT_REGION", 3),
		Kind:          getEnvInt("RENT_KIND", 0),

		SettleDelay: time.Duration(getEnvInt("SETTLE_DELAY_MS", 2000)) * time.Millisecond,
		PacingDelay: time.Duration(getEnvInt("PACING_DELAY_MS", 1000)) * time.Millisecond,
		PageTimeout: time.Duration(getEnvInt("PAGE_TIMEOUT_SEC", 60)) * time.Second,

		RawCSVPath:   getEnv("RAW_CSV_PATH", "rental_info.csv"),
		FinalCSVPath: getEnv("FINAL_CSV_PATH", "rental_data.csv"),

		ChromeBin: getEnv("CHROME_BIN", ""),
		Headless:  getEnvBool("HEADLESS", true),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "rental_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// Validate reports the first setting that would make the pipeline misbehave.
func (c *Config) Validate() error {
	switch {
	case c.StartPage < 0:
		return errors.New("config: START_PAGE must not be negative")
	case c.PagesToScrape < 1:
		return errors.New("config: PAGES_TO_SCRAPE must be at least 1")
	case c.SettleDelay < 0 || c.PacingDelay < 0:
		return errors.New("config: delays must not be negative")
	case c.PageTimeout <= 0:
		return errors.New("config: PAGE_TIMEOUT_SEC must be positive")
	}
	return c.ValidatePaths()
}

// ValidatePaths checks only the table paths, which is all a reshape-only run needs.
func (c *Config) ValidatePaths() error {
	if strings.TrimSpace(c.RawCSVPath) == "" || strings.TrimSpace(c.FinalCSVPath) == "" {
		return errors.New("config: output paths must not be empty")
	}
	return nil
}

// PageRange returns the page indices to crawl, in order.
func (c *Config) PageRange() []int {
	if c.PagesToScrape <= 0 {
		return nil
	}
	pages := make([]int, c.PagesToScrape)
	for i := range pages {
		pages[i] = c.StartPage + i
	}
	return pages
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
