package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"rent591-crawler/models"
)

const rentalColumns = 8

// PostgresWriter mirrors the reshaped table into PostgreSQL.
type PostgresWriter struct {
	db    *sql.DB
	runID string
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a PostgresWriter that tags every row with runID.
func NewPostgresWriter(dsn, runID string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	pw := &PostgresWriter{db: db, runID: runID}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS rental_data (
			id         SERIAL PRIMARY KEY,
			run_id     UUID        NOT NULL,
			title      TEXT        NOT NULL,
			link       TEXT        NOT NULL,
			addr       TEXT        NOT NULL DEFAULT '',
			style      TEXT        NOT NULL DEFAULT '',
			size       TEXT        NOT NULL DEFAULT '',
			floor      TEXT        NOT NULL DEFAULT '',
			price      TEXT        NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_rental_data_run_id ON rental_data(run_id);
		CREATE INDEX IF NOT EXISTS idx_rental_data_addr   ON rental_data(addr);
	`)
	return err
}

// WriteRentalRows replaces the table contents with rows inside one transaction.
func (pw *PostgresWriter) WriteRentalRows(rows []models.RentalRow) error {
	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM rental_data"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		query, args := insertBatchQuery(pw.runID, rows[i:end])
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("postgres: insert batch at %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func insertBatchQuery(runID string, batch []models.RentalRow) (string, []interface{}) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*rentalColumns)

	for idx, r := range batch {
		base := idx * rentalColumns
		placeholders := make([]string, rentalColumns)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			runID, r.Title, r.Link, r.Addr, r.Style, r.Size, r.Floor, r.Price)
	}

	query := fmt.Sprintf(`
		INSERT INTO rental_data (run_id, title, link, addr, style, size, floor, price)
		VALUES %s
	`, strings.Join(valueStrings, ","))
	return query, valueArgs
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
