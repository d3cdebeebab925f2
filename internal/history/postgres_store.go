package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresStore persists history in a scan_history table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects using a postgres connection string and creates
// the table if it does not exist.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Check connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS scan_history (
			id BIGSERIAL PRIMARY KEY,
			address TEXT NOT NULL,
			risk_score DOUBLE PRECISION NOT NULL,
			risk_label TEXT NOT NULL,
			sanctioned BOOLEAN NOT NULL,
			scanned_at TIMESTAMPTZ NOT NULL
		)
	`)
	return err
}

func (p *PostgresStore) Record(ctx context.Context, e Entry) error {
	if e.ScannedAt.IsZero() {
		e.ScannedAt = time.Now().UTC()
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO scan_history (address, risk_score, risk_label, sanctioned, scanned_at)
		VALUES ($1, $2, $3, $4, $5)
	`, e.Address, e.RiskScore, e.RiskLabel, e.Sanctioned, e.ScannedAt)
	if err != nil {
		return fmt.Errorf("inserting scan history: %w", err)
	}
	return nil
}

func (p *PostgresStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT address, risk_score, risk_label, sanctioned, scanned_at
		FROM scan_history
		ORDER BY scanned_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying scan history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Address, &e.RiskScore, &e.RiskLabel, &e.Sanctioned, &e.ScannedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (p *PostgresStore) Close() error {
	return p.db.Close()
}
