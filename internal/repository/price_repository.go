package repository

import (
	"database/sql"
	"fmt"

	"github.com/lotledger/lotledger/internal/model"
)

// PriceRepository persists the warm copy of the in-memory price cache. Rows
// are insert-or-ignore on (symbol, date): once a close price is recorded for
// a day it is never overwritten, mirroring the cache's merge discipline.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// UpsertPrices stores price points, silently skipping (symbol, date) keys
// that already exist. Returns the number of newly inserted rows.
func (r *PriceRepository) UpsertPrices(points []model.PricePoint) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin price insert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO price_history (symbol, date, close, volume)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare price insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, p := range points {
		result, err := stmt.Exec(p.Symbol, p.Date.UTC().Format("2006-01-02"), p.Close, p.Volume)
		if err != nil {
			return 0, fmt.Errorf("failed to insert price row: %w", err)
		}
		if n, err := result.RowsAffected(); err == nil {
			added += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit price insert: %w", err)
	}
	return added, nil
}

// GetAllPrices loads the entire persisted price history, sorted by symbol
// then date. Used to warm the in-memory cache at startup.
func (r *PriceRepository) GetAllPrices() ([]model.PricePoint, error) {
	rows, err := r.db.Query(`
		SELECT symbol, date, close, volume
		FROM price_history
		ORDER BY symbol ASC, date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query price history: %w", err)
	}
	defer rows.Close()

	var points []model.PricePoint
	for rows.Next() {
		var p model.PricePoint
		var dateStr string
		if err := rows.Scan(&p.Symbol, &dateStr, &p.Close, &p.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan price row: %w", err)
		}
		if p.Date, err = ParseTime(dateStr); err != nil {
			return nil, fmt.Errorf("failed to parse price date: %w", err)
		}
		points = append(points, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price history: %w", err)
	}
	return points, nil
}
