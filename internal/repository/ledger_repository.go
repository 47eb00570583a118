package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lotledger/lotledger/internal/model"
)

// LedgerRepository provides data access methods for the standardized
// transaction ledger.
type LedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a new LedgerRepository with the provided database connection.
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// InsertTransactions stores standardized transactions, assigning each a
// fresh UUID. The insert runs in one database transaction; a failure rolls
// back every row.
func (r *LedgerRepository) InsertTransactions(transactions []model.Transaction) ([]model.Transaction, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin ledger insert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.Prepare(`
		INSERT INTO ledger (id, date, account, symbol, action, quantity, price, amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare ledger insert: %w", err)
	}
	defer stmt.Close()

	inserted := make([]model.Transaction, 0, len(transactions))
	for _, t := range transactions {
		t.ID = uuid.NewString()
		_, err := stmt.Exec(
			t.ID,
			t.Date.UTC().Format("2006-01-02"),
			t.Account,
			t.Symbol,
			string(t.Action),
			t.Quantity,
			t.Price,
			t.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert ledger row: %w", err)
		}
		inserted = append(inserted, t)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit ledger insert: %w", err)
	}
	return inserted, nil
}

// GetTransactions retrieves ledger rows, optionally restricted to the given
// accounts, sorted by date ascending with insertion order breaking ties.
func (r *LedgerRepository) GetTransactions(accounts []string) ([]model.Transaction, error) {
	query := `
		SELECT id, date, account, symbol, action, quantity, price, amount, created_at
		FROM ledger
	`
	var args []any
	if len(accounts) > 0 {
		placeholders := make([]string, len(accounts))
		for i, account := range accounts {
			placeholders[i] = "?"
			args = append(args, account)
		}
		query += ` WHERE account IN (` + strings.Join(placeholders, ",") + `)`
	}
	query += ` ORDER BY date ASC, rowid ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var action, dateStr, createdAtStr string

		err := rows.Scan(&t.ID, &dateStr, &t.Account, &t.Symbol, &action, &t.Quantity, &t.Price, &t.Amount, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		t.Action = model.Action(action)

		t.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse ledger date: %w", err)
		}
		if t.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to parse ledger created_at: %w", err)
		}

		transactions = append(transactions, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger: %w", err)
	}
	return transactions, nil
}

// GetAccounts returns the distinct account identifiers present in the ledger.
func (r *LedgerRepository) GetAccounts() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT account FROM ledger ORDER BY account ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger accounts: %w", err)
	}
	defer rows.Close()

	var accounts []string
	for rows.Next() {
		var account string
		if err := rows.Scan(&account); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}
	return accounts, nil
}

// GetSymbols returns the distinct non-empty symbols present in the ledger.
func (r *LedgerRepository) GetSymbols() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT symbol FROM ledger WHERE symbol != '' ORDER BY symbol ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, symbol)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating symbols: %w", err)
	}
	return symbols, nil
}

// GetOldestTransactionDate finds the date of the earliest ledger row, used
// as the starting point for brokerage backfills. Returns the zero time when
// the ledger is empty.
func (r *LedgerRepository) GetOldestTransactionDate() (time.Time, error) {
	var oldest sql.NullString
	err := r.db.QueryRow(`SELECT MIN(date) FROM ledger`).Scan(&oldest)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query oldest transaction: %w", err)
	}
	if !oldest.Valid || oldest.String == "" {
		return time.Time{}, nil
	}
	return ParseTime(oldest.String)
}

// parseTimestamp parses SQLite CURRENT_TIMESTAMP ("2006-01-02 15:04:05") and
// the formats ParseTime accepts.
func parseTimestamp(str string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02 15:04:05", str); err == nil {
		return t.UTC(), nil
	}
	return ParseTime(str)
}
