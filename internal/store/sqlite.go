package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/pukulo/ledgerchat/internal/domain"
)

// SQLite stores the ledger in a local SQLite file. Amounts are stored as
// decimal strings so nothing drifts through float conversion.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database and ensures the schema exists.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS transactions (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			txn_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			category TEXT NOT NULL,
			amount TEXT NOT NULL,
			balance TEXT NOT NULL,
			description TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Load retrieves all transactions in insertion order.
func (s *SQLite) Load() ([]domain.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT txn_id, kind, category, amount, balance, description, recorded_at
		FROM transactions
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query transactions: %w", err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		var (
			t                          domain.Transaction
			kind, amount, balance, rec string
		)
		if err := rows.Scan(&t.ID, &kind, &t.Category, &amount, &balance, &t.Description, &rec); err != nil {
			return nil, fmt.Errorf("sqlite: scan transaction: %w", err)
		}
		if t.Kind, err = domain.ParseKind(kind); err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("sqlite: invalid amount %q: %w", amount, err)
		}
		if t.BalanceAfter, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("sqlite: invalid balance %q: %w", balance, err)
		}
		if rec != "" {
			if t.RecordedAt, err = time.Parse(time.RFC3339Nano, rec); err != nil {
				return nil, fmt.Errorf("sqlite: invalid recorded_at %q: %w", rec, err)
			}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Save rewrites the whole table in one transaction, keeping the
// overwrite-on-write semantics of the spreadsheet backend.
func (s *SQLite) Save(rows []domain.Transaction) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM transactions`); err != nil {
		return fmt.Errorf("sqlite: clear table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO transactions (txn_id, kind, category, amount, balance, description, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range rows {
		rec := ""
		if !t.RecordedAt.IsZero() {
			rec = t.RecordedAt.UTC().Format(time.RFC3339Nano)
		}
		if _, err := stmt.Exec(t.ID, string(t.Kind), t.Category, t.Amount.String(), t.BalanceAfter.String(), t.Description, rec); err != nil {
			return fmt.Errorf("sqlite: insert transaction %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
